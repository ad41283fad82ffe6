package types

// PaymentChannels lists every counter on a traffic row, in report column
// order: cash, the seven bank e-toll channels, Flo, then the three
// non-revenue dispensation channels.
var PaymentChannels = []string{
	"Tunai",
	"eBca", "eBri", "eBni", "eMandiri", "eDKI", "eMega", "eNobu",
	"eFlo",
	"DinasOpr", "DinasMitra", "DinasKary",
}

// PaymentLabels maps channel field names to their display labels
var PaymentLabels = map[string]string{
	"Tunai":      "Tunai",
	"eBca":       "BCA",
	"eBri":       "BRI",
	"eBni":       "BNI",
	"eMandiri":   "Mandiri",
	"eDKI":       "DKI",
	"eMega":      "Mega",
	"eNobu":      "Nobu",
	"eFlo":       "Flo",
	"DinasOpr":   "DinasOpr",
	"DinasMitra": "DinasMitra",
	"DinasKary":  "DinasKary",
}

// Channel clusters used by the summary cards and mode totals
var (
	ClusterETol = []string{"eBca", "eBri", "eBni", "eMandiri", "eDKI", "eMega", "eNobu"}
	ClusterKTP  = []string{"DinasOpr", "DinasMitra", "DinasKary"}
)

// ShiftLabels for the three daily operational periods
var ShiftLabels = map[int]string{
	1: "Shift 1 (00:00 - 08:00)",
	2: "Shift 2 (08:00 - 16:00)",
	3: "Shift 3 (16:00 - 24:00)",
}

// GolonganLabels for the five vehicle classes
var GolonganLabels = map[int]string{
	1: "Golongan I",
	2: "Golongan II",
	3: "Golongan III",
	4: "Golongan IV",
	5: "Golongan V",
}
