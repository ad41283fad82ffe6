package types

// AuthState describes the session controller state machine
type AuthState string

const (
	StateUnauthenticated AuthState = "UNAUTHENTICATED"
	StateLoading         AuthState = "LOADING"
	StateAuthenticated   AuthState = "AUTHENTICATED"
)

func (s AuthState) String() string {
	return string(s)
}

// PaymentMode selects which subset of channels a report total covers
type PaymentMode string

const (
	ModeTunai         PaymentMode = "tunai"
	ModeEToll         PaymentMode = "etoll"
	ModeFlo           PaymentMode = "flo"
	ModeKTP           PaymentMode = "ktp"
	ModeETollTunaiFlo PaymentMode = "etoll_tunai_flo"
	ModeKeseluruhan   PaymentMode = "keseluruhan"
)

// ParsePaymentMode maps a query parameter to a mode.
// Unknown or empty input falls back to ModeKeseluruhan.
func ParsePaymentMode(s string) PaymentMode {
	switch PaymentMode(s) {
	case ModeTunai, ModeEToll, ModeFlo, ModeKTP, ModeETollTunaiFlo, ModeKeseluruhan:
		return PaymentMode(s)
	default:
		return ModeKeseluruhan
	}
}

// ExportFormat for the report download endpoint
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)
