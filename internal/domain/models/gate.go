package models

// GatewayRecord is a toll gate master data row. The numeric id alone is
// not unique across branches; (ID, IdCabang) is the identity.
type GatewayRecord struct {
	ID          int    `json:"id"`
	IdCabang    int    `json:"IdCabang"`
	NamaGerbang string `json:"NamaGerbang"`
	NamaCabang  string `json:"NamaCabang"`
}

// Key returns the composite identity of the record
func (g GatewayRecord) Key() GatewayKey {
	return GatewayKey{ID: g.ID, IdCabang: g.IdCabang}
}

// GatewayKey is the composite delete key
type GatewayKey struct {
	ID       int `json:"id"`
	IdCabang int `json:"IdCabang"`
}

// GatewayFilter for the paginated /gerbangs listing
type GatewayFilter struct {
	Page   int
	Limit  int
	Search string
}

// PageInfo is the pagination block the handlers return alongside rows
type PageInfo struct {
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Count       int `json:"count"`
}
