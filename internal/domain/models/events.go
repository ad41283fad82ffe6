package models

// TrafficUpdatedMessage is published by the backend ingest pipeline when
// new lalin rows land for a date. The dashboard only needs the scope of
// the change to tell open pages to refetch.
type TrafficUpdatedMessage struct {
	Tanggal   string `json:"tanggal"`
	IdCabang  int    `json:"id_cabang,omitempty"`
	IdGerbang int    `json:"id_gerbang,omitempty"`
	Shift     int    `json:"shift,omitempty"`
}
