package models

// TrafficRow is one lalin record: a (gateway, lane, shift, vehicle class,
// date) combination with one counter per payment channel. Rows come from
// the backend and are never mutated here; counters the backend omits
// decode to zero.
type TrafficRow struct {
	ID        int64  `json:"id"`
	IdCabang  int    `json:"IdCabang"`
	IdGerbang int    `json:"IdGerbang"`
	IdGardu   int    `json:"IdGardu"`
	Tanggal   string `json:"Tanggal"`
	Shift     int    `json:"Shift"`
	Golongan  int    `json:"Golongan"`

	Tunai      int64 `json:"Tunai"`
	DinasOpr   int64 `json:"DinasOpr"`
	DinasMitra int64 `json:"DinasMitra"`
	DinasKary  int64 `json:"DinasKary"`

	EMandiri int64 `json:"eMandiri"`
	EBri     int64 `json:"eBri"`
	EBni     int64 `json:"eBni"`
	EBca     int64 `json:"eBca"`
	ENobu    int64 `json:"eNobu"`
	EDKI     int64 `json:"eDKI"`
	EMega    int64 `json:"eMega"`
	EFlo     int64 `json:"eFlo"`
}

// Channel returns the counter for a channel field name, zero for
// anything unknown.
func (r TrafficRow) Channel(name string) int64 {
	switch name {
	case "Tunai":
		return r.Tunai
	case "eBca":
		return r.EBca
	case "eBri":
		return r.EBri
	case "eBni":
		return r.EBni
	case "eMandiri":
		return r.EMandiri
	case "eDKI":
		return r.EDKI
	case "eMega":
		return r.EMega
	case "eNobu":
		return r.ENobu
	case "eFlo":
		return r.EFlo
	case "DinasOpr":
		return r.DinasOpr
	case "DinasMitra":
		return r.DinasMitra
	case "DinasKary":
		return r.DinasKary
	default:
		return 0
	}
}

// Total sums all twelve channels
func (r TrafficRow) Total() int64 {
	return r.Tunai +
		r.EMandiri + r.EBri + r.EBni + r.EBca +
		r.ENobu + r.EDKI + r.EMega + r.EFlo +
		r.DinasOpr + r.DinasMitra + r.DinasKary
}

// LalinFilter mirrors the backend /lalins query parameters
type LalinFilter struct {
	Tanggal string
	Page    int
	Limit   int
	Search  string
	Gerbang int
	Shift   int
}
