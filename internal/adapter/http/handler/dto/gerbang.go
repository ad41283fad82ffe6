package dto

import (
	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/pkg/validator"
)

type GerbangRequest struct {
	ID          int    `json:"id"`
	IdCabang    int    `json:"IdCabang"`
	NamaGerbang string `json:"NamaGerbang"`
	NamaCabang  string `json:"NamaCabang"`
}

func (r *GerbangRequest) ToModel() models.GatewayRecord {
	return models.GatewayRecord{
		ID:          r.ID,
		IdCabang:    r.IdCabang,
		NamaGerbang: r.NamaGerbang,
		NamaCabang:  r.NamaCabang,
	}
}

func (r *GerbangRequest) Validate(v *validator.Validator) {
	v.Check(r.ID > 0, "id", "must be a positive number")
	v.Check(r.IdCabang > 0, "IdCabang", "must be a positive number")
	v.Check(r.NamaGerbang != "", "NamaGerbang", "must be provided")
	v.Check(len(r.NamaGerbang) <= 200, "NamaGerbang", "must not be more than 200 bytes long")
	v.Check(r.NamaCabang != "", "NamaCabang", "must be provided")
	v.Check(len(r.NamaCabang) <= 200, "NamaCabang", "must not be more than 200 bytes long")
}

type DeleteGerbangRequest struct {
	ID       int `json:"id"`
	IdCabang int `json:"IdCabang"`
}

func (r *DeleteGerbangRequest) Validate(v *validator.Validator) {
	v.Check(r.ID > 0, "id", "must be a positive number")
	v.Check(r.IdCabang > 0, "IdCabang", "must be a positive number")
}
