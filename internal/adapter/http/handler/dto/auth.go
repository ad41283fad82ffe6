package dto

import "github.com/jasamarga/toll-ops-gateway/pkg/validator"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate(v *validator.Validator) {
	v.Check(r.Username != "", "username", "Username diperlukan")
	v.Check(r.Password != "", "password", "Password diperlukan")
}
