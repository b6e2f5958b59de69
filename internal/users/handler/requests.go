package handler

import (
	"strings"

	"legalcheck/pkg/validation"
)

// CredentialsRequest is the body of register and login. Password length
// rules live in the service so login does not leak them.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *CredentialsRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *CredentialsRequest) Validate() error {
	return validation.Validate(r)
}
