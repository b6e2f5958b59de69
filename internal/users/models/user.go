// Package models holds the account record behind bearer tokens.
package models

import (
	"net/mail"
	"strings"
	"time"

	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

// User is an account that manages applicant profiles. The password hash
// never leaves the service layer.
type User struct {
	ID              id.UserID
	Email           string
	PasswordHash    string
	CreatedAt       time.Time
	LastLoginAt     *time.Time
	LastLoginClient string
}

// NormalizeEmail trims and lowercases an address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", dErrors.New(dErrors.CodeValidation, "email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	return email, nil
}

// Clone returns a copy that shares no pointers with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		c.LastLoginAt = &t
	}
	return &c
}
