// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "legalcheck/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a PersonID where a UserID is expected.
type (
	UserID     uuid.UUID
	SessionID  uuid.UUID
	PersonID   uuid.UUID
	DocumentID uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, CLI flags, token claims).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseSessionID(s string) (SessionID, error) {
	id, err := parseUUID(s, "session ID")
	return SessionID(id), err
}

func ParsePersonID(s string) (PersonID, error) {
	id, err := parseUUID(s, "person ID")
	return PersonID(id), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	id, err := parseUUID(s, "document ID")
	return DocumentID(id), err
}

// New* generate random identifiers for freshly created records.

func NewUserID() UserID {
	return UserID(uuid.New())
}

func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

func NewPersonID() PersonID {
	return PersonID(uuid.New())
}

func NewDocumentID() DocumentID {
	return DocumentID(uuid.New())
}

func (id UserID) String() string {
	return uuid.UUID(id).String()
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

func (id PersonID) String() string {
	return uuid.UUID(id).String()
}

func (id DocumentID) String() string {
	return uuid.UUID(id).String()
}

func (id UserID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id SessionID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id PersonID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id DocumentID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText lets typed IDs appear as plain UUID strings in JSON and YAML.
func (id PersonID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText accepts any UUID string, including the nil UUID used by
// ad-hoc snapshots that have no stored applicant behind them.
func (id *PersonID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid person ID format")
	}
	*id = PersonID(parsed)
	return nil
}

func (id DocumentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *DocumentID) UnmarshalText(b []byte) error {
	parsed, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document ID format")
	}
	*id = DocumentID(parsed)
	return nil
}

func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText rejects the nil UUID: every stored record has a real owner.
func (id *UserID) UnmarshalText(b []byte) error {
	parsed, err := parseUUID(string(b), "user ID")
	if err != nil {
		return err
	}
	*id = UserID(parsed)
	return nil
}

func (id SessionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *SessionID) UnmarshalText(b []byte) error {
	parsed, err := parseUUID(string(b), "session ID")
	if err != nil {
		return err
	}
	*id = SessionID(parsed)
	return nil
}

// parseUUID is the shared validation logic. Nil UUIDs are rejected: at trust
// boundaries a nil identifier is always a client mistake.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
