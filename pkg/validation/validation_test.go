package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "legalcheck/pkg/domain-errors"
)

type sampleRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password,omitempty" validate:"required,min=8"`
	Nationality string   `json:"nationality" validate:"omitempty,iso3166_1_alpha2"`
	LawID       string   `json:"law_id" validate:"notblank"`
	RuleIDs     []string `json:"rule_ids" validate:"max=2"`
	Level       string   `json:"level" validate:"omitempty,oneof=A1 B1 C1"`
}

func valid() sampleRequest {
	return sampleRequest{
		Email:       "ada@example.org",
		Password:    "correct horse",
		Nationality: "SY",
		LawID:       "StAG",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(*sampleRequest)
		want   string
	}{
		{"missing email", func(r *sampleRequest) { r.Email = "" }, "email is required"},
		{"malformed email", func(r *sampleRequest) { r.Email = "ada" }, "email must be a valid email"},
		{"short password uses json name", func(r *sampleRequest) { r.Password = "short" }, "password must be at least 8 characters"},
		{"unknown country", func(r *sampleRequest) { r.Nationality = "Syria" }, "nationality must be an ISO 3166-1 alpha-2 code"},
		{"blank law", func(r *sampleRequest) { r.LawID = "   " }, "law_id must not be blank"},
		{"too many rules", func(r *sampleRequest) { r.RuleIDs = []string{"a", "b", "c"} }, "rule_ids must be at most 2 items"},
		{"level outside enum", func(r *sampleRequest) { r.Level = "D9" }, "level must be one of [A1 B1 C1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := Validate(req)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Equal(t, tt.want, ErrorMessage(rawError(req)))
		})
	}
}

func TestErrorMessageNonValidatorError(t *testing.T) {
	assert.Equal(t, "invalid request body", ErrorMessage(errors.New("boom")))
}

func rawError(req any) error {
	return defaultValidator.Struct(req)
}
