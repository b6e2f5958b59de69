package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Ada@Example.ORG ")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", got)

	for _, bad := range []string{"", "   ", "not-an-email", "Ada <ada@example.org>"} {
		_, err := NormalizeEmail(bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), bad)
	}
}

func TestUserClone(t *testing.T) {
	now := time.Now()
	u := &User{ID: id.NewUserID(), Email: "a@b.de", LastLoginAt: &now}
	c := u.Clone()
	*c.LastLoginAt = now.Add(time.Hour)
	assert.Equal(t, now, *u.LastLoginAt)

	var nilUser *User
	assert.Nil(t, nilUser.Clone())
}
