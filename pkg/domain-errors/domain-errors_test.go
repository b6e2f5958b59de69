package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite covers the coded error primitives shared by the engine,
// the stores and the HTTP layer.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorString() {
	s.Run("message wins over code", func() {
		err := &Error{Code: CodeNotFound, Message: "law StAG2 not configured"}
		s.Equal("law StAG2 not configured", err.Error())
	})

	s.Run("falls back to code", func() {
		err := &Error{Code: CodeForbidden}
		s.Equal("forbidden", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrapAndIs() {
	s.Run("unwrap exposes the cause", func() {
		cause := errors.New("disk full")
		err := &Error{Code: CodeInternal, Message: "store document", Err: cause}
		s.Equal(cause, errors.Unwrap(err))
	})

	s.Run("codes match regardless of message", func() {
		a := &Error{Code: CodeNotFound, Message: "person not found"}
		b := &Error{Code: CodeNotFound, Message: "rule not found"}
		s.True(a.Is(b))
		s.False(a.Is(&Error{Code: CodeConflict}))
		s.False(a.Is(errors.New("not_found")))
	})

	s.Run("errors.Is walks through a chain", func() {
		inner := &Error{Code: CodeNotFound, Message: "blocking rule missing"}
		outer := &Error{Code: CodeInternal, Message: "evaluate", Err: inner}
		s.True(errors.Is(outer, &Error{Code: CodeNotFound}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps an existing domain code", func() {
		wrapped := Wrap(New(CodeForbidden, "not owner"), CodeInternal, "load person")
		s.True(HasCode(wrapped, CodeForbidden))
		s.Equal("load person", wrapped.Error())
	})

	s.Run("applies the given code to plain errors", func() {
		cause := errors.New("yaml: line 3")
		wrapped := Wrap(cause, CodeInvalidRuleSet, "parse rule sets")
		s.True(HasCode(wrapped, CodeInvalidRuleSet))
		s.ErrorIs(wrapped, cause)
	})
}

func (s *DomainErrorsSuite) TestHasCodeAndCodeOf() {
	s.Run("nil error has no code", func() {
		s.False(HasCode(nil, CodeNotFound))
	})

	s.Run("plain errors report internal", func() {
		s.Equal(CodeInternal, CodeOf(errors.New("boom")))
	})

	s.Run("code survives fmt wrapping", func() {
		err := fmt.Errorf("evaluate: %w", New(CodeValidation, "as_of malformed"))
		s.True(HasCode(err, CodeValidation))
		s.Equal(CodeValidation, CodeOf(err))
	})
}
