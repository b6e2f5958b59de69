package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
)

type HealthSuite struct {
	suite.Suite
	handler *Handler
	router  chi.Router
}

func TestHealthSuite(t *testing.T) {
	suite.Run(t, new(HealthSuite))
}

func (s *HealthSuite) SetupTest() {
	s.handler = New("test")
	s.router = chi.NewRouter()
	s.handler.Register(s.router)
}

func (s *HealthSuite) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *HealthSuite) TestLiveness() {
	rec := s.get("/health/live")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"alive"}`, rec.Body.String())
}

func (s *HealthSuite) TestReadiness() {
	s.Run("no checks is ready", func() {
		rec := s.get("/health/ready")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("failing check", func() {
		s.handler.RegisterCheck("storage", func(context.Context) error { return nil })
		s.handler.RegisterCheck("rulesets", func(context.Context) error { return errors.New("not loaded") })

		rec := s.get("/health/ready")
		s.Equal(http.StatusServiceUnavailable, rec.Code)

		var got ReadinessResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("not_ready", got.Status)
		s.Equal("up", got.Checks["storage"])
		s.Equal("down: not loaded", got.Checks["rulesets"])
	})
}

func (s *HealthSuite) TestStatus() {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.handler.startTime = start
	s.handler.now = func() time.Time { return start.Add(90 * time.Second) }
	s.handler.SetDetail("rulesets", "embedded")

	rec := s.get("/health")
	s.Equal(http.StatusOK, rec.Code)

	var got StatusResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("healthy", got.Status)
	s.Equal("test", got.Environment)
	s.Equal(int64(90), got.UptimeSeconds)
	s.Equal("2026-01-01T00:01:30Z", got.Timestamp)
	s.Equal("embedded", got.Details["rulesets"])
}
