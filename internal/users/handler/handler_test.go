package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"legalcheck/internal/users/handler/mocks"
	"legalcheck/internal/users/models"
	"legalcheck/internal/users/service"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/requestcontext"
)

const browserUA = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	router      chi.Router
	userID      id.UserID
	now         time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.userID = id.NewUserID()
	s.now = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(s.mockService, logger)
	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithRequestID(r.Context(), "req-1")
			ctx = requestcontext.WithTime(ctx, s.now)
			ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.1", r.UserAgent())
			if r.Header.Get("X-Anonymous") == "" {
				ctx = requestcontext.WithUserID(ctx, s.userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.RegisterPublic(s.router)
	h.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) user() *models.User {
	return &models.User{ID: s.userID, Email: "ada@example.org", PasswordHash: "secret-hash", CreatedAt: s.now}
}

func (s *HandlerSuite) TestRegister() {
	s.Run("creates the account without leaking the hash", func() {
		s.mockService.EXPECT().Register(gomock.Any(), "ada@example.org", "correct horse").Return(s.user(), nil)

		rec := s.do(http.MethodPost, "/auth/register", `{"email":" ADA@example.org ","password":"correct horse"}`, nil)
		s.Equal(http.StatusCreated, rec.Code)
		s.NotContains(rec.Body.String(), "secret-hash")

		var got UserResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(s.userID.String(), got.UserID)
		s.Equal("ada@example.org", got.Email)
	})

	s.Run("missing password", func() {
		rec := s.do(http.MethodPost, "/auth/register", `{"email":"ada@example.org"}`, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("duplicate email", func() {
		s.mockService.EXPECT().Register(gomock.Any(), "ada@example.org", "correct horse").
			Return(nil, dErrors.New(dErrors.CodeConflict, "email already registered"))

		rec := s.do(http.MethodPost, "/auth/register", `{"email":"ada@example.org","password":"correct horse"}`, nil)
		s.Equal(http.StatusConflict, rec.Code)
	})
}

func (s *HandlerSuite) TestLogin() {
	s.Run("returns a bearer token", func() {
		u := s.user()
		u.LastLoginAt = &s.now
		u.LastLoginClient = "Firefox on Linux x86_64"
		s.mockService.EXPECT().Login(gomock.Any(), "ada@example.org", "correct horse", browserUA).
			Return(&service.LoginResult{AccessToken: "tok", ExpiresAt: s.now.Add(time.Hour), User: u}, nil)

		rec := s.do(http.MethodPost, "/auth/login", `{"email":"ada@example.org","password":"correct horse"}`,
			map[string]string{"User-Agent": browserUA, "X-Anonymous": "1"})
		s.Equal(http.StatusOK, rec.Code)

		var got TokenResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("tok", got.AccessToken)
		s.Equal("Bearer", got.TokenType)
		s.Equal(int64(3600), got.ExpiresIn)
		s.Equal("Firefox on Linux x86_64", got.User.LastLoginClient)
	})

	s.Run("bad credentials", func() {
		s.mockService.EXPECT().Login(gomock.Any(), "ada@example.org", "nope", gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))

		rec := s.do(http.MethodPost, "/auth/login", `{"email":"ada@example.org","password":"nope"}`, nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestLogout() {
	s.Run("revokes the presented token", func() {
		s.mockService.EXPECT().Logout(gomock.Any(), "tok").Return(nil)

		rec := s.do(http.MethodPost, "/auth/logout", "", map[string]string{"Authorization": "Bearer tok"})
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("no bearer header", func() {
		rec := s.do(http.MethodPost, "/auth/logout", "", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestMe() {
	s.Run("returns the caller", func() {
		s.mockService.EXPECT().Me(gomock.Any(), s.userID).Return(s.user(), nil)

		rec := s.do(http.MethodGet, "/auth/me", "", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "ada@example.org")
	})

	s.Run("missing caller", func() {
		rec := s.do(http.MethodGet, "/auth/me", "", map[string]string{"X-Anonymous": "1"})
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}
