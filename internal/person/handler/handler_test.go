package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/handler/mocks"
	"legalcheck/internal/person/models"
	"legalcheck/internal/person/service"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/requestcontext"
)

type HandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockService
	router      chi.Router
	userID      id.UserID
	personID    id.PersonID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockService(s.ctrl)
	s.userID = id.NewUserID()
	s.personID = id.NewPersonID()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(s.mockService, logger)
	s.router = chi.NewRouter()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithRequestID(r.Context(), "req-1")
			if r.Header.Get("X-Anonymous") == "" {
				ctx = requestcontext.WithUserID(ctx, s.userID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	h.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) person() *models.Person {
	p, err := models.NewPerson(s.personID, s.userID, "Amina", "SY", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	return p
}

func (s *HandlerSuite) personPath(suffix string) string {
	return "/persons/" + s.personID.String() + suffix
}

func (s *HandlerSuite) TestCreate() {
	s.Run("creates with normalized nationality", func() {
		s.mockService.EXPECT().
			Create(gomock.Any(), s.userID, service.CreateCommand{Name: "Amina", NationalityISO2: "SY"}).
			Return(s.person(), nil)

		rec := s.do(http.MethodPost, "/persons", `{"name":"  Amina ","nationality":"sy"}`)
		s.Equal(http.StatusCreated, rec.Code)

		var got models.Person
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(s.personID, got.ID)
		s.Equal("SY", got.NationalityISO2)
	})

	s.Run("rejects a malformed nationality before the service", func() {
		rec := s.do(http.MethodPost, "/persons", `{"name":"Amina","nationality":"Syria"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "validation_error")
	})

	s.Run("rejects an invalid body", func() {
		rec := s.do(http.MethodPost, "/persons", `{`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("missing caller is an internal error", func() {
		req := httptest.NewRequest(http.MethodPost, "/persons", bytes.NewBufferString(`{}`))
		req.Header.Set("X-Anonymous", "1")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *HandlerSuite) TestListAndGet() {
	s.Run("empty list renders as an array", func() {
		s.mockService.EXPECT().ListMine(gomock.Any(), s.userID).Return(nil, nil)

		rec := s.do(http.MethodGet, "/persons", "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"persons":[],"count":0}`, rec.Body.String())
	})

	s.Run("get", func() {
		s.mockService.EXPECT().Get(gomock.Any(), s.userID, s.personID).Return(s.person(), nil)

		rec := s.do(http.MethodGet, s.personPath(""), "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("get of someone else's person is forbidden", func() {
		s.mockService.EXPECT().Get(gomock.Any(), s.userID, s.personID).
			Return(nil, dErrors.New(dErrors.CodeForbidden, "person belongs to another user"))

		rec := s.do(http.MethodGet, s.personPath(""), "")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unknown person", func() {
		s.mockService.EXPECT().Get(gomock.Any(), s.userID, s.personID).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "person not found"))

		rec := s.do(http.MethodGet, s.personPath(""), "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed person id", func() {
		rec := s.do(http.MethodGet, "/persons/not-a-uuid", "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestUpdateFacts() {
	s.Run("passes set fields and clear flags", func() {
		s.mockService.EXPECT().
			UpdateFacts(gomock.Any(), s.userID, s.personID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.UserID, _ id.PersonID, u models.FactsUpdate) (*models.Person, error) {
				s.Require().NotNil(u.LanguageLevel)
				s.Equal(em.LanguageB1, *u.LanguageLevel)
				s.Require().NotNil(u.HasValidPassport)
				s.True(*u.HasValidPassport)
				s.Nil(u.Name)
				s.True(u.ClearAsylum)
				s.False(u.ClearDistribution)
				return s.person(), nil
			})

		rec := s.do(http.MethodPatch, s.personPath("/facts"),
			`{"language_level":"B1","has_valid_passport":true,"clear":["asylum"]}`)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown clear field", func() {
		rec := s.do(http.MethodPatch, s.personPath("/facts"), `{"clear":["name"]}`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestAppendRecords() {
	s.Run("residence period", func() {
		s.mockService.EXPECT().
			AddResidencePeriod(gomock.Any(), s.userID, s.personID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.UserID, _ id.PersonID, p em.ResidencePeriod) (*models.Person, error) {
				s.Equal(em.NewDate(2019, time.March, 1), p.Start)
				s.Nil(p.End)
				s.Equal("DE", p.CountryISO2)
				return s.person(), nil
			})

		rec := s.do(http.MethodPost, s.personPath("/residence"), `{"start":"2019-03-01","country":"DE"}`)
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("permit validation error from the service", func() {
		s.mockService.EXPECT().
			AddPermit(gomock.Any(), s.userID, s.personID, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "permit code required"))

		rec := s.do(http.MethodPost, s.personPath("/permits"), `{"issued_at":"2020-01-01"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "permit code required")
	})

	s.Run("remaining record routes reach the service", func() {
		s.mockService.EXPECT().AddEducation(gomock.Any(), s.userID, s.personID, gomock.Any()).Return(s.person(), nil)
		s.mockService.EXPECT().AddEmployment(gomock.Any(), s.userID, s.personID, gomock.Any()).Return(s.person(), nil)
		s.mockService.EXPECT().AddEducationCase(gomock.Any(), s.userID, s.personID, gomock.Any()).Return(s.person(), nil)
		s.mockService.EXPECT().AddEmploymentCase(gomock.Any(), s.userID, s.personID, gomock.Any()).Return(s.person(), nil)

		for _, path := range []string{"/education", "/employment", "/education-cases", "/employment-cases"} {
			rec := s.do(http.MethodPost, s.personPath(path), `{}`)
			s.Equal(http.StatusCreated, rec.Code, path)
		}
	})

	s.Run("malformed record body", func() {
		rec := s.do(http.MethodPost, s.personPath("/employment"), `[1,2]`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
