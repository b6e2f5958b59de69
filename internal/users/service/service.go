// Package service registers accounts and issues the bearer tokens that
// scope every applicant profile to its owner.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	jwttoken "legalcheck/internal/jwt_token"
	"legalcheck/internal/platform/metrics"
	"legalcheck/internal/platform/privacy"
	"legalcheck/internal/sentinel"
	"legalcheck/internal/users/device"
	"legalcheck/internal/users/models"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/requestcontext"
	"legalcheck/pkg/secrets"
)

type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, userID id.UserID, fn func(*models.User) error) (*models.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(ctx context.Context, userID id.UserID, sessionID id.SessionID) (string, string, error)
	ValidateToken(tokenString string) (*jwttoken.AccessTokenClaims, error)
}

type TokenRevoker interface {
	RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error
}

type Service struct {
	store      Store
	tokens     TokenIssuer
	revoker    TokenRevoker
	logger     *slog.Logger
	metrics    *metrics.Metrics
	clock      func() time.Time
	bcryptCost int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithRevoker enables logout. Without one Logout returns an internal error.
func WithRevoker(r TokenRevoker) Option {
	return func(s *Service) {
		s.revoker = r
	}
}

// WithBcryptCost lowers the hashing cost in tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

func New(store Store, tokens TokenIssuer, opts ...Option) *Service {
	if store == nil {
		panic("users service: store is required")
	}
	if tokens == nil {
		panic("users service: token issuer is required")
	}
	s := &Service{store: store, tokens: tokens, logger: slog.Default(), clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginResult is a freshly issued bearer token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *models.User
}

// Register creates an account. Emails are unique after normalization.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := secrets.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		ID:           id.NewUserID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the password and issues an access token for a new session.
// Unknown emails and wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password, userAgent string) (*LoginResult, error) {
	email, err := models.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.authFailure(ctx, "unknown email")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := secrets.VerifyPassword(password, u.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, s.authFailure(ctx, "password mismatch", "user_id", u.ID)
		}
		return nil, err
	}

	token, _, err := s.tokens.GenerateAccessToken(ctx, u.ID, id.NewSessionID())
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issued token failed validation")
	}

	now := s.clock().UTC()
	client := device.DisplayName(userAgent)
	updated, err := s.store.Update(ctx, u.ID, func(w *models.User) error {
		w.LastLoginAt = &now
		w.LastLoginClient = client
		return nil
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record login")
	}

	if !device.IsBot(userAgent) {
		s.metrics.IncrementLogins()
	}
	s.logger.InfoContext(ctx, "user logged in",
		append([]any{"user_id", u.ID, "client", client}, privacy.LogAttrs(requestcontext.ClientIP(ctx))...)...)
	return &LoginResult{AccessToken: token, ExpiresAt: claims.ExpiresAt.Time, User: updated}, nil
}

// Logout revokes the presented token until it expires.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return dErrors.New(dErrors.CodeInternal, "token revocation not configured")
	}
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return err
	}
	if err := s.revoker.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	s.logger.InfoContext(ctx, "user logged out", "user_id", claims.UserID)
	return nil
}

// Me returns the caller's account.
func (s *Service) Me(ctx context.Context, userID id.UserID) (*models.User, error) {
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}

func (s *Service) authFailure(ctx context.Context, reason string, attrs ...any) error {
	s.metrics.IncrementAuthFailures()
	attrs = append([]any{"reason", reason}, attrs...)
	attrs = append(attrs, privacy.LogAttrs(requestcontext.ClientIP(ctx))...)
	s.logger.WarnContext(ctx, "login failed", attrs...)
	return dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
}
