package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/barbox/barbox-admin/internal/platform/apiclient"
	"github.com/barbox/barbox-admin/internal/resource"
	"github.com/barbox/barbox-admin/internal/shared"
)

// ErrNoToken is returned when the backend accepted the credentials but sent
// no token.
var ErrNoToken = errors.New("auth: login response carries no token")

// Service logs the operator in and out against the backend.
type Service struct {
	client    resource.Doer
	tokens    apiclient.TokenStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewService constructs a new Service.
func NewService(client resource.Doer, tokens apiclient.TokenStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, tokens: tokens, validator: validator.New(), logger: logger}
}

// Login posts the credentials to /auth/login and stores the returned token.
// The request never carries a previous token, and a 401 here is a plain
// rejection rather than an expired session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if err := s.validator.Struct(creds); err != nil {
		return nil, fmt.Errorf("auth: usuario y contraseña son obligatorios: %w", shared.ErrValidation)
	}
	resp, err := s.client.Do(ctx, apiclient.Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      creds,
		Resource:  "auth",
		Anonymous: true,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	payload, err := resource.Decode[loginResponse](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	if payload.Token == "" {
		return nil, ErrNoToken
	}
	if err := s.tokens.SetToken(ctx, payload.Token); err != nil {
		return nil, fmt.Errorf("auth: store token: %w", err)
	}
	session := &Session{Token: payload.Token, Username: payload.username()}
	if session.Username == "" {
		session.Username = creds.Username
	}
	s.logger.Info("logged in", slog.String("usuario", session.Username))
	return session, nil
}

// Logout forgets the stored token.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Authenticated reports whether a token is stored.
func (s *Service) Authenticated(ctx context.Context) (bool, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}
