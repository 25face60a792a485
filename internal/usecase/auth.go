package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bestchance/orderdesk/internal/adapter/backend"
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
)

// AuthUseCase exchanges operator credentials for a backend session.
type AuthUseCase struct {
	client backend.Client
	logger *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(client backend.Client, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{client: client, logger: logger}
}

// Login obtains a bearer token for username. Blank input never reaches the backend.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.Session{}, domainErrors.ErrInvalidCredentials
	}

	token, err := u.client.Token(ctx, username, password)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			u.logger.Error("token request failed", slog.String("username", username), slog.Any("error", err))
		}
		return model.Session{}, err
	}
	if token == "" {
		return model.Session{}, domainErrors.ErrInvalidCredentials
	}

	return model.Session{Username: username, Token: token}, nil
}
