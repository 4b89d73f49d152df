package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type PasswordVerifier interface {
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(userID, role string) (token string, expiresAt time.Time, err error)
}

type LoginInput struct {
	// Login is an email address or a phone number.
	Login    string
	Password string
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
}

type Login interface {
	Execute(ctx context.Context, in LoginInput) (LoginOutput, error)
}

type login struct {
	repo     domain.CredentialRepository
	verifier PasswordVerifier
	tokens   TokenIssuer
}

func NewLogin(repo domain.CredentialRepository, verifier PasswordVerifier, tokens TokenIssuer) Login {
	return &login{repo: repo, verifier: verifier, tokens: tokens}
}

func (uc *login) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	key := normalizeLogin(in.Login)
	if key == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	creds, err := uc.repo.GetCredentials(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}
	if err := uc.verifier.Compare(creds.PasswordHash, in.Password); err != nil {
		return LoginOutput{}, ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokens.Issue(creds.UserID, creds.Role)
	if err != nil {
		return LoginOutput{}, fmt.Errorf("%w: %v", ErrLogin, err)
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    creds.UserID,
		FullName:  creds.FullName,
		Role:      creds.Role,
	}, nil
}

func normalizeLogin(login string) string {
	if strings.Contains(login, "@") {
		return domain.NormalizeEmail(login)
	}
	return domain.NormalizePhone(login)
}
