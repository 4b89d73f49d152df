package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/unitynest/nest-backend/internal/application/auth"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type fakeCredentials struct {
	byLogin map[string]*domain.Credentials
	err     error
	asked   string
}

func (f *fakeCredentials) GetCredentials(ctx context.Context, login string) (*domain.Credentials, error) {
	f.asked = login
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.byLogin[login]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return c, nil
}

type plainVerifier struct{}

func (plainVerifier) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(userID, role string) (string, time.Time, error) {
	return "token-" + userID + "-" + role, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), nil
}

func newLogin() (*fakeCredentials, app.Login) {
	creds := &fakeCredentials{byLogin: map[string]*domain.Credentials{
		"asha@example.com": {UserID: "u1", FullName: "Asha Rao", Role: domain.RoleAdmin, PasswordHash: "hashed:secret1"},
		"+919876543210":    {UserID: "u2", FullName: "Ravi Kumar", Role: domain.RoleMember, PasswordHash: "hashed:secret2"},
	}}
	return creds, app.NewLogin(creds, plainVerifier{}, fakeIssuer{})
}

func TestLoginWithEmail(t *testing.T) {
	t.Parallel()

	creds, uc := newLogin()

	out, err := uc.Execute(context.Background(), app.LoginInput{Login: " Asha@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if creds.asked != "asha@example.com" {
		t.Fatalf("expected normalized email, got %q", creds.asked)
	}
	if out.Token != "token-u1-admin" || out.Role != domain.RoleAdmin {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestLoginWithPhone(t *testing.T) {
	t.Parallel()

	_, uc := newLogin()

	out, err := uc.Execute(context.Background(), app.LoginInput{Login: "+91 98765-43210", Password: "secret2"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.UserID != "u2" {
		t.Fatalf("unexpected user: %s", out.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	_, uc := newLogin()

	_, err := uc.Execute(context.Background(), app.LoginInput{Login: "asha@example.com", Password: "nope"})
	if !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	_, uc := newLogin()

	_, err := uc.Execute(context.Background(), app.LoginInput{Login: "ghost@example.com", Password: "secret1"})
	if !errors.Is(err, app.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRepositoryError(t *testing.T) {
	t.Parallel()

	creds, uc := newLogin()
	creds.err = errors.New("db down")

	_, err := uc.Execute(context.Background(), app.LoginInput{Login: "asha@example.com", Password: "secret1"})
	if !errors.Is(err, app.ErrLogin) {
		t.Fatalf("expected ErrLogin, got %v", err)
	}
}
