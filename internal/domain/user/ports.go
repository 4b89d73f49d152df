package user

import "context"

type UserQueryRepository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
}

// Conflicts reports which of the looked-up identities already belong to a
// persisted user.
type Conflicts struct {
	Email bool
	Phone bool
}

type UserLookup interface {
	FindConflicts(ctx context.Context, email, phone string) (Conflicts, error)
}

// Credentials is the minimal view of a user needed to authenticate.
type Credentials struct {
	UserID       string
	FullName     string
	Email        string
	Role         string
	PasswordHash string
}

type CredentialRepository interface {
	// GetCredentials matches login against the normalized email or phone.
	GetCredentials(ctx context.Context, login string) (*Credentials, error)
}
