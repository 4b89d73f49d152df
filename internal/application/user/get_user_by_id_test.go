package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/unitynest/nest-backend/internal/application/user"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

const aliceID = "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e"

type fakeUserQueryRepo struct {
	user      *domain.User
	returnErr error
}

func (f *fakeUserQueryRepo) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	return f.user, nil
}

func TestGetUserByIDSuccess(t *testing.T) {
	t.Parallel()

	dob := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	year := 2012
	repo := &fakeUserQueryRepo{user: &domain.User{
		ID:       aliceID,
		FullName: "Alice Rao",
		Email:    "alice@example.com",
		Phone:    "9876543210",
		Role:     domain.RoleMember,
		Profile:  domain.Profile{DOB: &dob, Gender: "female", District: "Guntur"},
		Education: []domain.Education{{
			Position: 1, Degree: "B.Tech", Institution: "JNTU", YearOfPassing: &year,
		}},
		Family: []domain.FamilyMember{
			{Position: 1, Name: "Ravi", Relation: "father"},
			{Position: 2, Name: "Sita", Relation: "mother"},
		},
	}}

	uc := app.NewGetUserByID(repo)

	out, err := uc.Execute(context.Background(), app.GetUserByIDInput{ID: aliceID, RequesterID: aliceID, RequesterRole: domain.RoleMember})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.ID != aliceID {
		t.Fatalf("unexpected id: %s", out.ID)
	}
	if out.Profile.DOB != "1990-05-15" {
		t.Fatalf("unexpected dob: %q", out.Profile.DOB)
	}
	if len(out.Education) != 1 || *out.Education[0].YearOfPassing != 2012 {
		t.Fatalf("unexpected education: %+v", out.Education)
	}
	if len(out.Family) != 2 {
		t.Fatalf("expected 2 family members, got %d", len(out.Family))
	}
	if out.Employment == nil {
		t.Fatal("expected empty employment slice, got nil")
	}
}

func TestGetUserByIDAdminCanViewOthers(t *testing.T) {
	t.Parallel()

	uc := app.NewGetUserByID(&fakeUserQueryRepo{user: &domain.User{ID: aliceID}})

	_, err := uc.Execute(context.Background(), app.GetUserByIDInput{
		ID:            aliceID,
		RequesterID:   "0b6f5b8e-7d55-4f0e-8a1c-52f1c1f0d111",
		RequesterRole: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestGetUserByIDMemberCannotViewOthers(t *testing.T) {
	t.Parallel()

	uc := app.NewGetUserByID(&fakeUserQueryRepo{user: &domain.User{ID: aliceID}})

	_, err := uc.Execute(context.Background(), app.GetUserByIDInput{
		ID:            aliceID,
		RequesterID:   "0b6f5b8e-7d55-4f0e-8a1c-52f1c1f0d111",
		RequesterRole: domain.RoleMember,
	})
	if !errors.Is(err, app.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetUserByIDInvalidID(t *testing.T) {
	t.Parallel()

	uc := app.NewGetUserByID(&fakeUserQueryRepo{})

	_, err := uc.Execute(context.Background(), app.GetUserByIDInput{ID: "not-a-uuid", RequesterRole: domain.RoleAdmin})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, app.ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewGetUserByID(&fakeUserQueryRepo{returnErr: domain.ErrUserNotFound})

	_, err := uc.Execute(context.Background(), app.GetUserByIDInput{ID: aliceID, RequesterRole: domain.RoleAdmin})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, app.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUserByIDRepositoryError(t *testing.T) {
	t.Parallel()

	uc := app.NewGetUserByID(&fakeUserQueryRepo{returnErr: errors.New("db down")})

	_, err := uc.Execute(context.Background(), app.GetUserByIDInput{ID: aliceID, RequesterRole: domain.RoleAdmin})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, app.ErrGetUserByID) {
		t.Fatalf("expected ErrGetUserByID, got %v", err)
	}
}
