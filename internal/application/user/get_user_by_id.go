package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type GetUserByIDInput struct {
	ID            string
	RequesterID   string
	RequesterRole string
}

type GetUserProfileOutput struct {
	DOB           string `json:"dob,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Village       string `json:"village,omitempty"`
	Mandal        string `json:"mandal,omitempty"`
	District      string `json:"district,omitempty"`
	Pincode       string `json:"pincode,omitempty"`
	Caste         string `json:"caste,omitempty"`
	Subcaste      string `json:"subcaste,omitempty"`
	MaritalStatus string `json:"marital_status,omitempty"`
	NativePlace   string `json:"native_place,omitempty"`
}

type GetUserEducationOutput struct {
	Degree        string `json:"degree"`
	Institution   string `json:"institution"`
	YearOfPassing *int   `json:"year_of_passing,omitempty"`
	Grade         string `json:"grade,omitempty"`
}

type GetUserEmploymentOutput struct {
	CompanyName       string   `json:"company_name"`
	Role              string   `json:"role"`
	YearsOfExperience *float64 `json:"years_of_experience,omitempty"`
	CurrentlyWorking  bool     `json:"currently_working"`
}

type GetUserFamilyOutput struct {
	Name       string `json:"name"`
	Relation   string `json:"relation"`
	Education  string `json:"education,omitempty"`
	Profession string `json:"profession,omitempty"`
}

type GetUserByIDOutput struct {
	ID         string                    `json:"id"`
	FullName   string                    `json:"full_name"`
	Email      string                    `json:"email"`
	Phone      string                    `json:"phone"`
	Role       string                    `json:"role"`
	PhotoURL   string                    `json:"photo_url,omitempty"`
	Profile    GetUserProfileOutput      `json:"profile"`
	Education  []GetUserEducationOutput  `json:"education"`
	Employment []GetUserEmploymentOutput `json:"employment"`
	Family     []GetUserFamilyOutput     `json:"family"`
}

type GetUserByID interface {
	Execute(ctx context.Context, in GetUserByIDInput) (GetUserByIDOutput, error)
}

type getUserByID struct {
	repo domain.UserQueryRepository
}

func NewGetUserByID(repo domain.UserQueryRepository) GetUserByID {
	return &getUserByID{repo: repo}
}

func (uc *getUserByID) Execute(ctx context.Context, in GetUserByIDInput) (GetUserByIDOutput, error) {
	if _, err := uuid.Parse(in.ID); err != nil || len(in.ID) != 36 {
		return GetUserByIDOutput{}, ErrInvalidUserID
	}
	if in.RequesterRole != domain.RoleAdmin && in.RequesterID != in.ID {
		return GetUserByIDOutput{}, ErrForbidden
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return GetUserByIDOutput{}, ErrUserNotFound
		}
		return GetUserByIDOutput{}, fmt.Errorf("%w: %v", ErrGetUserByID, err)
	}

	out := GetUserByIDOutput{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Role:     u.Role,
		PhotoURL: u.PhotoURL,
		Profile: GetUserProfileOutput{
			Gender:        u.Profile.Gender,
			Village:       u.Profile.Village,
			Mandal:        u.Profile.Mandal,
			District:      u.Profile.District,
			Pincode:       u.Profile.Pincode,
			Caste:         u.Profile.Caste,
			Subcaste:      u.Profile.Subcaste,
			MaritalStatus: u.Profile.MaritalStatus,
			NativePlace:   u.Profile.NativePlace,
		},
		Education:  make([]GetUserEducationOutput, 0, len(u.Education)),
		Employment: make([]GetUserEmploymentOutput, 0, len(u.Employment)),
		Family:     make([]GetUserFamilyOutput, 0, len(u.Family)),
	}
	if u.Profile.DOB != nil {
		out.Profile.DOB = u.Profile.DOB.Format("2006-01-02")
	}
	for _, e := range u.Education {
		out.Education = append(out.Education, GetUserEducationOutput{
			Degree:        e.Degree,
			Institution:   e.Institution,
			YearOfPassing: e.YearOfPassing,
			Grade:         e.Grade,
		})
	}
	for _, e := range u.Employment {
		out.Employment = append(out.Employment, GetUserEmploymentOutput{
			CompanyName:       e.CompanyName,
			Role:              e.Role,
			YearsOfExperience: e.YearsOfExperience,
			CurrentlyWorking:  e.CurrentlyWorking,
		})
	}
	for _, f := range u.Family {
		out.Family = append(out.Family, GetUserFamilyOutput{
			Name:       f.Name,
			Relation:   f.Relation,
			Education:  f.Education,
			Profession: f.Profession,
		})
	}

	return out, nil
}
