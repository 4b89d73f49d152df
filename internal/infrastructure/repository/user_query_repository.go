package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type UserQueryRepository struct {
	db *gorm.DB
}

func NewUserQueryRepository(db *gorm.DB) *UserQueryRepository {
	return &UserQueryRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func (r *UserQueryRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var row models.User

	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Education", byPosition).
		Preload("Employment", byPosition).
		Preload("Family", byPosition).
		First(&row, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	u := &domain.User{
		ID:         row.ID,
		FullName:   row.FullName,
		Email:      row.Email,
		Phone:      row.Phone,
		Role:       row.Role,
		PhotoURL:   deref(row.PhotoURL),
		Education:  make([]domain.Education, 0, len(row.Education)),
		Employment: make([]domain.Employment, 0, len(row.Employment)),
		Family:     make([]domain.FamilyMember, 0, len(row.Family)),
		CreatedAt:  row.CreatedAt,
	}
	if p := row.Profile; p != nil {
		u.Profile = domain.Profile{
			DOB:           p.DOB,
			Gender:        deref(p.Gender),
			Village:       deref(p.Village),
			Mandal:        deref(p.Mandal),
			District:      deref(p.District),
			Pincode:       deref(p.Pincode),
			Caste:         deref(p.Caste),
			Subcaste:      deref(p.Subcaste),
			MaritalStatus: deref(p.MaritalStatus),
			NativePlace:   deref(p.NativePlace),
		}
	}
	for _, e := range row.Education {
		u.Education = append(u.Education, domain.Education{
			Position:      e.Position,
			Degree:        e.Degree,
			Institution:   e.Institution,
			YearOfPassing: e.YearOfPassing,
			Grade:         deref(e.Grade),
		})
	}
	for _, e := range row.Employment {
		u.Employment = append(u.Employment, domain.Employment{
			Position:          e.Position,
			CompanyName:       e.CompanyName,
			Role:              e.Role,
			YearsOfExperience: e.YearsOfExperience,
			CurrentlyWorking:  e.CurrentlyWorking,
		})
	}
	for _, f := range row.Family {
		u.Family = append(u.Family, domain.FamilyMember{
			Position:   f.Position,
			Name:       f.Name,
			Relation:   f.Relation,
			Education:  deref(f.Education),
			Profession: deref(f.Profession),
		})
	}

	return u, nil
}

func (r *UserQueryRepository) GetCredentials(ctx context.Context, login string) (*domain.Credentials, error) {
	var row models.User

	err := r.db.WithContext(ctx).
		Select("id", "full_name", "email", "role", "password_hash").
		Where("email = ? OR phone = ?", login, login).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get credentials: %w", err)
	}

	return &domain.Credentials{
		UserID:       row.ID,
		FullName:     row.FullName,
		Email:        row.Email,
		Role:         row.Role,
		PasswordHash: row.PasswordHash,
	}, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
