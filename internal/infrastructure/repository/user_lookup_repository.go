package repository

import (
	"context"
	"fmt"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type UserLookupRepository struct {
	db *gorm.DB
}

func NewUserLookupRepository(db *gorm.DB) *UserLookupRepository {
	return &UserLookupRepository{db: db}
}

// FindConflicts ignores empty arguments.
func (r *UserLookupRepository) FindConflicts(ctx context.Context, email, phone string) (domain.Conflicts, error) {
	var out domain.Conflicts

	q := r.db.WithContext(ctx).Model(&models.User{}).Select("email", "phone")
	switch {
	case email != "" && phone != "":
		q = q.Where("email = ? OR phone = ?", email, phone)
	case email != "":
		q = q.Where("email = ?", email)
	case phone != "":
		q = q.Where("phone = ?", phone)
	default:
		return out, nil
	}

	var rows []struct {
		Email string
		Phone string
	}
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		return domain.Conflicts{}, fmt.Errorf("find conflicting users: %w", err)
	}

	for _, row := range rows {
		if email != "" && row.Email == email {
			out.Email = true
		}
		if phone != "" && row.Phone == phone {
			out.Phone = true
		}
	}
	return out, nil
}
