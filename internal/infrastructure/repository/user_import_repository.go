package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
)

const uniqueViolation = "23505"

// UserImportRepository writes one imported user per transaction so a failing
// row never leaves partial records behind.
type UserImportRepository struct {
	pool *pgxpool.Pool
}

func NewUserImportRepository(pool *pgxpool.Pool) *UserImportRepository {
	return &UserImportRepository{pool: pool}
}

func (r *UserImportRepository) ImportRow(ctx context.Context, u domain.NewUser) (string, error) {
	userID := uuid.NewString()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO users (id, full_name, email, phone, password_hash, role, photo_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
`, userID, u.FullName, u.Email, u.Phone, u.PasswordHash, u.Role, nullableText(u.PhotoURL)); err != nil {
		return "", classifyUserInsert(err)
	}

	batch := &pgx.Batch{}
	queueProfile(batch, userID, u.Profile)
	for _, e := range u.Education {
		batch.Queue(`
INSERT INTO education_entries (user_id, position, degree, institution, year_of_passing, grade, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
`, userID, e.Position, e.Degree, e.Institution, e.YearOfPassing, nullableText(e.Grade))
	}
	for _, e := range u.Employment {
		batch.Queue(`
INSERT INTO employment_entries (user_id, position, company_name, role, years_of_experience, currently_working, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
`, userID, e.Position, e.CompanyName, e.Role, e.YearsOfExperience, e.CurrentlyWorking)
	}
	for _, f := range u.Family {
		batch.Queue(`
INSERT INTO family_members (user_id, position, name, relation, education, profession, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
`, userID, f.Position, f.Name, f.Relation, nullableText(f.Education), nullableText(f.Profession))
	}

	if err := execBatch(ctx, tx, batch); err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit import row: %w", err)
	}

	return userID, nil
}

func queueProfile(batch *pgx.Batch, userID string, p domain.Profile) {
	batch.Queue(`
INSERT INTO profiles (user_id, dob, gender, village, mandal, district, pincode, caste, subcaste, marital_status, native_place, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
`,
		userID,
		p.DOB,
		nullableText(p.Gender),
		nullableText(p.Village),
		nullableText(p.Mandal),
		nullableText(p.District),
		nullableText(p.Pincode),
		nullableText(p.Caste),
		nullableText(p.Subcaste),
		nullableText(p.MaritalStatus),
		nullableText(p.NativePlace),
	)
}

func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert user details: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("insert user details: %w", err)
	}
	return nil
}

// classifyUserInsert maps unique violations on users to the conflicting field.
func classifyUserInsert(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case models.UsersEmailIndex:
			return fmt.Errorf("insert user: %w", domain.ErrEmailTaken)
		case models.UsersPhoneIndex:
			return fmt.Errorf("insert user: %w", domain.ErrPhoneTaken)
		}
	}
	return fmt.Errorf("insert user: %w", err)
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
