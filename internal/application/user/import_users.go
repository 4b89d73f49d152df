package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

const importSource = "bulk_import"

type RecordParser interface {
	Parse(r io.Reader, filename, contentType string) ([]domain.RowRecord, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type RowImporter interface {
	ImportRow(ctx context.Context, u domain.NewUser) (string, error)
}

// EventPublisher must not block the caller.
type EventPublisher interface {
	PublishUserCreated(ctx context.Context, event domain.UserCreated)
}

type BatchRecorder interface {
	RecordBatch(ctx context.Context, record domain.BatchRecord) error
}

type ImportUsersInput struct {
	Filename    string
	ContentType string
	Content     io.Reader
	UploadedBy  string
}

type ImportUsers interface {
	Execute(ctx context.Context, in ImportUsersInput) (domain.BatchSummary, error)
}

type ImportUsersDeps struct {
	Parser   RecordParser
	Lookup   domain.UserLookup
	Hasher   PasswordHasher
	Importer RowImporter
	Events   EventPublisher
	Recorder BatchRecorder
	Now      func() time.Time
}

type importUsers struct {
	deps ImportUsersDeps
}

func NewImportUsers(deps ImportUsersDeps) ImportUsers {
	if deps.Events == nil {
		deps.Events = discardEvents{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &importUsers{deps: deps}
}

// Execute parses the whole file, then walks the rows in file order. Row
// problems end up in the summary; only a bad file or a cancelled context is
// returned as an error, the latter together with the partial summary.
func (uc *importUsers) Execute(ctx context.Context, in ImportUsersInput) (domain.BatchSummary, error) {
	if in.Content == nil {
		return domain.BatchSummary{}, fmt.Errorf("%w: no file content", ErrInvalidImportFile)
	}

	startedAt := uc.deps.Now()
	records, err := uc.deps.Parser.Parse(in.Content, in.Filename, in.ContentType)
	if err != nil {
		return domain.BatchSummary{}, fmt.Errorf("%w: %v", ErrInvalidImportFile, err)
	}

	batchID := uuid.NewString()
	checker := NewDuplicateChecker(uc.deps.Lookup)
	reporter := domain.NewBatchReporter()

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			summary := reporter.Summary()
			log.Printf("import batch %s aborted after %d of %d rows: %v", batchID, summary.Total, len(records), err)
			return summary, fmt.Errorf("%w: %w", ErrImportAborted, err)
		}
		reporter.Add(uc.importRow(ctx, batchID, checker, rec))
	}

	summary := reporter.Summary()
	log.Printf("import batch %s (%s) finished: total=%d successful=%d failed=%d duplicates=%d",
		batchID, in.Filename, summary.Total, summary.Successful, summary.Failed, summary.Duplicates)

	if uc.deps.Recorder != nil {
		record := domain.BatchRecord{
			ID:         batchID,
			Filename:   in.Filename,
			UploadedBy: in.UploadedBy,
			Summary:    summary,
			StartedAt:  startedAt,
			FinishedAt: uc.deps.Now(),
		}
		if err := uc.deps.Recorder.RecordBatch(ctx, record); err != nil {
			log.Printf("record import batch %s failed: %v", batchID, err)
		}
	}

	return summary, nil
}

func (uc *importUsers) importRow(ctx context.Context, batchID string, checker *DuplicateChecker, rec domain.RowRecord) domain.ImportResult {
	outcome := domain.ValidateRow(rec, uc.deps.Now())
	if !outcome.Valid {
		return domain.Rejected(rec.Row, outcome.Errors)
	}
	reg := *outcome.Registration

	status, err := checker.Check(ctx, reg.Email, reg.Phone)
	if err != nil {
		log.Printf("import batch %s row %d: duplicate check failed: %v", batchID, rec.Row, err)
		return domain.Rejected(rec.Row, []domain.FieldError{{Field: "record", Message: "could not check for existing users"}})
	}
	if status.IsDuplicate() {
		return domain.Duplicated(rec.Row, status, reg.Email, reg.Phone)
	}

	hash, err := uc.deps.Hasher.Hash(reg.Password)
	if err != nil {
		log.Printf("import batch %s row %d: hash password failed: %v", batchID, rec.Row, err)
		return domain.Rejected(rec.Row, []domain.FieldError{{Field: "password", Message: "could not hash password"}})
	}
	reg.Password = ""

	userID, err := uc.deps.Importer.ImportRow(ctx, domain.NewUser{
		Registration: reg,
		PasswordHash: hash,
		Role:         domain.RoleMember,
	})
	if err != nil {
		log.Printf("import batch %s row %d: save user failed: %v", batchID, rec.Row, err)
		return domain.Rejected(rec.Row, []domain.FieldError{persistenceError(err)})
	}

	checker.Claim(reg.Email, reg.Phone, rec.Row)
	uc.deps.Events.PublishUserCreated(ctx, domain.UserCreated{
		UserID:     userID,
		Email:      reg.Email,
		Source:     importSource,
		BatchID:    batchID,
		Row:        rec.Row,
		OccurredAt: uc.deps.Now(),
	})

	return domain.Created(rec.Row, userID)
}

func persistenceError(err error) domain.FieldError {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return domain.FieldError{Field: "email", Message: "email already registered (conflict while saving)"}
	case errors.Is(err, domain.ErrPhoneTaken):
		return domain.FieldError{Field: "phone", Message: "phone already registered (conflict while saving)"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.FieldError{Field: "record", Message: "request cancelled while saving user"}
	}
	return domain.FieldError{Field: "record", Message: "failed to save user: " + truncateReason(err.Error())}
}

func truncateReason(reason string) string {
	const maxLen = 200
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}

type discardEvents struct{}

func (discardEvents) PublishUserCreated(context.Context, domain.UserCreated) {}
