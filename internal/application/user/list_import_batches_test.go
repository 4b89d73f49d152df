package user_test

import (
	"context"
	"errors"
	"testing"

	app "github.com/unitynest/nest-backend/internal/application/user"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

type fakeHistory struct {
	limit int
	err   error
}

func (f *fakeHistory) Recent(ctx context.Context, limit int) ([]domain.BatchRecord, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []domain.BatchRecord{{ID: "b1"}}, nil
}

func TestListImportBatchesClampsLimit(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: 20, -5: 20, 7: 7, 500: 100}
	for in, want := range cases {
		h := &fakeHistory{}
		if _, err := app.NewListImportBatches(h).Execute(context.Background(), in); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if h.limit != want {
			t.Fatalf("limit %d: expected %d, got %d", in, want, h.limit)
		}
	}
}

func TestListImportBatchesError(t *testing.T) {
	t.Parallel()

	_, err := app.NewListImportBatches(&fakeHistory{err: errors.New("db down")}).Execute(context.Background(), 10)
	if !errors.Is(err, app.ErrListImportBatches) {
		t.Fatalf("expected ErrListImportBatches, got %v", err)
	}
}
