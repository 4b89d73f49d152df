package user

import (
	"context"

	domain "github.com/unitynest/nest-backend/internal/domain/user"
)

// DuplicateChecker tracks the identities claimed so far in one batch and
// falls back to the persisted store for anything not seen locally. It is not
// safe for concurrent use; a batch is processed by one goroutine.
type DuplicateChecker struct {
	lookup domain.UserLookup
	emails map[string]int
	phones map[string]int
}

func NewDuplicateChecker(lookup domain.UserLookup) *DuplicateChecker {
	return &DuplicateChecker{
		lookup: lookup,
		emails: make(map[string]int),
		phones: make(map[string]int),
	}
}

// Check expects normalized email and phone values.
func (c *DuplicateChecker) Check(ctx context.Context, email, phone string) (domain.DuplicateStatus, error) {
	var status domain.DuplicateStatus

	if row, ok := c.emails[email]; ok {
		status.IsDuplicateEmail = true
		status.EmailScope = domain.ScopeSameBatch
		status.EmailFirstRow = row
	}
	if row, ok := c.phones[phone]; ok {
		status.IsDuplicatePhone = true
		status.PhoneScope = domain.ScopeSameBatch
		status.PhoneFirstRow = row
	}
	if status.IsDuplicateEmail && status.IsDuplicatePhone {
		return status, nil
	}

	lookupEmail, lookupPhone := email, phone
	if status.IsDuplicateEmail {
		lookupEmail = ""
	}
	if status.IsDuplicatePhone {
		lookupPhone = ""
	}

	conflicts, err := c.lookup.FindConflicts(ctx, lookupEmail, lookupPhone)
	if err != nil {
		return domain.DuplicateStatus{}, err
	}
	if conflicts.Email && !status.IsDuplicateEmail {
		status.IsDuplicateEmail = true
		status.EmailScope = domain.ScopeExistingDatabase
	}
	if conflicts.Phone && !status.IsDuplicatePhone {
		status.IsDuplicatePhone = true
		status.PhoneScope = domain.ScopeExistingDatabase
	}
	return status, nil
}

// Claim records a committed row. The first row to claim a value keeps it.
func (c *DuplicateChecker) Claim(email, phone string, row int) {
	if _, ok := c.emails[email]; !ok {
		c.emails[email] = row
	}
	if _, ok := c.phones[phone]; !ok {
		c.phones[phone] = row
	}
}
