package user

import "fmt"

type Scope string

const (
	ScopeExistingDatabase Scope = "existing_database"
	ScopeSameBatch        Scope = "same_batch"
)

type DuplicateStatus struct {
	IsDuplicateEmail bool
	IsDuplicatePhone bool
	EmailScope       Scope
	PhoneScope       Scope
	// First row in this file that claimed the value, for same_batch conflicts.
	EmailFirstRow int
	PhoneFirstRow int
}

func (d DuplicateStatus) IsDuplicate() bool {
	return d.IsDuplicateEmail || d.IsDuplicatePhone
}

type ResultKind string

const (
	ResultCreated   ResultKind = "created"
	ResultRejected  ResultKind = "rejected"
	ResultDuplicate ResultKind = "duplicate"
)

// ImportResult is the terminal outcome of one row. Exactly one of UserID,
// Errors or Duplicate is meaningful, selected by Kind.
type ImportResult struct {
	Row       int
	Kind      ResultKind
	UserID    string
	Errors    []FieldError
	Duplicate DuplicateStatus
	Email     string
	Phone     string
}

func Created(row int, userID string) ImportResult {
	return ImportResult{Row: row, Kind: ResultCreated, UserID: userID}
}

func Rejected(row int, errs []FieldError) ImportResult {
	return ImportResult{Row: row, Kind: ResultRejected, Errors: errs}
}

func Duplicated(row int, status DuplicateStatus, email, phone string) ImportResult {
	return ImportResult{Row: row, Kind: ResultDuplicate, Duplicate: status, Email: email, Phone: phone}
}

// Problems renders the summary error entries for a non-created result.
func (r ImportResult) Problems() []RowError {
	switch r.Kind {
	case ResultRejected:
		out := make([]RowError, 0, len(r.Errors))
		for _, e := range r.Errors {
			out = append(out, RowError{Row: r.Row, Field: e.Field, Message: e.Message})
		}
		if len(out) == 0 {
			out = append(out, RowError{Row: r.Row, Field: "record", Message: "row rejected"})
		}
		return out
	case ResultDuplicate:
		var out []RowError
		if r.Duplicate.IsDuplicateEmail {
			out = append(out, RowError{
				Row:     r.Row,
				Field:   "email",
				Message: duplicateMessage("email", r.Email, r.Duplicate.EmailScope, r.Duplicate.EmailFirstRow),
			})
		}
		if r.Duplicate.IsDuplicatePhone {
			out = append(out, RowError{
				Row:     r.Row,
				Field:   "phone",
				Message: duplicateMessage("phone", r.Phone, r.Duplicate.PhoneScope, r.Duplicate.PhoneFirstRow),
			})
		}
		return out
	}
	return nil
}

func duplicateMessage(field, value string, scope Scope, firstRow int) string {
	if scope == ScopeSameBatch {
		return fmt.Sprintf("%s %s is duplicated within this file (first seen in row %d)", field, value, firstRow)
	}
	return fmt.Sprintf("%s %s is already registered in database", field, value)
}
