package file

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileTooLarge      = errors.New("file exceeds size limit")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrEmptyFile         = errors.New("file has no header row")
)

// ParseError aborts a whole upload: the file could not be read as its
// declared format or broke a limit.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("parse upload: %v", e.Err)
	}
	return fmt.Sprintf("parse %s upload: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

type missingColumnsError struct {
	columns []string
}

func (e *missingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.columns, ", "))
}

func (e *missingColumnsError) Unwrap() error {
	return ErrMissingColumns
}
