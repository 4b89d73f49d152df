package user

import "errors"

var (
	ErrInvalidImportFile = errors.New("invalid import file")
	ErrImportAborted     = errors.New("import aborted")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrUserNotFound      = errors.New("user not found")
	ErrGetUserByID       = errors.New("failed to get user by id")
	ErrListImportBatches = errors.New("failed to list import batches")
	ErrForbidden         = errors.New("not allowed to view this user")
)
