package todo

import (
	"errors"
	"fmt"
)

// Code identifies an error class for programmatic handling by callers.
type Code string

const (
	// CodeValidation indicates input failed a business rule.
	CodeValidation Code = "VALIDATION"

	// CodeTodoNotFound indicates a todo lookup failed.
	CodeTodoNotFound Code = "TODO_NOT_FOUND"

	// CodeCategoryNotFound indicates a category lookup failed.
	CodeCategoryNotFound Code = "CATEGORY_NOT_FOUND"

	// CodeDuplicateName indicates a category name collision.
	CodeDuplicateName Code = "DUPLICATE_NAME"

	// CodeNotInitialized indicates the manager was used before Initialize.
	CodeNotInitialized Code = "NOT_INITIALIZED"

	// CodeSave indicates the store failed to persist the record sets.
	CodeSave Code = "SAVE"

	// CodeLoad indicates the store failed to read the record sets.
	CodeLoad Code = "LOAD"

	// CodeExport indicates the store failed to write an export snapshot.
	CodeExport Code = "EXPORT"

	// CodeBackupLoad indicates a backup snapshot could not be read.
	CodeBackupLoad Code = "BACKUP_LOAD"

	// CodeNoBackupPath indicates a backup was requested without a
	// configured backup directory.
	CodeNoBackupPath Code = "NO_BACKUP_PATH"

	// CodeNoBackups indicates recovery found no backup snapshots.
	CodeNoBackups Code = "NO_BACKUPS"
)

var (
	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrCategoryNotFound is returned when a category with the given ID
	// doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrDuplicateName is returned when a category name is already in use.
	ErrDuplicateName = errors.New("category name already in use")

	// ErrNotInitialized is returned when the manager is used before
	// Initialize completes.
	ErrNotInitialized = errors.New("todo manager is not initialized")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches more
	// than one record.
	ErrAmbiguousIDPrefix = errors.New("ambiguous id prefix")

	// ErrNoBackupPath is returned when backups are requested without a
	// backup directory.
	ErrNoBackupPath = errors.New("no backup directory configured")

	// ErrNoBackups is returned when recovery finds no backup snapshots.
	ErrNoBackups = errors.New("no backup snapshots available")
)

// Error carries a stable machine-readable code plus optional structured
// details, wrapping the underlying cause.
type Error struct {
	Code    Code
	Message string
	Details map[string]any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the error code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func validationError(cause error) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", cause: cause}
}

func todoNotFoundError(id string) *Error {
	return &Error{
		Code:    CodeTodoNotFound,
		Message: fmt.Sprintf("todo %q", id),
		Details: map[string]any{"id": id},
		cause:   ErrTodoNotFound,
	}
}

func categoryNotFoundError(id string) *Error {
	return &Error{
		Code:    CodeCategoryNotFound,
		Message: fmt.Sprintf("category %q", id),
		Details: map[string]any{"id": id},
		cause:   ErrCategoryNotFound,
	}
}

func duplicateNameError(name string, cause error) *Error {
	return &Error{
		Code:    CodeDuplicateName,
		Message: fmt.Sprintf("category name %q", name),
		Details: map[string]any{"name": name},
		cause:   cause,
	}
}

func notInitializedError() *Error {
	return &Error{
		Code:    CodeNotInitialized,
		Message: "operation requires Initialize",
		cause:   ErrNotInitialized,
	}
}
