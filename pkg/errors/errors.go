package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrAttachmentMissing  = errors.New("attachment not found")
	ErrNothingToExport    = errors.New("no records matching the applied filters to export")
	ErrDuplicateEmail     = errors.New("account with this email already exists")
	ErrDuplicateCompany   = errors.New("company with this name already exists")
	ErrDuplicateCity      = errors.New("city already exists in this state")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidFileType    = errors.New("only PDF and DOCX files are allowed")
	ErrFileTooLarge       = errors.New("file size exceeds the allowed limit")
	ErrInvalidResetToken  = errors.New("password reset token is invalid or expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

// ValidationErrors aggregates per-field failures so a response can
// report all of them at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}
