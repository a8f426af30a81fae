package upload

import (
	"errors"
	"fmt"
)

// Rejection messages are part of the HTTP contract.
var (
	ErrInvalidDocumentType = errors.New("Invalid resume/work history file type")
	ErrInvalidVideoType    = errors.New("Invalid video type")

	errFileTooLarge = errors.New("File too large")
)

// Code classifies why a submission was rejected.
type Code string

const (
	CodeInvalidDocumentType Code = "INVALID_DOCUMENT_TYPE"
	CodeInvalidVideoType    Code = "INVALID_VIDEO_TYPE"
	CodeFileTooLarge        Code = "LIMIT_FILE_SIZE"
	CodeUnexpectedFile      Code = "LIMIT_UNEXPECTED_FILE"
	CodeFieldTooLong        Code = "LIMIT_FIELD_VALUE"
	CodeMalformed           Code = "MALFORMED_MULTIPART"
	CodeStaging             Code = "STAGING_FAILED"
)

// Error is returned by Manager.Process when a submission is rejected.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (field %q)", e.Code, e.Message, e.Field)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func policyError(field string, err error) *Error {
	code := CodeInvalidDocumentType
	if errors.Is(err, ErrInvalidVideoType) {
		code = CodeInvalidVideoType
	}
	return &Error{Code: code, Field: field, Message: err.Error(), Err: err}
}
