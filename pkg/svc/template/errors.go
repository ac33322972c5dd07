package template

import (
	"errors"
	"fmt"
)

// Code classifies a template fetch failure.
type Code string

// Fetch error codes.
const (
	// CodeDestNotEmpty means the destination already contains files.
	CodeDestNotEmpty Code = "DEST_NOT_EMPTY"
	// CodeBadSource means the template reference could not be parsed.
	CodeBadSource Code = "BAD_SRC"
	// CodeUnsupportedHost means the reference points at a host other than GitHub.
	CodeUnsupportedHost Code = "UNSUPPORTED_HOST"
	// CodeMissingRef means the ref does not exist in the template repository.
	CodeMissingRef Code = "MISSING_REF"
	// CodeCouldNotFetch means the ref could not be resolved and no cached copy exists.
	CodeCouldNotFetch Code = "COULD_NOT_FETCH"
	// CodeCouldNotDownload means the template archive could not be downloaded.
	CodeCouldNotDownload Code = "COULD_NOT_DOWNLOAD"
	// CodeBadArchive means the archive could not be extracted into the destination.
	CodeBadArchive Code = "BAD_ARCHIVE"
)

// Error is a coded template fetch failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Code, true
	}

	return "", false
}

func newError(code Code, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
