// Package businessflow contains the use cases behind the rating endpoints and the feedback dashboard
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Submission errors
	ErrInvalidRatingInput  = errors.New("rating must be 1-5 and preference one of more, less, stop")
	ErrRatingStorageFailed = errors.New("rating could not be stored")

	// Dashboard errors
	ErrRatingQueryFailed       = errors.New("rating query failed")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsBusinessError extracts the outermost BusinessError from err's chain
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsInvalidRatingInput(err error) bool {
	return errors.Is(err, ErrInvalidRatingInput)
}

func IsRatingStorageFailed(err error) bool {
	return errors.Is(err, ErrRatingStorageFailed)
}

func IsRatingQueryFailed(err error) bool {
	return errors.Is(err, ErrRatingQueryFailed)
}

func IsUnsupportedExportFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedExportFormat)
}
