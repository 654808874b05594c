package server

import (
	"errors"
	"net/http"

	"github.com/Haloween-arch/Jobtune/internal/ingestion"
)

// Messages returned in the "detail" field of error responses
const (
	msgInvalidBody   = "Invalid request body"
	msgTextTooShort  = "Resume text is empty or too short"
	msgTextMissing   = "Resume text missing"
	msgFileMissing   = "No file uploaded"
	msgInternalError = "Internal server error"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		unsupported *ingestion.UnsupportedFormatError
		tooLarge    *ingestion.UploadTooLargeError
		maxBytes    *http.MaxBytesError
		extract     *ingestion.ExtractError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &extract):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorDetail returns the client-facing message for err. Internal errors are
// not echoed back.
func errorDetail(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return msgInternalError
	}
	return err.Error()
}
