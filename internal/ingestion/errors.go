package ingestion

import "fmt"

// UnsupportedFormatError is returned for resume files that are neither PDF nor DOCX
type UnsupportedFormatError struct {
	Filename  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file format for %q: only .pdf and .docx are allowed", e.Filename)
	}
	return fmt.Sprintf("unsupported file format %q: only .pdf and .docx are allowed", e.Extension)
}

// ExtractError represents a failure reading text out of a supported document
type ExtractError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

// UploadTooLargeError is returned when an upload exceeds the configured size limit
type UploadTooLargeError struct {
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("upload exceeds the %d byte limit", e.Limit)
}
