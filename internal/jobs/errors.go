package jobs

import "fmt"

// DatasetError represents a failure reading or writing the job dataset
type DatasetError struct {
	Path    string
	Message string
	Cause   error
}

func (e *DatasetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job dataset %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("job dataset %s: %s", e.Path, e.Message)
}

func (e *DatasetError) Unwrap() error {
	return e.Cause
}
