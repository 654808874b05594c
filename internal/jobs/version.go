package jobs

import (
	"context"
	"fmt"
	"os"
)

// Versioned is implemented by sources that can cheaply identify their
// current snapshot. Two calls return the same version only when the
// postings have not changed in between.
type Versioned interface {
	Version(ctx context.Context) (string, error)
}

// Version identifies the CSV snapshot by file size and modification time.
// RefreshDates and any external rewrite replace the file, so both change it.
func (s *CSVSource) Version(_ context.Context) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", &DatasetError{Path: s.Path, Message: "failed to stat", Cause: err}
	}
	return fmt.Sprintf("csv:%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}
