package jobs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"
)

// DateLayout is the ISO date format used for date_posted
const DateLayout = "2006-01-02"

// RefreshWindowDays is how many distinct dates are cycled through.
const RefreshWindowDays = 7

// PostedDate returns the date_posted value for the row at index i:
// today minus (i mod 7) days.
func PostedDate(today time.Time, i int) string {
	return today.AddDate(0, 0, -(i % RefreshWindowDays)).Format(DateLayout)
}

// DatesRefresher rewrites the posting dates of a dataset
type DatesRefresher interface {
	RefreshDates(ctx context.Context, today time.Time) (int, error)
}

// RefreshDates rewrites the CSV file so every row carries a recent
// date_posted, adding the column when it is missing. It returns the number
// of rows updated. The file is replaced atomically through a temp file.
func (s *CSVSource) RefreshDates(ctx context.Context, today time.Time) (int, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return 0, &DatasetError{Path: s.Path, Message: "failed to open", Cause: err}
	}
	records, err := readRecords(f)
	f.Close()
	if err != nil {
		return 0, &DatasetError{Path: s.Path, Message: "failed to parse", Cause: err}
	}
	if len(records) == 0 {
		return 0, nil
	}

	cols := indexColumns(records[0])
	dateCol, ok := cols[ColumnDatePosted]
	if !ok {
		dateCol = len(records[0])
		records[0] = append(records[0], ColumnDatePosted)
	}

	for i, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		for len(rec) <= dateCol {
			rec = append(rec, "")
		}
		rec[dateCol] = PostedDate(today, i)
		records[i+1] = rec
	}

	if err := writeRecordsAtomic(s.Path, records); err != nil {
		return 0, &DatasetError{Path: s.Path, Message: "failed to write", Cause: err}
	}
	return len(records) - 1, nil
}

func writeRecordsAtomic(path string, records [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jobs-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
