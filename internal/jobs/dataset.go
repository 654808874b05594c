// Package jobs provides access to the job postings dataset and keeps its
// posting dates fresh.
package jobs

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// DefaultDatasetPath is where the CSV dataset lives relative to the working directory.
const DefaultDatasetPath = "datasets/jobs.csv"

// Dataset column names
const (
	ColumnTitle       = "title"
	ColumnDescription = "description"
	ColumnSkills      = "skills"
	ColumnDatePosted  = "date_posted"
)

// Source supplies the current snapshot of job postings
type Source interface {
	Load(ctx context.Context) ([]types.JobPosting, error)
}

// CSVSource reads postings from a CSV file with a header row.
// Column order is taken from the header; title and skills are required.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource, defaulting the path when empty
func NewCSVSource(path string) *CSVSource {
	if path == "" {
		path = DefaultDatasetPath
	}
	return &CSVSource{Path: path}
}

// Load reads the whole dataset. Descriptions are normalized with
// parsing.NormalizeText and skills are split, trimmed and lowercased.
func (s *CSVSource) Load(ctx context.Context) ([]types.JobPosting, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &DatasetError{Path: s.Path, Message: "failed to open", Cause: err}
	}
	defer f.Close()

	postings, err := readPostings(ctx, f)
	if err != nil {
		return nil, &DatasetError{Path: s.Path, Message: "failed to parse", Cause: err}
	}
	return postings, nil
}

// IsNotFound reports whether err means the dataset file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func readPostings(ctx context.Context, r io.Reader) ([]types.JobPosting, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []types.JobPosting{}, nil
	}

	cols := indexColumns(records[0])
	if _, ok := cols[ColumnTitle]; !ok {
		return nil, fmt.Errorf("missing %q column", ColumnTitle)
	}
	if _, ok := cols[ColumnSkills]; !ok {
		return nil, fmt.Errorf("missing %q column", ColumnSkills)
	}

	postings := make([]types.JobPosting, 0, len(records)-1)
	for _, rec := range records[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		description := field(rec, cols, ColumnDescription)
		postings = append(postings, types.JobPosting{
			Title:            field(rec, cols, ColumnTitle),
			Description:      description,
			CleanDescription: parsing.NormalizeText(description),
			Skills:           parsing.SplitSkills(field(rec, cols, ColumnSkills)),
			DatePosted:       field(rec, cols, ColumnDatePosted),
		})
	}
	return postings, nil
}

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		cols[name] = i
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
