package db

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/Haloween-arch/Jobtune/internal/jobs"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// JobPosting is a row of the job_postings table
type JobPosting struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	DatePosted  *time.Time `json:"date_posted,omitempty"`
	ContentHash string     `json:"content_hash"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RefreshRun records one date refresh of the stored dataset
type RefreshRun struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"`
	RowsUpdated int       `json:"rows_updated"`
	Status      string    `json:"status"`
	Error       *string   `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// RefreshSourcePostgres labels refresh runs of the stored dataset.
const RefreshSourcePostgres = "postgres"

// Refresh run statuses
const (
	RefreshStatusSuccess = "success"
	RefreshStatusFailed  = "failed"
)

// ComputeContentHash identifies a posting by its title, description and
// skills so re-importing the same CSV does not duplicate rows.
func ComputeContentHash(title, description string, skills []string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(title)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(description)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(skills, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// ToPosting converts the row into the dataset representation used for matching.
func (p *JobPosting) ToPosting() types.JobPosting {
	out := types.JobPosting{
		Title:            p.Title,
		Description:      p.Description,
		CleanDescription: parsing.NormalizeText(p.Description),
		Skills:           append([]string{}, p.Skills...),
	}
	if p.DatePosted != nil {
		out.DatePosted = p.DatePosted.Format(jobs.DateLayout)
	}
	return out
}
