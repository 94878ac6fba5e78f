package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// ParseJob tracks one run of the parsing pipeline over the configured
// resume directories.
type ParseJob struct {
	ID        uuid.UUID    `json:"id"`
	Status    string       `json:"status"`
	Files     []FileResult `json:"files"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FileResult is the outcome for a single resume file within a job.
type FileResult struct {
	Path       string     `json:"path"`
	ResumeID   *uuid.UUID `json:"resume_id,omitempty"`
	OutputPath string     `json:"output_path,omitempty"`
	Error      string     `json:"error,omitempty"`
}

func NewParseJob() *ParseJob {
	now := time.Now()
	return &ParseJob{
		ID:        uuid.New(),
		Status:    JobStatusPending,
		Files:     []FileResult{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
