package savedjob

import (
	"context"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

// SavedJob is a set membership fact, not a record with state.
type SavedJob struct {
	CandidateID common.UUID `json:"candidate_id"`
	JobID       common.UUID `json:"job_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Repository interface {
	// Save is idempotent: inserting an existing pair is a no-op.
	Save(ctx context.Context, candidateID, jobID common.UUID) error
	// Remove is idempotent: deleting an absent pair is a no-op.
	Remove(ctx context.Context, candidateID, jobID common.UUID) error
	Exists(ctx context.Context, candidateID, jobID common.UUID) (bool, error)
	// ListJobs joins the set with current job data; rows whose job has been
	// deleted are excluded by the join.
	ListJobs(ctx context.Context, candidateID common.UUID) ([]job.View, error)
}
