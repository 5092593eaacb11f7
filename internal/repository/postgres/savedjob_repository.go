package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type SavedJobRepository struct {
	db *sql.DB
}

func NewSavedJobRepository(db *sql.DB) *SavedJobRepository {
	return &SavedJobRepository{db: db}
}

func (r *SavedJobRepository) Save(ctx context.Context, candidateID, jobID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO saved_jobs (candidate_id, job_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (candidate_id, job_id) DO NOTHING`,
		candidateID, jobID, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to save job", err)
	}
	return nil
}

func (r *SavedJobRepository) Remove(ctx context.Context, candidateID, jobID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2`, candidateID, jobID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to unsave job", err)
	}
	return nil
}

func (r *SavedJobRepository) Exists(ctx context.Context, candidateID, jobID common.UUID) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE candidate_id = $1 AND job_id = $2)`, candidateID, jobID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, common.NewError(common.CodeInternal, "failed to check saved job", err)
	}
	return exists, nil
}

func (r *SavedJobRepository) ListJobs(ctx context.Context, candidateID common.UUID) ([]job.View, error) {
	// Inner join drops dangling references to jobs deleted since saving.
	rows, err := r.db.QueryContext(ctx, jobViewSelect+`
		JOIN saved_jobs s ON s.job_id = j.id
		WHERE s.candidate_id = $1
		ORDER BY s.created_at DESC`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list saved jobs", err)
	}
	defer rows.Close()
	return collectJobViews(rows)
}
