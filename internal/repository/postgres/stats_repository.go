package postgres

import (
	"context"
	"database/sql"

	"jobboard/internal/common"
	"jobboard/internal/domain/stats"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Snapshot(ctx context.Context) (*stats.Statistics, error) {
	row := r.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM users WHERE role = 'candidate'),
		(SELECT COUNT(*) FROM users WHERE role = 'employer'),
		(SELECT COUNT(*) FROM companies),
		(SELECT COUNT(*) FROM companies WHERE verified),
		(SELECT COUNT(*) FROM jobs),
		(SELECT COUNT(*) FROM jobs WHERE status = 'active'),
		(SELECT COUNT(*) FROM jobs WHERE status = 'pending'),
		(SELECT COUNT(*) FROM applications),
		(SELECT COUNT(*) FROM applications WHERE created_at > now() - interval '7 days')`)
	var snapshot stats.Statistics
	if err := row.Scan(
		&snapshot.TotalUsers,
		&snapshot.TotalCandidates,
		&snapshot.TotalEmployers,
		&snapshot.TotalCompanies,
		&snapshot.VerifiedCompanies,
		&snapshot.TotalJobs,
		&snapshot.ActiveJobs,
		&snapshot.PendingJobs,
		&snapshot.TotalApplications,
		&snapshot.RecentApplications,
	); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load statistics", err)
	}
	return &snapshot, nil
}
