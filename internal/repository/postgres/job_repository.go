package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/job"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, company_id, category_id, title, description, location, job_type, experience_level, salary_min, salary_max, remote, featured, deadline, status, reject_reason, views, version, created_at, updated_at`

const jobViewSelect = `SELECT j.id, j.company_id, j.category_id, j.title, j.description, j.location, j.job_type, j.experience_level, j.salary_min, j.salary_max, j.remote, j.featured, j.deadline, j.status, j.reject_reason, j.views, j.version, j.created_at, j.updated_at,
		c.name, c.verified, COALESCE(cat.name, ''),
		(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id AND a.status <> 'withdrawn') AS applicants
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
	LEFT JOIN categories cat ON cat.id = j.category_id`

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	j.Version = 1
	if j.Status == "" {
		j.Status = job.StatusPending
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO jobs (id, company_id, category_id, title, description, location, job_type, experience_level, salary_min, salary_max, remote, featured, deadline, status, reject_reason, views, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		j.ID, j.CompanyID, j.CategoryID, j.Title, j.Description, j.Location, j.JobType, j.ExperienceLevel, j.SalaryMin, j.SalaryMax, j.Remote, j.Featured, j.Deadline, j.Status, j.RejectReason, j.Views, j.Version, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET category_id = $1, title = $2, description = $3, location = $4, job_type = $5, experience_level = $6, salary_min = $7, salary_max = $8, remote = $9, featured = $10, deadline = $11, version = version + 1, updated_at = $12
		WHERE id = $13 AND version = $14`,
		j.CategoryID, j.Title, j.Description, j.Location, j.JobType, j.ExperienceLevel, j.SalaryMin, j.SalaryMax, j.Remote, j.Featured, j.Deadline, time.Now().UTC(), j.ID, j.Version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job", err)
	}
	if err := r.checkVersioned(ctx, result, j.ID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	var j job.Job
	if err := row.Scan(&j.ID, &j.CompanyID, &j.CategoryID, &j.Title, &j.Description, &j.Location, &j.JobType, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax, &j.Remote, &j.Featured, &j.Deadline, &j.Status, &j.RejectReason, &j.Views, &j.Version, &j.CreatedAt, &j.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	return &j, nil
}

func (r *JobRepository) GetView(ctx context.Context, id common.UUID) (*job.View, error) {
	rows, err := r.db.QueryContext(ctx, jobViewSelect+` WHERE j.id = $1`, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load job", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return scanJobView(rows)
}

func (r *JobRepository) ListViews(ctx context.Context, statuses []job.Status) ([]job.View, error) {
	query := jobViewSelect
	var args []any
	if len(statuses) > 0 {
		placeholders := make([]string, len(statuses))
		for i, status := range statuses {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, status)
		}
		query += ` WHERE j.status IN (` + strings.Join(placeholders, ", ") + `)`
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list jobs", err)
	}
	defer rows.Close()
	return collectJobViews(rows)
}

func (r *JobRepository) ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]job.View, error) {
	rows, err := r.db.QueryContext(ctx, jobViewSelect+` WHERE j.company_id = $1`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company jobs", err)
	}
	defer rows.Close()
	return collectJobViews(rows)
}

func (r *JobRepository) SetStatus(ctx context.Context, id common.UUID, status job.Status, rejectReason string, version int64) (*job.Job, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET status = $1, reject_reason = $2, version = version + 1, updated_at = $3 WHERE id = $4 AND version = $5`,
		status, rejectReason, time.Now().UTC(), id, version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job status", err)
	}
	if err := r.checkVersioned(ctx, result, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *JobRepository) IncrementViews(ctx context.Context, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to increment job views", err)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return nil
}

func (r *JobRepository) checkVersioned(ctx context.Context, result sql.Result, id common.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to read update result", err)
	}
	if affected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return &common.Error{Code: common.CodeConflict, Message: "job was modified concurrently", Reason: common.ReasonStaleWrite}
}

func collectJobViews(rows *sql.Rows) ([]job.View, error) {
	var items []job.View
	for rows.Next() {
		v, err := scanJobView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *v)
	}
	return items, nil
}

func scanJobView(rows *sql.Rows) (*job.View, error) {
	var v job.View
	if err := rows.Scan(&v.ID, &v.CompanyID, &v.CategoryID, &v.Title, &v.Description, &v.Location, &v.JobType, &v.ExperienceLevel, &v.SalaryMin, &v.SalaryMax, &v.Remote, &v.Featured, &v.Deadline, &v.Status, &v.RejectReason, &v.Views, &v.Version, &v.CreatedAt, &v.UpdatedAt,
		&v.CompanyName, &v.CompanyVerified, &v.CategoryName, &v.Applicants); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to scan job", err)
	}
	return &v, nil
}
