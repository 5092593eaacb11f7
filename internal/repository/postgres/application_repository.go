package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, cv_url, cover_letter, expected_salary, status, notes, version, created_at, updated_at, reviewed_at`

const applicationViewSelect = `SELECT a.id, a.job_id, a.candidate_id, a.cv_url, a.cover_letter, a.expected_salary, a.status, a.notes, a.version, a.created_at, a.updated_at, a.reviewed_at,
		u.full_name, u.email, j.title, j.company_id, c.name
	FROM applications a
	JOIN users u ON u.id = a.candidate_id
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	app.Version = 1
	if app.Status == "" {
		app.Status = application.StatusPending
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, candidate_id, cv_url, cover_letter, expected_salary, status, notes, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		app.ID, app.JobID, app.CandidateID, app.CVURL, app.CoverLetter, app.ExpectedSalary, app.Status, app.Notes, app.Version, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		// The partial unique index backs the duplicate-application invariant
		// against racing apply calls; the engine pre-check catches the rest.
		if isUniqueViolation(err) {
			return nil, &common.Error{Code: common.CodeConflict, Message: "already applied", Reason: common.ReasonDuplicate, Err: err}
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindBlocking(ctx context.Context, candidateID, jobID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE candidate_id = $1 AND job_id = $2 AND status <> $3`,
		candidateID, jobID, application.StatusWithdrawn)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListViewsByCandidate(ctx context.Context, candidateID common.UUID) ([]application.View, error) {
	rows, err := r.db.QueryContext(ctx, applicationViewSelect+` WHERE a.candidate_id = $1`, candidateID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidate applications", err)
	}
	defer rows.Close()
	return collectApplicationViews(rows)
}

func (r *ApplicationRepository) ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]application.View, error) {
	rows, err := r.db.QueryContext(ctx, applicationViewSelect+` WHERE j.company_id = $1`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company applications", err)
	}
	defer rows.Close()
	return collectApplicationViews(rows)
}

func (r *ApplicationRepository) ListViews(ctx context.Context) ([]application.View, error) {
	rows, err := r.db.QueryContext(ctx, applicationViewSelect)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	return collectApplicationViews(rows)
}

func (r *ApplicationRepository) SetStatus(ctx context.Context, id common.UUID, status application.Status, notes string, setReviewed bool, version int64) (*application.Application, error) {
	now := time.Now().UTC()
	var result sql.Result
	var err error
	if setReviewed {
		result, err = r.db.ExecContext(ctx, `UPDATE applications SET status = $1, notes = $2, reviewed_at = COALESCE(reviewed_at, $3), version = version + 1, updated_at = $3 WHERE id = $4 AND version = $5`,
			status, notes, now, id, version)
	} else {
		result, err = r.db.ExecContext(ctx, `UPDATE applications SET status = $1, notes = $2, version = version + 1, updated_at = $3 WHERE id = $4 AND version = $5`,
			status, notes, now, id, version)
	}
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read update result", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, &common.Error{Code: common.CodeConflict, Message: "application was modified concurrently", Reason: common.ReasonStaleWrite}
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func collectApplicationViews(rows *sql.Rows) ([]application.View, error) {
	var items []application.View
	for rows.Next() {
		var v application.View
		if err := rows.Scan(&v.ID, &v.JobID, &v.CandidateID, &v.CVURL, &v.CoverLetter, &v.ExpectedSalary, &v.Status, &v.Notes, &v.Version, &v.CreatedAt, &v.UpdatedAt, &v.ReviewedAt,
			&v.CandidateName, &v.CandidateEmail, &v.JobTitle, &v.CompanyID, &v.CompanyName); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, v)
	}
	return items, nil
}

func scanApplication(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.CVURL, &app.CoverLetter, &app.ExpectedSalary, &app.Status, &app.Notes, &app.Version, &app.CreatedAt, &app.UpdatedAt, &app.ReviewedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}
