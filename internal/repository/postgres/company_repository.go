package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/company"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, owner_id, name, industry, city, website, description, logo_url, verified, status, version, created_at, updated_at`

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	c.ID = common.NewUUID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Version = 1
	if c.Status == "" {
		c.Status = company.StatusPending
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO companies (id, owner_id, name, industry, city, website, description, logo_url, verified, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.OwnerID, c.Name, c.Industry, c.City, c.Website, c.Description, c.LogoURL, c.Verified, c.Status, c.Version, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &common.Error{Code: common.CodeConflict, Message: "employer already has a company", Reason: common.ReasonDuplicate, Err: err}
		}
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE companies SET name = $1, industry = $2, city = $3, website = $4, description = $5, logo_url = $6, updated_at = $7 WHERE id = $8`,
		c.Name, c.Industry, c.City, c.Website, c.Description, c.LogoURL, time.Now().UTC(), c.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update company", err)
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyRepository) GetByOwnerID(ctx context.Context, ownerID common.UUID) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID)
	return scanCompany(row)
}

func (r *CompanyRepository) ListViews(ctx context.Context) ([]company.View, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.owner_id, c.name, c.industry, c.city, c.website, c.description, c.logo_url, c.verified, c.status, c.version, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM jobs j WHERE j.company_id = c.id AND j.status = 'active') AS job_count
		FROM companies c`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list companies", err)
	}
	defer rows.Close()
	var items []company.View
	for rows.Next() {
		var v company.View
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Industry, &v.City, &v.Website, &v.Description, &v.LogoURL, &v.Verified, &v.Status, &v.Version, &v.CreatedAt, &v.UpdatedAt, &v.JobCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company", err)
		}
		items = append(items, v)
	}
	return items, nil
}

func (r *CompanyRepository) SetStatus(ctx context.Context, id common.UUID, status company.Status, version int64) (*company.Company, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE companies SET status = $1, version = version + 1, updated_at = $2 WHERE id = $3 AND version = $4`,
		status, time.Now().UTC(), id, version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update company status", err)
	}
	if err := r.checkVersioned(ctx, result, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CompanyRepository) SetVerified(ctx context.Context, id common.UUID, verified bool, version int64) (*company.Company, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE companies SET verified = $1, version = version + 1, updated_at = $2 WHERE id = $3 AND version = $4`,
		verified, time.Now().UTC(), id, version)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update company verification", err)
	}
	if err := r.checkVersioned(ctx, result, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CompanyRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete company", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "company not found", nil)
	}
	return nil
}

// checkVersioned distinguishes a missing row from a stale version after a
// guarded UPDATE touched zero rows.
func (r *CompanyRepository) checkVersioned(ctx context.Context, result sql.Result, id common.UUID) error {
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
	return &common.Error{Code: common.CodeConflict, Message: "company was modified concurrently", Reason: common.ReasonStaleWrite}
}

func scanCompany(row *sql.Row) (*company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Industry, &c.City, &c.Website, &c.Description, &c.LogoURL, &c.Verified, &c.Status, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return &c, nil
}
