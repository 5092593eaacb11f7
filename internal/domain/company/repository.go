package company

import (
	"context"

	"jobboard/internal/common"
)

// View is the discovery snapshot of a company with its derived counters.
type View struct {
	Company
	JobCount int64 `json:"job_count"`
}

type Repository interface {
	Create(ctx context.Context, c Company) (*Company, error)
	Update(ctx context.Context, c Company) (*Company, error)
	GetByID(ctx context.Context, id common.UUID) (*Company, error)
	GetByOwnerID(ctx context.Context, ownerID common.UUID) (*Company, error)
	ListViews(ctx context.Context) ([]View, error)
	// SetStatus and SetVerified guard on version; zero rows affected while
	// the record exists means a stale write.
	SetStatus(ctx context.Context, id common.UUID, status Status, version int64) (*Company, error)
	SetVerified(ctx context.Context, id common.UUID, verified bool, version int64) (*Company, error)
	Delete(ctx context.Context, id common.UUID) error
}
