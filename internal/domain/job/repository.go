package job

import (
	"context"

	"jobboard/internal/common"
)

// View is the discovery snapshot of a job joined with company display fields
// and the applicant counter.
type View struct {
	Job
	CompanyName     string `json:"company_name"`
	CompanyVerified bool   `json:"company_verified"`
	CategoryName    string `json:"category_name,omitempty"`
	Applicants      int64  `json:"applicants"`
}

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	GetView(ctx context.Context, id common.UUID) (*View, error)
	// ListViews returns every job when statuses is empty, otherwise only
	// jobs in one of the given statuses.
	ListViews(ctx context.Context, statuses []Status) ([]View, error)
	ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]View, error)
	// SetStatus guards on version for optimistic concurrency.
	SetStatus(ctx context.Context, id common.UUID, status Status, rejectReason string, version int64) (*Job, error)
	IncrementViews(ctx context.Context, id common.UUID) error
	Delete(ctx context.Context, id common.UUID) error
}
