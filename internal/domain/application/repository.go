package application

import (
	"context"

	"jobboard/internal/common"
)

// View joins an application with the display fields discovery searches over.
type View struct {
	Application
	CandidateName  string      `json:"candidate_name"`
	CandidateEmail string      `json:"candidate_email"`
	JobTitle       string      `json:"job_title"`
	CompanyID      common.UUID `json:"company_id"`
	CompanyName    string      `json:"company_name"`
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	// FindBlocking returns the application currently occupying the
	// (candidate, job) slot, or a not_found error.
	FindBlocking(ctx context.Context, candidateID, jobID common.UUID) (*Application, error)
	ListViewsByCandidate(ctx context.Context, candidateID common.UUID) ([]View, error)
	ListViewsByCompany(ctx context.Context, companyID common.UUID) ([]View, error)
	ListViews(ctx context.Context) ([]View, error)
	// SetStatus guards on version; setReviewed stamps reviewed_at once.
	SetStatus(ctx context.Context, id common.UUID, status Status, notes string, setReviewed bool, version int64) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
}
