package app

import (
	"context"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/user"
	"jobboard/internal/observability/metrics"
)

// CompanyService owns the company status machine and the verified flag.
// Status moves freely among pending/active/inactive and only admins touch
// either; verified is orthogonal to status and consumers must check the two
// independently.
type CompanyService struct {
	repo      company.Repository
	analytics analytics.Repository
	pages     PageConfig
}

func NewCompanyService(repo company.Repository, analytics analytics.Repository, pages PageConfig) *CompanyService {
	return &CompanyService{repo: repo, analytics: analytics, pages: pages}
}

func (s *CompanyService) Create(ctx context.Context, actor authz.Actor, c company.Company) (*company.Company, error) {
	if actor.Role != user.RoleEmployer {
		metrics.ObserveDenial(common.ReasonForbiddenRole)
		return nil, common.NewDenied(common.ReasonForbiddenRole, "only employers can create a company")
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, common.NewValidationError("invalid company", map[string]string{"name": "name is required"})
	}
	c.OwnerID = actor.ID
	c.Status = company.StatusPending
	c.Verified = false
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "company.created", UserID: &actor.ID, Payload: map[string]string{"company_id": created.ID.String()}})
	return created, nil
}

// Update touches profile fields only; status and verified stay admin-gated.
func (s *CompanyService) Update(ctx context.Context, actor authz.Actor, c company.Company) (*company.Company, error) {
	current, err := s.repo.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Name) == "" {
		return nil, common.NewValidationError("invalid company", map[string]string{"name": "name is required"})
	}
	c.ID = current.ID
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "company.updated", UserID: &actor.ID, Payload: map[string]string{"company_id": updated.ID.String()}})
	return updated, nil
}

func (s *CompanyService) GetMine(ctx context.Context, actor authz.Actor) (*company.Company, error) {
	return s.repo.GetByOwnerID(ctx, actor.ID)
}

func (s *CompanyService) Get(ctx context.Context, id common.UUID) (*company.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context, query discovery.CompanyQuery) (discovery.Result[company.View], error) {
	snapshot, err := s.repo.ListViews(ctx)
	if err != nil {
		return discovery.Result[company.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Companies(snapshot, query), nil
}

// SetStatus is the admin's freely reversible status switch.
func (s *CompanyService) SetStatus(ctx context.Context, actor authz.Actor, companyID common.UUID, status company.Status) (*company.Company, error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only admins can change company status")
	}
	next := company.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !company.ValidStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, active, or inactive"})
	}
	current, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetStatus(ctx, companyID, next, current.Version)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("company", string(current.Status), string(next))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "company.status_changed", UserID: &actor.ID, Payload: map[string]string{"company_id": companyID.String(), "from": string(current.Status), "to": string(next)}})
	return updated, nil
}

// SetVerified toggles the independent verified flag; it never touches status.
func (s *CompanyService) SetVerified(ctx context.Context, actor authz.Actor, companyID common.UUID, verified bool) (*company.Company, error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only admins can change company verification")
	}
	current, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetVerified(ctx, companyID, verified, current.Version)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "company.verification_changed", UserID: &actor.ID, Payload: map[string]string{"company_id": companyID.String()}})
	return updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, actor authz.Actor, companyID common.UUID) error {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return authz.ErrIfDenied(decision, "only admins can delete companies")
	}
	if err := s.repo.Delete(ctx, companyID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "company.deleted", UserID: &actor.ID, Payload: map[string]string{"company_id": companyID.String()}})
	return nil
}
