package app

import (
	"context"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/observability/metrics"
)

// ApplicationService owns the candidate-application state machine. Every
// transition is validated against the authorization gate and the transition
// table before anything is persisted; a denied transition leaves the stored
// status untouched.
type ApplicationService struct {
	repo      application.Repository
	jobs      job.Repository
	companies company.Repository
	analytics analytics.Repository
	pages     PageConfig
}

type PageConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func NewApplicationService(repo application.Repository, jobs job.Repository, companies company.Repository, analytics analytics.Repository, pages PageConfig) *ApplicationService {
	return &ApplicationService{repo: repo, jobs: jobs, companies: companies, analytics: analytics, pages: pages}
}

type ApplyInput struct {
	JobID          common.UUID
	CVURL          string
	CoverLetter    string
	ExpectedSalary *int64
}

func (s *ApplicationService) Apply(ctx context.Context, actor authz.Actor, input ApplyInput) (*application.Application, error) {
	if strings.TrimSpace(input.CVURL) == "" {
		return nil, common.NewValidationError("invalid application", map[string]string{"cv_url": "cv is required"})
	}
	target, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindBlocking(ctx, actor.ID, input.JobID)
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if decision := authz.CanApply(actor, *target, existing); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, applyDenyMessage(decision.Reason))
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:          input.JobID,
		CandidateID:    actor.ID,
		CVURL:          input.CVURL,
		CoverLetter:    input.CoverLetter,
		ExpectedSalary: input.ExpectedSalary,
		Status:         application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("application", "", string(application.StatusPending))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.created", UserID: &actor.ID, Payload: map[string]string{"application_id": created.ID.String(), "job_id": input.JobID.String()}})
	return created, nil
}

func applyDenyMessage(reason string) string {
	switch reason {
	case common.ReasonDuplicate:
		return "already applied"
	case common.ReasonInvalidState:
		return "job is not accepting applications"
	default:
		return "only candidates can apply"
	}
}

// UpdateStatus moves an application forward along the chain. Employers must
// own the company that owns the job; admins may act on any application. The
// note is stored verbatim, never validated.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor authz.Actor, applicationID common.UUID, status application.Status, notes string) (*application.Application, error) {
	next := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !application.ValidStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "unknown application status"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	target, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	owner, err := s.companies.GetByID(ctx, target.CompanyID)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanAdvanceApplication(actor, *app, *owner, next); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, advanceDenyMessage(decision.Reason))
	}
	setReviewed := app.Status == application.StatusPending
	updated, err := s.repo.SetStatus(ctx, applicationID, next, notes, setReviewed, app.Version)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("application", string(app.Status), string(next))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.status_changed", UserID: &actor.ID, Payload: map[string]string{"application_id": updated.ID.String(), "from": string(app.Status), "to": string(next)}})
	return updated, nil
}

func advanceDenyMessage(reason string) string {
	switch reason {
	case common.ReasonNotOwner:
		return "application belongs to another company"
	case common.ReasonInvalidState:
		return "illegal status transition"
	default:
		return "only employers can review applications"
	}
}

// Withdraw is the only transition a candidate may trigger, and only from the
// three early states.
func (s *ApplicationService) Withdraw(ctx context.Context, actor authz.Actor, applicationID common.UUID) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanWithdraw(actor, *app); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, withdrawDenyMessage(decision.Reason))
	}
	updated, err := s.repo.SetStatus(ctx, applicationID, application.StatusWithdrawn, app.Notes, false, app.Version)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("application", string(app.Status), string(application.StatusWithdrawn))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.withdrawn", UserID: &actor.ID, Payload: map[string]string{"application_id": updated.ID.String()}})
	return updated, nil
}

func withdrawDenyMessage(reason string) string {
	switch reason {
	case common.ReasonNotOwner:
		return "application belongs to another candidate"
	case common.ReasonInvalidState:
		return "application can no longer be withdrawn"
	default:
		return "only candidates can withdraw"
	}
}

// Delete is the admin's out-of-band hard removal, distinct from withdraw.
func (s *ApplicationService) Delete(ctx context.Context, actor authz.Actor, applicationID common.UUID) error {
	if decision := authz.CanDeleteApplication(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return authz.ErrIfDenied(decision, "only admins can delete applications")
	}
	if err := s.repo.Delete(ctx, applicationID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "application.deleted", UserID: &actor.ID, Payload: map[string]string{"application_id": applicationID.String()}})
	return nil
}

func (s *ApplicationService) ListMine(ctx context.Context, actor authz.Actor, query discovery.ApplicationQuery) (discovery.Result[application.View], error) {
	snapshot, err := s.repo.ListViewsByCandidate(ctx, actor.ID)
	if err != nil {
		return discovery.Result[application.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Applications(snapshot, query), nil
}

// ListForCompany scopes the snapshot to the employer's own company before
// discovery runs.
func (s *ApplicationService) ListForCompany(ctx context.Context, actor authz.Actor, query discovery.ApplicationQuery) (discovery.Result[application.View], error) {
	owner, err := s.companies.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return discovery.Result[application.View]{}, common.NewValidationError("company profile is required", nil)
		}
		return discovery.Result[application.View]{}, err
	}
	snapshot, err := s.repo.ListViewsByCompany(ctx, owner.ID)
	if err != nil {
		return discovery.Result[application.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Applications(snapshot, query), nil
}

func (s *ApplicationService) ListAll(ctx context.Context, actor authz.Actor, query discovery.ApplicationQuery) (discovery.Result[application.View], error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return discovery.Result[application.View]{}, authz.ErrIfDenied(decision, "only admins can list all applications")
	}
	snapshot, err := s.repo.ListViews(ctx)
	if err != nil {
		return discovery.Result[application.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Applications(snapshot, query), nil
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}
