package app

import (
	"context"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/config"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/user"
	"jobboard/internal/observability/metrics"
)

// JobService owns the job moderation state machine and the public job
// discovery surface. Jobs are born pending, an admin approves or rejects
// them, and only active jobs reach public listings.
type JobService struct {
	repo       job.Repository
	companies  company.Repository
	saved      savedjob.Repository
	analytics  analytics.Repository
	pages      PageConfig
	rejectMode config.JobRejectMode
}

func NewJobService(repo job.Repository, companies company.Repository, saved savedjob.Repository, analytics analytics.Repository, pages PageConfig, rejectMode config.JobRejectMode) *JobService {
	return &JobService{repo: repo, companies: companies, saved: saved, analytics: analytics, pages: pages, rejectMode: rejectMode}
}

func (s *JobService) Create(ctx context.Context, actor authz.Actor, j job.Job) (*job.Job, error) {
	if err := validateJob(j); err != nil {
		return nil, err
	}
	owner, err := s.ownCompany(ctx, actor)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanCreateJob(actor, *owner); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only employers can post jobs")
	}
	j.CompanyID = owner.ID
	j.Status = job.StatusPending
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("job", "", string(job.StatusPending))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.created", UserID: &actor.ID, Payload: map[string]string{"job_id": created.ID.String()}})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, actor authz.Actor, j job.Job) (*job.Job, error) {
	if err := validateJob(j); err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	owner, err := s.companies.GetByID(ctx, current.CompanyID)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanUpdateJob(actor, *owner); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "job belongs to another company")
	}
	j.Version = current.Version
	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.updated", UserID: &actor.ID, Payload: map[string]string{"job_id": updated.ID.String()}})
	return updated, nil
}

// Approve moves a pending job to active. Admin-only.
func (s *JobService) Approve(ctx context.Context, actor authz.Actor, jobID common.UUID) (*job.Job, error) {
	return s.transition(ctx, actor, jobID, job.StatusActive, "")
}

// Reject terminates a pending job. Depending on configuration the record is
// retained with a terminal rejected status or removed outright.
func (s *JobService) Reject(ctx context.Context, actor authz.Actor, jobID common.UUID, reason string) (*job.Job, error) {
	if s.rejectMode == config.JobRejectDelete {
		current, err := s.repo.GetByID(ctx, jobID)
		if err != nil {
			return nil, err
		}
		owner, err := s.companies.GetByID(ctx, current.CompanyID)
		if err != nil {
			return nil, err
		}
		if decision := authz.CanTransitionJob(actor, *current, *owner, job.StatusRejected); !decision.Allowed {
			metrics.ObserveDenial(decision.Reason)
			return nil, authz.ErrIfDenied(decision, transitionDenyMessage(decision.Reason))
		}
		if err := s.repo.Delete(ctx, jobID); err != nil {
			return nil, err
		}
		metrics.ObserveTransition("job", string(current.Status), string(job.StatusRejected))
		_ = s.analytics.Create(ctx, analytics.Event{Name: "job.rejected", UserID: &actor.ID, Payload: map[string]string{"job_id": jobID.String(), "mode": "delete"}})
		current.Status = job.StatusRejected
		current.RejectReason = reason
		return current, nil
	}
	return s.transition(ctx, actor, jobID, job.StatusRejected, reason)
}

// SetStatus handles the post-approval edges: active↔inactive and →closed by
// the owning employer or admin.
func (s *JobService) SetStatus(ctx context.Context, actor authz.Actor, jobID common.UUID, status job.Status) (*job.Job, error) {
	next := job.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !job.ValidStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "unknown job status"})
	}
	return s.transition(ctx, actor, jobID, next, "")
}

func (s *JobService) transition(ctx context.Context, actor authz.Actor, jobID common.UUID, to job.Status, rejectReason string) (*job.Job, error) {
	current, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	owner, err := s.companies.GetByID(ctx, current.CompanyID)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanTransitionJob(actor, *current, *owner, to); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, transitionDenyMessage(decision.Reason))
	}
	updated, err := s.repo.SetStatus(ctx, jobID, to, rejectReason, current.Version)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("job", string(current.Status), string(to))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.status_changed", UserID: &actor.ID, Payload: map[string]string{"job_id": updated.ID.String(), "from": string(current.Status), "to": string(to)}})
	return updated, nil
}

func transitionDenyMessage(reason string) string {
	switch reason {
	case common.ReasonInvalidState:
		return "illegal job status transition"
	case common.ReasonNotOwner:
		return "job belongs to another company"
	default:
		return "insufficient role for this transition"
	}
}

func (s *JobService) Delete(ctx context.Context, actor authz.Actor, jobID common.UUID) error {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return authz.ErrIfDenied(decision, "only admins can delete jobs")
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job.deleted", UserID: &actor.ID, Payload: map[string]string{"job_id": jobID.String()}})
	return nil
}

// ListPublic is the anonymous discovery surface: active jobs only.
func (s *JobService) ListPublic(ctx context.Context, query discovery.JobQuery) (discovery.Result[job.View], error) {
	snapshot, err := s.repo.ListViews(ctx, []job.Status{job.StatusActive})
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	query.Status = job.StatusActive
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Jobs(snapshot, query), nil
}

// ListAll is the admin surface over every status.
func (s *JobService) ListAll(ctx context.Context, actor authz.Actor, query discovery.JobQuery) (discovery.Result[job.View], error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return discovery.Result[job.View]{}, authz.ErrIfDenied(decision, "only admins can list all jobs")
	}
	snapshot, err := s.repo.ListViews(ctx, nil)
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Jobs(snapshot, query), nil
}

// ListMine returns every job of the employer's company regardless of status.
func (s *JobService) ListMine(ctx context.Context, actor authz.Actor, query discovery.JobQuery) (discovery.Result[job.View], error) {
	owner, err := s.ownCompany(ctx, actor)
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	snapshot, err := s.repo.ListViewsByCompany(ctx, owner.ID)
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Jobs(snapshot, query), nil
}

// Get serves the public job page. Non-active jobs stay visible to the owning
// employer and to admins but read as missing for everyone else. Public views
// bump the popularity counter.
func (s *JobService) Get(ctx context.Context, actor *authz.Actor, jobID common.UUID) (*job.View, error) {
	view, err := s.repo.GetView(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if view.Status != job.StatusActive {
		if actor == nil {
			return nil, common.NewError(common.CodeNotFound, "job not found", nil)
		}
		if actor.Role != user.RoleAdmin {
			owner, err := s.companies.GetByID(ctx, view.CompanyID)
			if err != nil || owner.OwnerID != actor.ID {
				return nil, common.NewError(common.CodeNotFound, "job not found", nil)
			}
		}
		return view, nil
	}
	if err := s.repo.IncrementViews(ctx, jobID); err == nil {
		view.Views++
	}
	return view, nil
}

// ListRecommended suggests active jobs in the categories the candidate has
// bookmarked, newest first, topping up with recent actives when the
// bookmarks cover too little ground.
func (s *JobService) ListRecommended(ctx context.Context, actor authz.Actor, page discovery.Page) (discovery.Result[job.View], error) {
	savedJobs, err := s.saved.ListJobs(ctx, actor.ID)
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	categories := map[common.UUID]bool{}
	savedIDs := map[common.UUID]bool{}
	for _, sj := range savedJobs {
		savedIDs[sj.ID] = true
		if sj.CategoryID != nil {
			categories[*sj.CategoryID] = true
		}
	}
	snapshot, err := s.repo.ListViews(ctx, []job.Status{job.StatusActive})
	if err != nil {
		return discovery.Result[job.View]{}, err
	}
	ranked := make([]job.View, 0, len(snapshot))
	var rest []job.View
	for _, item := range snapshot {
		if savedIDs[item.ID] {
			continue
		}
		if item.CategoryID != nil && categories[*item.CategoryID] {
			ranked = append(ranked, item)
		} else {
			rest = append(rest, item)
		}
	}
	matched := discovery.Jobs(ranked, discovery.JobQuery{Sort: discovery.SortRecency, Page: discovery.Page{Limit: len(ranked)}})
	filler := discovery.Jobs(rest, discovery.JobQuery{Sort: discovery.SortRecency, Page: discovery.Page{Limit: len(rest)}})
	ordered := append(matched.Items, filler.Items...)
	page = page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	total := int64(len(ordered))
	if page.Offset >= len(ordered) {
		return discovery.Result[job.View]{Items: []job.View{}, Total: total}, nil
	}
	end := page.Offset + page.Limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return discovery.Result[job.View]{Items: ordered[page.Offset:end], Total: total}, nil
}

func (s *JobService) ownCompany(ctx context.Context, actor authz.Actor) (*company.Company, error) {
	owner, err := s.companies.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("company profile is required", nil)
		}
		return nil, err
	}
	return owner, nil
}

func validateJob(j job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(j.Title) == "" {
		fields["title"] = "title is required"
	}
	if j.SalaryMin != nil && j.SalaryMax != nil && *j.SalaryMin > *j.SalaryMax {
		fields["salary_min"] = "salary_min must not exceed salary_max"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}
