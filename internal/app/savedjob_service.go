package app

import (
	"context"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/user"
	"jobboard/internal/observability/metrics"
)

// SavedJobService is the candidate's bookmark set. Save and unsave are both
// idempotent; existence is the only fact the relation records.
type SavedJobService struct {
	repo      savedjob.Repository
	jobs      job.Repository
	analytics analytics.Repository
}

func NewSavedJobService(repo savedjob.Repository, jobs job.Repository, analytics analytics.Repository) *SavedJobService {
	return &SavedJobService{repo: repo, jobs: jobs, analytics: analytics}
}

func (s *SavedJobService) Save(ctx context.Context, actor authz.Actor, jobID common.UUID) error {
	if actor.Role != user.RoleCandidate {
		metrics.ObserveDenial(common.ReasonForbiddenRole)
		return common.NewDenied(common.ReasonForbiddenRole, "only candidates can save jobs")
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	already, err := s.repo.Exists(ctx, actor.ID, jobID)
	if err != nil {
		return err
	}
	if already {
		// Re-saving a saved job succeeds without a second analytics event.
		return nil
	}
	if err := s.repo.Save(ctx, actor.ID, jobID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "savedjob.saved", UserID: &actor.ID, Payload: map[string]string{"job_id": jobID.String()}})
	return nil
}

func (s *SavedJobService) Unsave(ctx context.Context, actor authz.Actor, jobID common.UUID) error {
	if actor.Role != user.RoleCandidate {
		metrics.ObserveDenial(common.ReasonForbiddenRole)
		return common.NewDenied(common.ReasonForbiddenRole, "only candidates can unsave jobs")
	}
	// No existence check: removing an absent pair is a successful no-op.
	if err := s.repo.Remove(ctx, actor.ID, jobID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "savedjob.removed", UserID: &actor.ID, Payload: map[string]string{"job_id": jobID.String()}})
	return nil
}

// List joins the set with current job data; deleted jobs drop out silently.
func (s *SavedJobService) List(ctx context.Context, actor authz.Actor) ([]job.View, error) {
	if actor.Role != user.RoleCandidate {
		metrics.ObserveDenial(common.ReasonForbiddenRole)
		return nil, common.NewDenied(common.ReasonForbiddenRole, "only candidates have saved jobs")
	}
	return s.repo.ListJobs(ctx, actor.ID)
}
