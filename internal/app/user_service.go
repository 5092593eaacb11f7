package app

import (
	"context"
	"strings"

	"jobboard/internal/authz"
	"jobboard/internal/common"
	"jobboard/internal/discovery"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/user"
	"jobboard/internal/observability/metrics"
)

// UserService is the admin surface over accounts: listing, status changes,
// and hard deletion. Role is immutable after registration.
type UserService struct {
	repo      user.Repository
	analytics analytics.Repository
	pages     PageConfig
}

func NewUserService(repo user.Repository, analytics analytics.Repository, pages PageConfig) *UserService {
	return &UserService{repo: repo, analytics: analytics, pages: pages}
}

func (s *UserService) List(ctx context.Context, actor authz.Actor, query discovery.UserQuery) (discovery.Result[user.User], error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return discovery.Result[user.User]{}, authz.ErrIfDenied(decision, "only admins can list users")
	}
	snapshot, err := s.repo.List(ctx)
	if err != nil {
		return discovery.Result[user.User]{}, err
	}
	query.Page = query.Page.Normalize(s.pages.DefaultLimit, s.pages.MaxLimit)
	return discovery.Users(snapshot, query), nil
}

func (s *UserService) Get(ctx context.Context, actor authz.Actor, id common.UUID) (*user.User, error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only admins can inspect users")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) SetAccountStatus(ctx context.Context, actor authz.Actor, id common.UUID, status user.AccountStatus) (*user.User, error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only admins can change account status")
	}
	next := user.AccountStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !user.ValidAccountStatus(next) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active, inactive, or banned"})
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetAccountStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	metrics.ObserveTransition("user", string(current.AccountStatus), string(next))
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.status_changed", UserID: &actor.ID, Payload: map[string]string{"target_user_id": id.String(), "to": string(next)}})
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor authz.Actor, id common.UUID) error {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return authz.ErrIfDenied(decision, "only admins can delete users")
	}
	if actor.ID == id {
		return common.NewValidationError("admins cannot delete their own account", nil)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "user.deleted", UserID: &actor.ID, Payload: map[string]string{"target_user_id": id.String()}})
	return nil
}
