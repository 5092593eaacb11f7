package app

import (
	"context"

	"jobboard/internal/authz"
	"jobboard/internal/domain/stats"
	"jobboard/internal/observability/metrics"
)

// AdminService serves the moderation dashboard. Statistics are derived views
// recomputed per read, never materialized.
type AdminService struct {
	stats stats.Repository
}

func NewAdminService(statsRepo stats.Repository) *AdminService {
	return &AdminService{stats: statsRepo}
}

func (s *AdminService) Statistics(ctx context.Context, actor authz.Actor) (*stats.Statistics, error) {
	if decision := authz.CanModerate(actor); !decision.Allowed {
		metrics.ObserveDenial(decision.Reason)
		return nil, authz.ErrIfDenied(decision, "only admins can read statistics")
	}
	return s.stats.Snapshot(ctx)
}
