package stats

import "context"

// Statistics is the admin dashboard snapshot, recomputed on every read.
type Statistics struct {
	TotalUsers         int64 `json:"total_users"`
	TotalCandidates    int64 `json:"total_candidates"`
	TotalEmployers     int64 `json:"total_employers"`
	TotalCompanies     int64 `json:"total_companies"`
	VerifiedCompanies  int64 `json:"verified_companies"`
	TotalJobs          int64 `json:"total_jobs"`
	ActiveJobs         int64 `json:"active_jobs"`
	PendingJobs        int64 `json:"pending_jobs"`
	TotalApplications  int64 `json:"total_applications"`
	RecentApplications int64 `json:"recent_applications"`
}

type Repository interface {
	Snapshot(ctx context.Context) (*Statistics, error)
}
