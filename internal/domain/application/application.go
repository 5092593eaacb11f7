package application

import (
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusInterviewed Status = "interviewed"
	StatusOffered     Status = "offered"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

type Application struct {
	ID             common.UUID `json:"id"`
	JobID          common.UUID `json:"job_id"`
	CandidateID    common.UUID `json:"candidate_id"`
	CVURL          string      `json:"cv_url"`
	CoverLetter    string      `json:"cover_letter,omitempty"`
	ExpectedSalary *int64      `json:"expected_salary,omitempty"`
	Status         Status      `json:"status"`
	Notes          string      `json:"notes,omitempty"`
	Version        int64       `json:"version"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	ReviewedAt     *time.Time  `json:"reviewed_at,omitempty"`
}

func ValidStatus(status Status) bool {
	_, ok := rank[status]
	return ok || status == StatusWithdrawn
}

// Terminal reports whether no further forward transition is legal.
func Terminal(status Status) bool {
	return status == StatusAccepted || status == StatusRejected || status == StatusWithdrawn
}

// rank orders the main chain. accepted and rejected share the final rank:
// both end the chain, neither is reachable from the other.
var rank = map[Status]int{
	StatusPending:     0,
	StatusReviewing:   1,
	StatusShortlisted: 2,
	StatusInterviewed: 3,
	StatusOffered:     4,
	StatusAccepted:    5,
	StatusRejected:    5,
}

// CanAdvance reports whether an employer or admin may move from→to. Moves
// are strictly forward along the chain; skipping stages is allowed, going
// back or leaving a terminal state is not. withdrawn is never a forward
// target.
func CanAdvance(from, to Status) bool {
	if Terminal(from) || to == StatusWithdrawn {
		return false
	}
	fromRank, ok := rank[from]
	if !ok {
		return false
	}
	toRank, ok := rank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanWithdraw reports whether a candidate may withdraw from the given state.
// Only the three early states qualify; from interviewed onward the process
// belongs to the employer.
func CanWithdraw(from Status) bool {
	switch from {
	case StatusPending, StatusReviewing, StatusShortlisted:
		return true
	default:
		return false
	}
}

// Blocks reports whether an existing application in this state still
// occupies the (candidate, job) slot. Only withdrawal frees it; a rejected
// application keeps blocking re-application.
func Blocks(status Status) bool {
	return status != StatusWithdrawn
}
