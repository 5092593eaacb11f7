package job

import (
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusClosed   Status = "closed"
	StatusRejected Status = "rejected"
)

type Job struct {
	ID              common.UUID  `json:"id"`
	CompanyID       common.UUID  `json:"company_id"`
	CategoryID      *common.UUID `json:"category_id,omitempty"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Location        string       `json:"location,omitempty"`
	JobType         string       `json:"job_type,omitempty"`
	ExperienceLevel string       `json:"experience_level,omitempty"`
	SalaryMin       *int64       `json:"salary_min,omitempty"`
	SalaryMax       *int64       `json:"salary_max,omitempty"`
	Remote          bool         `json:"remote"`
	Featured        bool         `json:"featured"`
	Deadline        *time.Time   `json:"deadline,omitempty"`
	Status          Status       `json:"status"`
	RejectReason    string       `json:"reject_reason,omitempty"`
	Views           int64        `json:"views"`
	Version         int64        `json:"version"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusActive, StatusInactive, StatusClosed, StatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further moderation transition is legal.
func Terminal(status Status) bool {
	return status == StatusClosed || status == StatusRejected
}

// transitions is the moderation table: legal (from, to) edges regardless of
// actor. Who may take an edge is the Authorization Gate's concern.
var transitions = map[Status]map[Status]bool{
	StatusPending:  {StatusActive: true, StatusRejected: true},
	StatusActive:   {StatusInactive: true, StatusClosed: true},
	StatusInactive: {StatusActive: true, StatusClosed: true},
}

// CanTransition reports whether the moderation state machine allows from→to.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// AdminOnlyTransition reports whether the edge is reserved for moderators.
func AdminOnlyTransition(from, to Status) bool {
	return from == StatusPending
}
