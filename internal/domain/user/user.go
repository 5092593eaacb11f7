package user

import (
	"time"

	"jobboard/internal/common"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
	StatusBanned   AccountStatus = "banned"
)

type User struct {
	ID            common.UUID   `json:"id"`
	Email         string        `json:"email"`
	PasswordHash  string        `json:"-"`
	FullName      string        `json:"full_name"`
	Phone         string        `json:"phone,omitempty"`
	AvatarURL     string        `json:"avatar_url,omitempty"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"account_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func ValidRole(role Role) bool {
	switch role {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

func ValidAccountStatus(status AccountStatus) bool {
	switch status {
	case StatusActive, StatusInactive, StatusBanned:
		return true
	default:
		return false
	}
}
