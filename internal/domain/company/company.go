package company

import (
	"time"

	"jobboard/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Company struct {
	ID          common.UUID `json:"id"`
	OwnerID     common.UUID `json:"owner_id"`
	Name        string      `json:"name"`
	Industry    string      `json:"industry,omitempty"`
	City        string      `json:"city,omitempty"`
	Website     string      `json:"website,omitempty"`
	Description string      `json:"description,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	Verified    bool        `json:"verified"`
	Status      Status      `json:"status"`
	Version     int64       `json:"version"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
