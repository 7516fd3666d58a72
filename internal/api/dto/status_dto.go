package dto

import (
	"time"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// TrackStatusRequest payload for recording a transition.
type TrackStatusRequest struct {
	RequestID  int64                `json:"requestId"`
	Status     domain.RequestStatus `json:"status"`
	AssignedTo *string              `json:"assignedTo,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
}

// StatusEntryResponse is one ledger entry.
type StatusEntryResponse struct {
	ID         int64                `json:"id"`
	Status     domain.RequestStatus `json:"status"`
	AssignedTo *string              `json:"assignedTo,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	Timestamp  time.Time            `json:"timestamp"`
}

// TrackStatusResponse confirms a recorded transition.
type TrackStatusResponse struct {
	TrackingID int64                `json:"trackingId"`
	RequestID  int64                `json:"requestId"`
	Status     domain.RequestStatus `json:"status"`
	Timestamp  time.Time            `json:"timestamp"`
}

// CurrentStatusResponse is the quick read path for dashboards.
type CurrentStatusResponse struct {
	RequestID     int64                `json:"requestId"`
	CurrentStatus domain.RequestStatus `json:"currentStatus"`
	LastUpdated   time.Time            `json:"lastUpdated"`
	LatestUpdate  *StatusEntryResponse `json:"latestUpdate"`
}
