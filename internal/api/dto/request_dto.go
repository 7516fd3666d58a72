package dto

import (
	"time"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// CreateRequestRequest payload.
type CreateRequestRequest struct {
	ServiceType domain.ServiceType     `json:"serviceType"`
	Description string                 `json:"description"`
	Priority    domain.RequestPriority `json:"priority"`
	Location    *string                `json:"location,omitempty"`
}

// UpdateRequestRequest carries a partial edit; absent fields stay unchanged.
type UpdateRequestRequest struct {
	ServiceType *domain.ServiceType     `json:"serviceType,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Priority    *domain.RequestPriority `json:"priority,omitempty"`
	Location    *string                 `json:"location,omitempty"`
}

// RequestResponse is the full service-request projection.
type RequestResponse struct {
	ID          int64                  `json:"id"`
	UserID      int64                  `json:"userId"`
	ServiceType domain.ServiceType     `json:"serviceType"`
	Description string                 `json:"description"`
	Priority    domain.RequestPriority `json:"priority"`
	Location    *string                `json:"location,omitempty"`
	Status      domain.RequestStatus   `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
}

// DeleteRequestResponse confirms a removal.
type DeleteRequestResponse struct {
	DeletedID int64 `json:"deletedId"`
}
