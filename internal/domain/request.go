package domain

import "time"

// ServiceType enumerates the kinds of work a request can ask for.
type ServiceType string

const (
	ServiceTypeMaintenance  ServiceType = "Maintenance"
	ServiceTypeRepair       ServiceType = "Repair"
	ServiceTypeInstallation ServiceType = "Installation"
	ServiceTypeSupport      ServiceType = "Support"
	ServiceTypeConsultation ServiceType = "Consultation"
)

// Valid reports whether the value is one of the enumerated service types.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeMaintenance, ServiceTypeRepair, ServiceTypeInstallation,
		ServiceTypeSupport, ServiceTypeConsultation:
		return true
	}
	return false
}

// RequestPriority enumerates urgency levels.
type RequestPriority string

const (
	PriorityLow    RequestPriority = "Low"
	PriorityMedium RequestPriority = "Medium"
	PriorityHigh   RequestPriority = "High"
	PriorityUrgent RequestPriority = "Urgent"
)

// Valid reports whether the value is one of the enumerated priorities.
func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// RequestStatus enumerates lifecycle states for service requests. Completed
// and Cancelled are conventionally terminal but nothing enforces that: any
// status may follow any other.
type RequestStatus string

const (
	StatusPending    RequestStatus = "Pending"
	StatusAssigned   RequestStatus = "Assigned"
	StatusInProgress RequestStatus = "In Progress"
	StatusOnHold     RequestStatus = "On Hold"
	StatusCompleted  RequestStatus = "Completed"
	StatusCancelled  RequestStatus = "Cancelled"
)

// Valid reports whether the value is one of the enumerated statuses.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress,
		StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ServiceRequest is the aggregate for submitted service work. Status mirrors
// the newest status ledger entry, or Pending when no entry exists yet.
type ServiceRequest struct {
	ID          int64
	UserID      int64
	ServiceType ServiceType
	Description string
	Priority    RequestPriority
	Location    *string
	Status      RequestStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// OwnedBy is the single ownership predicate used by every lifecycle
// operation.
func (r *ServiceRequest) OwnedBy(userID int64) bool {
	return r != nil && r.UserID == userID
}
