package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/events"
	"github.com/spec-kit/request-tracker/internal/repository"
	apperrors "github.com/spec-kit/request-tracker/pkg/util"
)

// Length limits count characters, not bytes.
const (
	descriptionMinLen = 10
	descriptionMaxLen = 1000
	locationMaxLen    = 255
	notesMaxLen       = 500
	assignedToMaxLen  = 255
)

// RequestService coordinates the service-request lifecycle: ownership
// checks, field validation, status transitions and the audit trail.
type RequestService struct {
	requests   repository.RequestRepository
	ledger     repository.StatusLedgerRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles repositories for request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	LedgerRepo  repository.StatusLedgerRepository
	Dispatcher  events.Dispatcher
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	ServiceType domain.ServiceType
	Description string
	Priority    domain.RequestPriority
	Location    *string
}

// RequestUpdateInput carries the editable fields; nil means leave unchanged.
type RequestUpdateInput struct {
	ServiceType *domain.ServiceType
	Description *string
	Priority    *domain.RequestPriority
	Location    *string
}

// StatusTransitionInput describes a status change to record.
type StatusTransitionInput struct {
	Status     domain.RequestStatus
	AssignedTo *string
	Notes      *string
}

// LatestStatus is the optimized read projection for the current state of a
// request: the denormalized snapshot plus the newest ledger entry, if any.
type LatestStatus struct {
	RequestID     int64
	CurrentStatus domain.RequestStatus
	LastUpdated   time.Time
	LatestEntry   *domain.StatusLedgerEntry
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		ledger:     deps.LedgerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateRequest creates a service request for a user. The request starts as
// Pending with no ledger entry; the initial state is implicit.
func (s *RequestService) CreateRequest(ctx context.Context, ownerID int64, input RequestCreateInput) (*domain.ServiceRequest, error) {
	if !input.ServiceType.Valid() {
		return nil, apperrors.NewValidationError("invalid service type", map[string]any{"service_type": input.ServiceType})
	}
	description := strings.TrimSpace(input.Description)
	if n := utf8.RuneCountInString(description); n < descriptionMinLen || n > descriptionMaxLen {
		return nil, apperrors.NewValidationError("description must be between 10 and 1000 characters", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}
	if input.Location != nil && utf8.RuneCountInString(*input.Location) > locationMaxLen {
		return nil, apperrors.NewValidationError("location must not exceed 255 characters", nil)
	}

	request := &domain.ServiceRequest{
		UserID:      ownerID,
		ServiceType: input.ServiceType,
		Description: description,
		Priority:    priority,
		Location:    input.Location,
		Status:      domain.StatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: request.ID,
		OwnerID:   ownerID,
		Payload: events.RequestCreatedPayload{
			ServiceType: request.ServiceType,
			Priority:    request.Priority,
			Status:      request.Status,
		},
	})
	return request, nil
}

// GetRequest fetches a request ensuring ownership.
func (s *RequestService) GetRequest(ctx context.Context, ownerID, requestID int64) (*domain.ServiceRequest, error) {
	return s.requestForOwner(ctx, ownerID, requestID)
}

// ListRequests returns all requests owned by the user, newest first.
func (s *RequestService) ListRequests(ctx context.Context, ownerID int64) ([]domain.ServiceRequest, error) {
	requests, err := s.requests.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return requests, nil
}

// UpdateRequestFields updates any subset of the editable fields. Status and
// the ledger are never touched here.
func (s *RequestService) UpdateRequestFields(ctx context.Context, ownerID, requestID int64, input RequestUpdateInput) (*domain.ServiceRequest, error) {
	request, err := s.requestForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}

	if input.ServiceType != nil {
		if !input.ServiceType.Valid() {
			return nil, apperrors.NewValidationError("invalid service type", map[string]any{"service_type": *input.ServiceType})
		}
		request.ServiceType = *input.ServiceType
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if n := utf8.RuneCountInString(description); n < descriptionMinLen || n > descriptionMaxLen {
			return nil, apperrors.NewValidationError("description must be between 10 and 1000 characters", nil)
		}
		request.Description = description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		request.Priority = *input.Priority
	}
	if input.Location != nil {
		if utf8.RuneCountInString(*input.Location) > locationMaxLen {
			return nil, apperrors.NewValidationError("location must not exceed 255 characters", nil)
		}
		request.Location = input.Location
	}

	if err := s.requests.UpdateFields(ctx, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestUpdated,
		RequestID: request.ID,
		OwnerID:   ownerID,
		Payload: events.RequestUpdatedPayload{
			ServiceType: request.ServiceType,
			Priority:    request.Priority,
		},
	})
	return request, nil
}

// DeleteRequest removes a request; the store cascades the delete to its
// ledger entries.
func (s *RequestService) DeleteRequest(ctx context.Context, ownerID, requestID int64) error {
	request, err := s.requestForOwner(ctx, ownerID, requestID)
	if err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, request.ID); err != nil {
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestDeleted,
		RequestID: request.ID,
		OwnerID:   ownerID,
		Payload:   events.RequestDeletedPayload{Status: request.Status},
	})
	return nil
}

// RecordStatusTransition appends an immutable ledger entry and updates the
// request's denormalized status in one atomic write. Transitions are
// permissive: any enumerated status may follow any other.
func (s *RequestService) RecordStatusTransition(ctx context.Context, ownerID, requestID int64, input StatusTransitionInput) (*domain.StatusLedgerEntry, error) {
	request, err := s.requestForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}

	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}
	if input.Notes != nil && utf8.RuneCountInString(*input.Notes) > notesMaxLen {
		return nil, apperrors.NewValidationError("notes must not exceed 500 characters", nil)
	}
	if input.AssignedTo != nil && utf8.RuneCountInString(*input.AssignedTo) > assignedToMaxLen {
		return nil, apperrors.NewValidationError("assigned_to must not exceed 255 characters", nil)
	}

	entry := &domain.StatusLedgerEntry{
		RequestID:  request.ID,
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
		Notes:      input.Notes,
	}

	oldStatus := request.Status
	request.Status = input.Status
	if input.Status == domain.StatusCompleted {
		now := time.Now()
		request.CompletedAt = &now
	} else if request.CompletedAt != nil {
		request.CompletedAt = nil
	}

	if err := s.ledger.AppendWithSnapshot(ctx, entry, request); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: request.ID,
		OwnerID:   ownerID,
		Payload: events.RequestStatusChangedPayload{
			OldStatus:  oldStatus,
			NewStatus:  request.Status,
			AssignedTo: entry.AssignedTo,
			Notes:      entry.Notes,
		},
	})
	return entry, nil
}

// GetStatusHistory returns all ledger entries for a request, newest first.
func (s *RequestService) GetStatusHistory(ctx context.Context, ownerID, requestID int64) ([]domain.StatusLedgerEntry, error) {
	request, err := s.requestForOwner(ctx, ownerID, requestID)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.ListByRequest(ctx, request.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return history, nil
}

// GetLatestStatus returns the denormalized current status plus the newest
// ledger entry without loading the full history. LatestEntry is nil when no
// transition has been recorded since creation. Snapshot and entry come from
// one repository read so a concurrent transition cannot split the pair.
func (s *RequestService) GetLatestStatus(ctx context.Context, ownerID, requestID int64) (*LatestStatus, error) {
	request, latest, err := s.ledger.LatestWithSnapshot(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service request", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !request.OwnedBy(ownerID) {
		return nil, apperrors.NewNotFound("service request", nil)
	}
	return &LatestStatus{
		RequestID:     request.ID,
		CurrentStatus: request.Status,
		LastUpdated:   request.UpdatedAt,
		LatestEntry:   latest,
	}, nil
}

// requestForOwner loads a request and enforces ownership. A missing request
// and one owned by someone else return the same not-found error so that
// existence of other users' requests never leaks.
func (s *RequestService) requestForOwner(ctx context.Context, ownerID, requestID int64) (*domain.ServiceRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service request", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if !request.OwnedBy(ownerID) {
		return nil, apperrors.NewNotFound("service request", nil)
	}
	return request, nil
}

func (s *RequestService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
