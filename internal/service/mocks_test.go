package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/request-tracker/internal/domain"
	"github.com/spec-kit/request-tracker/internal/events"
)

type mockRequestRepository struct {
	CreateFunc       func(ctx context.Context, request *domain.ServiceRequest) error
	UpdateFieldsFunc func(ctx context.Context, request *domain.ServiceRequest) error
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	ListByOwnerFunc  func(ctx context.Context, userID int64) ([]domain.ServiceRequest, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *mockRequestRepository) Create(ctx context.Context, request *domain.ServiceRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, request)
	}
	return nil
}

func (m *mockRequestRepository) UpdateFields(ctx context.Context, request *domain.ServiceRequest) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, request)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRequestRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.ServiceRequest, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockRequestRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockStatusLedgerRepository struct {
	AppendWithSnapshotFunc func(ctx context.Context, entry *domain.StatusLedgerEntry, request *domain.ServiceRequest) error
	ListByRequestFunc      func(ctx context.Context, requestID int64) ([]domain.StatusLedgerEntry, error)
	LatestWithSnapshotFunc func(ctx context.Context, requestID int64) (*domain.ServiceRequest, *domain.StatusLedgerEntry, error)
}

func (m *mockStatusLedgerRepository) AppendWithSnapshot(ctx context.Context, entry *domain.StatusLedgerEntry, request *domain.ServiceRequest) error {
	if m.AppendWithSnapshotFunc != nil {
		return m.AppendWithSnapshotFunc(ctx, entry, request)
	}
	return nil
}

func (m *mockStatusLedgerRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.StatusLedgerEntry, error) {
	if m.ListByRequestFunc != nil {
		return m.ListByRequestFunc(ctx, requestID)
	}
	return nil, nil
}

func (m *mockStatusLedgerRepository) LatestWithSnapshot(ctx context.Context, requestID int64) (*domain.ServiceRequest, *domain.StatusLedgerEntry, error) {
	if m.LatestWithSnapshotFunc != nil {
		return m.LatestWithSnapshotFunc(ctx, requestID)
	}
	return nil, nil, pgx.ErrNoRows
}

type mockDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (m *mockDispatcher) Publish(_ context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, event)
	return nil
}

func (m *mockDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (m *mockDispatcher) events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event{}, m.published...)
}
