package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// StatusLedgerRepository stores the append-only status audit trail.
type StatusLedgerRepository interface {
	// AppendWithSnapshot writes the ledger entry and the request's
	// denormalized status fields in a single transaction. A concurrent
	// reader never sees one write without the other.
	AppendWithSnapshot(ctx context.Context, entry *domain.StatusLedgerEntry, request *domain.ServiceRequest) error
	ListByRequest(ctx context.Context, requestID int64) ([]domain.StatusLedgerEntry, error)
	// LatestWithSnapshot reads the request row and its newest ledger entry
	// in one query, so a transition committing between the two can never
	// produce a mismatched pair.
	LatestWithSnapshot(ctx context.Context, requestID int64) (*domain.ServiceRequest, *domain.StatusLedgerEntry, error)
}

type statusLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewStatusLedgerRepository builds repository.
func NewStatusLedgerRepository(pool *pgxpool.Pool) StatusLedgerRepository {
	return &statusLedgerRepository{pool: pool}
}

func (r *statusLedgerRepository) AppendWithSnapshot(ctx context.Context, entry *domain.StatusLedgerEntry, request *domain.ServiceRequest) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertEntry = `
        INSERT INTO status_ledger (request_id, status, assigned_to, notes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insertEntry,
		entry.RequestID,
		entry.Status,
		entry.AssignedTo,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return err
	}

	const updateSnapshot = `
        UPDATE service_requests SET status=$1, completed_at=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, updateSnapshot,
		request.Status,
		request.CompletedAt,
		request.ID,
	).Scan(&request.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *statusLedgerRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.StatusLedgerEntry, error) {
	const query = `
        SELECT id, request_id, status, assigned_to, notes, created_at
        FROM status_ledger WHERE request_id=$1
        ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusLedgerEntry
	for rows.Next() {
		var entry domain.StatusLedgerEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.Status,
			&entry.AssignedTo,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// LatestWithSnapshot returns the request with its newest ledger entry, or a
// nil entry when no transition has been recorded yet.
func (r *statusLedgerRepository) LatestWithSnapshot(ctx context.Context, requestID int64) (*domain.ServiceRequest, *domain.StatusLedgerEntry, error) {
	const query = `
        SELECT r.id, r.user_id, r.service_type, r.description, r.priority, r.location, r.status, r.created_at, r.updated_at, r.completed_at,
               l.id, l.status, l.assigned_to, l.notes, l.created_at
        FROM service_requests r
        LEFT JOIN LATERAL (
            SELECT id, status, assigned_to, notes, created_at
            FROM status_ledger
            WHERE request_id = r.id
            ORDER BY created_at DESC, id DESC
            LIMIT 1
        ) l ON TRUE
        WHERE r.id = $1`

	var (
		request       domain.ServiceRequest
		entryID       *int64
		entryStatus   *string
		entryAssigned *string
		entryNotes    *string
		entryCreated  *time.Time
	)
	if err := r.pool.QueryRow(ctx, query, requestID).Scan(
		&request.ID,
		&request.UserID,
		&request.ServiceType,
		&request.Description,
		&request.Priority,
		&request.Location,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.CompletedAt,
		&entryID,
		&entryStatus,
		&entryAssigned,
		&entryNotes,
		&entryCreated,
	); err != nil {
		return nil, nil, err
	}
	if entryID == nil {
		return &request, nil, nil
	}
	return &request, &domain.StatusLedgerEntry{
		ID:         *entryID,
		RequestID:  request.ID,
		Status:     domain.RequestStatus(*entryStatus),
		AssignedTo: entryAssigned,
		Notes:      entryNotes,
		CreatedAt:  *entryCreated,
	}, nil
}
