package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// RequestRepository encapsulates service-request persistence.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.ServiceRequest) error
	UpdateFields(ctx context.Context, request *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.ServiceRequest, error)
	Delete(ctx context.Context, id int64) error
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (user_id, service_type, description, priority, location, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		request.UserID,
		request.ServiceType,
		request.Description,
		request.Priority,
		request.Location,
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
}

// UpdateFields writes the editable fields only; status and completed_at move
// exclusively through the status ledger transaction.
func (r *requestRepository) UpdateFields(ctx context.Context, request *domain.ServiceRequest) error {
	const query = `
        UPDATE service_requests SET service_type=$1, description=$2, priority=$3, location=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		request.ServiceType,
		request.Description,
		request.Priority,
		request.Location,
		request.ID,
	).Scan(&request.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	const query = `
        SELECT id, user_id, service_type, description, priority, location, status, created_at, updated_at, completed_at
        FROM service_requests WHERE id=$1`

	var request domain.ServiceRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
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
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.ServiceRequest, error) {
	const query = `
        SELECT id, user_id, service_type, description, priority, location, status, created_at, updated_at, completed_at
        FROM service_requests WHERE user_id=$1
        ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM service_requests WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRequests(rows pgx.Rows) ([]domain.ServiceRequest, error) {
	var result []domain.ServiceRequest
	for rows.Next() {
		var request domain.ServiceRequest
		if err := rows.Scan(
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
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
