package domain

import "time"

// StatusLedgerEntry is an immutable audit trail record of one status change.
// Entries are append-only: once written they are never mutated or deleted,
// except transitively when their request is deleted.
type StatusLedgerEntry struct {
	ID         int64
	RequestID  int64
	Status     RequestStatus
	AssignedTo *string
	Notes      *string
	CreatedAt  time.Time
}
