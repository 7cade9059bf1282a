package usecase

import (
	"context"

	"bankbook/internal/domain"
)

// StatementRepository defines durable access to the append-only statement.
type StatementRepository interface {
	// Append durably persists one entry as the next record. Failures are
	// surfaced to the caller and not retried at this layer.
	Append(ctx context.Context, entry *domain.Entry) error
	// Totals replays the full statement and accumulates per-kind net
	// amounts. Unparseable rows are skipped, not rejected.
	Totals(ctx context.Context) (domain.Totals, error)
	// Entries replays the full statement with the same lenient skip policy.
	Entries(ctx context.Context) ([]*domain.Entry, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
