package usecase

import (
	"context"

	"bankbook/internal/domain"
)

// AuditUseCase replays the statement to verify per-kind balance continuity
// and to derive aggregate totals. Ledger-derived totals need not match a
// live account's in-memory balance when the statement predates the account;
// the audit reports, it does not fail.
type AuditUseCase struct {
	statements StatementRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(statements StatementRepository) *AuditUseCase {
	return &AuditUseCase{
		statements: statements,
	}
}

// CheckContinuity replays the full statement and returns every point where
// an entry's previous balance disagrees with the prior same-kind entry's
// updated balance.
func (uc *AuditUseCase) CheckContinuity(ctx context.Context) ([]domain.ContinuityBreak, error) {
	entries, err := uc.statements.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CheckContinuity(entries), nil
}

// Totals replays the full statement and returns per-kind net totals. Each
// call re-reads the whole history; nothing is memoized.
func (uc *AuditUseCase) Totals(ctx context.Context) (domain.Totals, error) {
	return uc.statements.Totals(ctx)
}
