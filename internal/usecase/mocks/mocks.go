package mocks

import (
	"context"
	"sync"

	"bankbook/internal/domain"
)

// MockStatementRepository is an in-memory implementation of
// usecase.StatementRepository. Behavior can be overridden per test through
// the ...Func fields; otherwise entries accumulate in order.
type MockStatementRepository struct {
	mu      sync.Mutex
	entries []*domain.Entry

	AppendFunc  func(ctx context.Context, entry *domain.Entry) error
	TotalsFunc  func(ctx context.Context) (domain.Totals, error)
	EntriesFunc func(ctx context.Context) ([]*domain.Entry, error)
}

func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{}
}

func (m *MockStatementRepository) Append(ctx context.Context, entry *domain.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockStatementRepository) Totals(ctx context.Context) (domain.Totals, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var totals domain.Totals
	for _, e := range m.entries {
		amount := e.Amount
		if e.Type == domain.TxWithdrawal {
			amount = amount.Neg()
		}
		switch e.Kind {
		case domain.KindMain:
			totals.Main = totals.Main.Add(amount)
		case domain.KindSavings:
			totals.Savings = totals.Savings.Add(amount)
		}
	}
	return totals, nil
}

func (m *MockStatementRepository) Entries(ctx context.Context) ([]*domain.Entry, error) {
	if m.EntriesFunc != nil {
		return m.EntriesFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Recorded returns the entries appended so far.
func (m *MockStatementRepository) Recorded() []*domain.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockIDGenerator is a mock implementation of usecase.IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "mock-id"
}
