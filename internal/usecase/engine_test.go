package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bankbook/internal/domain"
	"bankbook/internal/usecase"
	"bankbook/internal/usecase/mocks"
)

func newMainEngine(t *testing.T, opening string, statements usecase.StatementRepository) *usecase.AccountEngine {
	t.Helper()
	acc, err := domain.NewMainAccount("acc-main", "Jane", decimal.RequireFromString(opening))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return usecase.NewAccountEngine(acc, statements, mocks.NewMockIDGenerator(), nil, zerolog.Nop())
}

func newSavingsEngine(t *testing.T, statements usecase.StatementRepository) *usecase.AccountEngine {
	t.Helper()
	acc, err := domain.NewSavingsAccount("acc-savings", "Jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return usecase.NewAccountEngine(acc, statements, mocks.NewMockIDGenerator(), nil, zerolog.Nop())
}

func TestAccountEngine_Deposit(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		ok          bool
		wantBalance string
		wantEntries int
	}{
		{
			name:        "positive amount succeeds",
			amount:      "100",
			ok:          true,
			wantBalance: "100",
			wantEntries: 1,
		},
		{
			name:        "zero amount rejected",
			amount:      "0",
			ok:          false,
			wantBalance: "0",
			wantEntries: 0,
		},
		{
			name:        "negative amount rejected",
			amount:      "-25",
			ok:          false,
			wantBalance: "0",
			wantEntries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockStatementRepository()
			engine := newMainEngine(t, "0", repo)

			ok, err := engine.Deposit(context.Background(), decimal.RequireFromString(tt.amount))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, ok)
			}
			if engine.Balance().String() != tt.wantBalance {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, engine.Balance())
			}
			if got := len(repo.Recorded()); got != tt.wantEntries {
				t.Errorf("expected %d entries, got %d", tt.wantEntries, got)
			}
		})
	}
}

func TestAccountEngine_DepositRecordsEntryBalances(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	engine := newMainEngine(t, "40", repo)

	ok, err := engine.Deposit(context.Background(), decimal.NewFromInt(60))
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	entries := repo.Recorded()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Kind != domain.KindMain || e.Type != domain.TxDeposit {
		t.Errorf("unexpected entry labels: %v %v", e.Kind, e.Type)
	}
	if !e.PreviousBalance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected previous balance 40, got %s", e.PreviousBalance)
	}
	if !e.UpdatedBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected updated balance 100, got %s", e.UpdatedBalance)
	}
}

func TestAccountEngine_SavingsDepositRecordsPostInterestBalance(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	engine := newSavingsEngine(t, repo)

	// (100 + 50) * 1.02 = 153
	ok, err := engine.Deposit(context.Background(), decimal.NewFromInt(50))
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	if !engine.Balance().Equal(decimal.NewFromInt(153)) {
		t.Errorf("expected balance 153, got %s", engine.Balance())
	}

	entries := repo.Recorded()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].PreviousBalance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected previous balance 100, got %s", entries[0].PreviousBalance)
	}
	if !entries[0].UpdatedBalance.Equal(decimal.NewFromInt(153)) {
		t.Errorf("expected recorded balance after interest 153, got %s", entries[0].UpdatedBalance)
	}
}

func TestAccountEngine_SavingsWithdrawSkipsInterest(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	engine := newSavingsEngine(t, repo)

	ok, err := engine.Withdraw(context.Background(), decimal.NewFromInt(40))
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}

	if !engine.Balance().Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected balance 60 with no interest, got %s", engine.Balance())
	}
}

func TestAccountEngine_Withdraw(t *testing.T) {
	tests := []struct {
		name        string
		opening     string
		amount      string
		ok          bool
		wantBalance string
		wantEntries int
	}{
		{
			name:        "amount within balance succeeds",
			opening:     "100",
			amount:      "30",
			ok:          true,
			wantBalance: "70",
			wantEntries: 1,
		},
		{
			name:        "amount equal to balance succeeds",
			opening:     "100",
			amount:      "100",
			ok:          true,
			wantBalance: "0",
			wantEntries: 1,
		},
		{
			name:        "overdraw rejected",
			opening:     "100",
			amount:      "150",
			ok:          false,
			wantBalance: "100",
			wantEntries: 0,
		},
		{
			name:        "zero amount rejected",
			opening:     "100",
			amount:      "0",
			ok:          false,
			wantBalance: "100",
			wantEntries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockStatementRepository()
			engine := newMainEngine(t, tt.opening, repo)

			ok, err := engine.Withdraw(context.Background(), decimal.RequireFromString(tt.amount))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.ok {
				t.Errorf("expected ok=%v, got %v", tt.ok, ok)
			}
			if engine.Balance().String() != tt.wantBalance {
				t.Errorf("expected balance %s, got %s", tt.wantBalance, engine.Balance())
			}
			if got := len(repo.Recorded()); got != tt.wantEntries {
				t.Errorf("expected %d entries, got %d", tt.wantEntries, got)
			}
		})
	}
}

func TestAccountEngine_AppendFailureLeavesBalanceUnchanged(t *testing.T) {
	appendErr := errors.New("disk full")

	repo := mocks.NewMockStatementRepository()
	repo.AppendFunc = func(ctx context.Context, entry *domain.Entry) error {
		return appendErr
	}
	engine := newMainEngine(t, "100", repo)

	ok, err := engine.Deposit(context.Background(), decimal.NewFromInt(50))
	if ok {
		t.Error("expected deposit to fail")
	}
	if !errors.Is(err, appendErr) {
		t.Errorf("expected append error to propagate, got %v", err)
	}
	if !engine.Balance().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance unchanged at 100, got %s", engine.Balance())
	}

	ok, err = engine.Withdraw(context.Background(), decimal.NewFromInt(50))
	if ok {
		t.Error("expected withdrawal to fail")
	}
	if !errors.Is(err, appendErr) {
		t.Errorf("expected append error to propagate, got %v", err)
	}
	if !engine.Balance().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance unchanged at 100, got %s", engine.Balance())
	}
}

func TestAccountEngine_RejectionAfterDeposit(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	engine := newMainEngine(t, "0", repo)
	ctx := context.Background()

	if ok, err := engine.Deposit(ctx, decimal.NewFromInt(100)); !ok || err != nil {
		t.Fatalf("expected deposit to succeed, got ok=%v err=%v", ok, err)
	}

	ok, err := engine.Withdraw(ctx, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected overdraw to be rejected")
	}

	if !engine.Balance().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", engine.Balance())
	}
	if got := len(repo.Recorded()); got != 1 {
		t.Errorf("expected statement length 1, got %d", got)
	}
}
