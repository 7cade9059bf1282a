package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"bankbook/internal/domain"
	"bankbook/internal/infrastructure/metrics"
)

var header = []string{"Account", "Transaction Type", "Amount", "Previous Balance", "Updated Balance"}

// StatementRepository persists entries to a flat, append-only CSV file. The
// file is the durable source of truth: it is opened in append mode, never
// truncated, and every append is flushed and synced before returning. Main
// and Savings entries interleave in the one file, distinguished by label.
type StatementRepository struct {
	path    string
	mu      sync.Mutex
	file    *os.File
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// Open idempotently ensures the statement file exists with its header and
// returns a repository appending to it. Existing records are never altered;
// the header is written only when the file is new or empty. Transient open
// errors are retried with backoff; permanent ones wrap ErrStorageUnavailable.
// m may be nil.
func Open(path string, m *metrics.Metrics, log zerolog.Logger) (*StatementRepository, error) {
	log = log.With().Str("statement", path).Logger()

	var file *os.File
	err := NewOpenRetrier(log).Retry(func() error {
		var err error
		file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrStorageUnavailable, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", domain.ErrStorageUnavailable, path, err)
	}

	repo := &StatementRepository{
		path:    path,
		file:    file,
		metrics: m,
		log:     log,
	}

	if info.Size() == 0 {
		if err := repo.writeRow(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: writing header: %v", domain.ErrStorageUnavailable, err)
		}
		repo.log.Info().Msg("statement initialized")
	}

	return repo, nil
}

// Append writes one entry as the next record and syncs it to disk before
// returning. Entries whose balances do not reconcile with their amount are
// rejected before touching the file; records are immutable once written. The
// append path is single-writer; write failures wrap ErrWriteFailure and are
// not retried here.
func (r *StatementRepository) Append(ctx context.Context, entry *domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("rejecting entry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	err := r.writeRow([]string{
		entry.Kind.String(),
		entry.Type.String(),
		entry.Amount.String(),
		entry.PreviousBalance.String(),
		entry.UpdatedBalance.String(),
	})
	r.metrics.ObserveAppend(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}

	r.log.Info().
		Str("account", entry.Kind.String()).
		Str("type", entry.Type.String()).
		Str("amount", "$"+entry.Amount.StringFixed(2)).
		Msg("transaction recorded")

	return nil
}

// Totals replays the entire statement from the beginning and accumulates
// per-kind running totals: amounts add on deposit and subtract on
// withdrawal. Every call re-reads the full history; nothing is memoized.
func (r *StatementRepository) Totals(ctx context.Context) (domain.Totals, error) {
	var totals domain.Totals

	err := r.scan(ctx, func(e *domain.Entry) {
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
	})

	return totals, err
}

// Entries replays the full statement in append order.
func (r *StatementRepository) Entries(ctx context.Context) ([]*domain.Entry, error) {
	var entries []*domain.Entry

	err := r.scan(ctx, func(e *domain.Entry) {
		entries = append(entries, e)
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Close releases the append handle. Replays open their own read handle, so
// a closed repository can no longer append but the file stays readable.
func (r *StatementRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// scan re-reads the statement from the start, invoking fn for every row that
// parses as an entry. The header, malformed rows and rows with unrecognized
// labels are skipped leniently to tolerate format drift.
func (r *StatementRepository) scan(ctx context.Context, fn func(*domain.Entry)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", domain.ErrStorageUnavailable, r.path, err)
	}
	defer f.Close()

	r.metrics.ObserveScan()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			r.metrics.ObserveSkippedRow()
			continue
		}

		entry, ok := parseRow(row)
		if !ok {
			r.metrics.ObserveSkippedRow()
			continue
		}
		fn(entry)
	}
}

func (r *StatementRepository) writeRow(row []string) error {
	w := csv.NewWriter(r.file)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return r.file.Sync()
}

func parseRow(row []string) (*domain.Entry, bool) {
	if len(row) < 5 {
		return nil, false
	}

	kind, err := domain.ParseAccountKind(row[0])
	if err != nil {
		return nil, false
	}
	txType, err := domain.ParseTxType(row[1])
	if err != nil {
		return nil, false
	}
	amount, err := decimal.NewFromString(row[2])
	if err != nil {
		return nil, false
	}
	previous, err := decimal.NewFromString(row[3])
	if err != nil {
		return nil, false
	}
	updated, err := decimal.NewFromString(row[4])
	if err != nil {
		return nil, false
	}

	return &domain.Entry{
		Kind:            kind,
		Type:            txType,
		Amount:          amount,
		PreviousBalance: previous,
		UpdatedBalance:  updated,
	}, true
}
