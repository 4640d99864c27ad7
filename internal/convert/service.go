package convert

import (
	"context"
	"log/slog"

	"github.com/cleared-dev/bank2ledger/internal/config"
	"github.com/cleared-dev/bank2ledger/internal/importer"
	"github.com/cleared-dev/bank2ledger/internal/ledger"
	"github.com/cleared-dev/bank2ledger/internal/log"
)

// Service converts bank CSV exports into ledger journals.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewService creates a Service. A nil cfg means config.Default.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Request names one conversion.
type Request struct {
	Account string // account every transaction is posted to
	Input   string // bank CSV path
	Output  string // journal path, created or replaced
}

// Result summarizes a finished conversion.
type Result struct {
	Entries int
}

// Run reads req.Input, maps every row to req.Account and writes req.Output.
// Any malformed row aborts the run before the output is touched.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	if err := ledger.ValidateAccount(req.Account); err != nil {
		return Result{}, err
	}

	txns, err := importer.ReadFile(req.Input, s.cfg.ImportOptions())
	if err != nil {
		return Result{}, err
	}
	s.logger.Debug("read bank export", "path", req.Input, "transactions", len(txns))

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	entries := ledger.MapAll(txns, req.Account)
	for i, e := range entries {
		log.Trace(s.logger, "mapped transaction",
			"line", txns[i].Line,
			"date", e.Date.Format(importer.DefaultDateFormat),
			"amount", e.Amount.String(),
			"debit", e.IsDebit(),
			"payee", e.Payee)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := ledger.WriteFile(req.Output, entries, s.cfg.LedgerFormat()); err != nil {
		return Result{}, err
	}
	s.logger.Info("wrote journal", "path", req.Output, "entries", len(entries), "account", req.Account)

	return Result{Entries: len(entries)}, nil
}
