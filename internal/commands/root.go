package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bank2ledger/internal/buildinfo"
	"github.com/cleared-dev/bank2ledger/internal/config"
	"github.com/cleared-dev/bank2ledger/internal/convert"
	"github.com/cleared-dev/bank2ledger/internal/importer"
	"github.com/cleared-dev/bank2ledger/internal/ledger"
	"github.com/cleared-dev/bank2ledger/internal/log"
)

type rootFlags struct {
	configPath    string
	reverse       bool
	offsetAccount string
	commodity     string
	encoding      string
	logLevel      string
	logFormat     string
}

// NewRootCommand creates the bank2ledger command.
func NewRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "bank2ledger [flags] <account> <input.csv> <output.ledger>",
		Short: "Convert a bank CSV export to a Ledger journal",
		Long: `Convert a bank CSV export (columns: date, amount, description, balance)
into a Ledger CLI journal. Every transaction is posted to <account> and
balanced against an offset account (Expenses:Unknown by default).`,
		Example: "  bank2ledger Assets:Checking export.csv checking.ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.ExactArgs(3),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			if err := ledger.ValidateAccount(args[0]); err != nil {
				return err
			}

			// Arguments are sound; from here on failures are not usage errors.
			cmd.SilenceUsage = true

			logger, err := newLogger(flags)
			if err != nil {
				return err
			}

			return runConvert(cmd, cfg, logger, convert.Request{
				Account: args[0],
				Input:   args[1],
				Output:  args[2],
			})
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file")
	f.BoolVar(&flags.reverse, "reverse", false, "reverse row order (for newest-first exports)")
	f.StringVar(&flags.offsetAccount, "offset-account", ledger.DefaultOffsetAccount, "account that balances each entry")
	f.StringVar(&flags.commodity, "commodity", "", "commodity prefixed to amounts, e.g. $")
	f.StringVar(&flags.encoding, "encoding", importer.DefaultEncoding, "input encoding (utf-8, windows-1252, iso-8859-1, iso-8859-15)")
	f.StringVar(&flags.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	f.StringVar(&flags.logFormat, "log-format", "text", "log format (text, json)")

	return rootCmd
}

// loadConfig reads --config when given and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("reverse") {
		cfg.Input.Reverse = flags.reverse
	}
	if changed("encoding") {
		cfg.Input.Encoding = flags.encoding
	}
	if changed("offset-account") {
		cfg.Output.OffsetAccount = flags.offsetAccount
	}
	if changed("commodity") {
		cfg.Output.Commodity = flags.commodity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(flags rootFlags) (*slog.Logger, error) {
	level, err := log.ParseLevel(flags.logLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	return log.New(os.Stderr, level, flags.logFormat)
}

func runConvert(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, req convert.Request) error {
	res, err := convert.NewService(cfg, logger).Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", res.Entries, req.Output)
	return nil
}
