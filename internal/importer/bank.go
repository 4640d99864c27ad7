package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bank2ledger/internal/model"
)

const (
	// DefaultDateFormat is the layout of the date column.
	DefaultDateFormat = "2006-01-02"

	numFields  = 4
	colDate    = 0
	colAmount  = 1
	colDesc    = 2
	colBalance = 3
)

// Options controls how a bank export is read.
type Options struct {
	DateFormat string // Go time layout; DefaultDateFormat when empty
	Encoding   string // see LookupEncoding; DefaultEncoding when empty
	Reverse    bool   // emit rows in reverse file order (newest-first exports)
}

// DefaultOptions returns the options for a plain UTF-8, ISO-dated export.
func DefaultOptions() Options {
	return Options{
		DateFormat: DefaultDateFormat,
		Encoding:   DefaultEncoding,
	}
}

// moneyPattern allows one sign, one leading "$" and commas only between
// groups of three integer digits.
var moneyPattern = regexp.MustCompile(`^([+-]?)\$?([+-]?)(\d{1,3}(?:,\d{3})+|\d+)(\.\d+)?$`)

// ReadFile opens path and parses it with Parse.
func ReadFile(path string, opts Options) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	txns, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return txns, nil
}

// Parse reads a bank CSV with columns date, amount, description, balance and
// returns one BankTransaction per data row, in file order unless
// opts.Reverse is set. A leading header row is skipped.
func Parse(r io.Reader, opts Options) ([]model.BankTransaction, error) {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}

	dr, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	var txns []model.BankTransaction
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.StartLine, Err: csvErr.Err}
			}
			return nil, fmt.Errorf("reading bank CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if first && isHeader(rec, opts.DateFormat) {
			continue
		}

		txn, err := parseRow(rec, line, opts.DateFormat)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	if opts.Reverse {
		slices.Reverse(txns)
	}
	return txns, nil
}

// isHeader reports whether rec looks like a column header rather than data:
// neither its date nor its amount cell parses.
func isHeader(rec []string, dateFormat string) bool {
	if _, err := time.Parse(dateFormat, strings.TrimSpace(rec[colDate])); err == nil {
		return false
	}
	_, err := parseMoney(rec[colAmount])
	return err != nil
}

func parseRow(rec []string, line int, dateFormat string) (model.BankTransaction, error) {
	rawDate := strings.TrimSpace(rec[colDate])
	date, err := time.Parse(dateFormat, rawDate)
	if err != nil {
		return model.BankTransaction{}, &ParseError{Line: line, Field: "date", Value: rec[colDate], Err: err}
	}

	amount, err := parseMoney(rec[colAmount])
	if err != nil {
		return model.BankTransaction{}, &ParseError{Line: line, Field: "amount", Value: rec[colAmount], Err: err}
	}

	var balance decimal.NullDecimal
	if strings.TrimSpace(rec[colBalance]) != "" {
		b, err := parseMoney(rec[colBalance])
		if err != nil {
			return model.BankTransaction{}, &ParseError{Line: line, Field: "balance", Value: rec[colBalance], Err: err}
		}
		balance = decimal.NewNullDecimal(b)
	}

	return model.BankTransaction{
		Date:        date,
		Amount:      amount,
		Description: strings.TrimSpace(rec[colDesc]),
		Balance:     balance,
		Line:        line,
	}, nil
}

// parseMoney accepts amounts like "-42.50", "1,250.00", "$-3.10" or
// "-$3.10". Decimal commas ("42,50") and stray symbols are rejected.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, errors.New("empty value")
	}
	m := moneyPattern.FindStringSubmatch(s)
	if m == nil || (m[1] != "" && m[2] != "") {
		return decimal.Decimal{}, errors.New("not a decimal amount")
	}
	sign := m[1] + m[2]
	if sign == "+" {
		sign = ""
	}
	return decimal.NewFromString(sign + strings.ReplaceAll(m[3], ",", "") + m[4])
}
