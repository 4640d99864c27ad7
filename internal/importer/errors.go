package importer

import "fmt"

// ParseError reports a source row that could not be turned into a
// BankTransaction. Field is empty when the row itself is malformed (for
// example, the wrong number of columns).
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: parsing %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
