package ledger

import (
	"fmt"
	"strings"
)

// ValidationError describes why an account name cannot be written to a journal.
type ValidationError struct {
	Account     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid account %q: %s", e.Account, e.Description)
}

// ValidateAccount checks that name is a usable colon-delimited account path,
// e.g. "Assets:Liquid:Checking".
func ValidateAccount(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Account: name, Description: "account name is empty"}
	}
	if strings.ContainsAny(name, "\t\r\n") {
		return ValidationError{Account: name, Description: "account name contains a tab or newline"}
	}
	// Two spaces end the account name in a posting line.
	if strings.Contains(name, "  ") {
		return ValidationError{Account: name, Description: "account name contains two consecutive spaces"}
	}
	for i, seg := range strings.Split(name, ":") {
		if strings.TrimSpace(seg) == "" {
			return ValidationError{Account: name, Description: fmt.Sprintf("segment %d is empty", i+1)}
		}
		if seg != strings.TrimSpace(seg) {
			return ValidationError{Account: name, Description: fmt.Sprintf("segment %d has leading or trailing spaces", i+1)}
		}
	}
	return nil
}
