package querysql

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidIdentifier is matched by every IdentifierError.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var (
	identPattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	sqlTypePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_ (),.'-]*$`)
)

// IdentifierError reports a name that cannot be interpolated into SQL.
type IdentifierError struct {
	Kind string // "table", "column" or "type"
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid %s name %q", e.Kind, e.Name)
}

// Is lets errors.Is(err, ErrInvalidIdentifier) match.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// ValidateIdentifier checks a table or column name against the allow-list
// of ASCII letters, digits and underscores, not starting with a digit.
func ValidateIdentifier(name string) error {
	if !identPattern.MatchString(name) {
		return &IdentifierError{Kind: "column", Name: name}
	}
	return nil
}

func validateTable(name string) error {
	if !identPattern.MatchString(name) {
		return &IdentifierError{Kind: "table", Name: name}
	}
	return nil
}

func validateColumns(names []string) error {
	for _, n := range names {
		if err := ValidateIdentifier(n); err != nil {
			return err
		}
	}
	return nil
}

// validateType accepts store-native type declarations such as INTEGER,
// "INTEGER NOT NULL", "VARCHAR(32)", "INTEGER DEFAULT -1" or
// "TEXT DEFAULT 'x'". Statement separators, comments and unbalanced quotes
// are rejected.
func validateType(t string) error {
	if !sqlTypePattern.MatchString(t) || strings.Contains(t, "--") || strings.Count(t, "'")%2 != 0 {
		return &IdentifierError{Kind: "type", Name: t}
	}
	return nil
}
