// Package sqlguard is the crude input filter for the raw read-query entry
// point. It allow-lists SELECT/WITH prefixes, rejects write/DDL keywords as
// substrings anywhere in the text, and blocks multi-statement queries. It is
// deliberately not a SQL parser; the blocked-keyword scan over-rejects
// keywords appearing inside string literals or identifiers.
package sqlguard

import (
	"fmt"
	"strings"

	"github.com/classsight/insight-engine/pkg/apperrors"
)

// blockedKeywords are rejected anywhere in the query text, even inside
// string literals or identifiers.
var blockedKeywords = []string{
	"INSERT",
	"UPDATE",
	"DELETE",
	"DROP",
	"ALTER",
	"CREATE",
	"TRUNCATE",
	"GRANT",
	"REVOKE",
	"EXEC",
	"EXECUTE",
}

// Check validates a raw read query. It returns the normalized query (trailing
// semicolon stripped) or an error wrapping ErrUnsafeQuery explaining the
// rejection.
func Check(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty query", apperrors.ErrUnsafeQuery)
	}

	normalized := stripTrailingSemicolon(trimmed)

	upper := strings.ToUpper(normalized)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", fmt.Errorf("%w: only SELECT and WITH queries are allowed", apperrors.ErrUnsafeQuery)
	}

	for _, keyword := range blockedKeywords {
		if strings.Contains(upper, keyword) {
			return "", fmt.Errorf("%w: blocked keyword %s", apperrors.ErrUnsafeQuery, keyword)
		}
	}

	if hasSemicolonOutsideStrings(normalized) {
		return "", fmt.Errorf("%w: multiple statements are not allowed", apperrors.ErrUnsafeQuery)
	}

	return normalized, nil
}

// hasSemicolonOutsideStrings reports whether the query contains a semicolon
// outside of string literals.
func hasSemicolonOutsideStrings(query string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prevChar := rune(0)

	for _, char := range query {
		switch state {
		case stateNormal:
			switch char {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			// Handles both backslash escape (\') and SQL doubled quote ('').
			if char == '\'' && prevChar != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if char == '"' && prevChar != '\\' {
				state = stateNormal
			}
		}
		prevChar = char
	}

	return false
}

// stripTrailingSemicolon removes one trailing semicolon and surrounding
// whitespace.
func stripTrailingSemicolon(query string) string {
	query = strings.TrimRight(query, " \t\n\r")
	if strings.HasSuffix(query, ";") {
		query = strings.TrimSuffix(query, ";")
		query = strings.TrimRight(query, " \t\n\r")
	}
	return query
}
