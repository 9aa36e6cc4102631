package sqlite

import "strings"

// isUniqueViolation reports whether err is a unique or primary-key
// constraint violation. The check is a conservative string match so this
// package does not depend on driver-specific error types; it covers the
// modernc driver's "UNIQUE constraint failed" and the generic
// "constraint failed" forms.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "constraint failed")
}
