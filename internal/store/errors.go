package store

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes the application reacts to.
const (
	codeUndefinedTable  = "42P01"
	codeUniqueViolation = "23505"
)

var ErrNotFound = errors.New("record not found")

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUndefinedTable reports a "relation does not exist" failure, raised when an optional
// table such as activity_logs was never created.
func IsUndefinedTable(err error) bool {
	return pqCode(err) == codeUndefinedTable
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}
