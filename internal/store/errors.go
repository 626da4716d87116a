package store

import (
	"errors"
	"strings"
)

// ErrUnsafeStatement is returned when a statement fails the safety
// check. Only read queries ever reach the database.
var ErrUnsafeStatement = errors.New("only read queries are allowed")

// ErrNoQuery is returned when Execute is called with an empty statement.
var ErrNoQuery = errors.New("no query to execute")

// UserMessage reduces a database error to something fit for end users.
// SQLite syntax errors embed the offending token after "near"; the
// fragment can echo attacker-controlled input, so everything from
// "near" onward is dropped.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.Index(msg, "near"); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
		msg = strings.TrimSuffix(msg, ":")
	}
	if msg == "" {
		msg = "query failed"
	}
	return msg
}

// isLocked reports whether err is SQLite lock contention.
func isLocked(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database is locked")
}

// isMissingTable reports whether err is a missing-table failure.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
