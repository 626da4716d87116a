// Package store provides the SQLite layer under the translator: opening
// and initializing the database, and a read-only execution adapter that
// refuses anything the safety validator does not clear.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// The adapter retries transient "database is locked" failures a fixed
// number of times and, in safe mode, turns missing-table errors into an
// empty result set so a half-initialized database degrades instead of
// erroring.
package store
