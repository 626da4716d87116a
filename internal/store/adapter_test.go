package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAdapter(t *testing.T, opts ...AdapterOption) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	opts = append([]AdapterOption{WithRetryDelay(time.Millisecond)}, opts...)
	return NewAdapter(sqlx.NewDb(db, "sqlite3"), opts...), mock
}

func TestExecuteRejectsUnsafeStatement(t *testing.T) {
	a, mock := newMockAdapter(t)

	_, err := a.Execute(context.Background(), "DROP TABLE patients")
	require.ErrorIs(t, err, ErrUnsafeStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRejectsEmptyStatement(t *testing.T) {
	a, _ := newMockAdapter(t)

	_, err := a.Execute(context.Background(), "")
	require.ErrorIs(t, err, ErrNoQuery)
}

func TestExecuteMaterializesRows(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT name, age FROM patients WHERE age > ?").
		WithArgs(40).
		WillReturnRows(sqlmock.NewRows([]string{"name", "age"}).
			AddRow("Grace Kim", 52).
			AddRow([]byte("Omar Haddad"), 47))

	rs, err := a.Execute(context.Background(), "SELECT name, age FROM patients WHERE age > ?", 40)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, rs.Columns)
	require.Len(t, rs.Rows, 2)
	// Byte slices from the driver come back as strings.
	assert.Equal(t, "Omar Haddad", rs.Rows[1][0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteStripsTrailingSemicolon(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM patients").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(200))

	rs, err := a.Execute(context.Background(), "SELECT COUNT(*) FROM patients;")
	require.NoError(t, err)
	assert.False(t, rs.Empty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteRetriesOnLock(t *testing.T) {
	a, mock := newMockAdapter(t)
	locked := errors.New("database is locked")

	mock.ExpectQuery("SELECT COUNT(*) FROM patients").WillReturnError(locked)
	mock.ExpectQuery("SELECT COUNT(*) FROM patients").WillReturnError(locked)
	mock.ExpectQuery("SELECT COUNT(*) FROM patients").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(200))

	rs, err := a.Execute(context.Background(), "SELECT COUNT(*) FROM patients")
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteGivesUpAfterRetries(t *testing.T) {
	a, mock := newMockAdapter(t)
	locked := errors.New("database is locked")

	for i := 0; i < lockRetries; i++ {
		mock.ExpectQuery("SELECT COUNT(*) FROM patients").WillReturnError(locked)
	}

	_, err := a.Execute(context.Background(), "SELECT COUNT(*) FROM patients")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteSafeModeMissingTable(t *testing.T) {
	a, mock := newMockAdapter(t, WithSafeMode())

	mock.ExpectQuery("SELECT COUNT(*) FROM patients").
		WillReturnError(errors.New("no such table: patients"))

	rs, err := a.Execute(context.Background(), "SELECT COUNT(*) FROM patients")
	require.NoError(t, err)
	assert.True(t, rs.Empty())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteMissingTableWithoutSafeMode(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT COUNT(*) FROM patients").
		WillReturnError(errors.New("no such table: patients"))

	_, err := a.Execute(context.Background(), "SELECT COUNT(*) FROM patients")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecuteHonorsContextDuringRetry(t *testing.T) {
	a, mock := newMockAdapter(t, WithRetryDelay(time.Second))

	mock.ExpectQuery("SELECT COUNT(*) FROM patients").
		WillReturnError(errors.New("database is locked"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := a.Execute(ctx, "SELECT COUNT(*) FROM patients")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUserMessageStripsSQLFragment(t *testing.T) {
	err := errors.New(`syntax error near "DROP TABLE patients"`)
	msg := UserMessage(err)
	assert.Equal(t, "syntax error", msg)
	assert.NotContains(t, msg, "DROP")
}

func TestUserMessagePassThrough(t *testing.T) {
	assert.Equal(t, "database is locked", UserMessage(errors.New("database is locked")))
	assert.Equal(t, "", UserMessage(nil))
}
