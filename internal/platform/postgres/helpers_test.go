package postgres

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func expectNextSequence(mock sqlmock.Sqlmock, name string, id int64) {
	mock.ExpectQuery(`UPDATE counters SET seq = seq \+ 1 WHERE name = \$1 RETURNING seq`).
		WithArgs(name).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(id))
}
