package session

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Save(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC)

	record := &Record{ID: "s1", Payload: []byte(`{"items":[]}`), CartHash: "abc", StepID: "checkout", UpdatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wizard_sessions (id,payload,cart_hash,step_id,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6) ON CONFLICT (id) DO UPDATE")).
		WithArgs("s1", record.Payload, "abc", "checkout", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SaveFails(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("INSERT INTO wizard_sessions").WillReturnError(errors.New("connection reset"))

	err := repo.Save(context.Background(), &Record{ID: "s1"})
	require.ErrorIs(t, err, ErrExecQuery)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Date(2030, time.March, 1, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "payload", "cart_hash", "step_id", "created_at", "updated_at"}).
		AddRow("s1", []byte(`{"items":[]}`), "abc", "period", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, payload, cart_hash, step_id, created_at, updated_at FROM wizard_sessions WHERE id = $1")).
		WithArgs("s1").
		WillReturnRows(rows)

	record, err := repo.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "period", record.StepID)
	assert.JSONEq(t, `{"items":[]}`, string(record.Payload))
}

func TestRepository_GetNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("SELECT (.+) FROM wizard_sessions").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wizard_sessions WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wizard_sessions WHERE id = $1")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "s1"), ErrSessionNotFound)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := newMock(t)
	before := time.Date(2030, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wizard_sessions WHERE updated_at < $1")).
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteOlderThan(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
