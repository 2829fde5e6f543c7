package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "member.db")
	db, err := client.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db), path
}

func sampleSession() *models.Session {
	return &models.Session{
		Token:    "eyJ.token.sig",
		UserID:   "TRT1001",
		FullName: "JANE DOE",
		Email:    "jane@example.com",
		Phone:    "9876543210",
	}
}

func TestSQLiteStore_SaveThenLoad(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	want := sampleSession()

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TRT1001", id)
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSession()))
	next := &models.Session{Token: "other", UserID: "TRT2002"}
	require.NoError(t, s.Save(ctx, next))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestSQLiteStore_SaveRejectsTokenless(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Save(ctx, &models.Session{UserID: "TRT1"}), ErrInvalidSession)
	assert.ErrorIs(t, s.Save(ctx, nil), ErrInvalidSession)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_ClearIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleSession()))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSQLiteStore_UnusableValueIsAbsent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	repo := metadata.NewSQLiteRepository(s.db)

	for _, raw := range []string{`{not json`, `{"userId":"TRT1"}`, `{"token":""}`} {
		require.NoError(t, repo.Set(ctx, common.SessionKey, raw))
		got, err := s.Load(ctx)
		require.NoError(t, err, raw)
		assert.Nil(t, got, raw)
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleSession()))
	require.NoError(t, s.db.Close())

	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := NewSQLiteStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}

func TestSQLiteStore_SaveRollsBackOnPartialFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO metadata").
		WithArgs(common.SessionKey, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO metadata").
		WithArgs(common.UserIDKey, "TRT1001").
		WillReturnError(boom)
	mock.ExpectRollback()

	err = NewSQLiteStore(db).Save(context.Background(), sampleSession())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_LoadPropagatesDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM metadata").
		WithArgs(common.SessionKey).
		WillReturnError(errors.New("locked"))

	got, err := NewSQLiteStore(db).Load(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
