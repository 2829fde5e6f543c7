// Package session keeps the device's single authenticated session: the
// durable store and the controller that drives the login state.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/dbx"
)

// ErrInvalidSession is returned by Save for a session without a token.
var ErrInvalidSession = errors.New("session has no token")

// Store persists the session across process restarts.
type Store interface {
	// Save replaces any previous session.
	Save(ctx context.Context, s *models.Session) error
	// Load returns nil, nil when no usable session is stored.
	Load(ctx context.Context) (*models.Session, error)
	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in the metadata table under two keys:
// the JSON-encoded session and the bare user id.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Save(ctx context.Context, sess *models.Session) error {
	if !sess.Valid() {
		return ErrInvalidSession
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionKey, string(data)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserIDKey, sess.UserID)
	})
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	data, ok, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, nil
	}
	if !sess.Valid() {
		return nil, nil
	}
	return &sess, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.SessionKey, common.UserIDKey)
}

// UserID returns the bare user id entry, empty when absent.
func (s *SQLiteStore) UserID(ctx context.Context) (string, error) {
	id, _, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.UserIDKey)
	return id, err
}
