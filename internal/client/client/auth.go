package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/logging"
)

// SessionStore is the part of the persistent session store the
// authenticated client needs.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

// AuthClient sends requests with the bearer token of the stored session.
//
// It is the only component that clears the store in reaction to a failed
// call: when no session exists, and when the backend answers 401.
type AuthClient struct {
	http      *HTTPClient
	store     SessionStore
	onExpired func(ctx context.Context)
	logger    logging.Logger
}

type AuthOption func(*AuthClient)

// WithExpiredHandler registers fn to run after the store has been cleared
// because the session was missing or rejected.
func WithExpiredHandler(fn func(ctx context.Context)) AuthOption {
	return func(c *AuthClient) { c.onExpired = fn }
}

func NewAuthClient(h *HTTPClient, store SessionStore, opts ...AuthOption) *AuthClient {
	c := &AuthClient{http: h, store: store, logger: h.logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends r with the stored credentials. Without a session it fails with
// KindAuthExpired before any network I/O.
func (c *AuthClient) Do(ctx context.Context, r Request) ([]byte, error) {
	sess, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error(ctx, "failed to load session", "error", err)
		sess = nil
	}
	if !sess.Valid() {
		c.invalidate(ctx)
		return nil, authExpired(MsgNotAuthorized, 0, nil)
	}

	header := http.Header{}
	header.Set(common.AuthorizationHeaderName, common.BearerPrefix+sess.Token)

	body, err := c.http.send(ctx, r, header, true)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Status == http.StatusUnauthorized {
			c.logger.Warn(ctx, "session rejected by server", "user_id", sess.UserID, "path", r.Path)
			c.invalidate(ctx)
			return nil, authExpired(MsgSessionExpired, e.Status, nil)
		}
		return nil, err
	}
	return body, nil
}

func (c *AuthClient) invalidate(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear session", "error", err)
	}
	if c.onExpired != nil {
		c.onExpired(ctx)
	}
}
