package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/dmitrijs2005/memberclient/internal/logging"
)

// State is the controller's view of the device session.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Authenticator exchanges credentials for a session with the backend.
type Authenticator interface {
	Login(ctx context.Context, userID, password string) (*models.Session, error)
}

// Event is an application lifecycle notification.
type Event int

const (
	// EventForeground is sent when the application becomes active again.
	EventForeground Event = iota + 1
	EventBackground
)

// Listener is called after every state change.
type Listener func(from, to State)

// Controller owns the login state. It reads and writes the Store and never
// holds its lock across I/O.
//
// CheckStatus and Login are not ordered against each other: a CheckStatus
// that starts before a Login saves may finish after it and report the
// state it read.
type Controller struct {
	store  Store
	auth   Authenticator
	logger logging.Logger

	mu        sync.Mutex
	state     State
	current   *models.Session
	listeners map[int]Listener
	nextID    int
}

type ControllerOption func(*Controller)

func WithLogger(l logging.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewController(store Store, auth Authenticator, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:     store,
		auth:      auth,
		logger:    logging.Nop{},
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckStatus derives the state from the store. It makes no network calls.
func (c *Controller) CheckStatus(ctx context.Context) (State, error) {
	sess, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error(ctx, "failed to load session", "error", err)
		c.set(ctx, StateAnonymous, nil)
		return StateAnonymous, err
	}
	if sess.Valid() {
		c.set(ctx, StateAuthenticated, sess)
		return StateAuthenticated, nil
	}
	c.set(ctx, StateAnonymous, nil)
	return StateAnonymous, nil
}

// Login authenticates userID (case-insensitive) and persists the resulting
// session. Backend errors are returned unchanged; on failure an undetermined
// state becomes anonymous and an existing session is left in place.
func (c *Controller) Login(ctx context.Context, userID, password string) (*models.Session, error) {
	userID = common.NormalizeID(userID)

	sess, err := c.auth.Login(ctx, userID, password)
	if err != nil {
		c.logger.Info(ctx, "login failed", "user_id", userID, "error", err)
		c.mu.Lock()
		unknown := c.state == StateUnknown
		c.mu.Unlock()
		if unknown {
			c.set(ctx, StateAnonymous, nil)
		}
		return nil, err
	}

	if sess.UserID == "" {
		sess.UserID = userID
	}
	sess.UserID = common.NormalizeID(sess.UserID)

	if err := c.store.Save(ctx, sess); err != nil {
		c.logger.Error(ctx, "failed to save session", "user_id", userID, "error", err)
		return nil, err
	}

	c.set(ctx, StateAuthenticated, sess)
	return sess, nil
}

// Logout clears the store and becomes anonymous even if clearing fails.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.store.Clear(ctx)
	if err != nil {
		c.logger.Error(ctx, "failed to clear session", "error", err)
	}
	c.set(ctx, StateAnonymous, nil)
	return err
}

// Expire is called when the request layer has already cleared a rejected
// session.
func (c *Controller) Expire(ctx context.Context) {
	c.set(ctx, StateAnonymous, nil)
}

func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns a copy of the session the controller last saw, or nil.
func (c *Controller) Current() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	s := *c.current
	return &s
}

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Watch re-checks the session on every EventForeground read from events
// until ctx is done, events is closed or stop is called. stop waits for the
// watcher to exit.
func (c *Controller) Watch(ctx context.Context, events <-chan Event) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if ev != EventForeground {
					continue
				}
				if _, err := c.CheckStatus(ctx); err != nil {
					c.logger.Warn(ctx, "status check on resume failed", "error", err)
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (c *Controller) set(ctx context.Context, to State, sess *models.Session) {
	c.mu.Lock()
	from := c.state
	c.state = to
	if sess != nil {
		s := *sess
		c.current = &s
	} else {
		c.current = nil
	}
	var notify []Listener
	if from != to {
		notify = make([]Listener, 0, len(c.listeners))
		for _, l := range c.listeners {
			notify = append(notify, l)
		}
	}
	c.mu.Unlock()

	if from == to {
		return
	}
	c.logger.Info(ctx, "session state changed", "from", from.String(), "to", to.String())
	for _, l := range notify {
		l(from, to)
	}
}
