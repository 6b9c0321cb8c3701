package session

import (
	"context"
	"sync"

	"github.com/akarpov/blogbox/internal/client/api"
)

// Verifier checks a token against the identity endpoint and returns the
// profile it authorizes. api.HTTPClient satisfies this.
type Verifier interface {
	Me(ctx context.Context, token string) (api.UserProfile, error)
}

// Controller is the single owner of in-memory session state. Every
// mutation funnels through Login, Logout, or Verify; no other component
// writes the Store directly. The Store write always completes before the
// in-memory update, and the in-memory update before subscribers are
// notified, so a consumer reading the Store after observing a change sees
// consistent data.
//
// Overlapping Verify calls serialize on the controller mutex: at most one
// verification is in flight, and after each settles the Store and the
// in-memory session agree.
type Controller struct {
	store    Store
	verifier Verifier

	mu      sync.Mutex
	current Session
	subs    []func(Session)
}

// NewController builds a controller whose initial session is whatever the
// Store holds. A corrupted store reads as an empty session.
func NewController(ctx context.Context, store Store, verifier Verifier) (*Controller, error) {
	initial, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &Controller{store: store, verifier: verifier, current: initial}, nil
}

// Current returns a copy of the session as of now.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers fn to run after every session change. Notifications
// are delivered outside the controller lock, in subscription order, after
// the Store write has completed.
func (c *Controller) Subscribe(fn func(Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// Login persists the pair and then installs it in memory. The durable
// write happens first; if it fails nothing changes and the error is
// returned.
func (c *Controller) Login(ctx context.Context, token string, user api.UserProfile) error {
	c.mu.Lock()
	sess := Session{Token: token, User: user}
	if err := c.store.Write(ctx, sess); err != nil {
		c.mu.Unlock()
		return err
	}
	c.current = sess
	notify := c.notifyLocked(sess)
	c.mu.Unlock()

	notify()
	return nil
}

// Logout clears the Store and then the in-memory session. Calling it when
// already logged out is a no-op.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	if err := c.store.Clear(ctx); err != nil {
		c.mu.Unlock()
		return err
	}

	changed := !c.current.IsEmpty()
	c.current = Session{}

	var notify func()
	if changed {
		notify = c.notifyLocked(Session{})
	}
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	return nil
}

// Verify reconciles the persisted credential with the server and reports
// whether the visitor is authenticated. It reads the token from the Store
// rather than from memory, so out-of-band edits to the storage medium are
// honored.
//
//   - no stored token: memory is cleared if non-empty, returns false.
//   - verifier rejects: Store and memory are cleared, returns false.
//   - verifier accepts: memory (and the stored user copy) are overwritten
//     only when the fetched profile differs by value, so an unchanged
//     session triggers no downstream updates. Returns true.
//
// Verify never fails outward: every failure is folded into the
// unauthenticated transition.
func (c *Controller) Verify(ctx context.Context) bool {
	c.mu.Lock()

	stored, err := c.store.Read(ctx)
	if err != nil || stored.IsEmpty() {
		notify := c.clearLocked(ctx, false)
		c.mu.Unlock()
		notify()
		return false
	}

	user, err := c.verifier.Me(ctx, stored.Token)
	if err != nil {
		notify := c.clearLocked(ctx, true)
		c.mu.Unlock()
		notify()
		return false
	}

	fresh := Session{Token: stored.Token, User: user}
	var notify func()
	if !c.current.Equal(fresh) {
		// The Store already holds this token; only the cached user copy
		// can be stale.
		if err := c.store.Write(ctx, fresh); err != nil {
			notify := c.clearLocked(ctx, true)
			c.mu.Unlock()
			notify()
			return false
		}
		c.current = fresh
		notify = c.notifyLocked(fresh)
	}
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
	return true
}

// clearLocked wipes the in-memory session (and optionally the Store) and
// returns the pending notification. Callers must hold the mutex.
func (c *Controller) clearLocked(ctx context.Context, clearStore bool) func() {
	if clearStore {
		_ = c.store.Clear(ctx)
	}
	if c.current.IsEmpty() {
		return func() {}
	}
	c.current = Session{}
	return c.notifyLocked(Session{})
}

// notifyLocked snapshots the subscriber list under the lock and returns a
// closure that delivers the notification once the lock is released.
func (c *Controller) notifyLocked(s Session) func() {
	subs := make([]func(Session), len(c.subs))
	copy(subs, c.subs)
	return func() {
		for _, fn := range subs {
			fn(s)
		}
	}
}
