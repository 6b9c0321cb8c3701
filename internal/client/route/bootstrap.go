package route

import (
	"context"
	"sync"
)

// Outcome is the tri-state result of the bootstrap verification. It
// exists, rather than a plain boolean, so the root route can hold its
// redirect decision until the answer is in instead of flashing a default
// that a moment later reverses.
type Outcome int

const (
	Pending Outcome = iota
	Authenticated
	Unauthenticated
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "pending"
	}
}

// sessionVerifier is the slice of the session controller the resolver
// needs.
type sessionVerifier interface {
	Verify(ctx context.Context) bool
}

// Resolver drives the one-time startup verification. Its state machine is
// Pending -> Authenticated | Unauthenticated; both non-pending states are
// terminal for the lifetime of the process.
type Resolver struct {
	verifier sessionVerifier

	once sync.Once
	mu   sync.Mutex
	out  Outcome
}

func NewResolver(v sessionVerifier) *Resolver {
	return &Resolver{verifier: v, out: Pending}
}

// Outcome reports the current state without triggering verification.
func (r *Resolver) Outcome() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

// Resolve runs Verify exactly once, no matter how many callers race into
// it, and returns the settled outcome. A panic inside verification counts
// as Unauthenticated; a visitor must never be stranded in Pending.
func (r *Resolver) Resolve(ctx context.Context) Outcome {
	r.once.Do(func() {
		out := Unauthenticated

		func() {
			defer func() {
				_ = recover()
			}()
			if r.verifier.Verify(ctx) {
				out = Authenticated
			}
		}()

		r.mu.Lock()
		r.out = out
		r.mu.Unlock()
	})

	return r.Outcome()
}

// RootRedirect maps the current outcome to the root route's decision.
// While Pending it reports hold=true and no target: the caller renders
// nothing rather than a premature redirect.
func (r *Resolver) RootRedirect() (target Route, hold bool) {
	switch r.Outcome() {
	case Authenticated:
		return Blogs, false
	case Unauthenticated:
		return Login, false
	default:
		return "", true
	}
}
