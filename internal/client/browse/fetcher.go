// Package browse implements the filtered blog listing: an immediate
// category filter combined with a debounced author filter, coalesced into
// one outbound request per settled filter pair.
package browse

import (
	"context"
	"sync"
	"time"

	"github.com/akarpov/blogbox/internal/client/api"
)

// DefaultQuietPeriod is how long the author field must stay unchanged
// before its value settles and a fetch is issued.
const DefaultQuietPeriod = 1000 * time.Millisecond

// FetchFunc issues one list request for the given filter.
type FetchFunc func(ctx context.Context, filter api.ListFilter) ([]api.BlogSummary, error)

// Snapshot is the view state after a change: the current list, whether a
// fetch is outstanding, and the committed filter pair.
type Snapshot struct {
	Blogs    []api.BlogSummary
	Loading  bool
	Category string
	Author   string
}

// Fetcher tracks two filter inputs and keeps the listing in sync with
// them. The category commits immediately; the author commits only after
// the quiet period elapses with no further edits (each keystroke cancels
// the pending delay and schedules a new one). Every committed pair starts
// a fetch tagged with a generation number; responses from superseded
// generations are discarded, so a slow early response can never overwrite
// a fast later one.
type Fetcher struct {
	fetch    FetchFunc
	quiet    time.Duration
	onUpdate func(Snapshot)
	onError  func(error)

	mu            sync.Mutex
	category      string
	liveAuthor    string
	settledAuthor string
	timer         *time.Timer
	seq           uint64
	gen           uint64
	loading       bool
	blogs         []api.BlogSummary
	ctx           context.Context
}

// Option tweaks a Fetcher.
type Option func(*Fetcher)

// WithQuietPeriod overrides the debounce interval (tests use a short one).
func WithQuietPeriod(d time.Duration) Option {
	return func(f *Fetcher) { f.quiet = d }
}

// WithOnUpdate registers the callback run after every settled fetch.
func WithOnUpdate(fn func(Snapshot)) Option {
	return func(f *Fetcher) { f.onUpdate = fn }
}

// WithOnError registers the callback for transient fetch failures. The
// previous list is kept as-is; only the notification escapes.
func WithOnError(fn func(error)) Option {
	return func(f *Fetcher) { f.onError = fn }
}

func NewFetcher(fetch FetchFunc, opts ...Option) *Fetcher {
	f := &Fetcher{fetch: fetch, quiet: DefaultQuietPeriod}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start issues the first fetch with empty filters, mirroring the listing
// view's first mount.
func (f *Fetcher) Start(ctx context.Context) {
	f.mu.Lock()
	f.ctx = ctx
	f.refetchLocked()
	f.mu.Unlock()
}

// SetCategory commits the category immediately and refetches with the
// last settled author.
func (f *Fetcher) SetCategory(category string) {
	f.mu.Lock()
	if f.category == category {
		f.mu.Unlock()
		return
	}
	f.category = category
	f.refetchLocked()
	f.mu.Unlock()
}

// TypeAuthor records one edit of the author field. The pending delay, if
// any, is canceled and a new one scheduled; only the delay that survives
// uncanceled commits the settled value.
//
// timer.Stop alone is not enough: a callback that already fired is past
// stopping, and would otherwise observe this edit under the mutex and
// commit it with no quiet period at all. The sequence number closes that
// window; each edit invalidates every earlier delay, stopped or not.
func (f *Fetcher) TypeAuthor(author string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.liveAuthor = author
	f.seq++
	seq := f.seq
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.quiet, func() { f.settleAuthor(seq) })
}

// settleAuthor runs when a debounce delay survives the quiet period.
func (f *Fetcher) settleAuthor(seq uint64) {
	f.mu.Lock()
	if seq != f.seq {
		// a newer edit superseded this delay
		f.mu.Unlock()
		return
	}
	if f.liveAuthor == f.settledAuthor {
		// typed back to the committed value: the pair did not change
		f.mu.Unlock()
		return
	}
	f.settledAuthor = f.liveAuthor
	f.refetchLocked()
	f.mu.Unlock()
}

// Snapshot returns the current view state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Stop cancels any pending debounce delay and orphans in-flight fetches:
// their responses fail the generation check, so no callback runs after
// the view has gone away.
func (f *Fetcher) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.seq++
	f.gen++
	f.loading = false
}

func (f *Fetcher) snapshotLocked() Snapshot {
	return Snapshot{
		Blogs:    f.blogs,
		Loading:  f.loading,
		Category: f.category,
		Author:   f.settledAuthor,
	}
}

// refetchLocked starts a fetch for the committed pair under a fresh
// generation. Callers must hold the mutex.
func (f *Fetcher) refetchLocked() {
	f.gen++
	f.loading = true

	gen := f.gen
	ctx := f.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	filter := api.ListFilter{Category: f.category, Author: f.settledAuthor}

	go f.run(ctx, gen, filter)
}

func (f *Fetcher) run(ctx context.Context, gen uint64, filter api.ListFilter) {
	blogs, err := f.fetch(ctx, filter)

	f.mu.Lock()
	if gen != f.gen {
		// superseded by a newer filter pair; a fresher fetch owns the view
		f.mu.Unlock()
		return
	}
	f.loading = false
	if err == nil {
		f.blogs = blogs
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	if err != nil && f.onError != nil {
		f.onError(err)
	}
	if f.onUpdate != nil {
		f.onUpdate(snap)
	}
}
