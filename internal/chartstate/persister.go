package chartstate

import (
	"sync"
	"time"

	"github.com/alexisbeaulieu97/tradeboard/internal/logger"
	"github.com/alexisbeaulieu97/tradeboard/internal/viewstate"
)

// DefaultQuietPeriod is how long chart interactions must pause before the
// state is written.
const DefaultQuietPeriod = 500 * time.Millisecond

// Timer is a scheduled call that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d.
type AfterFunc func(d time.Duration, fn func()) Timer

func realAfterFunc(d time.Duration, fn func()) Timer { return time.AfterFunc(d, fn) }

// Option configures a Persister.
type Option func(*Persister)

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) Option {
	return func(p *Persister) {
		if d > 0 {
			p.quiet = d
		}
	}
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(p *Persister) {
		if fn != nil {
			p.after = fn
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Persister) { p.log = log }
}

// Persister writes one symbol's chart state after a burst of interactions
// settles. Each notification cancels the pending write and schedules a new
// one carrying the latest snapshot.
type Persister struct {
	store     *viewstate.Store
	namespace string
	quiet     time.Duration
	after     AfterFunc
	log       *logger.Logger

	mu      sync.Mutex
	pending Timer
	gen     uint64
	stopped bool

	// saving is held for the duration of a write.
	saving sync.Mutex
}

// NewPersister binds a persister to symbolID's namespace.
func NewPersister(store *viewstate.Store, symbolID string, opts ...Option) *Persister {
	p := &Persister{
		store:     store,
		namespace: viewstate.ChartStateKey(symbolID),
		quiet:     DefaultQuietPeriod,
		after:     realAfterFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Component("chartstate").WithFields(map[string]any{"namespace": p.namespace})
	return p
}

// Namespace returns the storage key the persister writes.
func (p *Persister) Namespace() string { return p.namespace }

// Load returns the saved state. Missing or malformed state reports false.
func (p *Persister) Load() (ViewState, bool) {
	var state ViewState
	if !p.store.Decode(p.namespace, &state) {
		return ViewState{}, false
	}
	if state.ChartKind != "" && !state.ChartKind.Valid() {
		p.log.Warn("ignoring saved chart kind " + string(state.ChartKind))
		state.ChartKind = ""
	}
	if state.DateRange != nil && state.DateRange.End < state.DateRange.Start {
		state.DateRange = nil
	}
	return state, true
}

// Notify snapshots w now and schedules the write.
func (p *Persister) Notify(w Widget) {
	state := Snapshot(w.GetOptions())

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.pending != nil {
		p.pending.Stop()
	}
	p.gen++
	gen := p.gen
	p.pending = p.after(p.quiet, func() { p.fire(gen, state) })
}

// Pending reports whether a write is scheduled.
func (p *Persister) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Stop cancels the pending write and waits for one already running. Later
// notifications are ignored, so the store can be closed once Stop returns.
func (p *Persister) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.gen++
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	p.mu.Unlock()

	p.saving.Lock()
	p.saving.Unlock()
}

func (p *Persister) fire(gen uint64, state ViewState) {
	p.saving.Lock()
	defer p.saving.Unlock()

	p.mu.Lock()
	if p.stopped || gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.pending = nil
	p.mu.Unlock()

	if err := p.store.Set(p.namespace, nil, state); err == nil {
		p.log.Debug("chart state saved")
	}
}
