package querysync

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/filter"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

// DefaultWindow is the quiet period before the query string is replaced
const DefaultWindow = 250 * time.Millisecond

// State is the engine's position in the edit/sync cycle
type State int

const (
	Hydrating State = iota
	Idle
	Editing
	Syncing
)

func (s State) String() string {
	switch s {
	case Hydrating:
		return "hydrating"
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Syncing:
		return "syncing"
	default:
		return "unknown"
	}
}

// Location is the page URL the criteria are mirrored to. Replace swaps
// the query string without adding a history entry.
type Location interface {
	Replace(query string) error
}

// Snapshot is a consistent copy of the engine state
type Snapshot struct {
	State    State
	Criteria filter.Criteria
	Query    string
	Vehicles []*models.Vehicle
}

type options struct {
	clock    Clock
	window   time.Duration
	onChange func(Snapshot)
}

// Option configures an Engine
type Option func(*options)

// WithClock sets the clock driving the debounce timer
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithWindow sets the quiet period. Non-positive values keep the default.
func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithOnChange registers a callback that receives a snapshot after every
// recomputation and every completed sync
func WithOnChange(fn func(Snapshot)) Option {
	return func(o *options) { o.onChange = fn }
}

// Engine owns the filter criteria of one page instance
type Engine struct {
	mu        sync.Mutex
	inventory []*models.Vehicle
	options   filter.Options
	criteria  filter.Criteria
	view      []*models.Vehicle
	state     State
	closed    bool

	location Location
	debounce *Debouncer
	onChange func(Snapshot)
}

// New hydrates an engine from the page's current query string. The
// option lists are computed once from the full inventory.
func New(inventory []*models.Vehicle, location Location, rawQuery string, opts ...Option) *Engine {
	o := options{clock: RealClock, window: DefaultWindow}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		inventory: inventory,
		options:   filter.BuildOptions(inventory),
		state:     Hydrating,
		location:  location,
		debounce:  NewDebouncer(o.clock, o.window),
		onChange:  o.onChange,
	}

	e.mu.Lock()
	e.criteria = filter.ParseQuery(rawQuery)
	e.recomputeLocked()
	e.state = Idle
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
	return e
}

// Edit applies fn to the criteria, recomputes the visible list and
// restarts the sync timer
func (e *Engine) Edit(fn func(c *filter.Criteria)) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	next := e.criteria.Clone()
	fn(&next)
	e.criteria = next
	e.recomputeLocked()
	e.state = Editing
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.debounce.Schedule(e.sync)
	e.notify(snap)
}

// Navigate re-hydrates from an external URL change. In-page edits that
// were not yet synced are discarded.
func (e *Engine) Navigate(rawQuery string) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.debounce.Cancel()
	e.criteria = filter.ParseQuery(rawQuery)
	e.recomputeLocked()
	e.state = Idle
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

func (e *Engine) sync() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.state = Syncing
	query := e.criteria.Encode()
	e.mu.Unlock()

	if err := e.location.Replace(query); err != nil {
		log.Warn("Query string sync failed", "query", query, "err", err)
	}

	e.mu.Lock()
	// An edit during Replace already moved us back to Editing.
	if e.state == Syncing {
		e.state = Idle
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(snap)
}

// Close cancels any pending sync. Later edits are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.debounce.Cancel()
}

// State returns the current state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Criteria returns a copy of the current criteria
func (e *Engine) Criteria() filter.Criteria {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria.Clone()
}

// View returns the filtered and sorted vehicles
func (e *Engine) View() []*models.Vehicle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*models.Vehicle(nil), e.view...)
}

// Options returns the option lists of the full inventory
func (e *Engine) Options() filter.Options {
	return e.options
}

// Snapshot returns the whole state at once
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) recomputeLocked() {
	e.view = filter.Apply(e.inventory, e.criteria)
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		State:    e.state,
		Criteria: e.criteria.Clone(),
		Query:    e.criteria.Encode(),
		Vehicles: append([]*models.Vehicle(nil), e.view...),
	}
}

func (e *Engine) notify(s Snapshot) {
	if e.onChange != nil {
		e.onChange(s)
	}
}
