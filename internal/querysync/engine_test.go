package querysync

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/filter"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

type replaceCall struct {
	at    time.Duration
	query string
}

type recordingLocation struct {
	mu    sync.Mutex
	clock *manualClock
	calls []replaceCall
	err   error
	// during runs inside Replace, before it returns
	during func()
}

func (l *recordingLocation) Replace(query string) error {
	l.mu.Lock()
	l.calls = append(l.calls, replaceCall{at: l.clock.Now(), query: query})
	during := l.during
	l.mu.Unlock()
	if during != nil {
		during()
	}
	return l.err
}

func (l *recordingLocation) Calls() []replaceCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]replaceCall(nil), l.calls...)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func inventory() []*models.Vehicle {
	return []*models.Vehicle{
		{ID: "1", Title: "Opel Corsa", Brand: "Opel", Model: "Corsa", Year: intPtr(2020), Price: floatPtr(10000)},
		{ID: "2", Title: "VW Golf GTI", Brand: "VW", Model: "Golf", Year: intPtr(2022), Price: floatPtr(8000)},
		{ID: "3", Title: "VW Golf Variant", Brand: "VW", Model: "Golf", Year: intPtr(2017), Price: floatPtr(12000)},
	}
}

func viewIDs(e *Engine) []string {
	var out []string
	for _, v := range e.View() {
		out = append(out, v.ID)
	}
	return out
}

func newTestEngine(t *testing.T, query string, opts ...Option) (*Engine, *manualClock, *recordingLocation) {
	t.Helper()
	clock := &manualClock{}
	loc := &recordingLocation{clock: clock}
	e := New(inventory(), loc, query, append([]Option{WithClock(clock)}, opts...)...)
	t.Cleanup(e.Close)
	return e, clock, loc
}

func TestHydrateFromQuery(t *testing.T) {
	e, _, loc := newTestEngine(t, "?brand=VW&sort=price-asc")

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []string{"VW"}, e.Criteria().Brands)
	assert.Equal(t, []string{"2", "3"}, viewIDs(e))
	assert.Empty(t, loc.Calls(), "hydrating never writes the URL")

	brands := e.Options().Brands
	require.Len(t, brands, 2, "options come from the full inventory")
}

func TestDebouncedSyncCommitsLastEdit(t *testing.T) {
	e, clock, loc := newTestEngine(t, "")

	e.Edit(func(c *filter.Criteria) { c.Query = "g" })
	clock.Advance(100 * time.Millisecond)
	e.Edit(func(c *filter.Criteria) { c.Query = "golf" })
	clock.Advance(50 * time.Millisecond)
	e.Edit(func(c *filter.Criteria) { c.Query = "golf gti" })

	assert.Equal(t, Editing, e.State())
	assert.Equal(t, []string{"2"}, viewIDs(e), "the list follows edits without waiting")

	clock.Advance(249 * time.Millisecond)
	assert.Empty(t, loc.Calls())

	clock.Advance(time.Millisecond)
	calls := loc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 400*time.Millisecond, calls[0].at)
	assert.Equal(t, "?q=golf+gti&sort=newest", calls[0].query)
	assert.Equal(t, Idle, e.State())

	clock.Advance(time.Second)
	assert.Len(t, loc.Calls(), 1)
}

func TestNavigateOverridesPendingEdits(t *testing.T) {
	e, clock, loc := newTestEngine(t, "")

	e.Edit(func(c *filter.Criteria) { c.ToggleBrand("Opel") })
	clock.Advance(100 * time.Millisecond)
	e.Navigate("?brand=VW&sort=km")

	assert.Equal(t, Idle, e.State())
	assert.Equal(t, []string{"VW"}, e.Criteria().Brands)
	assert.Equal(t, filter.SortMileage, e.Criteria().Sort)

	clock.Advance(time.Second)
	assert.Empty(t, loc.Calls(), "navigation cancels the pending sync")
}

func TestEditDuringReplaceKeepsEditing(t *testing.T) {
	e, clock, loc := newTestEngine(t, "")
	loc.during = func() {
		loc.during = nil
		e.Edit(func(c *filter.Criteria) { c.Gearbox = "MANUAL_GEAR" })
	}

	e.Edit(func(c *filter.Criteria) { c.Query = "opel" })
	clock.Advance(250 * time.Millisecond)

	assert.Equal(t, Editing, e.State())
	clock.Advance(250 * time.Millisecond)

	calls := loc.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "?q=opel&sort=newest&gearbox=MANUAL_GEAR", calls[1].query)
	assert.Equal(t, Idle, e.State())
}

func TestFailedReplaceReturnsToIdle(t *testing.T) {
	e, clock, loc := newTestEngine(t, "")
	loc.err = errors.New("history unavailable")

	e.Edit(func(c *filter.Criteria) { c.Reset() })
	clock.Advance(DefaultWindow)

	assert.Len(t, loc.Calls(), 1)
	assert.Equal(t, Idle, e.State())
}

func TestOnChangeAndClose(t *testing.T) {
	var states []State
	e, clock, loc := newTestEngine(t, "", WithOnChange(func(s Snapshot) {
		states = append(states, s.State)
	}), WithWindow(100*time.Millisecond))

	e.Edit(func(c *filter.Criteria) { c.MaxPrice = "9000" })
	assert.Equal(t, []string{"2"}, viewIDs(e))
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []State{Idle, Editing, Idle}, states)

	e.Edit(func(c *filter.Criteria) { c.MaxPrice = "" })
	e.Close()
	clock.Advance(time.Second)
	assert.Len(t, loc.Calls(), 1)

	e.Edit(func(c *filter.Criteria) { c.Query = "ignored" })
	assert.Empty(t, e.Criteria().Query)
}

func TestEditDoesNotLeakCriteria(t *testing.T) {
	e, _, _ := newTestEngine(t, "?brand=Opel")

	before := e.Criteria()
	e.Edit(func(c *filter.Criteria) { c.ToggleBrand("VW") })

	assert.Equal(t, []string{"Opel"}, before.Brands)
	assert.Equal(t, []string{"Opel", "VW"}, e.Criteria().Brands)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "hydrating", Hydrating.String())
	assert.Equal(t, "syncing", Syncing.String())
	assert.Equal(t, "unknown", State(42).String())
}
