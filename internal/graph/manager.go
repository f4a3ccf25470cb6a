// Package graph owns the dashboard's application state: the set of active
// graphs, their load status, the display color pool, and the selected view
// mode. All mutation goes through the Manager; the normalizer and statistics
// code stay pure and are called from here.
package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roowus/graphisizer/internal/config"
	"github.com/roowus/graphisizer/internal/series"
	"github.com/roowus/graphisizer/internal/wca"
)

// Status is a graph's lifecycle state.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ViewMode selects how the combined table/chart values are transformed.
type ViewMode string

const (
	ViewRaw     ViewMode = "raw"     // absolute values
	ViewUnit    ViewMode = "unit"    // change from previous point, same unit
	ViewPercent ViewMode = "percent" // percent change from previous point
)

// ErrViewUnavailable is returned when the requested view mode is not
// meaningful for the active series set.
var ErrViewUnavailable = errors.New("view mode unavailable for active series")

// Loader fetches and normalizes one graph selection.
type Loader interface {
	LoadSeries(ctx context.Context, spec series.GraphSpec) (*series.Series, error)
}

// Graph is one tracked selection with its load state. Returned by value from
// the Manager; callers treat Points as read-only.
type Graph struct {
	ID         int              `json:"id"`
	Spec       series.GraphSpec `json:"spec"`
	Color      string           `json:"color"`
	Status     Status           `json:"status"`
	Error      string           `json:"error,omitempty"`
	PersonName string           `json:"person_name,omitempty"`
	Points     []series.DataPoint `json:"points,omitempty"`

	// generation guards against stale fetches: a completion only lands if
	// the graph's generation still matches the one the fetch started with.
	generation int
}

// Series converts a ready graph to a series for the statistics engine.
func (g *Graph) Series() *series.Series {
	return &series.Series{
		WCAID:      g.Spec.WCAID,
		PersonName: g.PersonName,
		Event:      g.Spec.Event,
		ResultType: g.Spec.ResultType,
		Points:     g.Points,
	}
}

// Manager owns the graph set. Safe for concurrent use.
type Manager struct {
	loader Loader
	logger *slog.Logger

	mu     sync.Mutex
	graphs map[int]*Graph
	order  []int
	nextID int
	view   ViewMode

	loads sync.WaitGroup
}

// NewManager creates an empty manager in raw view mode.
func NewManager(loader Loader, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		loader: loader,
		logger: logger,
		graphs: make(map[int]*Graph),
		nextID: 1,
		view:   ViewRaw,
	}
}

// Add registers a new graph and starts its fetch in the background. The
// returned snapshot is in the loading state; poll Get or call Wait.
func (m *Manager) Add(spec series.GraphSpec) (Graph, error) {
	if err := validateSpec(spec); err != nil {
		return Graph{}, err
	}

	m.mu.Lock()
	g := &Graph{
		ID:     m.nextID,
		Spec:   spec,
		Color:  m.nextColorLocked(),
		Status: StatusLoading,
	}
	m.nextID++
	m.graphs[g.ID] = g
	m.order = append(m.order, g.ID)
	snapshot := *g
	gen := g.generation
	m.mu.Unlock()

	m.startLoad(g.ID, gen, spec)
	return snapshot, nil
}

// Edit replaces a graph's selection and refetches. The generation bump makes
// any in-flight fetch for the old selection land dead.
func (m *Manager) Edit(id int, spec series.GraphSpec) (Graph, error) {
	if err := validateSpec(spec); err != nil {
		return Graph{}, err
	}

	m.mu.Lock()
	g, ok := m.graphs[id]
	if !ok {
		m.mu.Unlock()
		return Graph{}, fmt.Errorf("graph %d not found", id)
	}
	g.generation++
	g.Spec = spec
	g.Status = StatusLoading
	g.Error = ""
	g.PersonName = ""
	g.Points = nil
	snapshot := *g
	gen := g.generation
	m.mu.Unlock()

	m.startLoad(id, gen, spec)
	return snapshot, nil
}

// Remove deletes a graph, returning its color to the pool.
func (m *Manager) Remove(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graphs[id]; !ok {
		return false
	}
	delete(m.graphs, id)
	for i, gid := range m.order {
		if gid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Get returns a snapshot of one graph.
func (m *Manager) Get(id int) (Graph, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.graphs[id]
	if !ok {
		return Graph{}, false
	}
	return *g, true
}

// List returns snapshots of all graphs in insertion order.
func (m *Manager) List() []Graph {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Graph, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.graphs[id])
	}
	return out
}

// ReadySeries returns the series of all ready graphs, in insertion order.
// This is the statistics engine's input set.
func (m *Manager) ReadySeries() []*series.Series {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readySeriesLocked()
}

func (m *Manager) readySeriesLocked() []*series.Series {
	var out []*series.Series
	for _, id := range m.order {
		g := m.graphs[id]
		if g.Status == StatusReady {
			out = append(out, g.Series())
		}
	}
	return out
}

// View returns the current view mode.
func (m *Manager) View() ViewMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// CheckView reports whether the compatibility rules allow the mode for the
// current ready set.
func (m *Manager) CheckView(mode ViewMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return validateView(mode, series.CheckCompat(m.readySeriesLocked()))
}

// SetView switches the display mode, rejecting modes the compatibility
// checker rules out for the active series set. The check and the assignment
// happen under one lock so a load landing in between cannot stale the check.
func (m *Manager) SetView(mode ViewMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := validateView(mode, series.CheckCompat(m.readySeriesLocked())); err != nil {
		return err
	}
	m.view = mode
	return nil
}

func validateView(mode ViewMode, report series.CompatReport) error {
	switch mode {
	case ViewRaw, ViewUnit, ViewPercent:
	default:
		return fmt.Errorf("unknown view mode %q", mode)
	}
	if mode == ViewRaw && report.Incompatible {
		return fmt.Errorf("%w: %s mixes unit families %v", ErrViewUnavailable, mode, report.Families)
	}
	if mode == ViewPercent && !report.PercentAllowed {
		return fmt.Errorf("%w: percent change is not meaningful for %v", ErrViewUnavailable, report.Families)
	}
	return nil
}

// Wait blocks until all in-flight fetches settle. Used by the CLI and tests.
func (m *Manager) Wait() {
	m.loads.Wait()
}

// State encodes the active selections and view mode in the shareable form.
func (m *Manager) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	specs := make([]series.GraphSpec, 0, len(m.order))
	for _, id := range m.order {
		specs = append(specs, m.graphs[id].Spec)
	}
	return series.EncodeState(specs, string(m.view))
}

// Restore replaces the graph set from an encoded state string, refetching
// every series. An encoded view must name a known mode; it is applied as
// stored, without a compatibility check, because the restored set has not
// loaded yet — the view and table endpoints re-check on use.
func (m *Manager) Restore(encoded string) error {
	specs, view, err := series.ParseState(encoded)
	if err != nil {
		return err
	}
	if view != "" {
		switch ViewMode(view) {
		case ViewRaw, ViewUnit, ViewPercent:
		default:
			return fmt.Errorf("unknown view mode %q", view)
		}
	}

	m.mu.Lock()
	m.graphs = make(map[int]*Graph)
	m.order = nil
	if view != "" {
		m.view = ViewMode(view)
	}
	m.mu.Unlock()

	for _, spec := range specs {
		if _, err := m.Add(spec); err != nil {
			return err
		}
	}
	return nil
}

// startLoad launches the background fetch for one (graph, generation) pair.
func (m *Manager) startLoad(id, gen int, spec series.GraphSpec) {
	m.loads.Add(1)
	go func() {
		defer m.loads.Done()

		s, err := m.loader.LoadSeries(context.Background(), spec)

		m.mu.Lock()
		defer m.mu.Unlock()
		g, ok := m.graphs[id]
		if !ok || g.generation != gen {
			// Graph removed or edited while the fetch was in flight.
			m.logger.Debug("discarding stale fetch", "graph", id, "spec", spec.Encode())
			return
		}
		if err != nil {
			g.Status = StatusError
			if errors.Is(err, wca.ErrNotFound) {
				g.Error = fmt.Sprintf("competitor %s not found", spec.WCAID)
			} else {
				g.Error = fmt.Sprintf("failed to load: %v", err)
			}
			m.logger.Warn("graph load failed", "graph", id, "spec", spec.Encode(), "error", err)
			return
		}
		g.Status = StatusReady
		g.PersonName = s.PersonName
		g.Points = s.Points
		m.logger.Info("graph loaded", "graph", id, "spec", spec.Encode(), "points", len(s.Points))
	}()
}

func validateSpec(spec series.GraphSpec) error {
	if spec.WCAID == "" {
		return errors.New("wca id is required")
	}
	if !config.KnownEvent(spec.Event) {
		return fmt.Errorf("unknown event %q", spec.Event)
	}
	if !config.KnownResultType(string(spec.ResultType)) {
		return fmt.Errorf("unknown result type %q", spec.ResultType)
	}
	return nil
}
