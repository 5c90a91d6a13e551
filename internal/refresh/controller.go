package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/table"
)

// DefaultInterval is the background refresh period.
const DefaultInterval = 30 * time.Second

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateBackgroundRefreshing
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateBackgroundRefreshing:
		return "backgroundRefreshing"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configure a Controller.
type Options struct {
	// Tables defaults to DefaultTables().
	Tables   []TableConfig
	PageSize int
	Mode     table.Mode
	// Sorts override the per-table default sort.
	Sorts      map[device.Category]table.SortConfig
	Interval   time.Duration
	Background bool
	Comparator metrics.Comparator
	Logger     logger.Logger
	// OnChange is called, outside the controller's lock, after every
	// observable state change.
	OnChange func()
}

// DefaultOptions returns options with background refresh enabled.
func DefaultOptions() Options {
	return Options{
		PageSize:   table.DefaultPageSize,
		Mode:       table.ModeServer,
		Interval:   DefaultInterval,
		Background: true,
		Comparator: metrics.DefaultComparator,
	}
}

type tableState struct {
	cfg     TableConfig
	tbl     *table.Table
	rater   metrics.Rater
	summary *metrics.Summary
	source  provider.Source
	loading bool
	err     error

	// pending is the sort a server-mode reload is fetching. The table keeps
	// its committed sort until that data lands.
	pending *table.SortConfig

	// gen counts sort reloads; applied is the gen whose data is installed.
	gen     uint64
	applied uint64
}

type fetched struct {
	records []device.Record
	source  provider.Source
}

// Controller coordinates loading, sorting and background refresh of the
// dashboard tables. All methods are safe for concurrent use.
type Controller struct {
	provider   provider.Provider
	opts       Options
	log        logger.Logger
	comparator metrics.Comparator

	mu         sync.Mutex
	state      State
	err        error
	bgErr      error
	lastUpdate time.Time
	foreground int
	order      []device.Category
	tables     map[device.Category]*tableState

	// cycle is bumped by every foreground load; results from older cycles
	// are dropped.
	cycle      *atomic.Uint64
	background *atomic.Bool

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a controller over p. Table configuration errors are returned
// here so nothing is validated at sort time.
func New(p provider.Provider, opts Options) (*Controller, error) {
	if p == nil {
		return nil, fmt.Errorf("refresh: provider is required")
	}
	if len(opts.Tables) == 0 {
		opts.Tables = DefaultTables()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Comparator == (metrics.Comparator{}) {
		opts.Comparator = metrics.DefaultComparator
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[refresh]")
	}

	c := &Controller{
		provider:   p,
		opts:       opts,
		log:        log,
		comparator: opts.Comparator,
		tables:     make(map[device.Category]*tableState, len(opts.Tables)),
		cycle:      atomic.NewUint64(0),
		background: atomic.NewBool(opts.Background),
	}

	for _, tc := range opts.Tables {
		if _, dup := c.tables[tc.Category]; dup {
			return nil, fmt.Errorf("refresh: duplicate table %q", tc.Category)
		}
		sort := tc.DefaultSort
		if override, ok := opts.Sorts[tc.Category]; ok && override.Key != "" {
			sort = override
		}
		tbl, err := table.New(table.Options{
			ID:          string(tc.Category),
			Columns:     tc.Columns,
			DefaultSort: sort,
			PageSize:    opts.PageSize,
			Mode:        opts.Mode,
		})
		if err != nil {
			return nil, err
		}
		c.order = append(c.order, tc.Category)
		c.tables[tc.Category] = &tableState{
			cfg:   tc,
			tbl:   tbl,
			rater: metrics.Rater{Convention: tc.Convention, Comparator: opts.Comparator},
		}
	}

	return c, nil
}

func (c *Controller) notify() {
	if c.opts.OnChange != nil {
		c.opts.OnChange()
	}
}

// Load fetches every table concurrently and installs the results only if
// all fetches succeed. On failure the controller enters StateError and
// keeps whatever was displayed before. Pages return to 1.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	cycle := c.cycle.Inc()
	c.state = StateLoading
	c.err = nil
	c.foreground++
	sorts, gens := c.snapshotLocked()
	c.mu.Unlock()
	c.notify()

	results, err := c.fetchAll(ctx, sorts)

	c.mu.Lock()
	c.foreground--
	if cycle != c.cycle.Load() {
		c.mu.Unlock()
		c.log.Debug("dropping results of superseded load %d", cycle)
		return nil
	}
	if err != nil {
		c.state = StateError
		c.err = err
		c.mu.Unlock()
		c.log.Error("load failed: %s", errors.Reason(err))
		c.notify()
		return err
	}
	c.applyLocked(results, gens, false)
	c.state = StateReady
	c.bgErr = nil
	c.lastUpdate = time.Now()
	c.mu.Unlock()

	c.log.Debug("loaded %d tables", len(results))
	c.notify()
	return nil
}

// Retry re-enters loading after an error.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Refresh is a user-triggered reload. It blocks like the initial load.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// RefreshBackground performs one background refresh if the controller is
// ready, background refresh is enabled and nothing else is in flight.
// Displayed data stays in place until the new data is swapped in; sorts
// and pages are kept. A failure keeps the stale data and is reported by
// BackgroundErr. The returned bool reports whether a refresh ran.
func (c *Controller) RefreshBackground(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state != StateReady || !c.background.Load() || c.foreground > 0 {
		c.mu.Unlock()
		return false, nil
	}
	c.state = StateBackgroundRefreshing
	cycle := c.cycle.Load()
	sorts, gens := c.snapshotLocked()
	c.mu.Unlock()
	c.notify()

	results, err := c.fetchAll(ctx, sorts)

	c.mu.Lock()
	if cycle != c.cycle.Load() {
		// A foreground load started meanwhile and owns the state now.
		c.mu.Unlock()
		return true, nil
	}
	c.state = StateReady
	if err != nil {
		c.bgErr = err
		c.mu.Unlock()
		c.log.Warn("background refresh failed, keeping current data: %s", errors.Reason(err))
		c.notify()
		return true, err
	}
	c.applyLocked(results, gens, true)
	c.bgErr = nil
	c.lastUpdate = time.Now()
	c.mu.Unlock()

	c.notify()
	return true, nil
}

// RequestSort applies a sort action to one table. In server mode only that
// table is refetched; its Loading flag is set meanwhile and the rest of the
// dashboard is untouched. Responses overtaken by a newer sort request are
// dropped. Unknown keys are ignored.
func (c *Controller) RequestSort(ctx context.Context, category device.Category, key string) error {
	c.mu.Lock()
	ts, ok := c.tables[category]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("unknown table %q", category)
	}
	if ts.tbl.Mode() == table.ModeLocal {
		_, changed := ts.tbl.SetSort(key)
		c.mu.Unlock()
		if changed {
			c.notify()
		}
		return nil
	}

	current := ts.tbl.SortConfig()
	if ts.pending != nil {
		current = *ts.pending
	}
	cfg, changed := ts.tbl.NextSort(current, key)
	if !changed {
		c.mu.Unlock()
		return nil
	}
	ts.gen++
	gen := ts.gen
	ts.pending = &cfg
	ts.loading = true
	c.foreground++
	c.mu.Unlock()
	c.notify()

	records, err := c.provider.FetchDevices(ctx, category, cfg)
	source := c.sourceOf(category)

	c.mu.Lock()
	c.foreground--
	if ts.gen != gen {
		c.mu.Unlock()
		c.log.Debug("dropping stale %s sort response", category)
		return nil
	}
	ts.loading = false
	ts.pending = nil
	if err != nil {
		// The table keeps its sort, page and rows.
		err = asProviderError(err)
		ts.err = err
		c.mu.Unlock()
		c.log.Warn("sort reload of %s failed: %s", category, errors.Reason(err))
		c.notify()
		return err
	}
	res := metrics.Aggregate(records)
	ts.tbl.CommitSort(cfg, res.Enriched)
	ts.summary = res.Summary
	ts.source = source
	ts.err = nil
	ts.applied = gen
	c.mu.Unlock()

	c.notify()
	return nil
}

// snapshotLocked captures the sort parameters and sort generations a
// refresh cycle is issued with.
func (c *Controller) snapshotLocked() (map[device.Category]table.SortConfig, map[device.Category]uint64) {
	sorts := make(map[device.Category]table.SortConfig, len(c.order))
	gens := make(map[device.Category]uint64, len(c.order))
	for _, cat := range c.order {
		ts := c.tables[cat]
		if ts.tbl.Mode() == table.ModeServer {
			sorts[cat] = ts.tbl.SortConfig()
		}
		gens[cat] = ts.gen
	}
	return sorts, gens
}

func (c *Controller) fetchAll(ctx context.Context, sorts map[device.Category]table.SortConfig) ([]fetched, error) {
	results := make([]fetched, len(c.order))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range c.order {
		sort := sorts[cat]
		g.Go(func() error {
			records, err := c.provider.FetchDevices(gctx, cat, sort)
			if err != nil {
				return err
			}
			results[i] = fetched{records: records, source: c.sourceOf(cat)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, asProviderError(err)
	}
	return results, nil
}

// applyLocked installs a cycle's results. A table whose sort changed after
// the cycle was issued, and whose sort reload already landed, keeps the
// newer data.
func (c *Controller) applyLocked(results []fetched, gens map[device.Category]uint64, background bool) {
	for i, cat := range c.order {
		ts := c.tables[cat]
		if ts.gen != gens[cat] && ts.applied == ts.gen {
			continue
		}
		res := metrics.Aggregate(results[i].records)
		if background {
			ts.tbl.Refresh(res.Enriched)
		} else {
			ts.tbl.Replace(res.Enriched)
		}
		ts.summary = res.Summary
		ts.source = results[i].source
		ts.err = nil
	}
}

func (c *Controller) sourceOf(category device.Category) provider.Source {
	if r, ok := c.provider.(provider.SourceReporter); ok {
		return r.Source(category)
	}
	return provider.SourceUnknown
}

func asProviderError(err error) error {
	if errors.IsCode(err, errors.ErrProvider) {
		return err
	}
	return errors.NewProviderError("the data provider", err)
}

// Start runs the initial load and then a background refresh every
// interval until ctx is canceled or Stop is called. Calling Start on a
// running controller does nothing.
func (c *Controller) Start(ctx context.Context) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

func (c *Controller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	_ = c.Load(ctx)

	ticker := time.NewTicker(c.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = c.RefreshBackground(ctx)
		}
	}
}

// Stop cancels the background loop and waits for it to exit.
func (c *Controller) Stop() {
	c.runMu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SetBackground enables or disables timed refreshes.
func (c *Controller) SetBackground(enabled bool) {
	c.background.Store(enabled)
	c.notify()
}

// Background reports whether timed refreshes are enabled.
func (c *Controller) Background() bool {
	return c.background.Load()
}

// Interval returns the background refresh period.
func (c *Controller) Interval() time.Duration {
	return c.opts.Interval
}

// Mode returns the sort mode shared by every table.
func (c *Controller) Mode() table.Mode {
	return c.opts.Mode
}
