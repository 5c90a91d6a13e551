package refresh

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/table"
)

type fetchCall struct {
	category device.Category
	sort     table.SortConfig
}

// fakeProvider serves records sorted server-side, with per-category
// failures and an optional gate that blocks fetches for one sort key.
type fakeProvider struct {
	mu       sync.Mutex
	records  []device.Record
	fail     map[device.Category]error
	calls    []fetchCall
	gateKey  string
	gate     chan struct{}
	gateSeen chan struct{}
}

func newFakeProvider(records []device.Record) *fakeProvider {
	return &fakeProvider{records: records, fail: map[device.Category]error{}}
}

func (f *fakeProvider) FetchDevices(ctx context.Context, category device.Category, sort table.SortConfig) ([]device.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{category: category, sort: sort})
	records := device.CloneAll(f.records)
	err := f.fail[category]
	gate, gateSeen := f.gate, f.gateSeen
	gated := gate != nil && sort.Key == f.gateKey
	f.mu.Unlock()

	if gated {
		close(gateSeen)
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if sort.Key != "" {
		records = table.Sort(records, table.DefaultFields(), sort)
	}
	return records, nil
}

func (f *fakeProvider) setRecords(records []device.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = records
}

func (f *fakeProvider) setFail(category device.Category, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, category)
		return
	}
	f.fail[category] = err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) lastCall(category device.Category) (fetchCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].category == category {
			return f.calls[i], true
		}
	}
	return fetchCall{}, false
}

func shifted(records []device.Record, offset int) []device.Record {
	out := device.CloneAll(records)
	for i := range out {
		out[i].ID += offset
	}
	return out
}

func rowIDs(records []device.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func newController(t *testing.T, p provider.Provider, mutate func(*Options)) *Controller {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = logger.Noop()
	if mutate != nil {
		mutate(&opts)
	}
	c, err := New(p, opts)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, DefaultOptions())
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.Tables = append(DefaultTables(), DefaultTables()[0])
	_, err = New(newFakeProvider(nil), opts)
	assert.ErrorContains(t, err, "duplicate table")

	opts = DefaultOptions()
	opts.Sorts = map[device.Category]table.SortConfig{device.CategoryOverview: {Key: "bogus"}}
	_, err = New(newFakeProvider(nil), opts)
	assert.ErrorContains(t, err, "not a column")
}

func TestLoad(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Summary(device.CategoryOverview))

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.False(t, c.LastUpdate().IsZero())
	assert.Equal(t, 4, p.callCount())

	for _, tc := range c.Tables() {
		pg := c.Pagination(tc.Category)
		assert.Equal(t, 1, pg.Page)
		assert.Equal(t, 3, pg.TotalPages)
		assert.Equal(t, 15, pg.TotalItems)
		assert.Len(t, c.VisibleRows(tc.Category), 5)
		require.NotNil(t, c.Summary(tc.Category))

		call, ok := p.lastCall(tc.Category)
		require.True(t, ok)
		assert.Equal(t, tc.DefaultSort, call.sort, "server mode passes the table's sort")
	}

	top := c.VisibleRows(device.CategoryOverview)[0]
	assert.Equal(t, 98, top.DeviceScoreValue())
}

func TestLoad_AllOrNothing(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))
	before := map[device.Category][]int{}
	for _, tc := range c.Tables() {
		before[tc.Category] = rowIDs(c.Records(tc.Category))
	}

	p.setRecords(shifted(device.Catalog(), 100))
	p.setFail(device.CategoryPerformance, stderrors.New("connection reset"))

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProvider))
	assert.Equal(t, StateError, c.State())
	assert.Contains(t, errors.Reason(c.Err()), "connection reset")

	for _, tc := range c.Tables() {
		assert.Equal(t, before[tc.Category], rowIDs(c.Records(tc.Category)),
			"%s must not show data from the successful fetches", tc.Category)
	}
}

func TestLoad_InitialFailureThenRetry(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	p.setFail(device.CategoryFeatures, errors.NewProviderError("test", stderrors.New("boom")))
	c := newController(t, p, nil)

	require.Error(t, c.Load(context.Background()))
	assert.Equal(t, StateError, c.State())
	for _, tc := range c.Tables() {
		assert.Empty(t, c.VisibleRows(tc.Category))
	}

	p.setFail(device.CategoryFeatures, nil)
	require.NoError(t, c.Retry(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.Nil(t, c.Err())
	assert.Len(t, c.VisibleRows(device.CategoryFeatures), 5)
}

func TestRefresh_ResetsPage(t *testing.T) {
	c := newController(t, newFakeProvider(device.Catalog()), nil)
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.RequestPage(device.CategoryOverview, 3))

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, 1, c.Pagination(device.CategoryOverview).Page)
}

func TestRequestPage(t *testing.T) {
	c := newController(t, newFakeProvider(device.Catalog()), nil)
	require.NoError(t, c.Load(context.Background()))

	assert.True(t, c.RequestPage(device.CategoryPerformance, 2))
	assert.False(t, c.RequestPage(device.CategoryPerformance, 4))
	assert.False(t, c.RequestPage(device.CategoryPerformance, 0))
	assert.Equal(t, 2, c.Pagination(device.CategoryPerformance).Page)
	assert.Equal(t, 1, c.Pagination(device.CategoryOverview).Page, "tables are independent")
	assert.False(t, c.RequestPage("pricing", 1))
}

func TestRequestSort_ServerMode(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.RequestPage(device.CategoryOverview, 2))
	calls := p.callCount()

	require.NoError(t, c.RequestSort(context.Background(), device.CategoryOverview, "deviceScore"))
	assert.Equal(t, calls+1, p.callCount(), "only the sorted table is refetched")

	cfg := c.SortConfig(device.CategoryOverview)
	assert.Equal(t, table.SortConfig{Key: "deviceScore", Direction: table.Asc}, cfg)
	call, _ := p.lastCall(device.CategoryOverview)
	assert.Equal(t, cfg, call.sort)
	assert.Equal(t, 1, c.Pagination(device.CategoryOverview).Page)
	assert.Equal(t, 78, c.VisibleRows(device.CategoryOverview)[0].DeviceScoreValue())
	assert.False(t, c.Loading(device.CategoryOverview))
	assert.Equal(t, StateReady, c.State())

	assert.Equal(t, table.SortConfig{Key: "greenScore", Direction: table.Desc},
		c.SortConfig(device.CategorySustainability), "other tables keep their sort")
}

func TestRequestSort_UnknownKeyAndTable(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))
	calls := p.callCount()

	assert.NoError(t, c.RequestSort(context.Background(), device.CategoryOverview, "latency"))
	assert.Equal(t, calls, p.callCount())
	assert.Error(t, c.RequestSort(context.Background(), "pricing", "score"))
}

func TestRequestSort_StaleResponseDropped(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))

	p.mu.Lock()
	p.gateKey = "score"
	p.gate = make(chan struct{})
	p.gateSeen = make(chan struct{})
	gate, seen := p.gate, p.gateSeen
	p.mu.Unlock()

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.RequestSort(context.Background(), device.CategoryOverview, "score")
	}()
	<-seen
	assert.True(t, c.Loading(device.CategoryOverview))
	assert.Equal(t, "deviceScore", c.SortConfig(device.CategoryOverview).Key, "sort is committed with its data")
	assert.Equal(t, table.SortConfig{Key: "score", Direction: table.Desc}, c.RequestedSort(device.CategoryOverview))
	assert.Equal(t, StateReady, c.State(), "sort reloads don't block the dashboard")

	require.NoError(t, c.RequestSort(context.Background(), device.CategoryOverview, "greenScore"))
	close(gate)
	require.NoError(t, <-firstDone)

	assert.Equal(t, table.SortConfig{Key: "greenScore", Direction: table.Desc}, c.SortConfig(device.CategoryOverview))
	rows := c.Records(device.CategoryOverview)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].GreenScore, rows[i].GreenScore, "newer sort wins")
	}
	assert.False(t, c.Loading(device.CategoryOverview))
}

func TestRequestSort_FailureKeepsData(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.RequestPage(device.CategoryPerformance, 2))
	before := rowIDs(c.Records(device.CategoryPerformance))
	sortBefore := c.SortConfig(device.CategoryPerformance)

	p.setFail(device.CategoryPerformance, stderrors.New("timeout"))
	err := c.RequestSort(context.Background(), device.CategoryPerformance, "latency")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrProvider))
	assert.Equal(t, before, rowIDs(c.Records(device.CategoryPerformance)))
	assert.Equal(t, sortBefore, c.SortConfig(device.CategoryPerformance), "sort label matches the rows shown")
	assert.Equal(t, sortBefore, c.RequestedSort(device.CategoryPerformance))
	assert.Equal(t, 2, c.Pagination(device.CategoryPerformance).Page, "page is kept")
	assert.Error(t, c.TableErr(device.CategoryPerformance))
	assert.Equal(t, StateReady, c.State())

	// A later sort starts from the active sort, not the failed one.
	p.setFail(device.CategoryPerformance, nil)
	require.NoError(t, c.RequestSort(context.Background(), device.CategoryPerformance, "latency"))
	assert.Equal(t, table.SortConfig{Key: "latency", Direction: table.Desc}, c.SortConfig(device.CategoryPerformance))
	assert.Equal(t, 1, c.Pagination(device.CategoryPerformance).Page)
	assert.NoError(t, c.TableErr(device.CategoryPerformance))
}

func TestRequestSort_LocalMode(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, func(o *Options) { o.Mode = table.ModeLocal })
	require.NoError(t, c.Load(context.Background()))

	call, _ := p.lastCall(device.CategoryOverview)
	assert.Equal(t, table.SortConfig{}, call.sort, "local mode fetches unsorted")
	assert.Equal(t, 98, c.VisibleRows(device.CategoryOverview)[0].DeviceScoreValue(), "sorted locally")

	calls := p.callCount()
	require.NoError(t, c.RequestSort(context.Background(), device.CategoryOverview, "name"))
	assert.Equal(t, calls, p.callCount(), "no fetch in local mode")
	assert.Equal(t, "BLR-CZ234416IO", c.VisibleRows(device.CategoryOverview)[0].Name)
	assert.Equal(t, table.ModeLocal, c.Mode())
}

func TestRefreshBackground_PreservesSortAndPage(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))

	require.NoError(t, c.RequestSort(context.Background(), device.CategorySustainability, "sustainability.carbonReduction"))
	require.True(t, c.RequestPage(device.CategoryOverview, 3))
	require.True(t, c.RequestPage(device.CategorySustainability, 2))
	sortBefore := c.SortConfig(device.CategorySustainability)

	p.setRecords(shifted(device.Catalog(), 100))
	ran, err := c.RefreshBackground(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, 3, c.Pagination(device.CategoryOverview).Page)
	assert.Equal(t, 2, c.Pagination(device.CategorySustainability).Page)
	assert.Equal(t, sortBefore, c.SortConfig(device.CategorySustainability))
	assert.Greater(t, c.VisibleRows(device.CategoryOverview)[0].ID, 100, "new data swapped in")

	call, _ := p.lastCall(device.CategorySustainability)
	assert.Equal(t, sortBefore, call.sort)
}

func TestRefreshBackground_ClampsPage(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.RequestPage(device.CategoryOverview, 3))

	p.setRecords(device.Catalog()[:7])
	_, err := c.RefreshBackground(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Pagination(device.CategoryOverview).Page)
}

func TestRefreshBackground_FailureKeepsStaleData(t *testing.T) {
	buf := logger.NewBufferLogger()
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, func(o *Options) { o.Logger = buf })
	require.NoError(t, c.Load(context.Background()))
	before := rowIDs(c.Records(device.CategoryOverview))
	updated := c.LastUpdate()

	p.setRecords(shifted(device.Catalog(), 100))
	p.setFail(device.CategoryOverview, stderrors.New("503"))

	ran, err := c.RefreshBackground(context.Background())
	assert.True(t, ran)
	require.Error(t, err)
	assert.Equal(t, StateReady, c.State(), "background failures don't interrupt")
	assert.Nil(t, c.Err())
	assert.Error(t, c.BackgroundErr())
	assert.Equal(t, before, rowIDs(c.Records(device.CategoryOverview)))
	assert.Equal(t, updated, c.LastUpdate())
	assert.True(t, buf.HasLevel("warn"))

	p.setFail(device.CategoryOverview, nil)
	_, err = c.RefreshBackground(context.Background())
	require.NoError(t, err)
	assert.Nil(t, c.BackgroundErr())
}

func TestRefreshBackground_Skipped(t *testing.T) {
	p := newFakeProvider(device.Catalog())
	c := newController(t, p, nil)

	ran, err := c.RefreshBackground(context.Background())
	assert.False(t, ran, "not ready yet")
	assert.NoError(t, err)

	require.NoError(t, c.Load(context.Background()))
	c.SetBackground(false)
	assert.False(t, c.Background())
	ran, _ = c.RefreshBackground(context.Background())
	assert.False(t, ran, "disabled")

	c.SetBackground(true)
	p.setFail(device.CategoryOverview, stderrors.New("down"))
	require.Error(t, c.Load(context.Background()))
	ran, _ = c.RefreshBackground(context.Background())
	assert.False(t, ran, "error state waits for a retry")
}

func TestRate(t *testing.T) {
	c := newController(t, newFakeProvider(device.Catalog()), nil)
	rec := device.Record{Score: 99, FeatureScore: 70, Latency: 0.05, Name: "x"}

	assert.Equal(t, metrics.TierExcellent, c.Rate(device.CategoryPerformance, "score", rec), "fixed bands before load")

	require.NoError(t, c.Load(context.Background()))
	summary := c.Summary(device.CategoryPerformance)
	require.NotNil(t, summary)
	assert.Equal(t, metrics.TierExcellent, c.Rate(device.CategoryPerformance, "latency", rec))
	assert.Equal(t, metrics.TierAverage, c.Rate(device.CategoryFeatures, "featureScore", rec), "features use absolute bands")
	assert.Equal(t, metrics.Tier(""), c.Rate(device.CategoryOverview, "name", rec))
	assert.NotEmpty(t, c.Insights(device.CategoryPerformance))
}

type reportingProvider struct {
	*fakeProvider
}

func (reportingProvider) Source(device.Category) provider.Source { return provider.SourceFallback }

func TestSource(t *testing.T) {
	c := newController(t, reportingProvider{newFakeProvider(device.Catalog())}, nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, provider.SourceFallback, c.Source(device.CategoryOverview))

	plain := newController(t, newFakeProvider(device.Catalog()), nil)
	require.NoError(t, plain.Load(context.Background()))
	assert.Equal(t, provider.SourceUnknown, plain.Source(device.CategoryOverview))
}

func TestOnChange(t *testing.T) {
	var mu sync.Mutex
	changes := 0
	c := newController(t, newFakeProvider(device.Catalog()), func(o *Options) {
		o.OnChange = func() {
			mu.Lock()
			changes++
			mu.Unlock()
		}
	})
	require.NoError(t, c.Load(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, changes, 2, "loading and ready")
}

func TestStartStop_NoLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := newFakeProvider(device.Catalog())
	c := newController(t, p, func(o *Options) { o.Interval = 5 * time.Millisecond })

	c.Start(context.Background())
	c.Start(context.Background()) // second start is a no-op

	require.Eventually(t, func() bool { return c.State() == StateReady }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return p.callCount() >= 8 }, time.Second, time.Millisecond,
		"background refresh runs on the ticker")

	c.Stop()
	c.Stop()

	calls := p.callCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, p.callCount(), "no refresh after Stop")
}

func TestStart_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	c := newController(t, newFakeProvider(device.Catalog()), func(o *Options) { o.Interval = time.Hour })
	c.Start(ctx)
	require.Eventually(t, func() bool { return c.State() == StateReady }, time.Second, time.Millisecond)

	cancel()
	c.Stop()
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "backgroundRefreshing", StateBackgroundRefreshing.String())
	assert.Equal(t, "State(42)", State(42).String())
}
