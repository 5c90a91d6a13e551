package refresh

import (
	"time"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/provider"
	"github.com/rileyhilliard/stordash/internal/table"
)

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the reason for StateError, or nil.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// BackgroundErr returns the last background refresh failure. It is
// cleared by the next successful refresh.
func (c *Controller) BackgroundErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bgErr
}

// LastUpdate returns when data was last installed by a full cycle.
func (c *Controller) LastUpdate() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUpdate
}

// Tables returns the table configurations in display order.
func (c *Controller) Tables() []TableConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TableConfig, len(c.order))
	for i, cat := range c.order {
		out[i] = c.tables[cat].cfg
	}
	return out
}

func (c *Controller) table(category device.Category) (*tableState, bool) {
	ts, ok := c.tables[category]
	return ts, ok
}

// VisibleRows returns the current page of a table.
func (c *Controller) VisibleRows(category device.Category) []device.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.tbl.VisibleRows()
	}
	return nil
}

// Records returns every record of a table in display order.
func (c *Controller) Records(category device.Category) []device.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.tbl.Records()
	}
	return nil
}

// SortConfig returns a table's active sort.
func (c *Controller) SortConfig(category device.Category) table.SortConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.tbl.SortConfig()
	}
	return table.SortConfig{}
}

// RequestedSort returns the sort a table is reloading with, or its active
// sort when no reload is in flight.
func (c *Controller) RequestedSort(category device.Category) table.SortConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts, ok := c.table(category)
	if !ok {
		return table.SortConfig{}
	}
	if ts.pending != nil {
		return *ts.pending
	}
	return ts.tbl.SortConfig()
}

// Pagination returns a table's page state.
func (c *Controller) Pagination(category device.Category) table.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.tbl.Pagination()
	}
	return table.Pagination{}
}

// RequestPage moves a table to page n. Out-of-range pages are ignored.
func (c *Controller) RequestPage(category device.Category, n int) bool {
	c.mu.Lock()
	ts, ok := c.table(category)
	changed := ok && ts.tbl.SetPage(n)
	c.mu.Unlock()
	if changed {
		c.notify()
	}
	return changed
}

// Summary returns a table's collection summary, nil before the first load
// or for an empty collection.
func (c *Controller) Summary(category device.Category) *metrics.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.summary
	}
	return nil
}

// Rate classifies record's value in column key using the table's
// convention. Non-numeric or missing values have no tier.
func (c *Controller) Rate(category device.Category, key string, record device.Record) metrics.Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts, ok := c.table(category)
	if !ok {
		return ""
	}
	v := ts.tbl.Fields().Get(record, key)
	if v.Kind != table.KindNumber {
		return ""
	}
	return ts.rater.Rate(key, v.Num, ts.summary)
}

// Insights compares a table's summary with the industry benchmarks.
func (c *Controller) Insights(category device.Category) []metrics.Insight {
	return c.comparator.Insights(category, c.Summary(category))
}

// Source reports where a table's data came from.
func (c *Controller) Source(category device.Category) provider.Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.source
	}
	return provider.SourceUnknown
}

// Loading reports whether a sort reload is in flight for a table.
func (c *Controller) Loading(category device.Category) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.loading
	}
	return false
}

// TableErr returns the last sort reload failure for a table.
func (c *Controller) TableErr(category device.Category) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.table(category); ok {
		return ts.err
	}
	return nil
}
