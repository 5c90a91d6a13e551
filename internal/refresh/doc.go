// Package refresh coordinates loading the dashboard tables.
//
// A Controller moves through idle, loading, ready, backgroundRefreshing and
// error. Foreground loads (initial, manual, retry) fetch every table
// concurrently and apply all results or none. Sort reloads refetch a single
// table. Background refreshes run on a ticker, keep the displayed data
// until the swap, and preserve each table's sort and page.
//
// Stale responses are dropped two ways: a cycle counter discards results
// from loads superseded by a newer foreground load, and a per-table sort
// generation discards sort responses overtaken by a newer sort request.
package refresh
