// Package dashboard implements the interactive device dashboard.
//
// The Model renders the tables owned by a refresh.Controller: a tab per
// table, the visible page with tier-colored cells, the sort marker, a
// benchmark insights panel and a per-device detail view. Controller state
// changes reach the running program through a Bridge.
package dashboard
