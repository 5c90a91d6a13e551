// Package provider supplies device records to the refresh controller.
//
// Three implementations exist: Catalog serves the built-in device catalog,
// HTTP fetches from a remote device API, and Fallback wraps a primary
// provider and substitutes the catalog when the primary fails. Every
// implementation reports where its last answer came from through
// SourceReporter so that substituted data is never mistaken for live data.
package provider

import (
	"context"
	"sync"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/table"
)

// Provider fetches the records for one table category, sorted by sort when
// the implementation supports server-side sorting. Failures are returned
// as *errors.Error with code PROVIDER.
type Provider interface {
	FetchDevices(ctx context.Context, category device.Category, sort table.SortConfig) ([]device.Record, error)
}

// Source identifies where a category's records came from.
type Source string

const (
	SourceUnknown  Source = ""
	SourceLive     Source = "live"
	SourceCatalog  Source = "catalog"
	SourceFallback Source = "fallback"
)

// SourceReporter is implemented by providers that can tell which source
// answered the last fetch for a category.
type SourceReporter interface {
	Source(category device.Category) Source
}

// Health is the result of a provider health check.
type Health struct {
	Status  string `json:"status"`
	Mode    string `json:"mode"`
	Devices int    `json:"devices,omitempty"`
}

// HealthChecker is implemented by providers that can report their health.
type HealthChecker interface {
	Health(ctx context.Context) (Health, error)
}

// sourceTracker records the last source per category.
type sourceTracker struct {
	mu      sync.RWMutex
	sources map[device.Category]Source
}

func (s *sourceTracker) set(c device.Category, src Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sources == nil {
		s.sources = make(map[device.Category]Source)
	}
	s.sources[c] = src
}

func (s *sourceTracker) get(c device.Category) Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources[c]
}
