package provider

import (
	"context"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
	"github.com/rileyhilliard/stordash/internal/logger"
	"github.com/rileyhilliard/stordash/internal/table"
)

// Fallback serves from primary and substitutes the catalog when primary
// fails. Substitution is logged and reported as SourceFallback.
type Fallback struct {
	primary Provider
	backup  *Catalog
	log     logger.Logger
	sources sourceTracker
}

// NewFallback wraps primary. A nil backup selects the built-in catalog.
func NewFallback(primary Provider, backup *Catalog, log logger.Logger) *Fallback {
	if backup == nil {
		backup = NewCatalog(nil)
	}
	if log == nil {
		log = logger.NewEnvLogger("[provider]")
	}
	return &Fallback{primary: primary, backup: backup, log: log}
}

func (f *Fallback) FetchDevices(ctx context.Context, category device.Category, sort table.SortConfig) ([]device.Record, error) {
	records, err := f.primary.FetchDevices(ctx, category, sort)
	if err == nil {
		src := SourceLive
		if r, ok := f.primary.(SourceReporter); ok && r.Source(category) != SourceUnknown {
			src = r.Source(category)
		}
		f.sources.set(category, src)
		return records, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	f.log.Warn("%s: using built-in catalog: %s", category, errors.Reason(err))
	records, backupErr := f.backup.FetchDevices(ctx, category, sort)
	if backupErr != nil {
		return nil, err
	}
	f.sources.set(category, SourceFallback)
	return records, nil
}

// Source reports SourceFallback for categories last served by the catalog.
func (f *Fallback) Source(category device.Category) Source {
	return f.sources.get(category)
}

// Health checks the primary provider.
func (f *Fallback) Health(ctx context.Context) (Health, error) {
	if hc, ok := f.primary.(HealthChecker); ok {
		return hc.Health(ctx)
	}
	return Health{Status: "healthy", Mode: "api"}, nil
}
