package refresh

import (
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/table"
)

// TableConfig describes one dashboard table.
type TableConfig struct {
	Category device.Category
	// Columns are the sortable keys in display order.
	Columns     []string
	DefaultSort table.SortConfig
	// Rated columns are coloured by tier.
	Rated      []string
	Convention metrics.Convention
}

// DefaultTables returns the four dashboard tables in display order.
func DefaultTables() []TableConfig {
	return []TableConfig{
		{
			Category:    device.CategoryOverview,
			Columns:     []string{"name", "deviceScore", "score", "greenScore", "featureScore", "capacity", "price"},
			DefaultSort: table.SortConfig{Key: "deviceScore", Direction: table.Desc},
			Rated:       []string{"deviceScore", "score", "greenScore", "featureScore"},
			Convention:  metrics.ConventionBaseline,
		},
		{
			Category: device.CategorySustainability,
			Columns: []string{
				"name", "greenScore",
				"sustainability.powerEfficiency",
				"sustainability.carbonReduction",
				"sustainability.circularEconomy",
			},
			DefaultSort: table.SortConfig{Key: "greenScore", Direction: table.Desc},
			Rated: []string{
				"greenScore",
				"sustainability.powerEfficiency",
				"sustainability.carbonReduction",
				"sustainability.circularEconomy",
			},
			Convention: metrics.ConventionBaseline,
		},
		{
			Category:    device.CategoryPerformance,
			Columns:     []string{"name", "score", "readSpeed", "writeSpeed", "iops", "latency", "throughput"},
			DefaultSort: table.SortConfig{Key: "score", Direction: table.Desc},
			Rated:       []string{"score", "readSpeed", "writeSpeed", "iops", "latency", "throughput"},
			Convention:  metrics.ConventionBaseline,
		},
		{
			Category:    device.CategoryFeatures,
			Columns:     []string{"name", "featureScore", "dataReduction", "features.protocolCount", "capacity"},
			DefaultSort: table.SortConfig{Key: "featureScore", Direction: table.Desc},
			Rated:       []string{"featureScore"},
			Convention:  metrics.ConventionAbsolute,
		},
	}
}
