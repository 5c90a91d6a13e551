package metrics

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/device"
)

func areas(s []Suggestion) []string {
	return lo.Map(s, func(x Suggestion, _ int) string { return x.Area })
}

func TestSuggestions_ReferenceValues(t *testing.T) {
	catalog := device.Catalog()
	top, weak := catalog[0], catalog[5]

	tests := []struct {
		name     string
		category device.Category
		record   device.Record
		want     []string
	}{
		{
			name:     "top device performs everywhere",
			category: device.CategoryPerformance,
			record:   top,
			want:     []string{"Performance Excellence Opportunities"},
		},
		{
			name:     "weak device performance gaps",
			category: device.CategoryPerformance,
			record:   weak,
			want: []string{
				"Overall Performance Optimization",
				"Read Performance Enhancement",
				"Write Performance Enhancement",
				"IOPS Optimization",
				"Throughput Optimization",
			},
		},
		{
			name:     "weak device overview gaps",
			category: device.CategoryOverview,
			record:   weak,
			want: []string{
				"Overall Device Performance",
				"Performance Score",
				"Feature Utilization",
			},
		},
		{
			name:     "top device sustainability",
			category: device.CategorySustainability,
			record:   top,
			want:     []string{"Sustainability Leadership Opportunities"},
		},
		{
			name:     "top device lacks a modern protocol",
			category: device.CategoryFeatures,
			record:   top,
			want:     []string{"Protocol Modernization"},
		},
		{
			name:     "second device has every capability",
			category: device.CategoryFeatures,
			record:   catalog[1],
			want:     []string{"Feature Excellence Opportunities"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggestions(tt.category, tt.record, nil)
			assert.Equal(t, tt.want, areas(got))
			for _, s := range got {
				assert.NotEmpty(t, s.Recommendations, s.Area)
			}
		})
	}
}

func TestSuggestions_MetricDetail(t *testing.T) {
	weak := device.Catalog()[5]

	got := Suggestions(device.CategoryPerformance, weak, nil)
	require.NotEmpty(t, got)
	assert.Equal(t, "score", got[0].Key)
	assert.Equal(t, 78.0, got[0].Value)
	assert.Equal(t, 82.0, got[0].Baseline)
}

func TestSuggestions_AgainstCollectionMeans(t *testing.T) {
	res := Aggregate(device.Catalog())
	require.NotNil(t, res.Summary)

	// The best device beats every mean.
	got := Suggestions(device.CategoryOverview, res.Enriched[0], res.Summary)
	assert.Equal(t, []string{"Optimization Opportunities"}, areas(got))

	// Device 7 trails the mean on its device score.
	got = Suggestions(device.CategoryOverview, res.Enriched[6], res.Summary)
	require.NotEmpty(t, got)
	assert.Equal(t, "Overall Device Performance", got[0].Area)
	assert.Equal(t, res.Summary.DeviceScore, got[0].Baseline)
}

func TestSuggestions_LatencyIsInverted(t *testing.T) {
	r := device.Catalog()[0]
	r.Latency = 0.5
	summary := &Summary{Latency: 0.3}

	got := Suggestions(device.CategoryPerformance, r, summary)
	require.Len(t, got, 1, "zero means fall back to reference values")
	assert.Equal(t, "Latency Reduction", got[0].Area)
	assert.Equal(t, 0.5, got[0].Value)
	assert.Equal(t, 0.3, got[0].Baseline)

	r.Latency = 0.2
	got = Suggestions(device.CategoryPerformance, r, summary)
	assert.Equal(t, []string{"Performance Excellence Opportunities"}, areas(got))
}

func TestSuggestions_SparseRecords(t *testing.T) {
	t.Run("no features block", func(t *testing.T) {
		r := device.Record{ID: 99, Name: "bare", FeatureScore: 90, Protocols: []string{"iSCSI"}}
		got := Suggestions(device.CategoryFeatures, r, nil)
		assert.Equal(t, []string{
			"Data Management Optimization",
			"Security Enhancement",
			"High Availability Setup",
			"Management and Integration",
		}, areas(got), "top-level protocols count")
	})

	t.Run("no sustainability block", func(t *testing.T) {
		r := device.Record{ID: 99, Name: "bare", GreenScore: 90}
		got := Suggestions(device.CategorySustainability, r, nil)
		assert.Equal(t, []string{"Sustainability Leadership Opportunities"}, areas(got),
			"missing metrics are skipped")
	})

	t.Run("unknown category", func(t *testing.T) {
		assert.Nil(t, Suggestions(device.Category("bogus"), device.Catalog()[0], nil))
	})
}

func TestSuggestionBaseline(t *testing.T) {
	assert.Equal(t, 82.0, SuggestionBaseline(nil, "score", 82))
	assert.Equal(t, 90.0, SuggestionBaseline(&Summary{Score: 90}, "score", 82))
	assert.Equal(t, 82.0, SuggestionBaseline(&Summary{}, "score", 82))
}
