package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/device"
)

func TestAggregate_DeviceScore(t *testing.T) {
	records := []device.Record{
		{ID: 1, Score: 80, GreenScore: 70, FeatureScore: 91},
		{ID: 2, Score: 80, GreenScore: 70, FeatureScore: 91, DeviceScore: device.IntPtr(50)},
		{ID: 3, Score: 90, GreenScore: 90, FeatureScore: 91},
	}

	res := Aggregate(records)
	require.Len(t, res.Enriched, 3)

	assert.Equal(t, 80, res.Enriched[0].DeviceScoreValue(), "derived from round(mean)")
	assert.Equal(t, 50, res.Enriched[1].DeviceScoreValue(), "supplied value passes through")
	assert.Equal(t, 90, res.Enriched[2].DeviceScoreValue())

	for i, r := range res.Enriched {
		assert.Equal(t, records[i].ID, r.ID, "order preserved")
	}
	assert.False(t, records[0].HasDeviceScore(), "input not mutated")
}

func TestAggregate_DeviceScoreProperty(t *testing.T) {
	for _, r := range device.Catalog() {
		r.DeviceScore = nil
		want := int(math.Round((r.Score + r.GreenScore + r.FeatureScore) / 3))
		assert.Equal(t, want, DeviceScore(r), "device %d", r.ID)
		assert.Equal(t, want, Enrich(r).DeviceScoreValue(), "device %d", r.ID)
	}
}

func TestAggregate_Summary(t *testing.T) {
	records := []device.Record{
		{
			ID: 1, Score: 80, GreenScore: 70, FeatureScore: 90,
			ReadSpeed: 1000, Latency: 0.1, DataReduction: "6:1",
			Protocols:      []string{"NFS", "SMB"},
			Sustainability: &device.Sustainability{PowerEfficiency: 80, CarbonReduction: 20, CircularEconomy: 70},
		},
		{
			ID: 2, Score: 91, GreenScore: 75, FeatureScore: 85,
			ReadSpeed: 1501, Latency: 0.3, DataReduction: "n/a",
			Protocols: []string{"FC"},
		},
	}

	s := Aggregate(records).Summary
	require.NotNil(t, s)

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 82.0, s.DeviceScore) // 80 and 84
	assert.Equal(t, 86.0, s.Score)
	assert.Equal(t, 73.0, s.GreenScore)
	assert.Equal(t, 88.0, s.FeatureScore)
	assert.Equal(t, 1251.0, s.ReadSpeed)
	assert.InDelta(t, 0.2, s.Latency, 1e-9)
	assert.Equal(t, 40.0, s.Sustainability.PowerEfficiency, "missing group contributes zero")
	assert.Equal(t, 10.0, s.Sustainability.CarbonReduction)
	assert.Equal(t, 35.0, s.Sustainability.CircularEconomy)
	assert.Equal(t, 6.0, s.DataReduction, "unparseable ratios are skipped")
	assert.Equal(t, 1.5, s.ProtocolCount)
}

func TestAggregate_SummaryMatchesMeans(t *testing.T) {
	records := device.Catalog()
	s := Aggregate(records).Summary
	require.NotNil(t, s)

	var score, iops, latency, pe float64
	for _, r := range records {
		score += r.Score
		iops += r.IOPS
		latency += r.Latency
		pe += r.Sustainability.PowerEfficiency
	}
	n := float64(len(records))

	assert.Equal(t, math.Round(score/n), s.Score)
	assert.Equal(t, math.Round(iops/n), s.IOPS)
	assert.InDelta(t, math.Round(latency/n*100)/100, s.Latency, 1e-9)
	assert.Equal(t, math.Round(pe/n), s.Sustainability.PowerEfficiency)
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil)
	assert.Empty(t, res.Enriched)
	assert.Nil(t, res.Summary)

	assert.Equal(t, 82.0, Baseline(res.Summary, "score"), "static default when no summary")
	assert.Equal(t, 0.25, Baseline(res.Summary, "latency"))
}

func TestComparator_Classify(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		baseline float64
		inverted bool
		want     Tier
		legacy   Tier
	}{
		{"well above", 110, 100, false, TierExcellent, TierAboveAverage},
		{"inside band above", 104, 100, false, TierGood, TierAverage},
		{"inside band below", 96, 100, false, TierGood, TierAverage},
		{"well below", 90, 100, false, TierPoor, TierBelowAverage},
		{"inverted lower is better", 0.2, 0.25, true, TierExcellent, TierAboveAverage},
		{"inverted higher is worse", 0.3, 0.25, true, TierPoor, TierBelowAverage},
		{"inverted inside band", 0.252, 0.25, true, TierGood, TierAverage},
		{"zero baseline zero value", 0, 0, false, TierGood, TierAverage},
		{"zero baseline positive", 0.001, 0, false, TierExcellent, TierAboveAverage},
		{"zero baseline negative", -0.001, 0, false, TierPoor, TierBelowAverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, tt.baseline, tt.inverted))
			assert.Equal(t, tt.legacy, ClassifyRelative(tt.value, tt.baseline, tt.inverted))
		})
	}
}

func TestComparator_Threshold(t *testing.T) {
	wide := Comparator{Threshold: 0.2}
	assert.Equal(t, TierGood, wide.Classify(110, 100, false))
	assert.Equal(t, TierExcellent, wide.Classify(130, 100, false))

	exact := Comparator{Threshold: 0}
	assert.Equal(t, TierExcellent, exact.Classify(100.5, 100, false))
	assert.Equal(t, TierGood, exact.Classify(100, 100, false))
}

func TestPerformanceLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{100, TierExcellent},
		{90, TierExcellent},
		{89.9, TierGood},
		{75, TierGood},
		{74, TierAverage},
		{60, TierAverage},
		{59, TierPoor},
		{0, TierPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PerformanceLevel(tt.score), "score %v", tt.score)
	}
}

func TestRater(t *testing.T) {
	summary := &Summary{Score: 80, Latency: 0.25}

	baseline := Rater{Convention: ConventionBaseline, Comparator: DefaultComparator}
	assert.Equal(t, TierExcellent, baseline.Rate("score", 90, summary))
	assert.Equal(t, TierGood, baseline.Rate("score", 81, summary))
	assert.Equal(t, TierExcellent, baseline.Rate("latency", 0.1, summary))

	t.Run("no summary uses fixed bands for scores", func(t *testing.T) {
		assert.Equal(t, TierAverage, baseline.Rate("score", 70, nil))
		assert.Equal(t, TierExcellent, baseline.Rate("greenScore", 95, nil))
	})

	t.Run("no summary uses static baselines for other metrics", func(t *testing.T) {
		assert.Equal(t, TierPoor, baseline.Rate("latency", 0.5, nil))
		assert.Equal(t, TierGood, baseline.Rate("readSpeed", 3500, nil))
	})

	absolute := Rater{Convention: ConventionAbsolute, Comparator: DefaultComparator}
	assert.Equal(t, TierAverage, absolute.Rate("featureScore", 70, &Summary{FeatureScore: 50}))
	assert.Equal(t, "absolute", ConventionAbsolute.String())
}

func TestInsights(t *testing.T) {
	assert.Nil(t, DefaultComparator.Insights(device.CategoryOverview, nil))

	insights := DefaultComparator.Insights(device.CategoryOverview, &Summary{DeviceScore: 95, Score: 88})
	require.Len(t, insights, 2)
	assert.Equal(t, "Device Score", insights[0].Label)
	assert.Equal(t, TierAboveAverage, insights[0].Tier)
	assert.True(t, insights[0].Better)
	assert.Equal(t, 11.8, insights[0].DiffPercent)
	assert.Equal(t, TierAverage, insights[1].Tier)
	assert.False(t, insights[1].Better)

	perf := DefaultComparator.Insights(device.CategoryPerformance, &Summary{Latency: 0.2})
	latency := perf[len(perf)-1]
	assert.Equal(t, "latency", latency.Key)
	assert.True(t, latency.Better, "lower latency beats the benchmark")
	assert.Equal(t, TierAboveAverage, latency.Tier)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.2M", FormatNumber(1200000))
	assert.Equal(t, "120.0K", FormatNumber(120000))
	assert.Equal(t, "950", FormatNumber(950))
	assert.Equal(t, "0.25 ms", FormatValue("latency", 0.25))
	assert.Equal(t, "$45000", FormatValue("price", 45000))
}
