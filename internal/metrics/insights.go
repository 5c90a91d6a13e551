package metrics

import (
	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
)

// BenchmarkMetric is one metric compared against the industry benchmark.
type BenchmarkMetric struct {
	Label     string
	Key       string // summary key
	Unit      string
	Benchmark float64
}

// Benchmarks holds the industry averages each table is compared with.
var Benchmarks = map[device.Category][]BenchmarkMetric{
	device.CategoryOverview: {
		{Label: "Device Score", Key: "deviceScore", Unit: "/100", Benchmark: 85},
		{Label: "Performance Score", Key: "score", Unit: "/100", Benchmark: 88},
	},
	device.CategorySustainability: {
		{Label: "Green Score", Key: "greenScore", Unit: "/100", Benchmark: 78},
		{Label: "Power Efficiency", Key: "sustainability.powerEfficiency", Unit: "/100", Benchmark: 75},
		{Label: "Carbon Reduction", Key: "sustainability.carbonReduction", Unit: "%", Benchmark: 25},
	},
	device.CategoryPerformance: {
		{Label: "Performance Score", Key: "score", Unit: "/100", Benchmark: 82},
		{Label: "Read Speed", Key: "readSpeed", Unit: " MB/s", Benchmark: 3500},
		{Label: "Write Speed", Key: "writeSpeed", Unit: " MB/s", Benchmark: 2800},
		{Label: "IOPS", Key: "iops", Benchmark: 400000},
		{Label: "Latency", Key: "latency", Unit: " ms", Benchmark: 0.25},
	},
	device.CategoryFeatures: {
		{Label: "Feature Score", Key: "featureScore", Unit: "/100", Benchmark: 80},
		{Label: "Data Reduction", Key: "dataReduction", Unit: ":1", Benchmark: 3.5},
		{Label: "Protocols Supported", Key: "features.protocolCount", Benchmark: 3.2},
	},
}

// Insight compares a collection average with the benchmark for one metric.
type Insight struct {
	BenchmarkMetric
	Value float64
	// DiffPercent is (value - benchmark) / benchmark * 100, rounded to one
	// decimal. Zero when the benchmark is zero.
	DiffPercent float64
	Tier        Tier // above-average, average or below-average
	Better      bool
}

// Insights compares summary with the benchmarks for category. Returns nil
// when summary is nil.
func (c Comparator) Insights(category device.Category, summary *Summary) []Insight {
	if summary == nil {
		return nil
	}
	return lo.Map(Benchmarks[category], func(m BenchmarkMetric, _ int) Insight {
		value := Baseline(summary, m.Key)
		inverted := Inverted(m.Key)
		in := Insight{
			BenchmarkMetric: m,
			Value:           value,
			Tier:            c.ClassifyRelative(value, m.Benchmark, inverted),
			Better:          value > m.Benchmark,
		}
		if inverted {
			in.Better = value < m.Benchmark
		}
		if m.Benchmark != 0 {
			in.DiffPercent = roundTo((value-m.Benchmark)/m.Benchmark*100, 1)
		}
		return in
	})
}
