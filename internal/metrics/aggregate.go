package metrics

import (
	"math"

	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
)

// Summary holds the per-field means of a collection snapshot, rounded for
// display: integers for scores, speeds, IOPS and price, two decimals for
// latency, one decimal for the data-reduction ratio and protocol count.
type Summary struct {
	DeviceScore  float64
	Score        float64
	GreenScore   float64
	FeatureScore float64
	ReadSpeed    float64
	WriteSpeed   float64
	IOPS         float64
	Latency      float64
	Throughput   float64
	Price        float64

	Sustainability SustainabilitySummary

	// DataReduction is the mean parsed ratio; records with an unparseable
	// ratio are skipped. Zero when none parse.
	DataReduction float64
	// ProtocolCount is the mean number of supported access protocols.
	ProtocolCount float64

	Count int
}

// SustainabilitySummary holds the nested sustainability means.
type SustainabilitySummary struct {
	PowerEfficiency float64
	CarbonReduction float64
	CircularEconomy float64
}

// Result is the output of Aggregate.
type Result struct {
	Enriched []device.Record
	Summary  *Summary // nil for an empty collection
}

// Aggregate enriches every record with a device score and computes the
// collection summary. The input slice and its records are not modified.
func Aggregate(records []device.Record) Result {
	enriched := lo.Map(records, func(r device.Record, _ int) device.Record {
		return Enrich(r)
	})
	return Result{
		Enriched: enriched,
		Summary:  Summarize(enriched),
	}
}

// DeviceScore returns the supplied device score, or the rounded mean of the
// performance, green and feature scores when none was supplied.
func DeviceScore(r device.Record) int {
	if r.DeviceScore != nil {
		return *r.DeviceScore
	}
	return int(math.Round((r.Score + r.GreenScore + r.FeatureScore) / 3))
}

// Enrich returns a copy of r with its device score filled in.
func Enrich(r device.Record) device.Record {
	out := r.Clone()
	if out.DeviceScore == nil {
		out.DeviceScore = device.IntPtr(DeviceScore(r))
	}
	return out
}

// Summarize computes the means of an already enriched collection.
// Returns nil when records is empty.
func Summarize(records []device.Record) *Summary {
	if len(records) == 0 {
		return nil
	}
	n := float64(len(records))
	mean := func(get func(device.Record) float64) float64 {
		return lo.SumBy(records, get) / n
	}
	sust := func(get func(*device.Sustainability) float64) float64 {
		return mean(func(r device.Record) float64 {
			if r.Sustainability == nil {
				return 0
			}
			return get(r.Sustainability)
		})
	}

	s := &Summary{
		DeviceScore:  math.Round(mean(func(r device.Record) float64 { return float64(DeviceScore(r)) })),
		Score:        math.Round(mean(func(r device.Record) float64 { return r.Score })),
		GreenScore:   math.Round(mean(func(r device.Record) float64 { return r.GreenScore })),
		FeatureScore: math.Round(mean(func(r device.Record) float64 { return r.FeatureScore })),
		ReadSpeed:    math.Round(mean(func(r device.Record) float64 { return r.ReadSpeed })),
		WriteSpeed:   math.Round(mean(func(r device.Record) float64 { return r.WriteSpeed })),
		IOPS:         math.Round(mean(func(r device.Record) float64 { return r.IOPS })),
		Latency:      roundTo(mean(func(r device.Record) float64 { return r.Latency }), 2),
		Throughput:   math.Round(mean(func(r device.Record) float64 { return r.Throughput })),
		Price:        math.Round(mean(func(r device.Record) float64 { return r.Price })),
		Sustainability: SustainabilitySummary{
			PowerEfficiency: math.Round(sust(func(s *device.Sustainability) float64 { return s.PowerEfficiency })),
			CarbonReduction: math.Round(sust(func(s *device.Sustainability) float64 { return s.CarbonReduction })),
			CircularEconomy: math.Round(sust(func(s *device.Sustainability) float64 { return s.CircularEconomy })),
		},
		ProtocolCount: roundTo(mean(func(r device.Record) float64 { return float64(r.ProtocolCount()) }), 1),
		Count:         len(records),
	}

	ratios := lo.FilterMap(records, func(r device.Record, _ int) (float64, bool) {
		return device.ParseRatio(r.DataReduction)
	})
	if len(ratios) > 0 {
		s.DataReduction = roundTo(lo.Sum(ratios)/float64(len(ratios)), 1)
	}

	return s
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
