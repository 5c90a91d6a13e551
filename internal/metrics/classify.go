package metrics

import "math"

// Tier is a classification bucket for a metric value.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"

	// Legacy relative labels, used by the benchmark insights.
	TierAboveAverage Tier = "above-average"
	TierBelowAverage Tier = "below-average"
)

// DefaultThreshold is the fraction of the baseline inside which a value is
// considered level with it.
const DefaultThreshold = 0.05

// Comparator classifies values against a baseline.
type Comparator struct {
	Threshold float64
}

// DefaultComparator uses DefaultThreshold.
var DefaultComparator = Comparator{Threshold: DefaultThreshold}

// position returns +1 when value is better than baseline by more than the
// threshold band, -1 when worse, 0 inside the band. Inverted metrics are
// better when lower.
func (c Comparator) position(value, baseline float64, inverted bool) int {
	band := c.Threshold * math.Abs(baseline)
	diff := value - baseline
	if inverted {
		diff = -diff
	}
	switch {
	case diff > band:
		return 1
	case diff < -band:
		return -1
	default:
		return 0
	}
}

// Classify returns excellent, good or poor for value relative to baseline.
// A zero baseline has a zero band, so only an exact zero is good.
func (c Comparator) Classify(value, baseline float64, inverted bool) Tier {
	switch c.position(value, baseline, inverted) {
	case 1:
		return TierExcellent
	case -1:
		return TierPoor
	default:
		return TierGood
	}
}

// ClassifyRelative is Classify with the above-average/average/below-average
// labels.
func (c Comparator) ClassifyRelative(value, baseline float64, inverted bool) Tier {
	switch c.position(value, baseline, inverted) {
	case 1:
		return TierAboveAverage
	case -1:
		return TierBelowAverage
	default:
		return TierAverage
	}
}

// Classify uses DefaultComparator.
func Classify(value, baseline float64, inverted bool) Tier {
	return DefaultComparator.Classify(value, baseline, inverted)
}

// ClassifyRelative uses DefaultComparator.
func ClassifyRelative(value, baseline float64, inverted bool) Tier {
	return DefaultComparator.ClassifyRelative(value, baseline, inverted)
}

// PerformanceLevel maps a 0-100 score to a tier using fixed bands.
func PerformanceLevel(score float64) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 75:
		return TierGood
	case score >= 60:
		return TierAverage
	default:
		return TierPoor
	}
}

// DefaultBaselines are used when no summary is available yet.
var DefaultBaselines = map[string]float64{
	"deviceScore":                    85,
	"score":                          82,
	"greenScore":                     78,
	"featureScore":                   80,
	"sustainability.powerEfficiency": 75,
	"sustainability.carbonReduction": 25,
	"sustainability.circularEconomy": 75,
	"readSpeed":                      3500,
	"writeSpeed":                     2800,
	"iops":                           400000,
	"latency":                        0.25,
	"throughput":                     4800,
}

var summaryFields = map[string]func(*Summary) float64{
	"deviceScore":                    func(s *Summary) float64 { return s.DeviceScore },
	"score":                          func(s *Summary) float64 { return s.Score },
	"greenScore":                     func(s *Summary) float64 { return s.GreenScore },
	"featureScore":                   func(s *Summary) float64 { return s.FeatureScore },
	"readSpeed":                      func(s *Summary) float64 { return s.ReadSpeed },
	"writeSpeed":                     func(s *Summary) float64 { return s.WriteSpeed },
	"iops":                           func(s *Summary) float64 { return s.IOPS },
	"latency":                        func(s *Summary) float64 { return s.Latency },
	"throughput":                     func(s *Summary) float64 { return s.Throughput },
	"price":                          func(s *Summary) float64 { return s.Price },
	"dataReduction":                  func(s *Summary) float64 { return s.DataReduction },
	"features.protocolCount":         func(s *Summary) float64 { return s.ProtocolCount },
	"sustainability.powerEfficiency": func(s *Summary) float64 { return s.Sustainability.PowerEfficiency },
	"sustainability.carbonReduction": func(s *Summary) float64 { return s.Sustainability.CarbonReduction },
	"sustainability.circularEconomy": func(s *Summary) float64 { return s.Sustainability.CircularEconomy },
}

// Baseline returns the summary value for key, or the static default when
// summary is nil. Unknown keys have a zero baseline.
func Baseline(summary *Summary, key string) float64 {
	if summary == nil {
		return DefaultBaselines[key]
	}
	if get, ok := summaryFields[key]; ok {
		return get(summary)
	}
	return 0
}

// Inverted reports whether lower values of key are better.
func Inverted(key string) bool {
	return key == "latency"
}

// scoreKeys are the 0-100 score columns.
var scoreKeys = map[string]bool{
	"deviceScore":                    true,
	"score":                          true,
	"greenScore":                     true,
	"featureScore":                   true,
	"sustainability.powerEfficiency": true,
	"sustainability.circularEconomy": true,
}

// IsScore reports whether key is a 0-100 score column.
func IsScore(key string) bool {
	return scoreKeys[key]
}

// Convention selects how a table rates its columns.
type Convention int

const (
	// ConventionBaseline rates against the collection summary.
	ConventionBaseline Convention = iota
	// ConventionAbsolute rates with PerformanceLevel regardless of summary.
	ConventionAbsolute
)

func (c Convention) String() string {
	if c == ConventionAbsolute {
		return "absolute"
	}
	return "baseline"
}

// Rater rates column values for one table.
type Rater struct {
	Convention Convention
	Comparator Comparator
}

// Rate returns the tier for value in column key. Under the baseline
// convention, score columns fall back to PerformanceLevel until a summary
// exists.
func (r Rater) Rate(key string, value float64, summary *Summary) Tier {
	if r.Convention == ConventionAbsolute {
		return PerformanceLevel(value)
	}
	if summary == nil && IsScore(key) {
		return PerformanceLevel(value)
	}
	return r.Comparator.Classify(value, Baseline(summary, key), Inverted(key))
}
