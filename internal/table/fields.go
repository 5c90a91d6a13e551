package table

import (
	"strconv"

	"github.com/rileyhilliard/stordash/internal/device"
)

// Kind tells how a resolved Value compares.
type Kind int

const (
	KindMissing Kind = iota
	KindNumber
	KindText
)

// Value is a field resolved from a record.
type Value struct {
	Kind Kind
	Num  float64
	Text string
}

// Number wraps a numeric field value.
func Number(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// Text wraps a textual field value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Missing is the value of an absent field.
var Missing = Value{}

// IsMissing reports whether the field was absent.
func (v Value) IsMissing() bool { return v.Kind == KindMissing }

// String renders the value for text comparison and display.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Accessor resolves one field of a record.
type Accessor func(device.Record) Value

// Fields maps a sort key to its accessor. Keys may be dotted to name nested
// fields, but they are plain map keys: nothing parses them at sort time.
type Fields map[string]Accessor

// Get resolves key on r, reporting Missing for unknown keys.
func (f Fields) Get(r device.Record, key string) Value {
	acc, ok := f[key]
	if !ok {
		return Missing
	}
	return acc(r)
}

func text(get func(device.Record) string) Accessor {
	return func(r device.Record) Value {
		if s := get(r); s != "" {
			return Text(s)
		}
		return Missing
	}
}

func number(get func(device.Record) float64) Accessor {
	return func(r device.Record) Value { return Number(get(r)) }
}

func sustainability(get func(*device.Sustainability) float64) Accessor {
	return func(r device.Record) Value {
		if r.Sustainability == nil {
			return Missing
		}
		return Number(get(r.Sustainability))
	}
}

// parsed resolves a label through parse, falling back to text when the
// label doesn't parse.
func parsed(get func(device.Record) string, parse func(string) (float64, bool)) Accessor {
	return func(r device.Record) Value {
		s := get(r)
		if s == "" {
			return Missing
		}
		if v, ok := parse(s); ok {
			return Number(v)
		}
		return Text(s)
	}
}

// DefaultFields returns the accessor map for every sortable device field.
func DefaultFields() Fields {
	return Fields{
		"id":          number(func(r device.Record) float64 { return float64(r.ID) }),
		"name":        text(func(r device.Record) string { return r.Name }),
		"type":        text(func(r device.Record) string { return r.Type }),
		"productLine": text(func(r device.Record) string { return r.ProductLine }),
		"tier":        text(func(r device.Record) string { return r.Tier }),
		"deployment":  text(func(r device.Record) string { return r.Deployment }),
		"deviceScore": func(r device.Record) Value {
			if r.DeviceScore == nil {
				return Missing
			}
			return Number(float64(*r.DeviceScore))
		},
		"score":         number(func(r device.Record) float64 { return r.Score }),
		"greenScore":    number(func(r device.Record) float64 { return r.GreenScore }),
		"featureScore":  number(func(r device.Record) float64 { return r.FeatureScore }),
		"readSpeed":     number(func(r device.Record) float64 { return r.ReadSpeed }),
		"writeSpeed":    number(func(r device.Record) float64 { return r.WriteSpeed }),
		"iops":          number(func(r device.Record) float64 { return r.IOPS }),
		"latency":       number(func(r device.Record) float64 { return r.Latency }),
		"throughput":    number(func(r device.Record) float64 { return r.Throughput }),
		"price":         number(func(r device.Record) float64 { return r.Price }),
		"capacity":      parsed(func(r device.Record) string { return r.Capacity }, device.ParseCapacity),
		"dataReduction": parsed(func(r device.Record) string { return r.DataReduction }, device.ParseRatio),

		"sustainability.powerEfficiency": sustainability(func(s *device.Sustainability) float64 { return s.PowerEfficiency }),
		"sustainability.carbonReduction": sustainability(func(s *device.Sustainability) float64 { return s.CarbonReduction }),
		"sustainability.circularEconomy": sustainability(func(s *device.Sustainability) float64 { return s.CircularEconomy }),

		"features.protocolCount": func(r device.Record) Value {
			if r.Features == nil && len(r.Protocols) == 0 {
				return Missing
			}
			return Number(float64(r.ProtocolCount()))
		},
	}
}
