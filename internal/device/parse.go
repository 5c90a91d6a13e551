package device

import (
	"strconv"
	"strings"
)

// Decimal capacity units, as storage vendors quote them.
var capacityUnits = map[string]float64{
	"GB": 1e9,
	"TB": 1e12,
	"PB": 1e15,
}

// ParseCapacity converts a capacity label like "100TB" or "1.5 PB" to bytes.
// Returns false when the label isn't in a recognized form.
func ParseCapacity(s string) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	unit := s[len(s)-2:]
	mult, ok := capacityUnits[unit]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-2]), 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n * mult, true
}

// ParseRatio converts a data-reduction label like "6:1" to 6.
func ParseRatio(s string) (float64, bool) {
	left, right, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// DeriveDataReduction estimates a data-reduction ratio from deduplication
// and compression levels. Used when an upstream source omits dataReduction.
func DeriveDataReduction(dedup, compression string) string {
	switch {
	case dedup == "Advanced" && compression == "Advanced":
		return "6:1"
	case dedup == "Advanced" && compression == "Standard":
		return "5:1"
	case dedup == "Standard" && compression == "Advanced":
		return "4:1"
	case dedup == "Standard" && compression == "Standard":
		return "3:1"
	case dedup == "Basic" || compression == "Standard":
		return "2:1"
	default:
		return "1:1"
	}
}

// Clone returns a deep copy of the record so callers can hand records
// across goroutines without sharing nested groups.
func (r Record) Clone() Record {
	out := r
	if r.DeviceScore != nil {
		out.DeviceScore = IntPtr(*r.DeviceScore)
	}
	if r.Sustainability != nil {
		s := *r.Sustainability
		out.Sustainability = &s
	}
	if r.Features != nil {
		f := *r.Features
		f.Security.AccessControl = cloneStrings(r.Features.Security.AccessControl)
		f.Availability = cloneStrings(r.Features.Availability)
		f.Management = cloneStrings(r.Features.Management)
		f.Protocols = cloneStrings(r.Features.Protocols)
		out.Features = &f
	}
	out.Protocols = cloneStrings(r.Protocols)
	return out
}

// CloneAll deep-copies a collection.
func CloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
