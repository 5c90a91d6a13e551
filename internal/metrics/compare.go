package metrics

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/errors"
)

// Energy model constants for side-by-side comparison.
const (
	ElectricityRate = 0.12 // USD per kWh
	CarbonIntensity = 0.45 // kg CO2 per kWh
	daysPerMonth    = 30
)

// basePower is the idle draw in watts by device type. Unknown types draw
// defaultBasePower.
var basePower = map[string]float64{
	"NVMe SSD":   8.5,
	"SATA SSD":   3.2,
	"HDD":        6.8,
	"Optane SSD": 12.0,
}

const defaultBasePower = 5.0

// CriticalFeature is a capability counted when comparing devices.
type CriticalFeature struct {
	Name string
	Has  func(r device.Record) bool
}

// CriticalFeatures are the capabilities compared across devices.
var CriticalFeatures = []CriticalFeature{
	{"Data Reduction", func(r device.Record) bool { return r.Score > 70 }},
	{"Snapshot", func(r device.Record) bool { return strings.Contains(r.Type, "SSD") }},
	{"Replication", func(r device.Record) bool { return r.Score > 80 }},
	{"Audit Logs", func(device.Record) bool { return true }},
	{"Active Directory & LDAP", func(r device.Record) bool { return r.Score > 75 }},
	{"NFS/SMB Protocols", func(r device.Record) bool { return r.Type != "HDD" }},
	{"Share Settings", func(r device.Record) bool { return r.Score > 60 }},
	{"Protection Policies", func(r device.Record) bool { return r.Score > 65 }},
}

// DeviceComparison is one device's column in a Comparison.
type DeviceComparison struct {
	Record device.Record

	// Percent of the best value among the compared devices, 0-100.
	ReadPct  float64
	WritePct float64
	IOPSPct  float64
	ScorePct float64

	PowerWatts       float64
	DailyKWh         float64
	MonthlyCost      float64 // USD
	MonthlyEmissions float64 // kg CO2

	Features     []string // names of the critical features present
	FeatureCount int

	// Value is performance score per dollar. Zero when the price is unknown.
	Value float64
}

// Comparison is the side-by-side analysis of two or more devices.
type Comparison struct {
	Devices []DeviceComparison

	// Names of the best device per criterion. The first device wins ties.
	Fastest      string
	Greenest     string
	MostFeatures string
	// BestValue is empty when no compared device has a price.
	BestValue string

	AvgScore     float64 // one decimal
	MaxReadSpeed float64
	AvgPrice     float64 // whole dollars
}

// PowerWatts estimates the draw of r from its type and IOPS.
func PowerWatts(r device.Record) float64 {
	base, ok := basePower[r.Type]
	if !ok {
		base = defaultBasePower
	}
	return base * (1 + r.IOPS/1e6*0.3)
}

// Compare builds the side-by-side analysis of records. At least two
// records are needed.
func Compare(records []device.Record) (*Comparison, error) {
	if len(records) < 2 {
		return nil, errors.New(errors.ErrConfig,
			"comparison needs at least 2 devices",
			"Select at least 2 devices to compare")
	}

	maxOf := func(get func(device.Record) float64) float64 {
		return lo.Max(lo.Map(records, func(r device.Record, _ int) float64 { return get(r) }))
	}
	maxRead := maxOf(func(r device.Record) float64 { return r.ReadSpeed })
	maxWrite := maxOf(func(r device.Record) float64 { return r.WriteSpeed })
	maxIOPS := maxOf(func(r device.Record) float64 { return r.IOPS })
	maxScore := maxOf(func(r device.Record) float64 { return r.Score })

	devices := lo.Map(records, func(r device.Record, _ int) DeviceComparison {
		power := PowerWatts(r)
		daily := power * 24 / 1000
		features := lo.FilterMap(CriticalFeatures, func(f CriticalFeature, _ int) (string, bool) {
			return f.Name, f.Has(r)
		})
		dc := DeviceComparison{
			Record:           r,
			ReadPct:          percentOf(r.ReadSpeed, maxRead),
			WritePct:         percentOf(r.WriteSpeed, maxWrite),
			IOPSPct:          percentOf(r.IOPS, maxIOPS),
			ScorePct:         percentOf(r.Score, maxScore),
			PowerWatts:       roundTo(power, 2),
			DailyKWh:         roundTo(daily, 3),
			MonthlyCost:      roundTo(daily*daysPerMonth*ElectricityRate, 2),
			MonthlyEmissions: roundTo(daily*daysPerMonth*CarbonIntensity, 2),
			Features:         features,
			FeatureCount:     len(features),
		}
		if r.Price > 0 {
			dc.Value = r.Score / r.Price
		}
		return dc
	})

	n := float64(len(records))
	c := &Comparison{
		Devices:      devices,
		Fastest:      bestBy(devices, func(d DeviceComparison) float64 { return d.Record.Score }),
		Greenest:     bestBy(devices, func(d DeviceComparison) float64 { return -d.MonthlyEmissions }),
		MostFeatures: bestBy(devices, func(d DeviceComparison) float64 { return float64(d.FeatureCount) }),
		AvgScore:     roundTo(lo.SumBy(records, func(r device.Record) float64 { return r.Score })/n, 1),
		MaxReadSpeed: maxRead,
		AvgPrice:     roundTo(lo.SumBy(records, func(r device.Record) float64 { return r.Price })/n, 0),
	}
	priced := lo.Filter(devices, func(d DeviceComparison, _ int) bool { return d.Record.Price > 0 })
	if len(priced) > 0 {
		c.BestValue = bestBy(priced, func(d DeviceComparison) float64 { return d.Value })
	}
	return c, nil
}

func percentOf(v, best float64) float64 {
	if best <= 0 {
		return 0
	}
	return roundTo(v/best*100, 1)
}

// bestBy returns the name of the first device with the highest key.
func bestBy(devices []DeviceComparison, key func(DeviceComparison) float64) string {
	best := devices[0]
	for _, d := range devices[1:] {
		if key(d) > key(best) {
			best = d
		}
	}
	return best.Record.Name
}
