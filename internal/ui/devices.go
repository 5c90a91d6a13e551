package ui

import (
	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/metrics"
	"github.com/rileyhilliard/stordash/internal/table"
)

// MissingValue is shown for fields a record doesn't have.
const MissingValue = "-"

var columnTitles = map[string]string{
	"id":                             "ID",
	"name":                           "Name",
	"type":                           "Type",
	"productLine":                    "Product Line",
	"tier":                           "Tier",
	"deployment":                     "Deployment",
	"readSpeed":                      "Read",
	"writeSpeed":                     "Write",
	"iops":                           "IOPS",
	"latency":                        "Latency",
	"throughput":                     "Throughput",
	"score":                          "Perf Score",
	"greenScore":                     "Green Score",
	"featureScore":                   "Feature Score",
	"deviceScore":                    "Device Score",
	"sustainability.powerEfficiency": "Power Eff.",
	"sustainability.carbonReduction": "Carbon Red.",
	"sustainability.circularEconomy": "Circularity",
	"price":                          "Price",
	"capacity":                       "Capacity",
	"dataReduction":                  "Data Red.",
	"features.protocolCount":         "Protocols",
	"snapshots":                      "Snapshots",
	"replication":                    "Replication",
}

var columnWidths = map[string]int{
	"name":        18,
	"productLine": 14,
	"snapshots":   16,
	"replication": 16,
}

// ColumnTitle returns the header for a field key.
func ColumnTitle(key string) string {
	if t, ok := columnTitles[key]; ok {
		return t
	}
	return key
}

// ColumnWidth returns the display width for a field key, wide enough for
// its title, its values and a tier marker.
func ColumnWidth(key string) int {
	if w, ok := columnWidths[key]; ok {
		return w
	}
	return max(len(ColumnTitle(key))+2, 12)
}

// labels are fields shown as their source text rather than the number
// they sort by.
var labels = map[string]func(device.Record) string{
	"capacity":      func(r device.Record) string { return r.Capacity },
	"dataReduction": func(r device.Record) string { return r.DataReduction },
}

// FormatCell renders one field of r with its unit.
func FormatCell(key string, r device.Record, fields table.Fields) string {
	v := fields.Get(r, key)
	if v.IsMissing() {
		return MissingValue
	}
	if label, ok := labels[key]; ok {
		return label(r)
	}
	if v.Kind == table.KindNumber {
		return metrics.FormatValue(key, v.Num)
	}
	return v.Text
}

// RateFunc classifies a record's value in a column.
type RateFunc func(key string, r device.Record) metrics.Tier

// DeviceColumns returns the headers for keys.
func DeviceColumns(keys []string) []TableColumn {
	cols := make([]TableColumn, len(keys))
	for i, k := range keys {
		cols[i] = TableColumn{Title: ColumnTitle(k), Width: ColumnWidth(k)}
	}
	return cols
}

// DeviceRows renders records as plain cells. When rate is non-nil, rated
// cells carry the tier marker.
func DeviceRows(records []device.Record, keys []string, fields table.Fields, rate RateFunc) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(keys))
		for j, k := range keys {
			cell := FormatCell(k, r, fields)
			if rate != nil {
				if sym := TierSymbol(rate(k, r)); sym != "" {
					cell += " " + sym
				}
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return rows
}
