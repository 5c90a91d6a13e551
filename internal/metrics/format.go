package metrics

import (
	"fmt"
	"strconv"
)

// FormatNumber abbreviates large counts: 1.2M, 120.0K, 950.
func FormatNumber(n float64) string {
	switch {
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.1fK", n/1e3)
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

// FormatValue renders a metric value with the unit used in tables.
func FormatValue(key string, v float64) string {
	switch key {
	case "iops":
		return FormatNumber(v)
	case "latency":
		return fmt.Sprintf("%.2f ms", v)
	case "readSpeed", "writeSpeed", "throughput":
		return fmt.Sprintf("%.0f MB/s", v)
	case "price":
		return fmt.Sprintf("$%.0f", v)
	case "dataReduction":
		return fmt.Sprintf("%.1f:1", v)
	case "sustainability.carbonReduction":
		return fmt.Sprintf("%.0f%%", v)
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}
