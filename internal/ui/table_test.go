package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/metrics"
	stable "github.com/rileyhilliard/stordash/internal/table"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Name", Width: 20},
		{Title: "Score", Width: 10},
	}
	rows := []table.Row{
		{"item1", "80"},
		{"item2", "90"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Score")
	assert.Contains(t, view, "item1")
	assert.Contains(t, view, "item2")
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "Name", Width: 20}}, nil))
}

func TestRenderHealthTable(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := RenderHealthTable([]HealthRow{
		{OK: true, Target: "built-in catalog", Mode: "catalog", Detail: "15 devices"},
		{OK: false, Target: "http://localhost:3000", Mode: "remote", Detail: "connection refused"},
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, SymbolComplete+"        built-in catalog")
	assert.Contains(t, out, SymbolFail)
	assert.Contains(t, out, "connection refused")

	assert.Equal(t, "No providers configured", RenderHealthTable(nil))
}

func TestRenderInsights(t *testing.T) {
	withProfile(t, termenv.Ascii)

	out := RenderInsights("Performance", []metrics.Insight{
		{
			BenchmarkMetric: metrics.BenchmarkMetric{Label: "Latency", Key: "latency", Benchmark: 0.25},
			Value:           0.2,
			DiffPercent:     -20,
			Tier:            metrics.TierAboveAverage,
			Better:          true,
		},
	})
	assert.Contains(t, out, "Performance")
	assert.Contains(t, out, "0.20 ms ▲")
	assert.Contains(t, out, "vs 0.25 ms (-20.0%)")

	empty := RenderInsights("Features", nil)
	assert.Contains(t, empty, "No data to compare yet")
}

func TestPadRightAndTruncate(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))

	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestFormatCell(t *testing.T) {
	fields := stable.DefaultFields()
	r := device.Record{
		Name:          "Alpha",
		IOPS:          1_200_000,
		Latency:       0.2,
		ReadSpeed:     3500,
		Price:         1200,
		Capacity:      "100TB",
		DataReduction: "4:1",
	}

	tests := []struct {
		key  string
		want string
	}{
		{"name", "Alpha"},
		{"iops", "1.2M"},
		{"latency", "0.20 ms"},
		{"readSpeed", "3500 MB/s"},
		{"price", "$1200"},
		{"capacity", "100TB"},
		{"dataReduction", "4:1"},
		{"deviceScore", MissingValue},
		{"sustainability.powerEfficiency", MissingValue},
		{"nope", MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCell(tt.key, r, fields))
		})
	}
}

func TestDeviceRows(t *testing.T) {
	records := []device.Record{
		{Name: "Alpha", Score: 95},
		{Name: "Beta", Score: 50},
	}
	keys := []string{"name", "score"}
	rate := func(key string, r device.Record) metrics.Tier {
		if key != "score" {
			return ""
		}
		return metrics.PerformanceLevel(r.Score)
	}

	rows := DeviceRows(records, keys, stable.DefaultFields(), rate)
	assert.Equal(t, [][]string{
		{"Alpha", "95 ▲"},
		{"Beta", "50 ▼"},
	}, rows)

	plain := DeviceRows(records, keys, stable.DefaultFields(), nil)
	assert.Equal(t, "95", plain[0][1])

	cols := DeviceColumns(keys)
	assert.Equal(t, "Name", cols[0].Title)
	assert.Equal(t, "Perf Score", cols[1].Title)
	assert.GreaterOrEqual(t, cols[1].Width, len("Perf Score"))
}
