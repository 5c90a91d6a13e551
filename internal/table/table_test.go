package table

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/stordash/internal/device"
)

func ids(records []device.Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func numbered(n int) []device.Record {
	out := make([]device.Record, n)
	for i := range out {
		out[i] = device.Record{ID: i + 1, Score: float64(100 - i)}
	}
	return out
}

func newTable(t *testing.T, mode Mode, sort SortConfig) *Table {
	t.Helper()
	tbl, err := New(Options{
		ID:          "test",
		Columns:     []string{"score", "name", "latency", "sustainability.powerEfficiency", "capacity"},
		DefaultSort: sort,
		Mode:        mode,
	})
	require.NoError(t, err)
	return tbl
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"missing id", Options{Columns: []string{"score"}}, "id is required"},
		{"no columns", Options{ID: "x"}, "no sortable columns"},
		{"unknown column", Options{ID: "x", Columns: []string{"bogus"}}, "no field accessor"},
		{"default key not a column", Options{ID: "x", Columns: []string{"score"}, DefaultSort: SortConfig{Key: "name"}}, "not a column"},
		{"bad direction", Options{ID: "x", Columns: []string{"score"}, DefaultSort: SortConfig{Key: "score", Direction: "up"}}, "invalid sort direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	tbl, err := New(Options{ID: "x", Columns: []string{"score", "name"}})
	require.NoError(t, err)
	assert.Equal(t, SortConfig{Key: "score", Direction: Desc}, tbl.SortConfig())
	assert.Equal(t, DefaultPageSize, tbl.Pagination().PageSize)
}

func TestSortToggleScenario(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Asc})
	tbl.Replace([]device.Record{{ID: 2, Score: 90}, {ID: 1, Score: 80}})
	assert.Equal(t, []int{1, 2}, ids(tbl.VisibleRows()))

	cfg, ok := tbl.SetSort("score")
	require.True(t, ok)
	assert.Equal(t, Desc, cfg.Direction)
	assert.Equal(t, []int{2, 1}, ids(tbl.VisibleRows()))
}

func TestSetSort(t *testing.T) {
	tbl := newTable(t, ModeServer, SortConfig{Key: "score", Direction: Desc})

	cfg, ok := tbl.SetSort("score")
	assert.True(t, ok)
	assert.Equal(t, SortConfig{Key: "score", Direction: Asc}, cfg, "same key flips")

	cfg, ok = tbl.SetSort("latency")
	assert.True(t, ok)
	assert.Equal(t, SortConfig{Key: "latency", Direction: Desc}, cfg, "new key adopts default direction")

	cfg, ok = tbl.SetSort("nope")
	assert.False(t, ok)
	assert.Equal(t, SortConfig{Key: "latency", Direction: Desc}, cfg, "unknown key ignored")
}

func TestSetSort_ServerModeLeavesOrder(t *testing.T) {
	tbl := newTable(t, ModeServer, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace([]device.Record{{ID: 1, Score: 80}, {ID: 2, Score: 90}})
	assert.Equal(t, []int{1, 2}, ids(tbl.VisibleRows()), "server mode trusts provider order")

	tbl.SetSort("score")
	assert.Equal(t, []int{1, 2}, ids(tbl.VisibleRows()), "re-sort waits for the next fetch")
}

func TestSetSort_ResetsPage(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))
	require.True(t, tbl.SetPage(3))

	tbl.SetSort("score")
	assert.Equal(t, 1, tbl.Pagination().Page)
	assert.Equal(t, []int{12, 11, 10, 9, 8}, ids(tbl.VisibleRows()))
}

func TestNextSort_DoesNotChangeTable(t *testing.T) {
	tbl := newTable(t, ModeServer, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))
	require.True(t, tbl.SetPage(2))

	cfg, ok := tbl.NextSort(tbl.SortConfig(), "latency")
	require.True(t, ok)
	assert.Equal(t, SortConfig{Key: "latency", Direction: Desc}, cfg)

	cfg, ok = tbl.NextSort(cfg, "latency")
	require.True(t, ok)
	assert.Equal(t, SortConfig{Key: "latency", Direction: Asc}, cfg, "chains from the given config")

	_, ok = tbl.NextSort(cfg, "nope")
	assert.False(t, ok)

	assert.Equal(t, SortConfig{Key: "score", Direction: Desc}, tbl.SortConfig())
	assert.Equal(t, 2, tbl.Pagination().Page)
}

func TestCommitSort(t *testing.T) {
	tbl := newTable(t, ModeServer, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))
	require.True(t, tbl.SetPage(3))

	fetched := numbered(12)
	slices.Reverse(fetched)
	tbl.CommitSort(SortConfig{Key: "score", Direction: Asc}, fetched)

	assert.Equal(t, SortConfig{Key: "score", Direction: Asc}, tbl.SortConfig())
	assert.Equal(t, 1, tbl.Pagination().Page)
	assert.Equal(t, []int{12, 11, 10, 9, 8}, ids(tbl.VisibleRows()))
}

func TestPagination_TwelveRecords(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))

	p := tbl.Pagination()
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 12, p.TotalItems)

	require.True(t, tbl.SetPage(3))
	assert.Len(t, tbl.VisibleRows(), 2)
	assert.Equal(t, []int{11, 12}, ids(tbl.VisibleRows()))
}

func TestPagination_RoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 12, 15} {
		tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Asc})
		tbl.Replace(numbered(n))

		var all []device.Record
		p := tbl.Pagination()
		for page := 1; page <= p.TotalPages; page++ {
			require.True(t, tbl.SetPage(page))
			rows := tbl.VisibleRows()
			if page < p.TotalPages {
				assert.Len(t, rows, p.PageSize)
			} else {
				assert.LessOrEqual(t, len(rows), p.PageSize)
			}
			all = append(all, rows...)
		}
		assert.Equal(t, ids(tbl.Records()), ids(all), "n=%d", n)
	}
}

func TestSetPage_OutOfRange(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))
	require.True(t, tbl.SetPage(2))

	for _, n := range []int{0, -1, 4, 100} {
		assert.False(t, tbl.SetPage(n))
		assert.Equal(t, 2, tbl.Pagination().Page)
	}

	empty := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	assert.False(t, empty.SetPage(1), "no pages on an empty table")
	assert.Empty(t, empty.VisibleRows())
}

func TestReplace_ResetsPage(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	records := numbered(12)
	tbl.Replace(records)
	require.True(t, tbl.SetPage(3))

	tbl.Replace(slices.Clone(records))
	assert.Equal(t, 1, tbl.Pagination().Page, "identical-looking collection still resets")
}

func TestRefresh_KeepsPage(t *testing.T) {
	tbl := newTable(t, ModeLocal, SortConfig{Key: "score", Direction: Desc})
	tbl.Replace(numbered(12))
	require.True(t, tbl.SetPage(2))

	tbl.Refresh(numbered(12))
	assert.Equal(t, 2, tbl.Pagination().Page)

	tbl.Refresh(numbered(3))
	assert.Equal(t, 1, tbl.Pagination().Page, "clamped when the collection shrinks")

	tbl.Refresh(nil)
	assert.Equal(t, 1, tbl.Pagination().Page)
	assert.Empty(t, tbl.VisibleRows())
}

func TestSlice(t *testing.T) {
	records := numbered(7)
	assert.Equal(t, []int{1, 2, 3}, ids(Slice(records, 1, 3)))
	assert.Equal(t, []int{7}, ids(Slice(records, 3, 3)))
	assert.Empty(t, Slice(records, 4, 3))
	assert.Empty(t, Slice(records, 0, 3))
	assert.Empty(t, Slice(nil, 1, 3))
}

func TestSort_Idempotent(t *testing.T) {
	fields := DefaultFields()
	cfg := SortConfig{Key: "score", Direction: Desc}
	records := device.Catalog()

	once := Sort(records, fields, cfg)
	twice := Sort(once, fields, cfg)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSort_DirectionReversal(t *testing.T) {
	fields := DefaultFields()
	// IOPS values in the catalog have ties; use name which is unique.
	records := device.Catalog()

	asc := Sort(records, fields, SortConfig{Key: "name", Direction: Asc})
	desc := Sort(records, fields, SortConfig{Key: "name", Direction: Desc})

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(desc), ids(reversed))
}

func TestSort_Stable(t *testing.T) {
	records := []device.Record{
		{ID: 1, Score: 80}, {ID: 2, Score: 90}, {ID: 3, Score: 80}, {ID: 4, Score: 90},
	}
	got := Sort(records, DefaultFields(), SortConfig{Key: "score", Direction: Desc})
	assert.Equal(t, []int{2, 4, 1, 3}, ids(got))
}

func TestSort_MissingLast(t *testing.T) {
	records := []device.Record{
		{ID: 1},
		{ID: 2, Sustainability: &device.Sustainability{PowerEfficiency: 50}},
		{ID: 3, Sustainability: &device.Sustainability{PowerEfficiency: 90}},
	}
	fields := DefaultFields()

	asc := Sort(records, fields, SortConfig{Key: "sustainability.powerEfficiency", Direction: Asc})
	assert.Equal(t, []int{2, 3, 1}, ids(asc))

	desc := Sort(records, fields, SortConfig{Key: "sustainability.powerEfficiency", Direction: Desc})
	assert.Equal(t, []int{3, 2, 1}, ids(desc))
}

func TestSort_TextAndNumbers(t *testing.T) {
	records := []device.Record{
		{ID: 1, Name: "beta"},
		{ID: 2, Name: "Alpha"},
		{ID: 3, Name: "alpha"},
	}
	got := Sort(records, DefaultFields(), SortConfig{Key: "name", Direction: Asc})
	assert.Equal(t, []int{2, 3, 1}, ids(got), "code-point order puts upper case first")

	caps := []device.Record{
		{ID: 1, Capacity: "1PB"},
		{ID: 2, Capacity: "500TB"},
		{ID: 3, Capacity: "80TB"},
	}
	got = Sort(caps, DefaultFields(), SortConfig{Key: "capacity", Direction: Asc})
	assert.Equal(t, []int{3, 2, 1}, ids(got), "capacity compares by bytes")
}

func TestSort_UnknownKeyKeepsOrder(t *testing.T) {
	records := numbered(4)
	got := Sort(records, DefaultFields(), SortConfig{Key: "bogus", Direction: Asc})
	assert.Equal(t, ids(records), ids(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	records := numbered(5)
	Sort(records, DefaultFields(), SortConfig{Key: "score", Direction: Asc})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(records))
}

func TestParseDirectionAndMode(t *testing.T) {
	d, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)
	_, err = ParseDirection("sideways")
	assert.Error(t, err)

	m, err := ParseMode("local")
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeServer, m)
	_, err = ParseMode("hybrid")
	assert.Error(t, err)
}

func TestDefaultFields_Missing(t *testing.T) {
	fields := DefaultFields()
	empty := device.Record{}

	for _, key := range []string{"deviceScore", "tier", "capacity", "sustainability.carbonReduction", "features.protocolCount"} {
		assert.True(t, fields.Get(empty, key).IsMissing(), key)
	}
	assert.True(t, fields.Get(empty, "no.such.key").IsMissing())
	assert.Equal(t, Number(0), fields.Get(empty, "score"))
	assert.Equal(t, Text("weird"), fields.Get(device.Record{Capacity: "weird"}, "capacity"))
}
