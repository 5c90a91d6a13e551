package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rileyhilliard/stordash/internal/device"
)

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 5

// Mode selects where sorting happens. A table keeps one mode for its life.
type Mode int

const (
	// ModeServer asks the data provider for sorted data on every sort change.
	ModeServer Mode = iota
	// ModeLocal sorts the loaded collection in memory.
	ModeLocal
)

func (m Mode) String() string {
	if m == ModeLocal {
		return "local"
	}
	return "server"
}

// ParseMode accepts "server" or "local".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server", "":
		return ModeServer, nil
	case "local":
		return ModeLocal, nil
	default:
		return 0, fmt.Errorf("invalid sort mode %q (want server or local)", s)
	}
}

// Pagination describes the current page of a table.
type Pagination struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Options configure a Table.
type Options struct {
	ID     string
	Fields Fields // defaults to DefaultFields()
	// Columns are the sortable keys, in display order. Every column must
	// have an accessor in Fields.
	Columns     []string
	DefaultSort SortConfig
	// DefaultDirection is adopted when sorting switches to a new key.
	// Defaults to Desc.
	DefaultDirection Direction
	PageSize         int
	Mode             Mode
}

// Table owns the sort and pagination state of one logical table.
// It is not safe for concurrent use.
type Table struct {
	id         string
	fields     Fields
	columns    []string
	sortable   map[string]bool
	sort       SortConfig
	defaultDir Direction
	page       int
	pageSize   int
	mode       Mode
	records    []device.Record
}

// New validates opts and returns a table on page 1 with no records.
func New(opts Options) (*Table, error) {
	if opts.ID == "" {
		return nil, fmt.Errorf("table id is required")
	}
	fields := opts.Fields
	if fields == nil {
		fields = DefaultFields()
	}
	if len(opts.Columns) == 0 {
		return nil, fmt.Errorf("table %s: no sortable columns", opts.ID)
	}

	sortable := make(map[string]bool, len(opts.Columns))
	for _, col := range opts.Columns {
		if _, ok := fields[col]; !ok {
			return nil, fmt.Errorf("table %s: column %q has no field accessor", opts.ID, col)
		}
		sortable[col] = true
	}

	defaultDir := opts.DefaultDirection
	if defaultDir == "" {
		defaultDir = Desc
	}
	sort := opts.DefaultSort
	if sort.Key == "" {
		sort.Key = opts.Columns[0]
	}
	if !sortable[sort.Key] {
		return nil, fmt.Errorf("table %s: default sort key %q is not a column", opts.ID, sort.Key)
	}
	if sort.Direction == "" {
		sort.Direction = defaultDir
	}
	if sort.Direction != Asc && sort.Direction != Desc {
		return nil, fmt.Errorf("table %s: invalid sort direction %q", opts.ID, sort.Direction)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Table{
		id:         opts.ID,
		fields:     fields,
		columns:    slices.Clone(opts.Columns),
		sortable:   sortable,
		sort:       sort,
		defaultDir: defaultDir,
		page:       1,
		pageSize:   pageSize,
		mode:       opts.Mode,
	}, nil
}

func (t *Table) ID() string            { return t.id }
func (t *Table) Mode() Mode            { return t.mode }
func (t *Table) SortConfig() SortConfig { return t.sort }
func (t *Table) Columns() []string     { return slices.Clone(t.columns) }
func (t *Table) Fields() Fields        { return t.fields }

// HasColumn reports whether key is sortable on this table.
func (t *Table) HasColumn(key string) bool { return t.sortable[key] }

// SetSort toggles the direction when key is the active key, otherwise
// adopts key with the default direction. The page returns to 1. In local
// mode the loaded records are re-sorted immediately; server mode tables
// use NextSort and CommitSort instead so nothing changes until the
// reordered data arrives. Unknown keys are ignored.
func (t *Table) SetSort(key string) (SortConfig, bool) {
	cfg, ok := t.NextSort(t.sort, key)
	if !ok {
		return t.sort, false
	}
	t.sort = cfg
	if t.mode == ModeLocal {
		t.records = Sort(t.records, t.fields, t.sort)
	}
	t.page = 1
	return t.sort, true
}

// NextSort returns the config that selecting key would produce when
// starting from current, without changing the table.
func (t *Table) NextSort(current SortConfig, key string) (SortConfig, bool) {
	if !t.sortable[key] {
		return current, false
	}
	if key == current.Key {
		current.Direction = current.Direction.Flip()
		return current, true
	}
	return SortConfig{Key: key, Direction: t.defaultDir}, true
}

// CommitSort installs records fetched for cfg and adopts cfg as the
// active sort, returning to page 1.
func (t *Table) CommitSort(cfg SortConfig, records []device.Record) {
	t.sort = cfg
	t.Replace(records)
}

// SetPage moves to page n. Pages outside [1, TotalPages] are ignored.
func (t *Table) SetPage(n int) bool {
	if n < 1 || n > t.totalPages() {
		return false
	}
	t.page = n
	return true
}

// Replace installs a new collection and returns to page 1.
// The table takes ownership of records.
func (t *Table) Replace(records []device.Record) {
	t.install(records)
	t.page = 1
}

// Refresh installs a new collection but keeps the current page, clamped
// into range. Used for background reloads.
func (t *Table) Refresh(records []device.Record) {
	t.install(records)
	if total := t.totalPages(); t.page > total {
		t.page = max(total, 1)
	}
}

func (t *Table) install(records []device.Record) {
	if t.mode == ModeLocal {
		records = Sort(records, t.fields, t.sort)
	}
	t.records = records
}

// Records returns the full collection in display order.
func (t *Table) Records() []device.Record {
	return slices.Clone(t.records)
}

// VisibleRows returns the records on the current page.
func (t *Table) VisibleRows() []device.Record {
	return slices.Clone(Slice(t.records, t.page, t.pageSize))
}

// Pagination returns the current page state.
func (t *Table) Pagination() Pagination {
	return Pagination{
		Page:       t.page,
		PageSize:   t.pageSize,
		TotalItems: len(t.records),
		TotalPages: t.totalPages(),
	}
}

func (t *Table) totalPages() int {
	return (len(t.records) + t.pageSize - 1) / t.pageSize
}

// Slice returns records[(page-1)*pageSize : page*pageSize], trimmed to the
// collection. Out-of-range pages yield an empty slice.
func Slice(records []device.Record, page, pageSize int) []device.Record {
	if page < 1 || pageSize <= 0 {
		return []device.Record{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []device.Record{}
	}
	end := min(start+pageSize, len(records))
	return records[start:end]
}
