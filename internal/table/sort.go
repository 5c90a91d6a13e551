package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rileyhilliard/stordash/internal/device"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// ParseDirection accepts "asc" or "desc" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return "", fmt.Errorf("invalid sort direction %q (want asc or desc)", s)
	}
}

// SortConfig is the active sort of one table.
type SortConfig struct {
	Key       string    `mapstructure:"key" yaml:"key" json:"key"`
	Direction Direction `mapstructure:"direction" yaml:"direction" json:"direction"`
}

func (c SortConfig) String() string {
	return c.Key + " " + string(c.Direction)
}

// Sort returns a stably sorted copy of records. Numbers compare
// numerically, anything else by code point. Missing values sort after
// every defined value in both directions. An unknown key leaves the order
// unchanged.
func Sort(records []device.Record, fields Fields, cfg SortConfig) []device.Record {
	out := slices.Clone(records)
	acc, ok := fields[cfg.Key]
	if !ok || len(out) < 2 {
		return out
	}

	type keyed struct {
		rec device.Record
		val Value
	}
	rows := make([]keyed, len(out))
	for i, r := range out {
		rows[i] = keyed{rec: r, val: acc(r)}
	}

	desc := cfg.Direction == Desc
	slices.SortStableFunc(rows, func(a, b keyed) int {
		return compareValues(a.val, b.val, desc)
	})

	for i, row := range rows {
		out[i] = row.rec
	}
	return out
}

func compareValues(a, b Value, desc bool) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return 1
	case b.IsMissing():
		return -1
	}

	var c int
	if a.Kind == KindNumber && b.Kind == KindNumber {
		switch {
		case a.Num < b.Num:
			c = -1
		case a.Num > b.Num:
			c = 1
		}
	} else {
		c = strings.Compare(a.String(), b.String())
	}

	if desc {
		return -c
	}
	return c
}
