package dataset

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var ErrMisaligned = errors.New("countries and capitals are not aligned")

// Entry is a single (capital, country) pair as scraped from the source table.
type Entry struct {
	Capital string
	Country string
}

// Dataset is the full in-memory collection of entries and derived lookups.
// Countries and Capitals are index-aligned in document order.
type Dataset struct {
	Countries        []string
	Capitals         []string
	CountryToCapital map[string]string
	CapitalToCountry map[string]string
}

// New builds a dataset from entries in document order. Duplicate names
// overwrite earlier lookup keys.
func New(entries []Entry) *Dataset {
	d := &Dataset{
		Countries:        make([]string, 0, len(entries)),
		Capitals:         make([]string, 0, len(entries)),
		CountryToCapital: make(map[string]string, len(entries)),
		CapitalToCountry: make(map[string]string, len(entries)),
	}

	for _, e := range entries {
		d.Countries = append(d.Countries, e.Country)
		d.Capitals = append(d.Capitals, e.Capital)
		d.CapitalToCountry[e.Capital] = e.Country
		d.CountryToCapital[e.Country] = e.Capital
	}

	return d
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.Countries)
}

// Validate checks that every country maps to the capital at the same index.
func (d *Dataset) Validate() error {
	if len(d.Countries) != len(d.Capitals) {
		return fmt.Errorf("%w: %d countries, %d capitals", ErrMisaligned, len(d.Countries), len(d.Capitals))
	}
	for i, country := range d.Countries {
		if got := d.CountryToCapital[country]; got != d.Capitals[i] {
			return fmt.Errorf("%w: index %d: %q maps to %q, want %q", ErrMisaligned, i, country, got, d.Capitals[i])
		}
	}
	return nil
}

// Equal reports whether both datasets hold the same four fields.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}
	return slices.Equal(d.Countries, other.Countries) &&
		slices.Equal(d.Capitals, other.Capitals) &&
		maps.Equal(d.CountryToCapital, other.CountryToCapital) &&
		maps.Equal(d.CapitalToCountry, other.CapitalToCountry)
}

// FlagFileName turns a country name into a file name safe to use inside
// the flags directory.
func FlagFileName(country string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, strings.TrimSpace(country))

	if name == "" || name == "." || name == ".." {
		name = "_"
	}
	return name + ".png"
}
