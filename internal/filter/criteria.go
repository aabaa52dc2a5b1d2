package filter

import (
	"net/url"
	"slices"
	"strings"
)

// SortMode selects the ordering of the listing
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortMileage   SortMode = "km"
)

// SortModes lists the accepted modes in display order
var SortModes = []SortMode{SortNewest, SortPriceAsc, SortPriceDesc, SortMileage}

// ParseSortMode maps unknown or empty values to SortNewest
func ParseSortMode(s string) SortMode {
	mode := SortMode(strings.TrimSpace(s))
	if slices.Contains(SortModes, mode) {
		return mode
	}
	return SortNewest
}

// Query-string keys
const (
	KeyQuery    = "q"
	KeySort     = "sort"
	KeyBrand    = "brand"
	KeyFuel     = "fuel"
	KeyGearbox  = "gearbox"
	KeyMinPrice = "min"
	KeyMaxPrice = "max"
	KeyYearFrom = "yf"
	KeyYearTo   = "yt"
)

// Criteria is the user's current filter and sort choice. Bounds keep the
// raw input so that whatever the user typed survives the URL round trip;
// they are interpreted only when filtering.
type Criteria struct {
	Query    string   `json:"q"`
	Sort     SortMode `json:"sort"`
	Brands   []string `json:"brands"`
	Fuels    []string `json:"fuels"`
	Gearbox  string   `json:"gearbox"`
	MinPrice string   `json:"minPrice"`
	MaxPrice string   `json:"maxPrice"`
	YearFrom string   `json:"yearFrom"`
	YearTo   string   `json:"yearTo"`
}

// Default returns unconstrained criteria sorted by newest
func Default() Criteria {
	return Criteria{Sort: SortNewest, Brands: []string{}, Fuels: []string{}}
}

// Parse reads criteria from query values. It never fails: absent keys are
// unconstrained and an unknown sort falls back to newest.
func Parse(values url.Values) Criteria {
	return Criteria{
		Query:    values.Get(KeyQuery),
		Sort:     ParseSortMode(values.Get(KeySort)),
		Brands:   parseMulti(values.Get(KeyBrand)),
		Fuels:    parseMulti(values.Get(KeyFuel)),
		Gearbox:  values.Get(KeyGearbox),
		MinPrice: values.Get(KeyMinPrice),
		MaxPrice: values.Get(KeyMaxPrice),
		YearFrom: values.Get(KeyYearFrom),
		YearTo:   values.Get(KeyYearTo),
	}
}

// ParseQuery parses a raw query string with or without the leading "?".
// A malformed query yields whatever pairs could be read.
func ParseQuery(raw string) Criteria {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if values == nil {
		values = url.Values{}
	}
	return Parse(values)
}

func parseMulti(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Encode serializes the criteria as "?k=v&…" in a fixed key order, leaving
// out empty values. Unconstrained criteria still carry the sort key.
func (c Criteria) Encode() string {
	var pairs []string
	add := func(key, value string) {
		if value == "" {
			return
		}
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	add(KeyQuery, c.Query)
	add(KeySort, string(c.Sort))
	add(KeyBrand, strings.Join(c.Brands, ","))
	add(KeyFuel, strings.Join(c.Fuels, ","))
	add(KeyGearbox, c.Gearbox)
	add(KeyMinPrice, c.MinPrice)
	add(KeyMaxPrice, c.MaxPrice)
	add(KeyYearFrom, c.YearFrom)
	add(KeyYearTo, c.YearTo)

	if len(pairs) == 0 {
		return ""
	}
	return "?" + strings.Join(pairs, "&")
}

// Equal compares two criteria field by field
func (c Criteria) Equal(o Criteria) bool {
	return c.Query == o.Query &&
		c.Sort == o.Sort &&
		slices.Equal(c.Brands, o.Brands) &&
		slices.Equal(c.Fuels, o.Fuels) &&
		c.Gearbox == o.Gearbox &&
		c.MinPrice == o.MinPrice &&
		c.MaxPrice == o.MaxPrice &&
		c.YearFrom == o.YearFrom &&
		c.YearTo == o.YearTo
}

// Clone returns a copy that shares no slices with c
func (c Criteria) Clone() Criteria {
	c.Brands = append([]string{}, c.Brands...)
	c.Fuels = append([]string{}, c.Fuels...)
	return c
}

// ToggleBrand adds the brand when absent and removes it when present.
// Values containing the list separator are ignored since they could not
// survive the query string.
func (c *Criteria) ToggleBrand(brand string) {
	c.Brands = toggle(c.Brands, brand)
}

// ToggleFuel adds the fuel when absent and removes it when present
func (c *Criteria) ToggleFuel(fuel string) {
	c.Fuels = toggle(c.Fuels, fuel)
}

func toggle(set []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, ",") {
		return set
	}
	if i := slices.Index(set, value); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), value)
}

// Set assigns a single-valued field by its query key. Multi-valued keys
// replace the whole set from a comma-joined value. It reports whether the
// key is known.
func (c *Criteria) Set(key, value string) bool {
	switch key {
	case KeyQuery:
		c.Query = value
	case KeySort:
		c.Sort = ParseSortMode(value)
	case KeyBrand:
		c.Brands = parseMulti(value)
	case KeyFuel:
		c.Fuels = parseMulti(value)
	case KeyGearbox:
		c.Gearbox = value
	case KeyMinPrice:
		c.MinPrice = value
	case KeyMaxPrice:
		c.MaxPrice = value
	case KeyYearFrom:
		c.YearFrom = value
	case KeyYearTo:
		c.YearTo = value
	default:
		return false
	}
	return true
}

// Reset clears every criterion
func (c *Criteria) Reset() {
	*c = Default()
}
