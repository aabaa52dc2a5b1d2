// Package filter derives the visible vehicle list from the full inventory
// and the user's criteria. Everything here is pure and synchronous.
package filter

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

// Bound parses a numeric bound. Blank and unparseable input is no bound.
func Bound(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

type predicate struct {
	query   string
	brands  map[string]struct{}
	fuels   map[string]struct{}
	gearbox string

	minPrice, maxPrice float64
	hasMin, hasMax     bool
	yearFrom, yearTo   float64
	hasFrom, hasTo     bool
}

func compile(c Criteria) predicate {
	p := predicate{
		query:   strings.ToLower(strings.TrimSpace(c.Query)),
		brands:  toSet(c.Brands),
		fuels:   toSet(c.Fuels),
		gearbox: c.Gearbox,
	}
	p.minPrice, p.hasMin = Bound(c.MinPrice)
	p.maxPrice, p.hasMax = Bound(c.MaxPrice)
	p.yearFrom, p.hasFrom = Bound(c.YearFrom)
	p.yearTo, p.hasTo = Bound(c.YearTo)
	return p
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (p predicate) match(v *models.Vehicle) bool {
	brand := strings.TrimSpace(v.Brand)

	if p.query != "" {
		hay := strings.ToLower(strings.TrimSpace(v.Title) + " " + brand + " " + strings.TrimSpace(v.Model))
		if !strings.Contains(hay, p.query) {
			return false
		}
	}

	if len(p.brands) > 0 {
		if _, ok := p.brands[brand]; !ok {
			return false
		}
	}
	if len(p.fuels) > 0 {
		if _, ok := p.fuels[strings.TrimSpace(v.Fuel)]; !ok {
			return false
		}
	}

	if p.gearbox != "" && strings.TrimSpace(v.Gearbox) != p.gearbox {
		return false
	}

	// Bounds only apply to vehicles that carry the value.
	if v.Price != nil {
		if p.hasMin && *v.Price < p.minPrice {
			return false
		}
		if p.hasMax && *v.Price > p.maxPrice {
			return false
		}
	}
	if v.Year != nil {
		year := float64(*v.Year)
		if p.hasFrom && year < p.yearFrom {
			return false
		}
		if p.hasTo && year > p.yearTo {
			return false
		}
	}

	return true
}

// Matches reports whether a single vehicle satisfies every criterion
func Matches(v *models.Vehicle, c Criteria) bool {
	return v != nil && compile(c).match(v)
}

// Filter returns the vehicles that satisfy c, in input order
func Filter(vehicles []*models.Vehicle, c Criteria) []*models.Vehicle {
	p := compile(c)
	out := make([]*models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v != nil && p.match(v) {
			out = append(out, v)
		}
	}
	return out
}

// Sort orders vehicles in place and returns them. The sort is stable, so
// vehicles that compare equal keep their input order. Newest compares the
// registration year only.
func Sort(vehicles []*models.Vehicle, mode SortMode) []*models.Vehicle {
	var compare func(a, b *models.Vehicle) int
	switch ParseSortMode(string(mode)) {
	case SortPriceAsc:
		compare = func(a, b *models.Vehicle) int { return cmp.Compare(a.PriceValue(), b.PriceValue()) }
	case SortPriceDesc:
		compare = func(a, b *models.Vehicle) int { return cmp.Compare(b.PriceValue(), a.PriceValue()) }
	case SortMileage:
		compare = func(a, b *models.Vehicle) int { return cmp.Compare(a.MileageValue(), b.MileageValue()) }
	default:
		compare = func(a, b *models.Vehicle) int { return cmp.Compare(b.YearValue(), a.YearValue()) }
	}
	slices.SortStableFunc(vehicles, compare)
	return vehicles
}

// Apply filters and sorts. The input slice is left untouched.
func Apply(vehicles []*models.Vehicle, c Criteria) []*models.Vehicle {
	return Sort(Filter(vehicles, c), c.Sort)
}
