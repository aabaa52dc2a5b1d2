package filter

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

// DefaultMinYear is the lower year bound when no vehicle has a year
const DefaultMinYear = 2000

// Option is one selectable filter value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// YearRange is the inclusive span of registration years on offer
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Options are the choices offered by the filter sidebar. They come from the
// full inventory, never from a filtered subset, so picking a value cannot
// make it disappear.
type Options struct {
	Brands      []Option  `json:"brands"`
	Fuels       []Option  `json:"fuels"`
	Gearboxes   []Option  `json:"gearboxes"`
	Years       YearRange `json:"years"`
	YearChoices []int     `json:"yearChoices"`
	SortModes   []Option  `json:"sortModes"`
}

var sortLabels = map[SortMode]string{
	SortNewest:    "Sortieren: Neueste",
	SortPriceAsc:  "Preis aufsteigend",
	SortPriceDesc: "Preis absteigend",
	SortMileage:   "Kilometerstand",
}

// BuildOptions derives the option lists from the full inventory
func BuildOptions(vehicles []*models.Vehicle) Options {
	return buildOptions(vehicles, time.Now().Year())
}

func buildOptions(vehicles []*models.Vehicle, currentYear int) Options {
	brandSet := map[string]struct{}{}
	fuelSet := map[string]struct{}{}
	gearboxSet := map[string]struct{}{}
	var years []int

	for _, v := range vehicles {
		if v == nil {
			continue
		}
		if b := strings.TrimSpace(v.Brand); b != "" {
			brandSet[b] = struct{}{}
		}
		if f := strings.TrimSpace(v.Fuel); f != "" {
			fuelSet[f] = struct{}{}
		}
		if g := strings.TrimSpace(v.Gearbox); g != "" {
			gearboxSet[g] = struct{}{}
		}
		if v.Year != nil {
			years = append(years, *v.Year)
		}
	}

	brands := keys(brandSet)
	collate.New(language.German).SortStrings(brands)
	fuels := keys(fuelSet)
	slices.Sort(fuels)
	gearboxes := keys(gearboxSet)
	slices.Sort(gearboxes)

	opts := Options{
		Brands:    make([]Option, 0, len(brands)),
		Fuels:     make([]Option, 0, len(fuels)),
		Gearboxes: make([]Option, 0, len(gearboxes)),
		SortModes: make([]Option, 0, len(SortModes)),
		Years:     YearRange{Min: DefaultMinYear, Max: currentYear},
	}
	for _, b := range brands {
		opts.Brands = append(opts.Brands, Option{Value: b, Label: b})
	}
	for _, f := range fuels {
		opts.Fuels = append(opts.Fuels, Option{Value: f, Label: models.Label(models.FuelLabels, f)})
	}
	for _, g := range gearboxes {
		opts.Gearboxes = append(opts.Gearboxes, Option{Value: g, Label: models.Label(models.GearboxLabels, g)})
	}
	for _, m := range SortModes {
		opts.SortModes = append(opts.SortModes, Option{Value: string(m), Label: sortLabels[m]})
	}

	if len(years) > 0 {
		opts.Years = YearRange{Min: slices.Min(years), Max: slices.Max(years)}
	}
	opts.YearChoices = make([]int, 0, opts.Years.Max-opts.Years.Min+1)
	for y := opts.Years.Max; y >= opts.Years.Min; y-- {
		opts.YearChoices = append(opts.YearChoices, y)
	}

	return opts
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
