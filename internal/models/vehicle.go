package models

import (
	"math"
	"strconv"
	"strings"
)

const (
	// PlaceholderImage is served when an ad carries no pictures
	PlaceholderImage = "/placeholder-car.jpg"

	// DefaultLocation is the dealer's branding location for every vehicle
	DefaultLocation = "Jülich"

	// KWToPS converts provider kilowatts to the displayed horsepower unit
	KWToPS = 1.35962

	// MileageSentinel sorts vehicles without mileage after all others
	MileageSentinel = 999999999
)

// Vehicle is the uniform view model of one listing
type Vehicle struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model,omitempty"`
	Price        *float64 `json:"price"`
	Year         *int     `json:"year"`
	Mileage      *int     `json:"km"`
	Fuel         string   `json:"fuel,omitempty"`
	FuelLabel    string   `json:"fuelLabel,omitempty"`
	Gearbox      string   `json:"gearbox,omitempty"`
	GearboxLabel string   `json:"gearboxLabel,omitempty"`
	Power        *int     `json:"power"` // PS
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	IsSold       bool     `json:"isSold"`
}

// PriceValue returns the price, or 0 when the listing has none
func (v *Vehicle) PriceValue() float64 {
	if v.Price == nil {
		return 0
	}
	return *v.Price
}

// YearValue returns the registration year, or 0 when unknown
func (v *Vehicle) YearValue() int {
	if v.Year == nil {
		return 0
	}
	return *v.Year
}

// MileageValue returns the mileage, or MileageSentinel when unknown
func (v *Vehicle) MileageValue() int {
	if v.Mileage == nil {
		return MileageSentinel
	}
	return *v.Mileage
}

// ToVehicle maps a raw provider ad to the view model. Provider shape
// knowledge stays here so a provider swap only touches this file.
func (ad *Ad) ToVehicle() *Vehicle {
	id := ad.ID()

	title := joinNonEmpty(ad.Make, ad.Model, ad.ModelDescription)
	if title == "" {
		title = "Anzeige " + id
	}

	brand := strings.TrimSpace(ad.Make)
	if brand == "" {
		brand = strings.Split(title, " ")[0]
	}

	images := ad.ImageRefs()
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}

	v := &Vehicle{
		ID:           id,
		Title:        title,
		Brand:        brand,
		Model:        strings.TrimSpace(ad.Model),
		Price:        ad.PriceAmount(),
		Year:         RegistrationYear(ad.FirstRegistration),
		Fuel:         strings.TrimSpace(ad.Fuel),
		Gearbox:      strings.TrimSpace(ad.Gearbox),
		Power:        ad.PowerPS(),
		Location:     DefaultLocation,
		Images:       images,
		IsSold:       soldFromAd(ad),
		FuelLabel:    Label(FuelLabels, strings.TrimSpace(ad.Fuel)),
		GearboxLabel: Label(GearboxLabels, strings.TrimSpace(ad.Gearbox)),
	}

	v.Mileage = ad.Mileage.Int()

	return v
}

// soldFromAd derives the sold badge. Only the reserved flag is known to
// be populated for this account; swap the source here once a real sold
// flag is available.
func soldFromAd(ad *Ad) bool {
	return ad.Reserved != nil && *ad.Reserved
}

// PriceAmount picks the first present price variant in the order
// consumer gross, dealer gross, consumer net, dealer net
func (ad *Ad) PriceAmount() *float64 {
	if ad.Price == nil {
		return nil
	}
	candidates := []FlexString{
		ad.Price.ConsumerPriceGross,
		ad.Price.DealerPriceGross,
		ad.Price.ConsumerPriceNet,
		ad.Price.DealerPriceNet,
	}
	for _, c := range candidates {
		raw := c.String()
		if raw == "" {
			continue
		}
		amount, ok := ParseLocaleAmount(raw)
		if !ok {
			return nil
		}
		return &amount
	}
	return nil
}

// PowerPS converts the provider's kW value to rounded PS. Zero or missing
// power yields nil.
func (ad *Ad) PowerPS() *int {
	if !ad.Power.Valid || ad.Power.Value == 0 {
		return nil
	}
	ps := int(math.Round(ad.Power.Value * KWToPS))
	return &ps
}

// ParseLocaleAmount reads amounts such as "12990.00", "12990,5" or
// "12.990,50". Comma is the decimal separator whenever it is present.
func ParseLocaleAmount(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// RegistrationYear extracts the year of a yyyyMM registration value
func RegistrationYear(yyyymm string) *int {
	s := strings.TrimSpace(yyyymm)
	if len(s) < 4 {
		return nil
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return nil
	}
	return &year
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
