// Package specs turns a raw ad into the labelled spec sections of the
// vehicle detail page. Each section is a declarative list of fields; a
// field without a value is left out and a section without fields is too.
package specs

import (
	"strconv"
	"strings"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

// SiteName is appended to page titles
const SiteName = "AutoCenter Jülich"

// Field is one label/value row
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of rows
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Meta is the page metadata of a vehicle detail page
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type field struct {
	label string
	value func(ad *models.Ad) string
}

type section struct {
	title  string
	fields []field
}

var detailSections = []section{
	{"Fahrzeug", []field{
		{"Fahrzeugklasse", func(ad *models.Ad) string { return ad.VehicleClass }},
		{"Kategorie", func(ad *models.Ad) string { return ad.Category }},
		{"Marke", func(ad *models.Ad) string { return ad.Make }},
		{"Modell", func(ad *models.Ad) string { return ad.Model }},
		{"Modellbeschreibung", func(ad *models.Ad) string { return ad.ModelDescription }},
		{"Zustand", func(ad *models.Ad) string { return ad.Condition }},
		{"Erstzulassung", func(ad *models.Ad) string { return models.FormatYearMonth(ad.FirstRegistration) }},
		{"Kilometerstand", func(ad *models.Ad) string { return mileage(ad) }},
		{"Sitze", func(ad *models.Ad) string { return integer(ad.Seats.Int()) }},
		{"Türen", func(ad *models.Ad) string { return models.Label(models.DoorsLabels, ad.Doors) }},
		{"Antrieb", func(ad *models.Ad) string { return models.Label(models.DriveTypeLabels, ad.DriveType) }},
	}},
	{"Motor & Antrieb", []field{
		{"Leistung", enginePower},
		{"Hubraum", func(ad *models.Ad) string { return withUnit(ad.CubicCapacity.Float(), "cm³") }},
		{"Zylinder", func(ad *models.Ad) string { return integer(ad.Cylinder.Int()) }},
		{"Getriebe", func(ad *models.Ad) string { return models.Label(models.GearboxLabels, ad.Gearbox) }},
		{"Kraftstoff", func(ad *models.Ad) string { return models.Label(models.FuelLabels, ad.Fuel) }},
		{"E10 geeignet", func(ad *models.Ad) string { return yesNo(ad.E10Enabled) }},
		{"Tankvolumen", func(ad *models.Ad) string { return withUnit(ad.FuelTankVolume.Float(), "l") }},
	}},
	{"Verbrauch & Emissionen", []field{
		{"Schadstoffklasse", func(ad *models.Ad) string { return ad.EmissionClass }},
		{"Umweltplakette", func(ad *models.Ad) string { return ad.EmissionSticker }},
		{"CO₂ (komb.)", func(ad *models.Ad) string {
			if ad.Emissions == nil || ad.Emissions.Combined == nil {
				return ""
			}
			return withUnit(ad.Emissions.Combined.CO2.Float(), "g/km")
		}},
		{"Verbrauch (komb.)", func(ad *models.Ad) string {
			if ad.Consumptions == nil || ad.Consumptions.Fuel == nil {
				return ""
			}
			return withUnit(ad.Consumptions.Fuel.Combined.Float(), "l/100km")
		}},
	}},
	{"Farben & Innenraum", []field{
		{"Außenfarbe", func(ad *models.Ad) string { return ad.ExteriorColor }},
		{"Herstellerfarbe", func(ad *models.Ad) string { return ad.ManufacturerColorName }},
		{"Metallic", func(ad *models.Ad) string { return yesNo(ad.Metallic) }},
		{"Innenfarbe", func(ad *models.Ad) string { return ad.InteriorColor }},
		{"Innenmaterial", func(ad *models.Ad) string { return ad.InteriorType }},
		{"Ausstattungslinie", func(ad *models.Ad) string { return ad.TrimLine }},
		{"Baureihe", func(ad *models.Ad) string { return ad.ModelRange }},
	}},
	{"Zustand & Service", []field{
		{"HU (bis)", func(ad *models.Ad) string { return models.FormatYearMonth(ad.GeneralInspection) }},
		{"Scheckheft gepflegt", func(ad *models.Ad) string { return yesNo(ad.FullServiceHistory) }},
		{"Unfall/Schaden unrepariert", func(ad *models.Ad) string { return yesNo(ad.DamageUnrepaired) }},
		{"Fahrbereit", func(ad *models.Ad) string { return yesNo(ad.Roadworthy) }},
		{"Garantie", func(ad *models.Ad) string { return yesNo(ad.Warranty) }},
		{"Inserat erneuert am", func(ad *models.Ad) string { return ad.RenewalDate }},
	}},
	{"Ausstattung", []field{
		// Equipment flags are listed only when present on the car.
		{"ABS", func(ad *models.Ad) string { return yesOnly(ad.ABS) }},
		{"ESP", func(ad *models.Ad) string { return yesOnly(ad.ESP) }},
		{"Bluetooth", func(ad *models.Ad) string { return yesOnly(ad.Bluetooth) }},
		{"Freisprecheinrichtung", func(ad *models.Ad) string { return yesOnly(ad.HandsFreePhoneSystem) }},
		{"Wegfahrsperre", func(ad *models.Ad) string { return yesOnly(ad.Immobilizer) }},
		{"Multifunktionslenkrad", func(ad *models.Ad) string { return yesOnly(ad.MultifunctionalWheel) }},
		{"Bordcomputer", func(ad *models.Ad) string { return yesOnly(ad.OnBoardComputer) }},
		{"Sitzheizung", func(ad *models.Ad) string { return yesOnly(ad.ElectricHeatedSeats) }},
		{"Beheizte Frontscheibe", func(ad *models.Ad) string { return yesOnly(ad.HeatedWindshield) }},
		{"Lederlenkrad", func(ad *models.Ad) string { return yesOnly(ad.LeatherSteeringWheel) }},
		{"Touchscreen", func(ad *models.Ad) string { return yesOnly(ad.Touchscreen) }},
		{"USB", func(ad *models.Ad) string { return yesOnly(ad.USB) }},
		{"Apple CarPlay", func(ad *models.Ad) string { return yesOnly(ad.CarPlay) }},
		{"Ganzjahresreifen", func(ad *models.Ad) string { return yesOnly(ad.AllSeasonTires) }},
		{"Radio", func(ad *models.Ad) string { return list(ad.Radio) }},
		{"Parkassistenten", func(ad *models.Ad) string { return list(ad.ParkingAssistants) }},
		{"Heizung (Typen)", func(ad *models.Ad) string { return list(ad.Heating) }},
		{"Steuerung / Tempomat", func(ad *models.Ad) string { return ad.SpeedControl }},
		{"Tagfahrlicht", func(ad *models.Ad) string { return ad.DaytimeRunningLamps }},
		{"Airbags", func(ad *models.Ad) string { return ad.Airbag }},
	}},
	{"Gewicht & Anhängelast", []field{
		{"Leergewicht", func(ad *models.Ad) string { return withUnit(ad.Weight.Float(), "kg") }},
		{"Anhängelast gebremst", func(ad *models.Ad) string { return withUnit(ad.TrailerLoadBraked.Float(), "kg") }},
		{"Anhängelast ungebremst", func(ad *models.Ad) string { return withUnit(ad.TrailerLoadUnbraked.Float(), "kg") }},
	}},
	{"IDs & Meta", []field{
		{"mobileAdId", func(ad *models.Ad) string { return ad.ID() }},
		{"mobileSellerId", func(ad *models.Ad) string { return ad.MobileSellerID.String() }},
		{"VIN/FIN", func(ad *models.Ad) string { return ad.VIN }},
		{"KBA HSN/TSN", func(ad *models.Ad) string {
			if ad.KBA == nil || strings.TrimSpace(ad.KBA.HSN) == "" || strings.TrimSpace(ad.KBA.TSN) == "" {
				return ""
			}
			return strings.TrimSpace(ad.KBA.HSN) + " / " + strings.TrimSpace(ad.KBA.TSN)
		}},
		{"Erstellt am", func(ad *models.Ad) string { return ad.CreationDate }},
		{"Geändert am", func(ad *models.Ad) string { return ad.ModificationDate }},
	}},
}

// Sections evaluates every section against ad
func Sections(ad *models.Ad) []Section {
	out := make([]Section, 0, len(detailSections))
	for _, s := range detailSections {
		fields := collect(ad, s.fields)
		if len(fields) == 0 {
			continue
		}
		out = append(out, Section{Title: s.title, Fields: fields})
	}
	return out
}

var quickFacts = []field{
	{"Erstzulassung", func(ad *models.Ad) string { return models.FormatYearMonth(ad.FirstRegistration) }},
	{"Kilometer", mileage},
	{"Leistung", func(ad *models.Ad) string {
		if ps := ad.PowerPS(); ps != nil {
			return strconv.Itoa(*ps) + " PS"
		}
		return withUnit(ad.Power.Float(), "kW")
	}},
	{"HU", func(ad *models.Ad) string { return models.FormatYearMonth(ad.GeneralInspection) }},
}

// QuickFacts are the headline boxes next to the gallery
func QuickFacts(ad *models.Ad) []Field {
	return collect(ad, quickFacts)
}

func collect(ad *models.Ad, fields []field) []Field {
	var out []Field
	for _, f := range fields {
		if v := strings.TrimSpace(f.value(ad)); v != "" {
			out = append(out, Field{Label: f.label, Value: v})
		}
	}
	return out
}

// Title is "make modelDescription", falling back to the model and then
// to a generic word
func Title(ad *models.Ad) string {
	name := strings.TrimSpace(ad.ModelDescription)
	if name == "" {
		name = strings.TrimSpace(ad.Model)
	}
	title := strings.TrimSpace(strings.TrimSpace(ad.Make) + " " + name)
	if title == "" {
		return "Fahrzeug"
	}
	return title
}

// PriceText renders the price as "12.990 €", or "" without a price
func PriceText(ad *models.Ad) string {
	p := ad.PriceAmount()
	if p == nil {
		return ""
	}
	return models.FormatPrice(*p) + " €"
}

// PageMeta builds the title and the "·"-joined description of a detail page
func PageMeta(ad *models.Ad) Meta {
	var parts []string
	for _, s := range []string{
		models.FormatYearMonth(ad.FirstRegistration),
		mileage(ad),
		models.Label(models.FuelLabels, strings.TrimSpace(ad.Fuel)),
		psText(ad),
		PriceText(ad),
	} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return Meta{
		Title:       Title(ad) + " | " + SiteName,
		Description: strings.Join(parts, " · "),
	}
}

// NotFoundMeta is the metadata of a missing vehicle
func NotFoundMeta() Meta {
	return Meta{Title: "Fahrzeug nicht gefunden | " + SiteName}
}

func enginePower(ad *models.Ad) string {
	kw := withUnit(ad.Power.Float(), "kW")
	if kw == "" {
		return ""
	}
	if ps := psText(ad); ps != "" {
		return kw + " (" + ps + ")"
	}
	return kw
}

func psText(ad *models.Ad) string {
	if ps := ad.PowerPS(); ps != nil {
		return strconv.Itoa(*ps) + " PS"
	}
	return ""
}

func mileage(ad *models.Ad) string {
	km := ad.Mileage.Int()
	if km == nil {
		return ""
	}
	return models.FormatNumber(*km) + " km"
}

func withUnit(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " " + unit
}

func integer(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func yesNo(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "Ja"
	default:
		return "Nein"
	}
}

func yesOnly(v *bool) string {
	if v != nil && *v {
		return "Ja"
	}
	return ""
}

func list(values []string) string {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, ", ")
}
