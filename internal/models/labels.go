package models

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// German display labels for provider enum values
var (
	FuelLabels = map[string]string{
		"PETROL":        "Benzin",
		"DIESEL":        "Diesel",
		"ELECTRICITY":   "Elektro",
		"HYBRID":        "Hybrid",
		"HYBRID_DIESEL": "Hybrid (Diesel)",
		"LPG":           "LPG",
		"CNG":           "CNG",
		"ETHANOL":       "Ethanol",
		"HYDROGENIUM":   "Wasserstoff",
	}

	GearboxLabels = map[string]string{
		"AUTOMATIC_GEAR":     "Automatik",
		"SEMIAUTOMATIC_GEAR": "Halbautomatik",
		"MANUAL_GEAR":        "Schaltung",
	}

	DoorsLabels = map[string]string{
		"TWO_OR_THREE": "2/3",
		"FOUR_OR_FIVE": "4/5",
		"SIX_OR_SEVEN": "6/7",
	}

	DriveTypeLabels = map[string]string{
		"FRONT":     "Frontantrieb",
		"REAR":      "Heckantrieb",
		"ALL_WHEEL": "Allrad",
	}
)

// Label returns the display label of an enum value, the value itself when
// unknown, and "" for an empty value.
func Label(labels map[string]string, value string) string {
	if value == "" {
		return ""
	}
	if l, ok := labels[value]; ok {
		return l
	}
	return value
}

var german = message.NewPrinter(language.German)

// FormatNumber renders an integer with German digit grouping ("12.345")
func FormatNumber(n int) string {
	return german.Sprintf("%d", n)
}

// FormatPrice renders a price the way the site shows it, without decimals
// for whole amounts
func FormatPrice(v float64) string {
	if v == math.Trunc(v) {
		return FormatNumber(int(v))
	}
	return german.Sprintf("%.2f", v)
}

// FormatYearMonth turns a yyyyMM value into "MM/yyyy"
func FormatYearMonth(yyyymm string) string {
	s := strings.TrimSpace(yyyymm)
	if len(s) != 6 {
		return ""
	}
	return s[4:6] + "/" + s[:4]
}
