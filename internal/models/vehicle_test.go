package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAdToVehicleFullRecord(t *testing.T) {
	raw := `{
		"mobileAdId": 412345678,
		"make": "Opel",
		"model": "Crossland",
		"modelDescription": "1.2 Turbo Elegance",
		"firstRegistration": "202003",
		"mileage": 41565,
		"power": 81,
		"fuel": "PETROL",
		"gearbox": "MANUAL_GEAR",
		"reserved": true,
		"images": [{"ref": "https://img.classistatic.de/api/v1/mo-prod/images/a"}, {"ref": ""}, {"ref": "https://img.classistatic.de/api/v1/mo-prod/images/b"}],
		"price": {"consumerPriceGross": "12.990,50", "dealerPriceGross": "10000"}
	}`

	var ad Ad
	if err := json.Unmarshal([]byte(raw), &ad); err != nil {
		t.Fatalf("failed to decode ad: %v", err)
	}

	v := ad.ToVehicle()
	if v.ID != "412345678" {
		t.Fatalf("unexpected id %q", v.ID)
	}
	if v.Title != "Opel Crossland 1.2 Turbo Elegance" {
		t.Fatalf("unexpected title %q", v.Title)
	}
	if v.Brand != "Opel" || v.Model != "Crossland" {
		t.Fatalf("unexpected brand/model %q/%q", v.Brand, v.Model)
	}
	if v.Price == nil || *v.Price != 12990.5 {
		t.Fatalf("expected price 12990.5, got %v", v.Price)
	}
	if v.Year == nil || *v.Year != 2020 {
		t.Fatalf("expected year 2020, got %v", v.Year)
	}
	if v.Mileage == nil || *v.Mileage != 41565 {
		t.Fatalf("expected mileage 41565, got %v", v.Mileage)
	}
	if v.Power == nil || *v.Power != 110 {
		t.Fatalf("expected 110 PS, got %v", v.Power)
	}
	if !v.IsSold {
		t.Fatalf("expected reserved ad to be marked sold")
	}
	if v.FuelLabel != "Benzin" || v.GearboxLabel != "Schaltung" {
		t.Fatalf("unexpected labels %q/%q", v.FuelLabel, v.GearboxLabel)
	}
	wantImages := []string{
		"https://img.classistatic.de/api/v1/mo-prod/images/a",
		"https://img.classistatic.de/api/v1/mo-prod/images/b",
	}
	if !reflect.DeepEqual(v.Images, wantImages) {
		t.Fatalf("unexpected images %v", v.Images)
	}
}

func TestAdToVehicleFallbacks(t *testing.T) {
	ad := &Ad{MobileAdID: "77"}
	v := ad.ToVehicle()

	if v.Title != "Anzeige 77" {
		t.Fatalf("expected generated title, got %q", v.Title)
	}
	if v.Brand != "Anzeige" {
		t.Fatalf("expected brand derived from title, got %q", v.Brand)
	}
	if v.Price != nil || v.Year != nil || v.Mileage != nil || v.Power != nil {
		t.Fatalf("expected nil numerics, got %+v", v)
	}
	if len(v.Images) != 1 || v.Images[0] != PlaceholderImage {
		t.Fatalf("expected placeholder image, got %v", v.Images)
	}
	if v.IsSold {
		t.Fatalf("expected unsold without reserved flag")
	}
	if v.Location != DefaultLocation {
		t.Fatalf("expected default location, got %q", v.Location)
	}

	if v.PriceValue() != 0 || v.YearValue() != 0 || v.MileageValue() != MileageSentinel {
		t.Fatalf("unexpected sentinels: %v %v %v", v.PriceValue(), v.YearValue(), v.MileageValue())
	}
}

func TestPriceAmountPriority(t *testing.T) {
	cases := []struct {
		name  string
		price *AdPrice
		want  *float64
	}{
		{"none", nil, nil},
		{"consumerGross", &AdPrice{ConsumerPriceGross: "100", DealerPriceGross: "90"}, f64(100)},
		{"dealerGross", &AdPrice{DealerPriceGross: "90", ConsumerPriceNet: "80"}, f64(90)},
		{"consumerNet", &AdPrice{ConsumerPriceNet: "80", DealerPriceNet: "70"}, f64(80)},
		{"dealerNet", &AdPrice{DealerPriceNet: "70,25"}, f64(70.25)},
		{"unparseable", &AdPrice{ConsumerPriceGross: "auf Anfrage", DealerPriceGross: "90"}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ad := &Ad{Price: tc.price}
			got := ad.PriceAmount()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got != nil && *got != *tc.want {
				t.Fatalf("expected %v, got %v", *tc.want, *got)
			}
		})
	}
}

func TestParseLocaleAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"12990.00", 12990, true},
		{"12990,5", 12990.5, true},
		{"12.990,50", 12990.5, true},
		{" 8 000 ", 8000, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseLocaleAmount(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseLocaleAmount(%q) = %v, %v; want %v, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPowerConversionRounds(t *testing.T) {
	cases := map[float64]int{
		55:  75,
		81:  110,
		100: 136,
		150: 204,
	}
	for kw, want := range cases {
		ad := &Ad{Power: Number(kw)}
		got := ad.PowerPS()
		if got == nil || *got != want {
			t.Fatalf("power %v kW: expected %d PS, got %v", kw, want, got)
		}
	}

	zero := &Ad{Power: Number(0)}
	if zero.PowerPS() != nil {
		t.Fatalf("expected nil for zero power")
	}
}

func TestFlexStringAcceptsNumbersAndStrings(t *testing.T) {
	var payload struct {
		A FlexString `json:"a"`
		B FlexString `json:"b"`
		C FlexString `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": 123, "b": "x1", "c": null}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.A != "123" || payload.B != "x1" || payload.C != "" {
		t.Fatalf("unexpected values %+v", payload)
	}
}

func TestFlexNumberAcceptsNumbersStringsAndJunk(t *testing.T) {
	var payload struct {
		Number  FlexNumber `json:"number"`
		Text    FlexNumber `json:"text"`
		Decimal FlexNumber `json:"decimal"`
		Null    FlexNumber `json:"null"`
		Junk    FlexNumber `json:"junk"`
		Bool    FlexNumber `json:"bool"`
		Missing FlexNumber `json:"missing"`
	}
	raw := `{"number": 81, "text": "110", "decimal": "5,7", "null": null, "junk": "n/a", "bool": true}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	present := map[string]struct {
		got  FlexNumber
		want float64
	}{
		"number":  {payload.Number, 81},
		"text":    {payload.Text, 110},
		"decimal": {payload.Decimal, 5.7},
	}
	for name, tc := range present {
		if !tc.got.Valid || tc.got.Value != tc.want {
			t.Fatalf("%s: expected %v, got %+v", name, tc.want, tc.got)
		}
	}
	for name, n := range map[string]FlexNumber{"null": payload.Null, "junk": payload.Junk, "bool": payload.Bool, "missing": payload.Missing} {
		if n.Valid || n.Float() != nil || n.Int() != nil {
			t.Fatalf("%s: expected absent, got %+v", name, n)
		}
	}
}

func TestAdWithStringNumbersStillMaps(t *testing.T) {
	var list AdList
	raw := `{"ads":[
		{"mobileAdId": 1, "make": "VW", "power": 81},
		{"mobileAdId": 2, "make": "Opel", "power": "110", "mileage": "12000", "seats": "5", "weight": "unknown"}
	]}`
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("one odd ad must not fail the list: %v", err)
	}
	if len(list.Ads) != 2 {
		t.Fatalf("expected 2 ads, got %d", len(list.Ads))
	}

	v := list.Ads[1].ToVehicle()
	if v.Mileage == nil || *v.Mileage != 12000 {
		t.Fatalf("expected mileage 12000, got %v", v.Mileage)
	}
	if v.Power == nil || *v.Power != 150 {
		t.Fatalf("expected 150 PS from 110 kW, got %v", v.Power)
	}
	if list.Ads[1].Weight.Valid {
		t.Fatalf("expected unparseable weight to be absent")
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatNumber(41565); got != "41.565" {
		t.Fatalf("unexpected number format %q", got)
	}
	if got := FormatPrice(12990); got != "12.990" {
		t.Fatalf("unexpected price format %q", got)
	}
	if got := FormatYearMonth("201905"); got != "05/2019" {
		t.Fatalf("unexpected year/month %q", got)
	}
	if got := FormatYearMonth("2019"); got != "" {
		t.Fatalf("expected empty for malformed value, got %q", got)
	}
	if got := Label(FuelLabels, "WOOD"); got != "WOOD" {
		t.Fatalf("expected unknown enum to pass through, got %q", got)
	}
}

func f64(v float64) *float64 { return &v }
