package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number. The Seller API
// is not consistent about ids and price amounts.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// FlexNumber is an optional numeric field that may arrive as a JSON
// number, a numeric string or null. Anything unparseable is absent, so a
// single odd value never fails the whole ad list.
type FlexNumber struct {
	Value float64
	Valid bool
}

// Number returns a present FlexNumber
func Number(v float64) FlexNumber {
	return FlexNumber{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	*n = FlexNumber{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	}
	if v, ok := ParseLocaleAmount(raw); ok {
		*n = Number(v)
	}
	return nil
}

// MarshalJSON writes null for an absent value
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Float returns the value, or nil when absent
func (n FlexNumber) Float() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Int returns the rounded value, or nil when absent
func (n FlexNumber) Int() *int {
	if !n.Valid {
		return nil
	}
	v := int(math.Round(n.Value))
	return &v
}

// AdImage is one picture reference of an ad
type AdImage struct {
	Ref string `json:"ref"`
}

// AdPrice holds the four price variants the provider may fill
type AdPrice struct {
	ConsumerPriceGross FlexString `json:"consumerPriceGross,omitempty"`
	DealerPriceGross   FlexString `json:"dealerPriceGross,omitempty"`
	ConsumerPriceNet   FlexString `json:"consumerPriceNet,omitempty"`
	DealerPriceNet     FlexString `json:"dealerPriceNet,omitempty"`
	Type               string     `json:"type,omitempty"`
	VatRate            FlexString `json:"vatRate,omitempty"`
}

type AdKBA struct {
	HSN string `json:"hsn,omitempty"`
	TSN string `json:"tsn,omitempty"`
}

type AdEmissions struct {
	Combined *struct {
		CO2 FlexNumber `json:"co2,omitzero"`
	} `json:"combined,omitempty"`
}

type AdConsumptions struct {
	Fuel *struct {
		Combined FlexNumber `json:"combined,omitzero"`
	} `json:"fuel,omitempty"`
}

// Ad is one raw listing record as returned by the mobile.de Seller API.
// Everything except the id is optional.
type Ad struct {
	MobileAdID     FlexString `json:"mobileAdId"`
	MobileSellerID FlexString `json:"mobileSellerId,omitempty"`

	VehicleClass     string `json:"vehicleClass,omitempty"`
	Category         string `json:"category,omitempty"`
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	ModelDescription string `json:"modelDescription,omitempty"`
	Condition        string `json:"condition,omitempty"`

	FirstRegistration string     `json:"firstRegistration,omitempty"` // yyyyMM
	GeneralInspection string     `json:"generalInspection,omitempty"` // yyyyMM
	Mileage           FlexNumber `json:"mileage,omitzero"`
	Seats             FlexNumber `json:"seats,omitzero"`
	Doors             string     `json:"doors,omitempty"`
	DriveType         string     `json:"driveType,omitempty"`

	Power          FlexNumber `json:"power,omitzero"` // kW
	CubicCapacity  FlexNumber `json:"cubicCapacity,omitzero"`
	Cylinder       FlexNumber `json:"cylinder,omitzero"`
	Gearbox        string     `json:"gearbox,omitempty"`
	Fuel           string     `json:"fuel,omitempty"`
	E10Enabled     *bool      `json:"e10Enabled,omitempty"`
	FuelTankVolume FlexNumber `json:"fuelTankVolume,omitzero"`

	EmissionClass   string          `json:"emissionClass,omitempty"`
	EmissionSticker string          `json:"emissionSticker,omitempty"`
	Emissions       *AdEmissions    `json:"emissions,omitempty"`
	Consumptions    *AdConsumptions `json:"consumptions,omitempty"`

	ExteriorColor         string `json:"exteriorColor,omitempty"`
	ManufacturerColorName string `json:"manufacturerColorName,omitempty"`
	Metallic              *bool  `json:"metallic,omitempty"`
	InteriorColor         string `json:"interiorColor,omitempty"`
	InteriorType          string `json:"interiorType,omitempty"`
	TrimLine              string `json:"trimLine,omitempty"`
	ModelRange            string `json:"modelRange,omitempty"`

	FullServiceHistory *bool  `json:"fullServiceHistory,omitempty"`
	DamageUnrepaired   *bool  `json:"damageUnrepaired,omitempty"`
	Roadworthy         *bool  `json:"roadworthy,omitempty"`
	Warranty           *bool  `json:"warranty,omitempty"`
	RenewalDate        string `json:"renewalDate,omitempty"`

	// Equipment flags
	ABS                  *bool `json:"abs,omitempty"`
	ESP                  *bool `json:"esp,omitempty"`
	Bluetooth            *bool `json:"bluetooth,omitempty"`
	HandsFreePhoneSystem *bool `json:"handsFreePhoneSystem,omitempty"`
	Immobilizer          *bool `json:"immobilizer,omitempty"`
	MultifunctionalWheel *bool `json:"multifunctionalWheel,omitempty"`
	OnBoardComputer      *bool `json:"onBoardComputer,omitempty"`
	ElectricHeatedSeats  *bool `json:"electricHeatedSeats,omitempty"`
	HeatedWindshield     *bool `json:"heatedWindshield,omitempty"`
	LeatherSteeringWheel *bool `json:"leatherSteeringWheel,omitempty"`
	Touchscreen          *bool `json:"touchscreen,omitempty"`
	USB                  *bool `json:"usb,omitempty"`
	CarPlay              *bool `json:"carplay,omitempty"`
	AllSeasonTires       *bool `json:"allSeasonTires,omitempty"`

	Radio               []string `json:"radio,omitempty"`
	ParkingAssistants   []string `json:"parkingAssistants,omitempty"`
	Heating             []string `json:"heating,omitempty"`
	SpeedControl        string   `json:"speedControl,omitempty"`
	DaytimeRunningLamps string   `json:"daytimeRunningLamps,omitempty"`
	Airbag              string   `json:"airbag,omitempty"`

	Weight              FlexNumber `json:"weight,omitzero"`
	TrailerLoadBraked   FlexNumber `json:"trailerLoadBraked,omitzero"`
	TrailerLoadUnbraked FlexNumber `json:"trailerLoadUnbraked,omitzero"`

	VIN              string `json:"vin,omitempty"`
	KBA              *AdKBA `json:"kba,omitempty"`
	CreationDate     string `json:"creationDate,omitempty"`
	ModificationDate string `json:"modificationDate,omitempty"`

	Description string    `json:"description,omitempty"`
	Images      []AdImage `json:"images,omitempty"`
	Price       *AdPrice  `json:"price,omitempty"`
	Reserved    *bool     `json:"reserved,omitempty"`
}

// AdList is the envelope of the "list ads for seller" endpoint
type AdList struct {
	Ads []Ad `json:"ads"`
}

// ID returns the provider id as a plain string
func (ad *Ad) ID() string {
	return ad.MobileAdID.String()
}

// ImageRefs returns the non-empty image references in provider order
func (ad *Ad) ImageRefs() []string {
	refs := make([]string, 0, len(ad.Images))
	for _, img := range ad.Images {
		if ref := strings.TrimSpace(img.Ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
