package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// VehicleType represents the vehicle category of a trip
type VehicleType string

const (
	VehicleAuto  VehicleType = "Auto"
	VehicleMini  VehicleType = "Mini"
	VehicleSedan VehicleType = "Sedan"
	VehicleSUV   VehicleType = "SUV"
)

// VehicleTypes lists the known categories in display order
var VehicleTypes = []VehicleType{VehicleAuto, VehicleMini, VehicleSedan, VehicleSUV}

// Valid reports whether v is a known category
func (v VehicleType) Valid() bool {
	for _, known := range VehicleTypes {
		if v == known {
			return true
		}
	}
	return false
}

// PaymentMethod represents how a trip was paid
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

// PaymentMethods lists the known methods in display order
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentUPI}

// Valid reports whether p is a known payment method
func (p PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if p == known {
			return true
		}
	}
	return false
}

// Rating bounds for user ratings
const (
	MinRating = 1
	MaxRating = 5
)

// Trip is one ride transaction as served by the trip listing endpoint
type Trip struct {
	TripID        FlexString    `json:"trip_id"`
	UserID        FlexString    `json:"user_id"`
	Date          string        `json:"date"`
	PickupPoint   string        `json:"pickup_point"`
	DropoffPoint  string        `json:"dropoff_point"`
	DistanceKM    float64       `json:"distance_km"`
	DurationMin   float64       `json:"duration_min"`
	Fare          Fare          `json:"fare_inr"`
	VehicleType   VehicleType   `json:"vehicle_type"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	UserRating    Rating        `json:"user_rating"`
}

// Fare is a currency amount received as a numeric string. The raw text is
// kept so the value is echoed back exactly as the upstream sent it.
type Fare struct {
	raw   string
	value float64
}

// NewFare builds a fare from a number
func NewFare(v float64) Fare {
	return Fare{raw: strconv.FormatFloat(v, 'f', -1, 64), value: v}
}

// ParseFare parses a numeric string into a fare
func ParseFare(s string) (Fare, error) {
	trimmed := strings.TrimSpace(s)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return Fare{}, fmt.Errorf("invalid fare %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fare{}, fmt.Errorf("invalid fare %q: not a finite number", s)
	}
	return Fare{raw: trimmed, value: v}, nil
}

// Value returns the parsed amount
func (f Fare) Value() float64 {
	return f.value
}

// String returns the fare as received
func (f Fare) String() string {
	return f.raw
}

// MarshalJSON emits the fare as a string, matching the upstream format
func (f Fare) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.raw)
}

// UnmarshalJSON accepts either a numeric string or a bare JSON number
func (f *Fare) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("fare is missing")
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	parsed, err := ParseFare(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Rating is a user rating. Upstream data sometimes carries integral floats
// such as 4.0, which are accepted.
type Rating int

// UnmarshalJSON accepts integral numbers and numeric strings
func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("rating is missing")
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid rating %q: %w", s, err)
	}
	if v != math.Trunc(v) {
		return fmt.Errorf("invalid rating %q: not an integer", s)
	}
	*r = Rating(int(v))
	return nil
}

// FlexString is an identifier that may arrive as a JSON string or number
type FlexString string

// UnmarshalJSON accepts strings, numbers and null
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid identifier %s: %w", string(data), err)
	}
	*s = FlexString(n.String())
	return nil
}
