package dashboard

import (
	"github.com/richxcame/trip-dashboard/pkg/models"
)

// DefaultFareCeiling bounds the fare range before any trips are loaded
const DefaultFareCeiling = 10000

// Criteria is the conjunctive set of filters applied to the trip collection.
// Zero values of VehicleType, PaymentMethod, Rating and Search are wildcards.
// MinFare > MaxFare is allowed and simply matches nothing.
type Criteria struct {
	VehicleType   models.VehicleType   `json:"vehicle_type" validate:"vehicle_type"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"payment_method"`
	Rating        int                  `json:"rating" validate:"gte=0,lte=5"`
	MinFare       float64              `json:"min_fare"`
	MaxFare       float64              `json:"max_fare"`
	Search        string               `json:"search" validate:"max=200"`
}

// DefaultCriteria matches every trip whose fare lies in [0, ceiling]
func DefaultCriteria(ceiling float64) Criteria {
	return Criteria{MinFare: 0, MaxFare: ceiling}
}

// IsWildcard reports whether only the fare range constrains the result
func (c Criteria) IsWildcard() bool {
	return c.VehicleType == "" && c.PaymentMethod == "" && c.Rating == 0 && c.Search == ""
}
