package dashboard

import (
	"strings"

	"github.com/richxcame/trip-dashboard/pkg/models"
)

// Apply returns the trips matching every predicate of c, in their original
// order. The result is never nil and never aliases trips' backing array.
func Apply(trips []models.Trip, c Criteria) []models.Trip {
	search := strings.ToLower(c.Search)
	out := make([]models.Trip, 0, len(trips))

	for _, t := range trips {
		if matches(t, c, search) {
			out = append(out, t)
		}
	}
	return out
}

func matches(t models.Trip, c Criteria, search string) bool {
	if c.VehicleType != "" && t.VehicleType != c.VehicleType {
		return false
	}

	fare := t.Fare.Value()
	if fare < c.MinFare || fare > c.MaxFare {
		return false
	}

	if c.Rating != 0 && int(t.UserRating) != c.Rating {
		return false
	}
	if c.PaymentMethod != "" && t.PaymentMethod != c.PaymentMethod {
		return false
	}

	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.PickupPoint), search) ||
		strings.Contains(strings.ToLower(t.DropoffPoint), search)
}
