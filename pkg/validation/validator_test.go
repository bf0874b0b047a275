package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filterRequest struct {
	Vehicle string `json:"vehicle_type" validate:"vehicle_type"`
	Payment string `json:"payment_method" validate:"payment_method"`
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
	Search  string `json:"search" validate:"max=200"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []filterRequest{
		{},
		{Vehicle: "Sedan", Payment: "UPI", Rating: 5},
		{Vehicle: "SUV", Rating: 1, Search: "airport"},
	}

	for _, req := range tests {
		assert.NoError(t, ValidateStruct(&req))
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	req := filterRequest{Vehicle: "Bike", Payment: "Wallet", Rating: 7}

	err := ValidateStruct(&req)
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Len(t, valErr.Errors, 3)
	assert.Contains(t, valErr.Errors["vehicle_type"], "Auto, Mini, Sedan, SUV")
	assert.Contains(t, valErr.Errors["payment_method"], "Cash, Card, UPI")
	assert.Equal(t, "rating must be less than or equal to 5", valErr.Errors["rating"])
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	v := &ValidationError{}
	assert.False(t, v.HasErrors())

	v.AddError("rating", "bad")
	v.AddError("max_fare", "bad")

	assert.True(t, v.HasErrors())
	assert.Equal(t, "max_fare: bad; rating: bad", v.Error())
}
