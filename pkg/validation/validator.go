package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/richxcame/trip-dashboard/pkg/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator with the dashboard's custom tags registered
func Get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their json name so errors match the request payload
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("vehicle_type", validateVehicleType)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)

		validate = v
	})
	return validate
}

// ValidateStruct validates s and converts failures into a ValidationError
func ValidateStruct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}

// Empty strings pass both enum checks; the zero value means "any".
func validateVehicleType(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || models.VehicleType(v).Valid()
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v == "" || models.PaymentMethod(v).Valid()
}
