// Package validators holds the shared struct validator and the custom tags
// used by domain entities and request payloads.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	couponCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,31}$`)
	currencyPattern   = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ErrValidation is wrapped by every error returned from Struct.
var ErrValidation = errors.New("validation failed")

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the process wide validator with the custom tags registered.
// decimal.Decimal fields are validated as float64, so numeric tags such as
// gt=0 apply to them.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		mustRegister(v, "slug", SlugValidation)
		mustRegister(v, "couponcode", CouponCodeValidation)
		mustRegister(v, "currency", CurrencyValidation)
		mustRegister(v, "weekday", WeekdayValidation)
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register custom validator %s: %v", tag, err))
	}
}

// Struct validates s and flattens validation errors into one readable error.
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("%w: %v", ErrValidation, messages)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// SlugValidation accepts lowercase words joined by single dashes.
func SlugValidation(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// CouponCodeValidation accepts upper-case codes of 3 to 32 characters.
func CouponCodeValidation(fl validator.FieldLevel) bool {
	return couponCodePattern.MatchString(fl.Field().String())
}

// CurrencyValidation accepts three letter upper-case ISO 4217 codes.
func CurrencyValidation(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}

// WeekdayValidation accepts time.Weekday values (Sunday=0 .. Saturday=6).
func WeekdayValidation(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= int64(time.Sunday) && d <= int64(time.Saturday)
}
