//go:build unit
// +build unit

package validators

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Slug     string          `validate:"required,slug"`
	Code     string          `validate:"omitempty,couponcode"`
	Currency string          `validate:"required,currency"`
	Price    decimal.Decimal `validate:"gt=0"`
	Days     []time.Weekday  `validate:"required,min=1,dive,weekday"`
}

func valid() sample {
	return sample{
		Slug:     "tokaji-aszu-5-puttonyos",
		Code:     "WELCOME-10",
		Currency: "HUF",
		Price:    decimal.NewFromInt(4990),
		Days:     []time.Weekday{time.Tuesday, time.Thursday},
	}
}

func TestStruct_Valid(t *testing.T) {
	s := valid()
	require.NoError(t, Struct(&s))
}

func TestStruct_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
	}{
		{"uppercase slug", func(s *sample) { s.Slug = "Tokaji" }, "Slug"},
		{"double dash slug", func(s *sample) { s.Slug = "a--b" }, "Slug"},
		{"lowercase coupon", func(s *sample) { s.Code = "welcome" }, "Code"},
		{"short coupon", func(s *sample) { s.Code = "AB" }, "Code"},
		{"currency", func(s *sample) { s.Currency = "huf" }, "Currency"},
		{"zero price", func(s *sample) { s.Price = decimal.Zero }, "Price"},
		{"negative price", func(s *sample) { s.Price = decimal.NewFromInt(-1) }, "Price"},
		{"bad weekday", func(s *sample) { s.Days = []time.Weekday{9} }, "Days"},
		{"no weekdays", func(s *sample) { s.Days = nil }, "Days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := Struct(&s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestGet_Singleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
