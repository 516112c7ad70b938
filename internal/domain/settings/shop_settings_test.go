//go:build unit
// +build unit

package settings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestShopSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(s *ShopSettings)
		wantErr bool
	}{
		{"no weekdays", func(s *ShopSettings) { s.DeliveryWeekdays = nil }, true},
		{"duplicate weekday", func(s *ShopSettings) { s.DeliveryWeekdays = []time.Weekday{time.Monday, time.Monday} }, true},
		{"weekday out of range", func(s *ShopSettings) { s.DeliveryWeekdays = []time.Weekday{7} }, true},
		{"negative shipping fee", func(s *ShopSettings) { s.ShippingFee = decimal.NewFromInt(-1) }, true},
		{"discount over 100", func(s *ShopSettings) { s.SubscriptionDiscountPercent = decimal.NewFromInt(101) }, true},
		{"lowercase currency", func(s *ShopSettings) { s.Currency = "huf" }, true},
		{"zero bank transfer days", func(s *ShopSettings) { s.BankTransferDueDays = 0 }, true},
		{"free shipping disabled", func(s *ShopSettings) { s.FreeShippingThreshold = decimal.Zero }, false},
		{"every day", func(s *ShopSettings) {
			s.DeliveryWeekdays = []time.Weekday{0, 1, 2, 3, 4, 5, 6}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)
			err := s.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestShopSettings_SortedWeekdays(t *testing.T) {
	s := Default()
	s.DeliveryWeekdays = []time.Weekday{time.Friday, time.Monday, time.Wednesday}

	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, s.SortedWeekdays())
	// The stored order is left alone
	assert.Equal(t, time.Friday, s.DeliveryWeekdays[0])
}
