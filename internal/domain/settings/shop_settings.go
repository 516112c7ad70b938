// Package settings defines the singleton shop settings that drive pricing,
// delivery scheduling and billing.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by the repository before settings were ever saved.
var ErrNotFound = errors.New("shop settings not found")

// ShopSettings entity
type ShopSettings struct {
	ShopOpen                    bool
	Currency                    string          `validate:"required,currency"`
	ShippingFee                 decimal.Decimal `validate:"gte=0"`
	FreeShippingThreshold       decimal.Decimal `validate:"gte=0"`
	DeliveryWeekdays            []time.Weekday  `validate:"required,min=1,max=7,dive,weekday"`
	MinLeadDays                 int             `validate:"min=0,max=60"`
	MaxSubscriptionDeliveries   int             `validate:"min=1,max=104"`
	BankTransferDueDays         int             `validate:"min=1,max=90"`
	SubscriptionDiscountPercent decimal.Decimal `validate:"gte=0,lte=100"`
	DateTimeUpdated             time.Time
}

// Default returns the settings used until an admin saves their own.
func Default() *ShopSettings {
	return &ShopSettings{
		ShopOpen:                    true,
		Currency:                    "HUF",
		ShippingFee:                 decimal.NewFromInt(1490),
		FreeShippingThreshold:       decimal.NewFromInt(20000),
		DeliveryWeekdays:            []time.Weekday{time.Tuesday, time.Thursday},
		MinLeadDays:                 2,
		MaxSubscriptionDeliveries:   12,
		BankTransferDueDays:         8,
		SubscriptionDiscountPercent: decimal.NewFromInt(5),
	}
}

// Validate for validating ShopSettings struct
func (s *ShopSettings) Validate() error {
	if err := validators.Struct(s); err != nil {
		return fmt.Errorf("shop settings: %w", err)
	}
	seen := make(map[time.Weekday]bool, len(s.DeliveryWeekdays))
	for _, d := range s.DeliveryWeekdays {
		if seen[d] {
			return fmt.Errorf("shop settings: duplicate delivery weekday %s", d)
		}
		seen[d] = true
	}
	return nil
}

// SortedWeekdays returns the delivery weekdays in ascending order.
func (s *ShopSettings) SortedWeekdays() []time.Weekday {
	days := append([]time.Weekday(nil), s.DeliveryWeekdays...)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// ShopSettingsService reads and updates the shop settings.
type ShopSettingsService interface {
	// Get returns the stored settings, or Default when none were saved.
	Get(ctx context.Context) (*ShopSettings, error)
	Update(ctx context.Context, settings *ShopSettings) (*ShopSettings, error)
}

// ShopSettingsRepository persists the singleton settings row.
type ShopSettingsRepository interface {
	Get(ctx context.Context) (*ShopSettings, error)
	Save(ctx context.Context, settings *ShopSettings) error
}

// ShopSettingsCache is a read-through cache in front of the repository.
type ShopSettingsCache interface {
	Get(ctx context.Context) (*ShopSettings, bool)
	Set(ctx context.Context, settings *ShopSettings) error
	Invalidate(ctx context.Context) error
}
