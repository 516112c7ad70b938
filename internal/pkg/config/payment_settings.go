package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Barion environments
const (
	BarionEnvironmentTest = "test"
	BarionEnvironmentProd = "prod"
)

// BarionSettings configures the Barion Smart Gateway client.
type BarionSettings struct {
	Enabled     bool          `mapstructure:"enabled"`
	Environment string        `mapstructure:"environment" validate:"required_if=Enabled true,omitempty,oneof=test prod"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	POSKey      string        `mapstructure:"pos_key" validate:"required_if=Enabled true"`
	Payee       string        `mapstructure:"payee" validate:"required_if=Enabled true,omitempty,email"`
	RedirectURL string        `mapstructure:"redirect_url" validate:"required_if=Enabled true,omitempty,url"`
	CallbackURL string        `mapstructure:"callback_url" validate:"required_if=Enabled true,omitempty,url"`
	Locale      string        `mapstructure:"locale"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ResolvedBaseURL returns BaseURL when set, otherwise the API host of the environment.
func (s *BarionSettings) ResolvedBaseURL() string {
	if s.BaseURL != "" {
		return s.BaseURL
	}
	if s.Environment == BarionEnvironmentProd {
		return "https://api.barion.com"
	}
	return "https://api.test.barion.com"
}

// StripeSettings configures Stripe hosted checkout and webhook verification.
type StripeSettings struct {
	Enabled       bool   `mapstructure:"enabled"`
	SecretKey     string `mapstructure:"secret_key" validate:"required_if=Enabled true"`
	WebhookSecret string `mapstructure:"webhook_secret" validate:"required_if=Enabled true"`
	SuccessURL    string `mapstructure:"success_url" validate:"required_if=Enabled true,omitempty,url"`
	CancelURL     string `mapstructure:"cancel_url" validate:"required_if=Enabled true,omitempty,url"`
}

// PaymentSettings groups the payment provider settings.
type PaymentSettings struct {
	Barion BarionSettings `mapstructure:"barion"`
	Stripe StripeSettings `mapstructure:"stripe"`
}

// Validate checks that all fields in PaymentSettings are valid
func (s *PaymentSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PaymentSettings: %w", err)
	}
	return nil
}
