package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

type stripeGateway struct {
	sessions *session.Client
	settings config.StripeSettings
	logger   logger.Logger
}

// NewStripeGateway creates a Stripe Checkout gateway using the live API backend
func NewStripeGateway(settings config.StripeSettings, logger logger.Logger) (payments.StripeGateway, error) {
	return newStripeGateway(settings, stripe.GetBackend(stripe.APIBackend), logger)
}

func newStripeGateway(settings config.StripeSettings, backend stripe.Backend, logger logger.Logger) (payments.StripeGateway, error) {
	if settings.SecretKey == "" || settings.WebhookSecret == "" {
		return nil, fmt.Errorf("stripe: %w: missing keys", payments.ErrProviderDisabled)
	}
	return &stripeGateway{
		sessions: &session.Client{B: backend, Key: settings.SecretKey},
		settings: settings,
		logger:   logger,
	}, nil
}

func (g *stripeGateway) Provider() payments.Provider {
	return payments.ProviderStripe
}

func (g *stripeGateway) Start(ctx context.Context, charge *payments.Charge) (*payments.StartResult, error) {
	order := charge.Order
	currency := stripe.String(strings.ToLower(order.Currency))

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.settings.SuccessURL),
		CancelURL:         stripe.String(g.settings.CancelURL),
		ClientReferenceID: stripe.String(order.ID),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID)
	params.AddMetadata("order_number", order.Number)
	params.AddMetadata("reference", charge.Reference)

	for _, it := range charge.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: currency,
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(minorAmount(it.UnitPrice, order.Currency)),
			},
			Quantity: stripe.Int64(int64(it.Quantity)),
		})
	}

	cs, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}

	g.logger.Info("Created Stripe checkout session ", cs.ID, " for order ", order.Number)
	return &payments.StartResult{
		ProviderRef: cs.ID,
		RedirectURL: cs.URL,
		Status:      string(cs.Status),
	}, nil
}

func (g *stripeGateway) ParseWebhook(payload []byte, signatureHeader string) (*payments.StripeEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.settings.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payments.ErrInvalidSignature, err)
	}

	out := &payments.StripeEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("stripe: decode event %s: %w", event.ID, err)
	}
	if cs.Object != "checkout.session" {
		return out, nil
	}

	out.SessionID = cs.ID
	out.OrderID = cs.ClientReferenceID
	if out.OrderID == "" {
		out.OrderID = cs.Metadata["order_id"]
	}
	out.PaymentStatus = string(cs.PaymentStatus)
	return out, nil
}

// stripeZeroDecimal lists the currencies the shop supports that Stripe
// expects in whole units.
var stripeZeroDecimal = map[string]bool{
	"JPY": true,
	"KRW": true,
}

// minorAmount converts an amount into the smallest currency unit Stripe expects.
// Stripe treats HUF as a two-decimal currency even though the shop keeps it
// in whole forints.
func minorAmount(amount decimal.Decimal, currency string) int64 {
	if stripeZeroDecimal[strings.ToUpper(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}
