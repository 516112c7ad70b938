package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"
	"github.com/drinkbox/storefront/internal/pkg/retry"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const (
	barionStartPath = "/v2/Payment/Start"
	barionStatePath = "/v2/Payment/GetPaymentState"

	defaultBarionTimeout = 10 * time.Second
	defaultBarionLocale  = "hu-HU"
)

// BarionAPIError is returned when Barion answers with a non-2xx status or
// reports errors in the response body.
type BarionAPIError struct {
	StatusCode int
	Messages   []string
}

func (e *BarionAPIError) Error() string {
	return fmt.Sprintf("barion: status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

type barionGateway struct {
	client   *resty.Client
	settings config.BarionSettings
	breaker  *gobreaker.CircuitBreaker
	policy   retry.Policy
	logger   logger.Logger
}

// NewBarionGateway creates a Barion Smart Gateway client. Calls pass through
// a circuit breaker; state queries are retried on transient failures.
func NewBarionGateway(settings config.BarionSettings, logger logger.Logger) (payments.BarionGateway, error) {
	if settings.POSKey == "" {
		return nil, fmt.Errorf("barion: %w: missing POS key", payments.ErrProviderDisabled)
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = defaultBarionTimeout
	}

	client := resty.New().
		SetBaseURL(settings.ResolvedBaseURL()).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "barion",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Rejected requests are the caller's fault, not an outage
			var apiErr *BarionAPIError
			return err == nil || (errors.As(err, &apiErr) && apiErr.StatusCode < 500)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker ", name, " changed from ", from.String(), " to ", to.String())
		},
	})

	policy := retry.DefaultPolicy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		logger.Warn("Barion call failed (attempt ", attempt, "), retrying in ", backoff, ": ", err)
	}

	return &barionGateway{
		client:   client,
		settings: settings,
		breaker:  breaker,
		policy:   policy,
		logger:   logger,
	}, nil
}

func (g *barionGateway) Provider() payments.Provider {
	return payments.ProviderBarion
}

func (g *barionGateway) Start(ctx context.Context, charge *payments.Charge) (*payments.StartResult, error) {
	req := g.startRequest(charge)

	out, err := g.breaker.Execute(func() (interface{}, error) {
		var res barionStartResponse
		var errRes barionErrorResponse
		resp, err := g.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&res).
			SetError(&errRes).
			Post(barionStartPath)
		if err != nil {
			return nil, fmt.Errorf("barion: start payment: %w", err)
		}
		if resp.IsError() {
			return nil, apiError(resp.StatusCode(), errRes.Errors)
		}
		if len(res.Errors) > 0 || res.PaymentID == "" {
			return nil, apiError(resp.StatusCode(), res.Errors)
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}

	res := out.(*barionStartResponse)
	g.logger.Info("Started Barion payment ", res.PaymentID, " for order ", charge.Order.Number)
	return &payments.StartResult{
		ProviderRef: res.PaymentID,
		RedirectURL: res.GatewayURL,
		Status:      res.Status,
	}, nil
}

func (g *barionGateway) GetPaymentState(ctx context.Context, paymentID string) (*payments.BarionState, error) {
	return retry.Do(ctx, g.policy, classify, func() (*payments.BarionState, error) {
		out, err := g.breaker.Execute(func() (interface{}, error) {
			var res barionStateResponse
			var errRes barionErrorResponse
			resp, err := g.client.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"POSKey":    g.settings.POSKey,
					"PaymentId": paymentID,
				}).
				SetResult(&res).
				SetError(&errRes).
				Get(barionStatePath)
			if err != nil {
				return nil, fmt.Errorf("barion: get payment state: %w", err)
			}
			if resp.IsError() {
				return nil, apiError(resp.StatusCode(), errRes.Errors)
			}
			if len(res.Errors) > 0 {
				return nil, apiError(resp.StatusCode(), res.Errors)
			}
			return &res, nil
		})
		if err != nil {
			return nil, err
		}

		res := out.(*barionStateResponse)
		return &payments.BarionState{
			PaymentID:        res.PaymentID,
			PaymentRequestID: res.PaymentRequestID,
			Status:           res.Status,
			Total:            res.Total,
			Currency:         res.Currency,
		}, nil
	})
}

func (g *barionGateway) startRequest(charge *payments.Charge) *barionStartRequest {
	locale := g.settings.Locale
	if locale == "" {
		locale = defaultBarionLocale
	}

	items := make([]barionItem, len(charge.Items))
	for i, it := range charge.Items {
		items[i] = barionItem{
			Name:        it.Name,
			Description: it.Name,
			Quantity:    it.Quantity,
			Unit:        "piece",
			UnitPrice:   it.UnitPrice.InexactFloat64(),
			ItemTotal:   it.Total.InexactFloat64(),
		}
	}

	order := charge.Order
	return &barionStartRequest{
		POSKey:           g.settings.POSKey,
		PaymentType:      "Immediate",
		GuestCheckOut:    true,
		FundingSources:   []string{"All"},
		PaymentRequestID: charge.Reference,
		OrderNumber:      order.Number,
		RedirectURL:      g.settings.RedirectURL,
		CallbackURL:      g.settings.CallbackURL,
		Locale:           locale,
		Currency:         order.Currency,
		Transactions: []barionTransaction{{
			POSTransactionID: order.ID,
			Payee:            g.settings.Payee,
			Total:            charge.Amount.InexactFloat64(),
			Items:            items,
		}},
	}
}

func apiError(status int, errs []barionError) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.ErrorCode, e.Title))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, http.StatusText(status))
	}
	return &BarionAPIError{StatusCode: status, Messages: msgs}
}

// classify retries network failures, 5xx answers and rate limiting.
func classify(err error) retry.Action {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retry.Stop
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return retry.Stop
	}
	var apiErr *BarionAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return retry.After
		case apiErr.StatusCode >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}
	return retry.Retry
}
