//go:build unit
// +build unit

package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barionSettings(baseURL string) config.BarionSettings {
	return config.BarionSettings{
		Enabled:     true,
		Environment: config.BarionEnvironmentTest,
		BaseURL:     baseURL,
		POSKey:      "pos-key",
		Payee:       "shop@example.com",
		RedirectURL: "https://shop.example.com/thanks",
		CallbackURL: "https://shop.example.com/api/v1/shop/payments/barion/callback",
		Timeout:     2 * time.Second,
	}
}

func testCharge() *payments.Charge {
	order := &orders.Order{
		ID:          "7d4f3a52-0d7c-4b5e-9a43-2f1f0c6a1e11",
		Number:      "SO-20240301-ABCDEF",
		Kind:        orders.KindOneTime,
		Currency:    "HUF",
		ShippingFee: decimal.NewFromInt(1490),
		Items: []orders.OrderItem{
			{ProductName: "Tokaji", UnitPrice: decimal.NewFromInt(4990), Quantity: 2, LineTotal: decimal.NewFromInt(9980)},
		},
	}
	return payments.BuildCharge(order, &billing.PaymentGroup{Sequence: 1, AmountDue: decimal.NewFromInt(11470)}, 1)
}

func TestBarionGateway_Start(t *testing.T) {
	var got barionStartRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, barionStartPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"PaymentId":"pay-1","Status":"Prepared","GatewayUrl":"https://secure.test.barion.com/Pay?id=pay-1","Errors":[]}`))
	}))
	defer srv.Close()

	gw, err := NewBarionGateway(barionSettings(srv.URL), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	res, err := gw.Start(context.Background(), testCharge())
	require.NoError(t, err)

	assert.Equal(t, "pay-1", res.ProviderRef)
	assert.Equal(t, "https://secure.test.barion.com/Pay?id=pay-1", res.RedirectURL)
	assert.Equal(t, "pos-key", got.POSKey)
	assert.Equal(t, "Immediate", got.PaymentType)
	assert.Equal(t, []string{"All"}, got.FundingSources)
	assert.Equal(t, "hu-HU", got.Locale)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, 11470.0, got.Transactions[0].Total)
	assert.Len(t, got.Transactions[0].Items, 2)
}

func TestBarionGateway_Start_RejectedRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"Errors":[{"ErrorCode":"InvalidPosKey","Title":"Invalid POS key"}]}`))
	}))
	defer srv.Close()

	gw, err := NewBarionGateway(barionSettings(srv.URL), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = gw.Start(context.Background(), testCharge())
	var apiErr *BarionAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "InvalidPosKey")
}

func TestBarionGateway_GetPaymentState_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, barionStatePath, r.URL.Path)
		assert.Equal(t, "pay-1", r.URL.Query().Get("PaymentId"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"PaymentId":"pay-1","PaymentRequestId":"SO-1-1","Status":"Succeeded","Total":11470,"Currency":"HUF"}`))
	}))
	defer srv.Close()

	gw, err := NewBarionGateway(barionSettings(srv.URL), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	state, err := gw.GetPaymentState(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "Succeeded", state.Status)
	assert.True(t, decimal.NewFromInt(11470).Equal(state.Total))
}

func TestBarionGateway_GetPaymentState_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	gw, err := NewBarionGateway(barionSettings(srv.URL), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = gw.GetPaymentState(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewBarionGateway_RequiresPOSKey(t *testing.T) {
	_, err := NewBarionGateway(config.BarionSettings{}, testutil.SetupTestLogger(t))
	assert.ErrorIs(t, err, payments.ErrProviderDisabled)
}
