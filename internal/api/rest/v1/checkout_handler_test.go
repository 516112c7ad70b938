//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const checkoutBody = `{
	"customer": {
		"email": "Anna.Kovacs@Example.com",
		"full_name": "Anna Kovács",
		"shipping_address": {"postal_code": "1051", "city": "Budapest", "street": "Október 6. utca 12."}
	},
	"kind": "subscription",
	"recurrence": "monthly",
	"start_date": "2024-03-07",
	"delivery_count": 3,
	"payment_method": "%s"
}`

func testOrder(method orders.PaymentMethod, status orders.Status) *orders.Order {
	return &orders.Order{
		ID:            "6f1e2d3c-4b5a-4968-8776-655443322110",
		Number:        "DB-20240304-7K3Q",
		CustomerID:    "1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d",
		Kind:          orders.KindSubscription,
		Recurrence:    deliveries.RecurrenceMonthly,
		DeliveryCount: 3,
		Status:        status,
		PaymentMethod: method,
		Total:         decimal.NewFromInt(6240),
		Currency:      "HUF",
	}
}

func TestCheckoutHandler_Checkout_BankTransfer(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockCheckout, new(MockOrderService), new(MockDeliveryService), nil)

	order := testOrder(orders.PaymentBankTransfer, orders.StatusProcessing)
	result := &orders.CheckoutResult{
		Order: order,
		Deliveries: []*deliveries.Delivery{
			{ID: "d1", OrderID: order.ID, Sequence: 1, ScheduledDate: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), Status: deliveries.StatusScheduled},
		},
		PaymentGroups: []*billing.PaymentGroup{
			{ID: "g1", OrderID: order.ID, Sequence: 1, AmountDue: decimal.NewFromInt(12480), Currency: "HUF", DueDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)},
		},
	}
	mockCheckout.
		On("Checkout", mock.Anything, mock.MatchedBy(func(req *orders.CheckoutRequest) bool {
			return req.CartID == testCartID &&
				req.Kind == orders.KindSubscription &&
				req.Recurrence == deliveries.RecurrenceMonthly &&
				req.StartDate.Equal(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)) &&
				req.Customer.ShippingAddress.City == "Budapest"
		})).
		Return(result, nil)

	c, w := newTestContext("POST", "/checkout", fmt.Sprintf(checkoutBody, "bank_transfer"))
	c.Request.Header.Set(CartIDHeader, testCartID)
	handler.Checkout(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"scheduled_date":"2024-03-07"`)
	assert.Contains(t, w.Body.String(), `"due_date":"2024-03-12"`)
	assert.Contains(t, w.Body.String(), order.Number)
	mockCheckout.AssertExpectations(t)
}

func TestCheckoutHandler_Checkout_PaymentStartFailed(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockCheckout, new(MockOrderService), new(MockDeliveryService), nil)

	order := testOrder(orders.PaymentBarion, orders.StatusPaymentFailed)
	mockCheckout.On("Checkout", mock.Anything, mock.Anything).
		Return(&orders.CheckoutResult{Order: order}, fmt.Errorf("%w: barion unavailable", orders.ErrPaymentStartFailed))

	c, w := newTestContext("POST", "/checkout", fmt.Sprintf(checkoutBody, "barion"))
	c.Request.Header.Set(CartIDHeader, testCartID)
	handler.Checkout(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"order_number":"DB-20240304-7K3Q"`)
	assert.Contains(t, w.Body.String(), `"status":"payment_failed"`)
}

func TestCheckoutHandler_Checkout_ShopClosed(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockCheckout, new(MockOrderService), new(MockDeliveryService), nil)

	mockCheckout.On("Checkout", mock.Anything, mock.Anything).Return(nil, orders.ErrShopClosed)

	c, w := newTestContext("POST", "/checkout", fmt.Sprintf(checkoutBody, "cash_on_delivery"))
	c.Request.Header.Set(CartIDHeader, testCartID)
	handler.Checkout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler_Checkout_MissingRecurrence(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockCheckout, new(MockOrderService), new(MockDeliveryService), nil)

	body := `{"customer":{"email":"anna@example.com","full_name":"Anna Kovács"},"kind":"subscription","payment_method":"stripe"}`
	c, w := newTestContext("POST", "/checkout", body)
	c.Request.Header.Set(CartIDHeader, testCartID)
	handler.Checkout(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockCheckout.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything)
}

func TestCheckoutHandler_Checkout_WithoutCart(t *testing.T) {
	handler := NewCheckoutHandler(new(MockCheckoutService), new(MockOrderService), new(MockDeliveryService), nil)

	c, w := newTestContext("POST", "/checkout", fmt.Sprintf(checkoutBody, "stripe"))
	handler.Checkout(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutHandler_GetOrder(t *testing.T) {
	mockOrders := new(MockOrderService)
	handler := NewCheckoutHandler(new(MockCheckoutService), mockOrders, new(MockDeliveryService), nil)

	order := testOrder(orders.PaymentStripe, orders.StatusPaid)
	mockOrders.On("GetByNumber", mock.Anything, order.Number).Return(order, nil)

	c, w := newTestContext("GET", "/orders/"+order.Number, "", gin.Param{Key: "number", Value: order.Number})
	handler.GetOrder(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"paid"`)
}

func TestCheckoutHandler_ListOrderDeliveries(t *testing.T) {
	mockOrders := new(MockOrderService)
	mockDeliveries := new(MockDeliveryService)
	handler := NewCheckoutHandler(new(MockCheckoutService), mockOrders, mockDeliveries, nil)

	order := testOrder(orders.PaymentBankTransfer, orders.StatusProcessing)
	mockOrders.On("GetByNumber", mock.Anything, order.Number).Return(order, nil)
	mockDeliveries.On("ListByOrder", mock.Anything, order.ID).Return([]*deliveries.Delivery{
		{ID: "d1", OrderID: order.ID, Sequence: 1, ScheduledDate: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), Status: deliveries.StatusScheduled},
		{ID: "d2", OrderID: order.ID, Sequence: 2, ScheduledDate: time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC), Status: deliveries.StatusScheduled},
	}, nil)

	c, w := newTestContext("GET", "/orders/"+order.Number+"/deliveries", "", gin.Param{Key: "number", Value: order.Number})
	handler.ListOrderDeliveries(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2024-04-09")
}

func TestCheckoutHandler_Pay(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	mockOrders := new(MockOrderService)
	handler := NewCheckoutHandler(mockCheckout, mockOrders, new(MockDeliveryService), nil)

	order := testOrder(orders.PaymentBarion, orders.StatusAwaitingPayment)
	mockCheckout.On("StartPayment", mock.Anything, order.Number).Return("https://secure.test.barion.com/Pay?Id=abc", nil)
	mockOrders.On("GetByNumber", mock.Anything, order.Number).Return(order, nil)

	c, w := newTestContext("POST", "/orders/"+order.Number+"/pay", "", gin.Param{Key: "number", Value: order.Number})
	handler.Pay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "secure.test.barion.com")
}

func TestCheckoutHandler_Pay_NotPayable(t *testing.T) {
	mockCheckout := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockCheckout, new(MockOrderService), new(MockDeliveryService), nil)

	mockCheckout.On("StartPayment", mock.Anything, "DB-1").Return("", orders.ErrNotPayable)

	c, w := newTestContext("POST", "/orders/DB-1/pay", "", gin.Param{Key: "number", Value: "DB-1"})
	handler.Pay(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
