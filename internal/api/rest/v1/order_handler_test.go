//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/orders"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderAdminHandler_List_ParsesFilters(t *testing.T) {
	mockOrders := new(MockOrderService)
	handler := NewOrderAdminHandler(mockOrders, new(MockDeliveryService), new(MockPaymentGroupService))

	mockOrders.
		On("List", mock.Anything, mock.MatchedBy(func(q *orders.OrderQuery) bool {
			return q.Status == orders.StatusPaid &&
				q.Kind == orders.KindSubscription &&
				q.From != nil && q.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
				q.To == nil && q.Limit == 20
		})).
		Return([]*orders.Order{testOrder(orders.PaymentStripe, orders.StatusPaid)}, nil)

	c, w := newTestContext("GET", "/admin/orders?status=paid&kind=subscription&from=2024-03-01&limit=20", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockOrders.AssertExpectations(t)
}

func TestOrderAdminHandler_List_BadDate(t *testing.T) {
	mockOrders := new(MockOrderService)
	handler := NewOrderAdminHandler(mockOrders, new(MockDeliveryService), new(MockPaymentGroupService))

	c, w := newTestContext("GET", "/admin/orders?from=yesterday", "")
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockOrders.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestOrderAdminHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	mockOrders := new(MockOrderService)
	handler := NewOrderAdminHandler(mockOrders, new(MockDeliveryService), new(MockPaymentGroupService))

	mockOrders.On("UpdateStatus", mock.Anything, "o1", orders.StatusShipped).Return(nil, orders.ErrInvalidTransition)

	c, w := newTestContext("POST", "/admin/orders/o1/status", `{"status":"shipped"}`, gin.Param{Key: "id", Value: "o1"})
	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockOrders.AssertExpectations(t)
}

func TestOrderAdminHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	handler := NewOrderAdminHandler(new(MockOrderService), new(MockDeliveryService), new(MockPaymentGroupService))

	c, w := newTestContext("POST", "/admin/orders/o1/status", `{"status":"lost"}`, gin.Param{Key: "id", Value: "o1"})
	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderAdminHandler_Cancel(t *testing.T) {
	mockOrders := new(MockOrderService)
	handler := NewOrderAdminHandler(mockOrders, new(MockDeliveryService), new(MockPaymentGroupService))

	mockOrders.On("Cancel", mock.Anything, "o1").Return(testOrder(orders.PaymentBankTransfer, orders.StatusCancelled), nil)

	c, w := newTestContext("POST", "/admin/orders/o1/cancel", "", gin.Param{Key: "id", Value: "o1"})
	handler.Cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderAdminHandler_ListPaymentGroups(t *testing.T) {
	mockGroups := new(MockPaymentGroupService)
	handler := NewOrderAdminHandler(new(MockOrderService), new(MockDeliveryService), mockGroups)

	mockGroups.On("ListByOrder", mock.Anything, "o1").Return([]*billing.PaymentGroup{
		{ID: "g1", OrderID: "o1", Sequence: 1, AmountDue: decimal.NewFromInt(12480), Currency: "HUF", DueDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)},
	}, nil)

	c, w := newTestContext("GET", "/admin/orders/o1/payment-groups", "", gin.Param{Key: "id", Value: "o1"})
	handler.ListPaymentGroups(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"delivery_ids":[]`)
}
