package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of calendar dates in requests and responses.
const DateLayout = time.DateOnly

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is the body of answers without a resource
type InfoResponse struct {
	Message string `json:"message"`
}

// ProductRequest creates or replaces a product
type ProductRequest struct {
	Name                 string          `json:"name" validate:"required,min=1,max=255"`
	Slug                 string          `json:"slug" validate:"required,max=255"`
	Description          string          `json:"description" validate:"max=4000"`
	Category             string          `json:"category" validate:"required,oneof=wine beer spirits soft-drink water coffee bundle"`
	UnitPrice            decimal.Decimal `json:"unit_price" validate:"gt=0"`
	Currency             string          `json:"currency" validate:"omitempty,currency"`
	Stock                int             `json:"stock" validate:"min=0"`
	Active               bool            `json:"active"`
	SubscriptionEligible bool            `json:"subscription_eligible"`
	ImageURL             string          `json:"image_url" validate:"omitempty,url,max=1024"`
}

// Validate for validating ProductRequest struct
func (r *ProductRequest) Validate() error {
	return validators.Struct(r)
}

// ToDomain converts the request into a product with the given ID.
func (r *ProductRequest) ToDomain(id string) *catalog.Product {
	return &catalog.Product{
		ID:                   id,
		Name:                 strings.TrimSpace(r.Name),
		Slug:                 r.Slug,
		Description:          r.Description,
		Category:             r.Category,
		UnitPrice:            r.UnitPrice,
		Currency:             r.Currency,
		Stock:                r.Stock,
		Active:               r.Active,
		SubscriptionEligible: r.SubscriptionEligible,
		ImageURL:             r.ImageURL,
	}
}

// SetActiveRequest activates or deactivates a product
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Validate for validating SetActiveRequest struct
func (r *SetActiveRequest) Validate() error {
	return validators.Struct(r)
}

// AdjustStockRequest adds Delta to the stock
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}

// Validate for validating AdjustStockRequest struct
func (r *AdjustStockRequest) Validate() error {
	return validators.Struct(r)
}

// ProductResponse represents a product
type ProductResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Slug                 string          `json:"slug"`
	Description          string          `json:"description,omitempty"`
	Category             string          `json:"category"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	Currency             string          `json:"currency"`
	Stock                int             `json:"stock"`
	Active               bool            `json:"active"`
	SubscriptionEligible bool            `json:"subscription_eligible"`
	ImageURL             string          `json:"image_url,omitempty"`
	DateTimeCreated      time.Time       `json:"date_time_created"`
	DateTimeUpdated      time.Time       `json:"date_time_updated"`
}

// NewProductResponse maps a product onto its response
func NewProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		Description:          p.Description,
		Category:             p.Category,
		UnitPrice:            p.UnitPrice,
		Currency:             p.Currency,
		Stock:                p.Stock,
		Active:               p.Active,
		SubscriptionEligible: p.SubscriptionEligible,
		ImageURL:             p.ImageURL,
		DateTimeCreated:      p.DateTimeCreated,
		DateTimeUpdated:      p.DateTimeUpdated,
	}
}

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"min=1,max=99"`
}

// Validate for validating AddItemRequest struct
func (r *AddItemRequest) Validate() error {
	return validators.Struct(r)
}

// UpdateItemRequest sets the quantity of a cart line; 0 removes it
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

// Validate for validating UpdateItemRequest struct
func (r *UpdateItemRequest) Validate() error {
	return validators.Struct(r)
}

// ApplyCouponRequest applies a coupon code to the cart
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// Validate for validating ApplyCouponRequest struct
func (r *ApplyCouponRequest) Validate() error {
	return validators.Struct(r)
}

// CartItemResponse is one cart line
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartResponse represents a cart
type CartResponse struct {
	ID              string             `json:"id"`
	Items           []CartItemResponse `json:"items"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	DateTimeUpdated time.Time          `json:"date_time_updated"`
}

// NewCartResponse maps a cart onto its response
func NewCartResponse(c *carts.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return CartResponse{ID: c.ID, Items: items, CouponCode: c.CouponCode, DateTimeUpdated: c.DateTimeUpdated}
}

// QuoteLineResponse is a priced cart line
type QuoteLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Available   bool            `json:"available"`
}

// QuoteResponse is the priced view of a cart
type QuoteResponse struct {
	CartID               string              `json:"cart_id"`
	Lines                []QuoteLineResponse `json:"lines"`
	CouponCode           string              `json:"coupon_code,omitempty"`
	CouponError          string              `json:"coupon_error,omitempty"`
	IsSubscription       bool                `json:"is_subscription"`
	Subtotal             decimal.Decimal     `json:"subtotal"`
	CouponDiscount       decimal.Decimal     `json:"coupon_discount"`
	SubscriptionDiscount decimal.Decimal     `json:"subscription_discount"`
	Shipping             decimal.Decimal     `json:"shipping"`
	Total                decimal.Decimal     `json:"total"`
	Currency             string              `json:"currency"`
}

// NewQuoteResponse maps a cart quote onto its response
func NewQuoteResponse(q *carts.CartQuote) QuoteResponse {
	lines := make([]QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			LineTotal:   l.LineTotal,
			Available:   l.Available,
		})
	}
	return QuoteResponse{
		CartID:               q.CartID,
		Lines:                lines,
		CouponCode:           q.CouponCode,
		CouponError:          q.CouponError,
		IsSubscription:       q.IsSubscription,
		Subtotal:             q.Subtotal,
		CouponDiscount:       q.CouponDiscount,
		SubscriptionDiscount: q.SubscriptionDiscount,
		Shipping:             q.Shipping,
		Total:                q.Total,
		Currency:             q.Currency,
	}
}

// AddressDTO is a postal address
type AddressDTO struct {
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Street     string `json:"street"`
	Note       string `json:"note,omitempty"`
}

func (a AddressDTO) toDomain() customers.Address {
	return customers.Address{PostalCode: a.PostalCode, City: a.City, Street: a.Street, Note: a.Note}
}

func newAddressDTO(a customers.Address) AddressDTO {
	return AddressDTO{PostalCode: a.PostalCode, City: a.City, Street: a.Street, Note: a.Note}
}

// CustomerDTO carries the guest customer of a checkout
type CustomerDTO struct {
	Email           string      `json:"email" validate:"required,email,max=255"`
	FullName        string      `json:"full_name" validate:"required,min=2,max=255"`
	Phone           string      `json:"phone" validate:"omitempty,e164"`
	ShippingAddress AddressDTO  `json:"shipping_address"`
	BillingAddress  *AddressDTO `json:"billing_address,omitempty"`
}

// CheckoutRequest turns the current cart into an order
type CheckoutRequest struct {
	Customer      CustomerDTO `json:"customer"`
	Kind          string      `json:"kind" validate:"required,oneof=one_time subscription"`
	Recurrence    string      `json:"recurrence" validate:"required_if=Kind subscription,omitempty,oneof=weekly biweekly monthly four_weekly"`
	StartDate     string      `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	DeliveryCount int         `json:"delivery_count" validate:"min=0,max=104"`
	PaymentMethod string      `json:"payment_method" validate:"required,oneof=barion stripe bank_transfer cash_on_delivery"`
}

// Validate for validating CheckoutRequest struct
func (r *CheckoutRequest) Validate() error {
	return validators.Struct(r)
}

// ToDomain converts the request into the checkout of cartID
func (r *CheckoutRequest) ToDomain(cartID string) (*orders.CheckoutRequest, error) {
	req := &orders.CheckoutRequest{
		CartID: cartID,
		Customer: customers.Customer{
			Email:           r.Customer.Email,
			FullName:        r.Customer.FullName,
			Phone:           r.Customer.Phone,
			ShippingAddress: r.Customer.ShippingAddress.toDomain(),
		},
		Kind:          orders.Kind(r.Kind),
		Recurrence:    deliveries.Recurrence(r.Recurrence),
		DeliveryCount: r.DeliveryCount,
		PaymentMethod: orders.PaymentMethod(r.PaymentMethod),
	}
	if r.Customer.BillingAddress != nil {
		req.Customer.BillingAddress = r.Customer.BillingAddress.toDomain()
	}
	if r.StartDate != "" {
		start, err := time.Parse(DateLayout, r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", validators.ErrValidation, r.StartDate)
		}
		req.StartDate = start
	}
	return req, nil
}

// OrderItemResponse is the price snapshot of one ordered product
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order. Money fields of subscriptions are per delivery.
type OrderResponse struct {
	ID                   string              `json:"id"`
	Number               string              `json:"number"`
	CustomerID           string              `json:"customer_id"`
	Kind                 string              `json:"kind"`
	Recurrence           string              `json:"recurrence,omitempty"`
	DeliveryCount        int                 `json:"delivery_count"`
	Status               string              `json:"status"`
	PaymentMethod        string              `json:"payment_method"`
	CouponCode           string              `json:"coupon_code,omitempty"`
	Subtotal             decimal.Decimal     `json:"subtotal"`
	CouponDiscount       decimal.Decimal     `json:"coupon_discount"`
	SubscriptionDiscount decimal.Decimal     `json:"subscription_discount"`
	ShippingFee          decimal.Decimal     `json:"shipping_fee"`
	Total                decimal.Decimal     `json:"total"`
	Currency             string              `json:"currency"`
	Items                []OrderItemResponse `json:"items"`
	ShippingAddress      AddressDTO          `json:"shipping_address"`
	DateTimeCreated      time.Time           `json:"date_time_created"`
	DateTimeUpdated      time.Time           `json:"date_time_updated"`
}

// NewOrderResponse maps an order onto its response
func NewOrderResponse(o *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal,
		})
	}
	return OrderResponse{
		ID:                   o.ID,
		Number:               o.Number,
		CustomerID:           o.CustomerID,
		Kind:                 string(o.Kind),
		Recurrence:           string(o.Recurrence),
		DeliveryCount:        o.DeliveryCount,
		Status:               string(o.Status),
		PaymentMethod:        string(o.PaymentMethod),
		CouponCode:           o.CouponCode,
		Subtotal:             o.Subtotal,
		CouponDiscount:       o.CouponDiscount,
		SubscriptionDiscount: o.SubscriptionDiscount,
		ShippingFee:          o.ShippingFee,
		Total:                o.Total,
		Currency:             o.Currency,
		Items:                items,
		ShippingAddress:      newAddressDTO(o.ShippingAddress),
		DateTimeCreated:      o.DateTimeCreated,
		DateTimeUpdated:      o.DateTimeUpdated,
	}
}

// DeliveryResponse represents a scheduled delivery
type DeliveryResponse struct {
	ID            string     `json:"id"`
	OrderID       string     `json:"order_id"`
	Sequence      int        `json:"sequence"`
	ScheduledDate string     `json:"scheduled_date"`
	Status        string     `json:"status"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty"`
}

// NewDeliveryResponses maps deliveries onto their responses
func NewDeliveryResponses(list []*deliveries.Delivery) []DeliveryResponse {
	out := make([]DeliveryResponse, 0, len(list))
	for _, d := range list {
		out = append(out, NewDeliveryResponse(d))
	}
	return out
}

// NewDeliveryResponse maps a delivery onto its response
func NewDeliveryResponse(d *deliveries.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:            d.ID,
		OrderID:       d.OrderID,
		Sequence:      d.Sequence,
		ScheduledDate: d.ScheduledDate.UTC().Format(DateLayout),
		Status:        string(d.Status),
		DeliveredAt:   d.DeliveredAt,
	}
}

// PaymentGroupResponse represents an order payment group
type PaymentGroupResponse struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	Sequence      int             `json:"sequence"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	Currency      string          `json:"currency"`
	DueDate       string          `json:"due_date"`
	DeliveryIDs   []string        `json:"delivery_ids"`
	BillCreated   bool            `json:"bill_created"`
	BillCreatedAt *time.Time      `json:"bill_created_at,omitempty"`
	BillSent      bool            `json:"bill_sent"`
	BillSentAt    *time.Time      `json:"bill_sent_at,omitempty"`
	Paid          bool            `json:"paid"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	Voided        bool            `json:"voided"`
	VoidedAt      *time.Time      `json:"voided_at,omitempty"`
}

// NewPaymentGroupResponses maps payment groups onto their responses
func NewPaymentGroupResponses(list []*billing.PaymentGroup) []PaymentGroupResponse {
	out := make([]PaymentGroupResponse, 0, len(list))
	for _, g := range list {
		out = append(out, NewPaymentGroupResponse(g))
	}
	return out
}

// NewPaymentGroupResponse maps a payment group onto its response
func NewPaymentGroupResponse(g *billing.PaymentGroup) PaymentGroupResponse {
	ids := g.DeliveryIDs
	if ids == nil {
		ids = []string{}
	}
	return PaymentGroupResponse{
		ID:            g.ID,
		OrderID:       g.OrderID,
		Sequence:      g.Sequence,
		AmountDue:     g.AmountDue,
		Currency:      g.Currency,
		DueDate:       g.DueDate.UTC().Format(DateLayout),
		DeliveryIDs:   ids,
		BillCreated:   g.BillCreated,
		BillCreatedAt: g.BillCreatedAt,
		BillSent:      g.BillSent,
		BillSentAt:    g.BillSentAt,
		Paid:          g.Paid,
		PaidAt:        g.PaidAt,
		Voided:        g.Voided,
		VoidedAt:      g.VoidedAt,
	}
}

// CheckoutResponse is the created order with its schedule and payment plan
type CheckoutResponse struct {
	Order         OrderResponse          `json:"order"`
	Deliveries    []DeliveryResponse     `json:"deliveries"`
	PaymentGroups []PaymentGroupResponse `json:"payment_groups"`
	RedirectURL   string                 `json:"redirect_url,omitempty"`
}

// PaymentRedirectResponse points the customer at the provider's payment page
type PaymentRedirectResponse struct {
	OrderNumber string `json:"order_number"`
	RedirectURL string `json:"redirect_url"`
}

// UpdateStatusRequest moves an order to Status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending awaiting_payment paid payment_failed processing shipped completed cancelled refunded"`
}

// Validate for validating UpdateStatusRequest struct
func (r *UpdateStatusRequest) Validate() error {
	return validators.Struct(r)
}

// RescheduleRequest moves a delivery to Date
type RescheduleRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Validate for validating RescheduleRequest struct
func (r *RescheduleRequest) Validate() error {
	return validators.Struct(r)
}

// CouponRequest creates or replaces a coupon
type CouponRequest struct {
	Code             string          `json:"code" validate:"required,min=3,max=32"`
	Kind             string          `json:"kind" validate:"required,oneof=percent fixed"`
	Value            decimal.Decimal `json:"value" validate:"gt=0"`
	MinOrderAmount   decimal.Decimal `json:"min_order_amount" validate:"gte=0"`
	ValidFrom        *time.Time      `json:"valid_from"`
	ValidUntil       *time.Time      `json:"valid_until"`
	UsageLimit       int             `json:"usage_limit" validate:"min=0"`
	Active           bool            `json:"active"`
	SubscriptionOnly bool            `json:"subscription_only"`
}

// Validate for validating CouponRequest struct
func (r *CouponRequest) Validate() error {
	return validators.Struct(r)
}

// ToDomain converts the request into a coupon with the given ID
func (r *CouponRequest) ToDomain(id string) *coupons.Coupon {
	c := &coupons.Coupon{
		ID:               id,
		Code:             r.Code,
		Kind:             r.Kind,
		Value:            r.Value,
		MinOrderAmount:   r.MinOrderAmount,
		ValidUntil:       r.ValidUntil,
		UsageLimit:       r.UsageLimit,
		Active:           r.Active,
		SubscriptionOnly: r.SubscriptionOnly,
	}
	if r.ValidFrom != nil {
		c.ValidFrom = r.ValidFrom.UTC()
	}
	if c.ValidUntil != nil {
		until := c.ValidUntil.UTC()
		c.ValidUntil = &until
	}
	return c
}

// CouponResponse represents a coupon
type CouponResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Kind             string          `json:"kind"`
	Value            decimal.Decimal `json:"value"`
	MinOrderAmount   decimal.Decimal `json:"min_order_amount"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidUntil       *time.Time      `json:"valid_until,omitempty"`
	UsageLimit       int             `json:"usage_limit"`
	UsageCount       int             `json:"usage_count"`
	Active           bool            `json:"active"`
	SubscriptionOnly bool            `json:"subscription_only"`
	DateTimeCreated  time.Time       `json:"date_time_created"`
}

// NewCouponResponse maps a coupon onto its response
func NewCouponResponse(c *coupons.Coupon) CouponResponse {
	return CouponResponse{
		ID:               c.ID,
		Code:             c.Code,
		Kind:             c.Kind,
		Value:            c.Value,
		MinOrderAmount:   c.MinOrderAmount,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		UsageLimit:       c.UsageLimit,
		UsageCount:       c.UsageCount,
		Active:           c.Active,
		SubscriptionOnly: c.SubscriptionOnly,
		DateTimeCreated:  c.DateTimeCreated,
	}
}

// SettingsRequest replaces the shop settings
type SettingsRequest struct {
	ShopOpen                    bool            `json:"shop_open"`
	Currency                    string          `json:"currency" validate:"required,currency"`
	ShippingFee                 decimal.Decimal `json:"shipping_fee" validate:"gte=0"`
	FreeShippingThreshold       decimal.Decimal `json:"free_shipping_threshold" validate:"gte=0"`
	DeliveryWeekdays            []string        `json:"delivery_weekdays" validate:"required,min=1,max=7"`
	MinLeadDays                 int             `json:"min_lead_days" validate:"min=0,max=60"`
	MaxSubscriptionDeliveries   int             `json:"max_subscription_deliveries" validate:"min=1,max=104"`
	BankTransferDueDays         int             `json:"bank_transfer_due_days" validate:"min=1,max=90"`
	SubscriptionDiscountPercent decimal.Decimal `json:"subscription_discount_percent" validate:"gte=0,lte=100"`
}

// Validate for validating SettingsRequest struct
func (r *SettingsRequest) Validate() error {
	if err := validators.Struct(r); err != nil {
		return err
	}
	_, err := parseWeekdays(r.DeliveryWeekdays)
	return err
}

// ToDomain converts the request into shop settings
func (r *SettingsRequest) ToDomain() (*settings.ShopSettings, error) {
	days, err := parseWeekdays(r.DeliveryWeekdays)
	if err != nil {
		return nil, err
	}
	return &settings.ShopSettings{
		ShopOpen:                    r.ShopOpen,
		Currency:                    r.Currency,
		ShippingFee:                 r.ShippingFee,
		FreeShippingThreshold:       r.FreeShippingThreshold,
		DeliveryWeekdays:            days,
		MinLeadDays:                 r.MinLeadDays,
		MaxSubscriptionDeliveries:   r.MaxSubscriptionDeliveries,
		BankTransferDueDays:         r.BankTransferDueDays,
		SubscriptionDiscountPercent: r.SubscriptionDiscountPercent,
	}, nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
				days = append(days, d)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: unknown weekday %q", validators.ErrValidation, name)
		}
	}
	return days, nil
}

func weekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, strings.ToLower(d.String()))
	}
	return names
}

// SettingsResponse represents the shop settings
type SettingsResponse struct {
	ShopOpen                    bool            `json:"shop_open"`
	Currency                    string          `json:"currency"`
	ShippingFee                 decimal.Decimal `json:"shipping_fee"`
	FreeShippingThreshold       decimal.Decimal `json:"free_shipping_threshold"`
	DeliveryWeekdays            []string        `json:"delivery_weekdays"`
	MinLeadDays                 int             `json:"min_lead_days"`
	MaxSubscriptionDeliveries   int             `json:"max_subscription_deliveries"`
	BankTransferDueDays         int             `json:"bank_transfer_due_days"`
	SubscriptionDiscountPercent decimal.Decimal `json:"subscription_discount_percent"`
	DateTimeUpdated             *time.Time      `json:"date_time_updated,omitempty"`
}

// NewSettingsResponse maps shop settings onto their response
func NewSettingsResponse(s *settings.ShopSettings) SettingsResponse {
	resp := SettingsResponse{
		ShopOpen:                    s.ShopOpen,
		Currency:                    s.Currency,
		ShippingFee:                 s.ShippingFee,
		FreeShippingThreshold:       s.FreeShippingThreshold,
		DeliveryWeekdays:            weekdayNames(s.SortedWeekdays()),
		MinLeadDays:                 s.MinLeadDays,
		MaxSubscriptionDeliveries:   s.MaxSubscriptionDeliveries,
		BankTransferDueDays:         s.BankTransferDueDays,
		SubscriptionDiscountPercent: s.SubscriptionDiscountPercent,
	}
	if !s.DateTimeUpdated.IsZero() {
		updated := s.DateTimeUpdated
		resp.DateTimeUpdated = &updated
	}
	return resp
}

// CustomerResponse represents a customer
type CustomerResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        string     `json:"full_name"`
	Phone           string     `json:"phone,omitempty"`
	ShippingAddress AddressDTO `json:"shipping_address"`
	BillingAddress  AddressDTO `json:"billing_address"`
	DateTimeCreated time.Time  `json:"date_time_created"`
}

// NewCustomerResponse maps a customer onto its response
func NewCustomerResponse(c *customers.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Email:           c.Email,
		FullName:        c.FullName,
		Phone:           c.Phone,
		ShippingAddress: newAddressDTO(c.ShippingAddress),
		BillingAddress:  newAddressDTO(c.BillingAddress),
		DateTimeCreated: c.DateTimeCreated,
	}
}
