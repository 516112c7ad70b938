package payment

import "github.com/shopspring/decimal"

// Amounts are sent as JSON numbers; decimal.Decimal would marshal as a string.
type barionItem struct {
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	Quantity    int     `json:"Quantity"`
	Unit        string  `json:"Unit"`
	UnitPrice   float64 `json:"UnitPrice"`
	ItemTotal   float64 `json:"ItemTotal"`
}

type barionTransaction struct {
	POSTransactionID string       `json:"POSTransactionId"`
	Payee            string       `json:"Payee"`
	Total            float64      `json:"Total"`
	Items            []barionItem `json:"Items"`
}

type barionStartRequest struct {
	POSKey           string              `json:"POSKey"`
	PaymentType      string              `json:"PaymentType"`
	GuestCheckOut    bool                `json:"GuestCheckOut"`
	FundingSources   []string            `json:"FundingSources"`
	PaymentRequestID string              `json:"PaymentRequestId"`
	PayerHint        string              `json:"PayerHint,omitempty"`
	OrderNumber      string              `json:"OrderNumber"`
	RedirectURL      string              `json:"RedirectUrl"`
	CallbackURL      string              `json:"CallbackUrl"`
	Locale           string              `json:"Locale"`
	Currency         string              `json:"Currency"`
	Transactions     []barionTransaction `json:"Transactions"`
}

type barionError struct {
	ErrorCode   string `json:"ErrorCode"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
}

type barionStartResponse struct {
	PaymentID        string        `json:"PaymentId"`
	PaymentRequestID string        `json:"PaymentRequestId"`
	Status           string        `json:"Status"`
	GatewayURL       string        `json:"GatewayUrl"`
	Errors           []barionError `json:"Errors"`
}

type barionStateResponse struct {
	PaymentID        string          `json:"PaymentId"`
	PaymentRequestID string          `json:"PaymentRequestId"`
	Status           string          `json:"Status"`
	Total            decimal.Decimal `json:"Total"`
	Currency         string          `json:"Currency"`
	Errors           []barionError   `json:"Errors"`
}

type barionErrorResponse struct {
	Errors []barionError `json:"Errors"`
}
