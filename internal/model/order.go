package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus summarises how much of an order's price has been collected.
// It is always derived from price, deposit and order status.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "Pending"
	PaymentDepositPaid PaymentStatus = "Deposit Paid"
	PaymentPaidInFull  PaymentStatus = "Paid in Full"
)

// OrderStatus is the fulfilment stage tracked by staff. The set is open;
// only OrderCompleted has special meaning.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
)

// Order represents a single customer order for one product.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	ContactMethod   string          `json:"contactMethod" db:"contact_method"`
	ContactDetail   *string         `json:"contactDetail,omitempty" db:"contact_detail"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty" db:"delivery_address"`
	Product         string          `json:"product" db:"product"`
	Details         *string         `json:"details,omitempty" db:"details"`
	Price           decimal.Decimal `json:"price" db:"price"`
	Deposit         decimal.Decimal `json:"deposit" db:"deposit"`
	ImageReference  *string         `json:"imageReference,omitempty" db:"image_reference"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	OrderStatus     OrderStatus     `json:"orderStatus" db:"order_status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// Balance returns the amount still owed on the order.
func (o *Order) Balance() decimal.Decimal {
	return o.Price.Sub(o.Deposit)
}

// MarshalJSON adds the outstanding balance to the stored fields.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Balance decimal.Decimal `json:"balance"`
	}{order(o), o.Balance()})
}

// OrderRequest carries caller-supplied values for creating or updating an order.
// Amounts are kept as text so that parse failures can be reported instead of
// rejected at decode time.
type OrderRequest struct {
	CustomerName    string `json:"customerName"`
	ContactMethod   string `json:"contactMethod"`
	ContactDetail   string `json:"contactDetail,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	Product         string `json:"product"`
	Details         string `json:"details,omitempty"`
	Price           string `json:"price"`
	Deposit         string `json:"deposit,omitempty"`
	OrderStatus     string `json:"orderStatus,omitempty"`
}

// UnmarshalJSON accepts the amount fields as JSON strings or numbers.
func (r *OrderRequest) UnmarshalJSON(data []byte) error {
	type request OrderRequest
	var aux struct {
		request
		Price   amountText `json:"price"`
		Deposit amountText `json:"deposit"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = OrderRequest(aux.request)
	r.Price = string(aux.Price)
	r.Deposit = string(aux.Deposit)
	return nil
}

var errAmountNotScalar = errors.New("amount must be a string or a number")

// amountText keeps an amount as the caller wrote it. Numbers keep their
// literal text so that validation sees exactly what was sent.
type amountText string

func (a *amountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountText(s)
	case data[0] == '{' || data[0] == '[':
		return errAmountNotScalar
	default:
		*a = amountText(data)
	}
	return nil
}

// ImageUpload is an image file received alongside an order request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// OrderPage is one page of the searchable order list.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	Search     string  `json:"search"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalItems int     `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
}
