package model

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation messages reported to callers.
const (
	MsgCustomerNameRequired  = "customer name is required"
	MsgContactMethodRequired = "contact method is required"
	MsgProductRequired       = "product is required"
	MsgPriceRequired         = "price is required"
	MsgPriceNotNumber        = "price must be a valid number"
	MsgDepositNotNumber      = "deposit must be a valid number"
	MsgPriceNotPositive      = "price must be greater than zero"
	MsgDepositNegative       = "deposit cannot be negative"
	MsgDepositExceedsPrice   = "deposit cannot exceed price"
	MsgPriceOutOfRange       = "price is out of range"
	MsgDepositOutOfRange     = "deposit is out of range"
	MsgSearchInvalid         = "search contains invalid characters"
)

// Amount bounds. They are checked on the parsed exponent and digit count,
// before any comparison rescales the value.
const (
	maxAmountLength         = 32
	maxAmountIntegerDigits  = 12
	maxAmountFractionDigits = 6
)

// ValidText reports whether s can be stored as text: valid UTF-8 without NUL bytes.
func ValidText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

func invalidText(field string) string {
	return field + " contains invalid characters"
}

// NewOrder validates a create request and returns the order it describes.
// New orders always start in OrderPending.
func NewOrder(req *OrderRequest) (*Order, error) {
	if req == nil {
		return nil, &ValidationError{Errors: []string{"order request is nil"}}
	}

	order := &Order{OrderStatus: OrderPending}
	if err := order.assign(req); err != nil {
		return nil, err
	}
	return order, nil
}

// Apply validates an update request against o and returns the updated order.
// The receiver is left untouched. ID, CreatedAt and ImageReference carry over,
// and an empty order status keeps the current one.
func (o *Order) Apply(req *OrderRequest) (*Order, error) {
	if req == nil {
		return nil, &ValidationError{Errors: []string{"order request is nil"}}
	}

	updated := *o
	if status := strings.TrimSpace(req.OrderStatus); status != "" {
		updated.OrderStatus = OrderStatus(status)
	}
	if err := updated.assign(req); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DerivePaymentStatus applies the payment rule to an already validated
// price and deposit. A completed order is always paid in full, so the
// returned deposit may differ from the one supplied.
func DerivePaymentStatus(price, deposit decimal.Decimal, status OrderStatus) (decimal.Decimal, PaymentStatus) {
	switch {
	case status == OrderCompleted:
		return price, PaymentPaidInFull
	case deposit.Equal(price):
		return deposit, PaymentPaidInFull
	case deposit.IsPositive():
		return deposit, PaymentDepositPaid
	default:
		return deposit, PaymentPending
	}
}

// assign copies validated request fields into o and recomputes the payment status.
func (o *Order) assign(req *OrderRequest) error {
	verr := &ValidationError{}

	for _, f := range []struct{ name, value string }{
		{"customer name", req.CustomerName},
		{"contact method", req.ContactMethod},
		{"contact detail", req.ContactDetail},
		{"delivery address", req.DeliveryAddress},
		{"product", req.Product},
		{"details", req.Details},
		{"order status", req.OrderStatus},
	} {
		if !ValidText(f.value) {
			verr.add(invalidText(f.name))
		}
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		verr.add(MsgCustomerNameRequired)
	}
	contact := strings.TrimSpace(req.ContactMethod)
	if contact == "" {
		verr.add(MsgContactMethodRequired)
	}
	product := strings.TrimSpace(req.Product)
	if product == "" {
		verr.add(MsgProductRequired)
	}

	price, priceOK := parsePrice(req.Price, verr)
	deposit, depositOK := parseDeposit(req.Deposit, verr)

	if priceOK && !price.IsPositive() {
		verr.add(MsgPriceNotPositive)
	}
	if depositOK && deposit.IsNegative() {
		verr.add(MsgDepositNegative)
	}
	if priceOK && depositOK && deposit.GreaterThan(price) {
		verr.add(MsgDepositExceedsPrice)
	}

	if !verr.empty() {
		return verr
	}

	o.CustomerName = customer
	o.ContactMethod = contact
	o.ContactDetail = optional(req.ContactDetail)
	o.DeliveryAddress = optional(req.DeliveryAddress)
	o.Product = product
	o.Details = optional(req.Details)
	o.Price = price
	o.Deposit, o.PaymentStatus = DerivePaymentStatus(price, deposit, o.OrderStatus)

	return nil
}

func parsePrice(raw string, verr *ValidationError) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.add(MsgPriceRequired)
		return decimal.Zero, false
	}
	if len(raw) > maxAmountLength {
		verr.add(MsgPriceOutOfRange)
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		verr.add(MsgPriceNotNumber)
		return decimal.Zero, false
	}
	if !amountInRange(price) {
		verr.add(MsgPriceOutOfRange)
		return decimal.Zero, false
	}
	return price, true
}

func parseDeposit(raw string, verr *ValidationError) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, true
	}
	if len(raw) > maxAmountLength {
		verr.add(MsgDepositOutOfRange)
		return decimal.Zero, false
	}
	deposit, err := decimal.NewFromString(raw)
	if err != nil {
		verr.add(MsgDepositNotNumber)
		return decimal.Zero, false
	}
	if !amountInRange(deposit) {
		verr.add(MsgDepositOutOfRange)
		return decimal.Zero, false
	}
	return deposit, true
}

// amountInRange bounds the integer and fraction digits of d.
func amountInRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < -maxAmountFractionDigits {
		return false
	}
	return d.NumDigits()+exp <= maxAmountIntegerDigits
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
