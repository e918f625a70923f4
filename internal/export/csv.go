// Package export serialises orders for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"order-desk/internal/model"
)

// Filename is the attachment name offered for the order export.
const Filename = "orders.csv"

// TimeLayout formats created_at in exported rows.
const TimeLayout = "2006-01-02 15:04:05"

// Header lists the exported columns in table order.
var Header = []string{
	"id",
	"customer_name",
	"contact_method",
	"contact_detail",
	"delivery_address",
	"product",
	"details",
	"price",
	"deposit",
	"image_reference",
	"payment_status",
	"order_status",
	"created_at",
}

// WriteCSV writes a header row followed by one row per order, in the order given.
// Absent optional fields are written as empty cells.
func WriteCSV(w io.Writer, orders []model.Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range orders {
		if err := cw.Write(record(&orders[i])); err != nil {
			return fmt.Errorf("failed to write order %d: %w", orders[i].ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func record(o *model.Order) []string {
	return []string{
		strconv.FormatInt(o.ID, 10),
		o.CustomerName,
		o.ContactMethod,
		deref(o.ContactDetail),
		deref(o.DeliveryAddress),
		o.Product,
		deref(o.Details),
		o.Price.StringFixed(2),
		o.Deposit.StringFixed(2),
		deref(o.ImageReference),
		string(o.PaymentStatus),
		string(o.OrderStatus),
		o.CreatedAt.UTC().Format(TimeLayout),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
