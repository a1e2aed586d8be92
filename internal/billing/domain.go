package billing

import "time"

// Status enumerates invoice statuses.
type Status string

const (
	// StatusUnpaid is the display default for invoices stored without a status.
	StatusUnpaid Status = "Unpaid"
	// StatusPending marks an invoice awaiting payment.
	StatusPending Status = "Pending"
	// StatusReceived marks goods handed over before payment settles.
	StatusReceived Status = "Received"
	// StatusPaid is set by the payment ledger, never at creation.
	StatusPaid Status = "Paid"
)

// DefaultGSTRate applies to new drafts.
const DefaultGSTRate = 18.0

// LineItem is one product/quantity/rate/amount row within an invoice.
// ProductID is kept only for line-item editing convenience; name, rate and
// unit are copied from the catalog at selection time.
type LineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Rate      float64 `json:"rate"`
	Unit      string  `json:"unit,omitempty"`
	Amount    float64 `json:"amount"`
}

// CustomerSnapshot is the customer data frozen into an invoice. Invoices hold
// copies, not foreign keys into the directory.
type CustomerSnapshot struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
}

// Invoice is a committed, priced document. Once created, items and pricing
// are frozen; only Status and PaymentMethod change, and only through the
// payment ledger. Field names mirror the stored JSON documents.
type Invoice struct {
	ID            string           `json:"id"`
	Customer      CustomerSnapshot `json:"customer"`
	Items         []LineItem       `json:"items"`
	Subtotal      float64          `json:"subtotal"`
	GST           float64          `json:"gst"`
	Total         float64          `json:"total"`
	GSTRate       float64          `json:"gstRate"`
	Status        Status           `json:"status"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// DisplayStatus maps a missing stored status to the Unpaid default.
func (i Invoice) DisplayStatus() Status {
	if i.Status == "" {
		return StatusUnpaid
	}
	return i.Status
}
