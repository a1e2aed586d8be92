package ledger

import "time"

// PaymentRecord is one settlement entry. Records reference invoices by id
// only; deleting an invoice leaves its records in place.
type PaymentRecord struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoiceId"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
}

// Accepted payment methods.
const (
	MethodCash         = "Cash"
	MethodCard         = "Card"
	MethodUPI          = "UPI"
	MethodBankTransfer = "Bank Transfer"
)

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodBankTransfer:
		return true
	}
	return false
}
