package export

import (
	"bytes"
	"fmt"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/pavilo/pavilo-billing/internal/billing"
	"github.com/pavilo/pavilo-billing/internal/settings"
	"github.com/pavilo/pavilo-billing/web"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders a rupee amount with Indian digit grouping and two
// decimal places.
func FormatAmount(v float64) string {
	return inr.Sprintf("₹%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

var invoiceTemplate = template.Must(template.New("invoice.html").Funcs(template.FuncMap{
	"amount": FormatAmount,
	"qty": func(v float64) string {
		return fmt.Sprintf("%g", v)
	},
}).ParseFS(web.Templates, "templates/invoice.html"))

type invoicePage struct {
	Business settings.BusinessSettings
	Invoice  billing.Invoice
}

// RenderInvoiceHTML produces the printable invoice document.
func RenderInvoiceHTML(business settings.BusinessSettings, inv billing.Invoice) (string, error) {
	if business.BusinessName == "" {
		business.BusinessName = "Pavilo Billing Buddy"
	}
	var buf bytes.Buffer
	err := invoiceTemplate.ExecuteTemplate(&buf, "invoice.html", invoicePage{Business: business, Invoice: inv})
	if err != nil {
		return "", fmt.Errorf("export: render invoice %s: %w", inv.ID, err)
	}
	return buf.String(), nil
}
