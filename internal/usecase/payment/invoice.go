package payment

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"paylite-backend/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

const defaultMerchant = "PayLite+Loans"

type Invoice struct {
	InvoiceNumber string              `json:"invoice_number"`
	TransactionID string              `json:"transaction_id"`
	Date          string              `json:"date"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        transaction.Status  `json:"status"`
	Channel       transaction.Channel `json:"channel"`
	Description   string              `json:"description"`
	MerchantName  string              `json:"merchant_name"`
}

// NewInvoice formats t. The number is "INV-" plus the id's last eight
// characters upper-cased.
func NewInvoice(t *transaction.Transaction) Invoice {
	merchant := t.MerchantName
	if merchant == "" {
		merchant = defaultMerchant
	}
	return Invoice{
		InvoiceNumber: invoiceNumber(t.TransactionID),
		TransactionID: t.TransactionID,
		Date:          t.CreatedAt.UTC().Format("2006-01-02"),
		Amount:        t.Amount,
		Status:        t.Status,
		Channel:       t.Channel,
		Description:   t.Description,
		MerchantName:  merchant,
	}
}

func invoiceNumber(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "INV-" + strings.ToUpper(id)
}

// JSON renders the invoice indented by two spaces.
func (i Invoice) JSON() ([]byte, error) {
	return json.MarshalIndent(i, "", "  ")
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.InvoiceNumber}}</title></head>
<body>
<h1>Invoice {{.InvoiceNumber}}</h1>
<table>
<tr><th>Merchant</th><td>{{.MerchantName}}</td></tr>
<tr><th>Date</th><td>{{.Date}}</td></tr>
<tr><th>Transaction</th><td>{{.TransactionID}}</td></tr>
<tr><th>Description</th><td>{{.Description}}</td></tr>
<tr><th>Payment method</th><td>{{.Channel}}</td></tr>
<tr><th>Status</th><td>{{.Status}}</td></tr>
<tr><th>Amount</th><td>{{.Amount.StringFixed 2}}</td></tr>
</table>
</body>
</html>
`))

func (i Invoice) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, i); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
