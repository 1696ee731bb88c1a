package payment

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"paylite-backend/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

func sampleTxn() *transaction.Transaction {
	return &transaction.Transaction{
		TransactionID: "3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
		UserID:        "u1",
		Amount:        decimal.RequireFromString("1250.5"),
		Channel:       transaction.ChannelCard,
		Description:   "Tom & Jerry <fan club>",
		Status:        transaction.StatusSuccess,
		CreatedAt:     time.Date(2025, 4, 9, 23, 30, 0, 0, time.UTC),
	}
}

func TestNewInvoice(t *testing.T) {
	inv := NewInvoice(sampleTxn())
	if inv.InvoiceNumber != "INV-8D6B2C88" {
		t.Fatalf("InvoiceNumber = %q", inv.InvoiceNumber)
	}
	if inv.MerchantName != "PayLite+Loans" {
		t.Fatalf("merchant fallback = %q", inv.MerchantName)
	}
	if inv.Date != "2025-04-09" {
		t.Fatalf("Date = %q", inv.Date)
	}

	withMerchant := sampleTxn()
	withMerchant.MerchantName = "Corner Shop"
	if got := NewInvoice(withMerchant).MerchantName; got != "Corner Shop" {
		t.Fatalf("merchant = %q", got)
	}
}

func TestInvoiceNumber_ShortID(t *testing.T) {
	if got := invoiceNumber("ab12"); got != "INV-AB12" {
		t.Fatalf("got %q", got)
	}
}

func TestInvoice_JSON(t *testing.T) {
	b, err := NewInvoice(sampleTxn()).JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"invoice_number\": \"INV-8D6B2C88\"") {
		t.Fatalf("expected two-space indented output, got:\n%s", b)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("output is not json: %v", err)
	}
	if back["merchant_name"] != "PayLite+Loans" || back["status"] != "Success" {
		t.Fatalf("unexpected fields: %v", back)
	}
}

func TestInvoice_HTMLEscapes(t *testing.T) {
	b, err := NewInvoice(sampleTxn()).HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	out := string(b)
	for _, want := range []string{
		"<h1>Invoice INV-8D6B2C88</h1>",
		"Tom &amp; Jerry &lt;fan club&gt;",
		"<td>1250.50</td>",
		"<td>Card</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<fan club>") {
		t.Fatal("description rendered unescaped")
	}
}
