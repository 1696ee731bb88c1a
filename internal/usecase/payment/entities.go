package payment

import (
	"html"
	"strings"

	"paylite-backend/internal/domain/apperr"
	"paylite-backend/internal/domain/transaction"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	Amount       decimal.Decimal     `json:"amount"`
	Channel      transaction.Channel `json:"channel"`
	Description  string              `json:"description"`
	ChannelRef   string              `json:"channel_ref,omitempty"`
	MerchantName string              `json:"merchant_name,omitempty"`
}

// strict drops every tag; it is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// plainText strips markup and returns the remaining text unescaped, so
// "Tom & Jerry" is stored as typed and escaped again only on render.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// normalize cleans the free-text fields in place and validates the request.
func (r *PaymentRequest) normalize() error {
	r.Description = plainText(r.Description)
	r.ChannelRef = plainText(r.ChannelRef)
	r.MerchantName = plainText(r.MerchantName)

	if !r.Amount.IsPositive() {
		return apperr.Validation("amount must be greater than 0")
	}
	if !r.Amount.Equal(r.Amount.Round(2)) {
		return apperr.Validation("amount must have at most 2 decimal places")
	}
	if !r.Channel.Valid() {
		return apperr.Validation("channel must be UPI or Card")
	}
	if r.Description == "" {
		return apperr.Validation("description is required")
	}
	return nil
}
