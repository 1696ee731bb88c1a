package transaction

import (
	"time"

	"paylite-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

var ErrNotFound = apperr.Kind(apperr.ErrNotFound, "transaction not found")

type Status string

const (
	StatusSuccess Status = "Success"
	StatusFailed  Status = "Failed"
	StatusPending Status = "Pending"
)

type Channel string

const (
	ChannelUPI  Channel = "UPI"
	ChannelCard Channel = "Card"
)

func (c Channel) Valid() bool { return c == ChannelUPI || c == ChannelCard }

// Table: transactions. Rows are written once with their final status.
type Transaction struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string          `gorm:"size:32;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	UserID        string          `gorm:"size:32;index:idx_transactions_user_status" json:"user_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Channel       Channel         `gorm:"size:8" json:"channel"`
	Description   string          `gorm:"type:text" json:"description"`
	ChannelRef    string          `gorm:"size:255" json:"channel_ref,omitempty"`
	MerchantName  string          `gorm:"size:255" json:"merchant_name,omitempty"`
	Status        Status          `gorm:"size:16;index:idx_transactions_user_status" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Transaction) TableName() string { return "transactions" }
