package models

import "time"

// Transaction statuses. Forward-only: escrow_held -> completed.
const (
	TransactionStatusEscrowHeld = "escrow_held"
	TransactionStatusCompleted  = "completed"
)

// Payment channels. Job escrow and ad-hoc wallet payments carry
// independently configured fee rates (config.FeeRate).
const (
	TransactionChannelEscrow = "escrow"
	TransactionChannelWallet = "wallet"
)

// Transaction is an escrow-mediated Pi movement. PlatformFee and
// NetAmount are computed once at creation and never recomputed; TxHash
// is the external rail's settlement reference, recorded verbatim.
type Transaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	JobID        *uint     `gorm:"index" json:"job_id,omitempty"`
	ClientID     uint      `gorm:"not null;index" json:"client_id"`
	FreelancerID uint      `gorm:"not null;index" json:"freelancer_id"`
	Amount       float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PlatformFee  float64   `gorm:"type:decimal(15,2);not null;default:0.00" json:"platform_fee"`
	NetAmount    float64   `gorm:"type:decimal(15,2);not null" json:"net_amount"`
	PaymentID    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"payment_id"`
	TxHash       *string   `gorm:"type:varchar(191)" json:"tx_hash,omitempty"`
	Memo         string    `gorm:"size:191" json:"memo"`
	Channel      string    `gorm:"type:varchar(16);not null;default:'escrow'" json:"channel"`
	Status       string    `gorm:"type:varchar(16);not null;default:'escrow_held'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
