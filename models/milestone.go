package models

import "time"

// Milestone is a sub-deliverable checkpoint on a contract. Invariant:
// IsPaid is only ever true when IsCompleted is true.
type Milestone struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ContractID  uint       `gorm:"not null;index" json:"contract_id"`
	Title       string     `gorm:"size:191;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Amount      float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	IsPaid      bool       `gorm:"not null;default:false" json:"is_paid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}

func (Milestone) TableName() string {
	return "milestones"
}
