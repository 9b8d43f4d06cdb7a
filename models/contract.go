package models

import "time"

// Contract statuses.
const (
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"
)

// Contract is the binding agreement opened when a proposal is accepted.
// JobID carries a unique index: the database itself guarantees at most
// one contract per job, which is what serializes concurrent accepts.
type Contract struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	JobID        uint       `gorm:"not null;uniqueIndex" json:"job_id"`
	ClientID     uint       `gorm:"not null;index" json:"client_id"`
	FreelancerID uint       `gorm:"not null;index" json:"freelancer_id"`
	Title        string     `gorm:"size:191;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Amount       float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Status       string     `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"-"`

	Freelancer *User       `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Milestones []Milestone `gorm:"foreignKey:ContractID" json:"milestones,omitempty"`
}

func (Contract) TableName() string {
	return "contracts"
}
