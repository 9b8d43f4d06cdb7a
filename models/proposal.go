package models

import "time"

// Proposal statuses. accepted and rejected are terminal.
const (
	ProposalStatusPending  = "pending"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

type Proposal struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	JobID        uint      `gorm:"not null;uniqueIndex:idx_job_freelancer" json:"job_id"`
	FreelancerID uint      `gorm:"not null;uniqueIndex:idx_job_freelancer" json:"freelancer_id"`
	CoverLetter  string    `gorm:"type:text" json:"cover_letter"`
	ProposedRate float64   `gorm:"type:decimal(15,2);not null" json:"proposed_rate"`
	Duration     string    `gorm:"size:100" json:"duration"`
	Status       string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`

	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}

func (Proposal) TableName() string {
	return "proposals"
}
