package models

import "time"

// Job statuses. Forward-only: open -> in_progress -> completed.
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
)

type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClientID    uint      `gorm:"not null;index" json:"client_id"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Budget      float64   `gorm:"type:decimal(15,2);not null" json:"budget"`
	IsHourly    bool      `gorm:"not null;default:false" json:"is_hourly"`
	Status      string    `gorm:"type:varchar(16);not null;default:'open'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}
