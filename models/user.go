package models

import "time"

// Roles a marketplace account can hold. The role is carried in the JWT
// issued by the Pi auth service and mirrored here for relations.
const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PiUID     string    `gorm:"size:64;uniqueIndex;not null" json:"pi_uid"`
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Balance   float64   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
