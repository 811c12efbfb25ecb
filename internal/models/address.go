package models

import "time"

// UserAddress carries at most one default per (user, type); the handlers unset
// siblings before setting a new default.
type UserAddress struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	Type           string    `gorm:"size:20;default:'shipping'" json:"type"`
	FirstName      string    `gorm:"size:100" json:"first_name"`
	LastName       string    `gorm:"size:100" json:"last_name"`
	Phone          string    `gorm:"size:30" json:"phone"`
	Address        string    `gorm:"size:512" json:"address"`
	AdditionalInfo *string   `json:"additional_info"`
	Country        string    `gorm:"size:100" json:"country"`
	County         *string   `gorm:"size:100" json:"county"`
	Region         *string   `gorm:"size:100" json:"region"`
	IsDefault      bool      `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
