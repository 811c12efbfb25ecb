package models

import "time"

type Product struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Brand         string    `gorm:"size:120" json:"brand"`
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice *float64  `json:"original_price"`
	Description   string    `json:"description"`
	Image         string    `gorm:"size:512" json:"image"`
	// Denormalized category name, matching categories.name.
	Category  string    `gorm:"size:120;index" json:"category"`
	Rating    float64   `json:"rating"`
	Reviews   int       `json:"reviews"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
