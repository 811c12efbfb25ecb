package models

import "time"

type Banner struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Subtitle        *string   `gorm:"size:255" json:"subtitle"`
	Description     *string   `json:"description"`
	ImageURL        string    `gorm:"size:512;not null" json:"image_url"`
	ButtonText      *string   `gorm:"size:100" json:"button_text"`
	ButtonLink      *string   `gorm:"size:512" json:"button_link"`
	DisplayOrder    int       `gorm:"default:0" json:"display_order"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	BackgroundColor string    `gorm:"size:20;default:'#ffffff'" json:"background_color"`
	TextColor       string    `gorm:"size:20;default:'#000000'" json:"text_color"`
	CreatedBy       *uint     `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
