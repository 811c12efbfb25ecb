package models

import "time"

const (
	TestimonialStatusPending  = "pending"
	TestimonialStatusApproved = "approved"
	TestimonialStatusRejected = "rejected"
)

func ValidTestimonialStatus(s string) bool {
	return s == TestimonialStatusPending || s == TestimonialStatusApproved || s == TestimonialStatusRejected
}

// Testimonial is a customer review, optionally tied to a product. Authors may
// edit or delete it only while it is still pending moderation.
type Testimonial struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"index;not null" json:"user_id"`
	ProductID          *uint      `gorm:"index" json:"product_id"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Message            string     `gorm:"not null" json:"message"`
	Rating             int        `gorm:"not null" json:"rating"`
	Status             string     `gorm:"size:20;default:'pending'" json:"status"`
	IsVerifiedPurchase bool       `gorm:"default:false" json:"is_verified_purchase"`
	IsFeatured         bool       `gorm:"default:false" json:"is_featured"`
	AdminNotes         *string    `json:"admin_notes"`
	ApprovedAt         *time.Time `json:"approved_at"`
	ApprovedBy         *uint      `json:"approved_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
