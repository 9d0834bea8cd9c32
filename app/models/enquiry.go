package models

import (
	"time"
)

const (
	EnquiryStatusPending   = "pending"
	EnquiryStatusProcessed = "processed"
	EnquiryStatusCancelled = "cancelled"
)

type Enquiry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	Message    string    `gorm:"type:text" json:"message"`
	Website    string    `gorm:"size:255" json:"website"`
	Product    string    `gorm:"size:255" json:"product"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	City       string    `gorm:"size:255" json:"city"`
	Region     string    `gorm:"size:255" json:"region"`
	Pin        string    `gorm:"size:10" json:"pin"`
	BranchType string    `gorm:"size:255" json:"branch_type"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
