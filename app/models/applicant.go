package models

import (
	"time"
)

const (
	ApplicantStatusPending  = "pending"
	ApplicantStatusApproved = "approved"
	ApplicantStatusOnHold   = "onhold"
	ApplicantStatusRejected = "rejected"
)

type Applicant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      *string   `gorm:"size:255;uniqueIndex" json:"email"`
	Phone      string    `gorm:"size:20" json:"phone"`
	AppliedFor string    `gorm:"size:255" json:"applied_for"`
	Experience int       `gorm:"default:0" json:"experience"`
	Branch     string    `gorm:"size:255" json:"branch"`
	FilePath   string    `gorm:"size:255" json:"file_path"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
