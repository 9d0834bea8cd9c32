package models

import (
	"time"
)

const (
	VariantWhole  = "whole"
	VariantPowder = "powder"
	VariantFlakes = "flakes"
	VariantSlice  = "slice"
	VariantNA     = "na"
)

type Product struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	Name                  string         `gorm:"size:255;not null" json:"name"`
	CategoryID            uint           `gorm:"not null;index" json:"category_id"`
	Category              *Category      `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Variant               string         `gorm:"size:20;not null;default:'na'" json:"variant"`
	BotanicalName         string         `gorm:"size:255" json:"botanical_name"`
	TradeName             string         `gorm:"size:255" json:"trade_name"`
	OtherNames            string         `gorm:"type:text" json:"other_names"`
	GeneralInfo           string         `gorm:"type:text" json:"general_info"`
	OriginSourcing        string         `gorm:"type:text" json:"origin_sourcing"`
	QualityCertifications string         `gorm:"type:text" json:"quality_certifications"`
	Characteristics       string         `gorm:"type:text" json:"characteristics"`
	PackagingShelfLife    string         `gorm:"type:text" json:"packaging_shelf_life"`
	MOQ                   string         `gorm:"type:text" json:"moq"`
	BadgeIDs              string         `gorm:"size:255" json:"badge_ids"`
	Status                string         `gorm:"size:20;not null;default:'active'" json:"status"`
	Images                []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}
