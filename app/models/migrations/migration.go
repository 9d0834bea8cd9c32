package migrations

import (
	"github.com/spiceroute/backoffice/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Post{},
		&models.PostImage{},
		&models.Applicant{},
		&models.CertificateBadge{},
		&models.Enquiry{},
	)
}
