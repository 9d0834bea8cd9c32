package seeders

import (
	"github.com/spiceroute/backoffice/app/db/fakers"
	"gorm.io/gorm"
)

// DBSeed fills an empty database with demo catalog data: a handful of
// categories with a few products each, plus certificate badges.
func DBSeed(db *gorm.DB) error {
	for i := 0; i < 4; i++ {
		category := fakers.CategoryFaker()
		if err := db.Create(category).Error; err != nil {
			return err
		}

		for j := 0; j < 3; j++ {
			if err := db.Create(fakers.ProductFaker(category)).Error; err != nil {
				return err
			}
		}
	}

	for i := 0; i < 3; i++ {
		if err := db.Create(fakers.CertificateBadgeFaker()).Error; err != nil {
			return err
		}
	}

	return nil
}
