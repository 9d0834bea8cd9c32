package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/spiceroute/backoffice/app/models"
)

var productVariants = []string{
	models.VariantWhole,
	models.VariantPowder,
	models.VariantFlakes,
	models.VariantSlice,
	models.VariantNA,
}

func ProductFaker(category *models.Category) *models.Product {
	return &models.Product{
		Name:               faker.Word(),
		CategoryID:         category.ID,
		Variant:            productVariants[rand.Intn(len(productVariants))],
		BotanicalName:      faker.Word(),
		TradeName:          faker.Word(),
		GeneralInfo:        faker.Paragraph(),
		OriginSourcing:     faker.Sentence(),
		Characteristics:    faker.Sentence(),
		PackagingShelfLife: faker.Sentence(),
		MOQ:                "100 kg",
		Status:             models.StatusActive,
	}
}

func CertificateBadgeFaker() *models.CertificateBadge {
	return &models.CertificateBadge{
		Title:       faker.Word(),
		Description: faker.Sentence(),
	}
}
