package fakers

import (
	"math/rand"

	"github.com/go-faker/faker/v4"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models"
)

var categoryTypes = []string{
	models.CategoryTypeNatural,
	models.CategoryTypeOrganic,
	models.CategoryTypeNA,
}

func CategoryFaker() *models.Category {
	name := faker.Word()
	categoryType := categoryTypes[rand.Intn(len(categoryTypes))]

	return &models.Category{
		Name:        name,
		Type:        categoryType,
		Slug:        helpers.GenerateSlug(categoryType + "-" + name),
		Description: faker.Sentence(),
		Status:      models.StatusActive,
	}
}
