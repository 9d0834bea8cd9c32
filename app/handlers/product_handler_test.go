package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type productFixture struct {
	handler  *ProductHandler
	repo     repositories.ProductRepositoryImpl
	category *models.Category
	db       *gorm.DB
}

func newProductFixture(t *testing.T) productFixture {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	imageRepo := repositories.NewProductImageRepository(db)
	store := newTestStore(t)

	category := &models.Category{Name: "Turmeric", Type: "organic", Slug: "organic-turmeric", Status: models.StatusActive}
	require.NoError(t, categoryRepo.Create(t.Context(), category))

	return productFixture{
		handler:  NewProductHandler(testRender, repo, categoryRepo, imageRepo, store, testValidator),
		repo:     repo,
		category: category,
		db:       db,
	}
}

func TestProductCreateWithImages(t *testing.T) {
	fx := newProductFixture(t)

	req := postMultipart(t, "/data/products",
		url.Values{
			"name":        {"Turmeric Powder"},
			"category_id": {fmt.Sprint(fx.category.ID)},
			"variant":     {"powder"},
		},
		multipartFile{field: "images[]", filename: "a.jpg", content: []byte("jpegdata")},
		multipartFile{field: "images[]", filename: "b.png", content: []byte("pngdata")},
	)
	rec := httptest.NewRecorder()
	fx.handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	decodeBody(t, rec.Body, &created)
	require.Equal(t, "Turmeric Powder", created.Name)
	require.Equal(t, "powder", created.Variant)
	require.Equal(t, models.StatusActive, created.Status)
	require.Len(t, created.Images, 2)
}

func TestProductCreateInvalidCategory(t *testing.T) {
	fx := newProductFixture(t)

	req := postForm("/data/products", url.Values{
		"name":        {"Turmeric Powder"},
		"category_id": {"999"},
	})
	rec := httptest.NewRecorder()
	fx.handler.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The selected category id is invalid.", fieldErrors["category_id"])
}

func TestProductCreateAcceptsStatus(t *testing.T) {
	fx := newProductFixture(t)

	req := postForm("/data/products", url.Values{
		"name":        {"Turmeric Powder"},
		"category_id": {fmt.Sprint(fx.category.ID)},
		"status":      {models.StatusInactive},
	})
	rec := httptest.NewRecorder()
	fx.handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	decodeBody(t, rec.Body, &created)
	require.Equal(t, models.StatusInactive, created.Status)
}

func TestProductCreateInvalidVariant(t *testing.T) {
	fx := newProductFixture(t)

	req := postForm("/data/products", url.Values{
		"name":        {"Turmeric Powder"},
		"category_id": {fmt.Sprint(fx.category.ID)},
		"variant":     {"cubed"},
	})
	rec := httptest.NewRecorder()
	fx.handler.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The selected variant is invalid.", fieldErrors["variant"])
}

func TestProductUpdatePartial(t *testing.T) {
	fx := newProductFixture(t)

	product := &models.Product{
		Name:          "Turmeric Powder",
		CategoryID:    fx.category.ID,
		Variant:       "powder",
		BotanicalName: "Curcuma longa",
		Status:        models.StatusActive,
	}
	require.NoError(t, fx.repo.Create(t.Context(), product))

	req := putJSON(t, fmt.Sprintf("/data/products/%d", product.ID), map[string]interface{}{
		"name": "Turmeric Powder Premium",
	})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(product.ID)})
	rec := httptest.NewRecorder()
	fx.handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := fx.repo.GetByID(t.Context(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "Turmeric Powder Premium", updated.Name)
	require.Equal(t, "Curcuma longa", updated.BotanicalName)
	require.Equal(t, "powder", updated.Variant)
}

func TestProductDeleteRemovesImages(t *testing.T) {
	fx := newProductFixture(t)
	imageRepo := repositories.NewProductImageRepository(fx.db)

	product := &models.Product{Name: "Turmeric Powder", CategoryID: fx.category.ID, Variant: "powder", Status: models.StatusActive}
	require.NoError(t, fx.repo.Create(t.Context(), product))
	_, err := imageRepo.Create(t.Context(), product.ID, "product_images/a.jpg")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/data/products/%d", product.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(product.ID)})
	rec := httptest.NewRecorder()
	fx.handler.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Product deleted successfully", resp["message"])

	var count int64
	require.NoError(t, fx.db.Model(&models.ProductImage{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestProductShowNotFound(t *testing.T) {
	fx := newProductFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/data/products/42", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()
	fx.handler.Show(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Product not found", resp["message"])
}
