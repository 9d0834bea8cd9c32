package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAttachmentFixture(t *testing.T) (*AttachmentHandler, *models.Product, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	category := &models.Category{Name: "Turmeric", Type: "organic", Status: models.StatusActive}
	require.NoError(t, db.Create(category).Error)
	product := &models.Product{Name: "Turmeric Powder", CategoryID: category.ID, Variant: "powder", Status: models.StatusActive}
	require.NoError(t, db.Create(product).Error)

	repo := repositories.NewProductImageRepository(db)
	h := NewAttachmentHandler(testRender, repo, newTestStore(t), "product_images", "Product")
	return h, product, db
}

func TestAttachmentStore(t *testing.T) {
	h, product, db := newAttachmentFixture(t)

	req := postMultipart(t, fmt.Sprintf("/data/products/%d/images", product.ID), url.Values{},
		multipartFile{field: "images[]", filename: "a.jpg", content: []byte("jpegdata")},
		multipartFile{field: "images[]", filename: "b.png", content: []byte("pngdata")})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(product.ID)})
	rec := httptest.NewRecorder()
	h.Store(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message string                `json:"message"`
		Images  []models.ProductImage `json:"images"`
	}
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Images uploaded successfully", resp.Message)
	require.Len(t, resp.Images, 2)

	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestAttachmentStoreRequiresFile(t *testing.T) {
	h, product, _ := newAttachmentFixture(t)

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/data/products/%d/images", product.ID), &buf)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(product.ID)})
	rec := httptest.NewRecorder()
	h.Store(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "At least one image is required.", resp.Errors["images"])
}

func TestAttachmentStoreUnknownParent(t *testing.T) {
	h, _, _ := newAttachmentFixture(t)

	req := postMultipart(t, "/data/products/99/images", url.Values{},
		multipartFile{field: "images[]", filename: "a.jpg", content: []byte("jpegdata")})
	req = mux.SetURLVars(req, map[string]string{"id": "99"})
	rec := httptest.NewRecorder()
	h.Store(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Product not found", resp["message"])
}

func TestAttachmentStoreRejectsOversizedFile(t *testing.T) {
	h, product, db := newAttachmentFixture(t)

	big := strings.Repeat("x", MaxUploadSize+1)
	req := postMultipart(t, fmt.Sprintf("/data/products/%d/images", product.ID), url.Values{},
		multipartFile{field: "images[]", filename: "big.jpg", content: []byte(big)})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(product.ID)})
	rec := httptest.NewRecorder()
	h.Store(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "The file may not be greater than 2048 kilobytes.", resp.Errors["images"])

	var count int64
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAttachmentDestroy(t *testing.T) {
	h, product, db := newAttachmentFixture(t)
	repo := repositories.NewProductImageRepository(db)

	row, err := repo.Create(t.Context(), product.ID, "product_images/a.jpg")
	require.NoError(t, err)
	image := row.(models.ProductImage)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/data/product_images/%d", image.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(image.ID)})
	rec := httptest.NewRecorder()
	h.Destroy(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Image deleted successfully", resp["message"])

	_, found, err := repo.GetPath(t.Context(), image.ID)
	require.NoError(t, err)
	require.False(t, found)
}
