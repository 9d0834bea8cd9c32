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
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/stretchr/testify/require"
)

func newBadgeFixture(t *testing.T) (*CertificateBadgeHandler, repositories.CertificateBadgeRepositoryImpl, *storage.LocalStore) {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewCertificateBadgeRepository(db)
	store := newTestStore(t)
	return NewCertificateBadgeHandler(testRender, repo, store, testValidator), repo, store
}

func TestCertificateBadgeCreateWithImage(t *testing.T) {
	h, _, store := newBadgeFixture(t)

	req := postMultipart(t, "/data/certificate-badges",
		url.Values{"title": {"USDA Organic"}},
		multipartFile{field: "image", filename: "badge.png", content: []byte("pngdata")})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.CertificateBadge
	decodeBody(t, rec.Body, &created)
	require.Equal(t, "USDA Organic", created.Title)
	require.NotEmpty(t, created.ImagePath)
	require.True(t, store.Exists(created.ImagePath))
}

func TestCertificateBadgeUpdateKeepsImageWithoutNewFile(t *testing.T) {
	h, repo, _ := newBadgeFixture(t)

	badge := &models.CertificateBadge{Title: "USDA Organic", ImagePath: "certificate_badges/old.png"}
	require.NoError(t, repo.Create(t.Context(), badge))

	req := postForm(fmt.Sprintf("/data/certificate-badges/%d", badge.ID), url.Values{
		"title": {"USDA Organic 2026"},
	})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(badge.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.CertificateBadge
	decodeBody(t, rec.Body, &updated)
	require.Equal(t, "USDA Organic 2026", updated.Title)
	require.Equal(t, "certificate_badges/old.png", updated.ImagePath)
}

func TestCertificateBadgeUpdateReplacesImage(t *testing.T) {
	h, repo, store := newBadgeFixture(t)

	badge := &models.CertificateBadge{Title: "USDA Organic", ImagePath: "certificate_badges/old.png"}
	require.NoError(t, repo.Create(t.Context(), badge))

	req := postMultipart(t, fmt.Sprintf("/data/certificate-badges/%d", badge.ID),
		url.Values{},
		multipartFile{field: "image", filename: "new.png", content: []byte("pngdata")})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(badge.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.CertificateBadge
	decodeBody(t, rec.Body, &updated)
	require.NotEqual(t, "certificate_badges/old.png", updated.ImagePath)
	require.True(t, store.Exists(updated.ImagePath))
}

func TestCertificateBadgeDelete(t *testing.T) {
	h, repo, _ := newBadgeFixture(t)

	badge := &models.CertificateBadge{Title: "USDA Organic"}
	require.NoError(t, repo.Create(t.Context(), badge))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/data/certificate-badges/%d", badge.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(badge.ID)})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Certificate badge deleted successfully", resp["message"])
}
