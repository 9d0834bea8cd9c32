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

func newPostHandler(t *testing.T) (*PostHandler, repositories.PostRepositoryImpl, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewPostRepository(db)
	imageRepo := repositories.NewPostImageRepository(db)
	return NewPostHandler(testRender, repo, imageRepo, newTestStore(t), testValidator), repo, db
}

func TestPostCreateDerivesSlugFromTitle(t *testing.T) {
	h, _, _ := newPostHandler(t)

	req := postForm("/data/posts", url.Values{
		"title": {"Spring Sale"},
		"type":  {"news"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	decodeBody(t, rec.Body, &created)
	require.Equal(t, "spring-sale", created.Slug)
}

func TestPostCreateKeepsSuppliedSlug(t *testing.T) {
	h, _, _ := newPostHandler(t)

	req := postForm("/data/posts", url.Values{
		"title": {"Spring Sale"},
		"slug":  {"sale-2026"},
		"type":  {"news"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	decodeBody(t, rec.Body, &created)
	require.Equal(t, "sale-2026", created.Slug)
}

func TestPostCreateDuplicateSlug(t *testing.T) {
	h, _, _ := newPostHandler(t)

	first := postForm("/data/posts", url.Values{"title": {"Spring Sale"}, "type": {"news"}})
	rec := httptest.NewRecorder()
	h.Create(rec, first)
	require.Equal(t, http.StatusCreated, rec.Code)

	second := postForm("/data/posts", url.Values{"title": {"Spring Sale"}, "type": {"news"}})
	rec = httptest.NewRecorder()
	h.Create(rec, second)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The slug has already been taken.", fieldErrors["slug"])
}

func TestPostCreateRejectsEndBeforeStart(t *testing.T) {
	h, _, _ := newPostHandler(t)

	req := postForm("/data/posts", url.Values{
		"title":      {"Harvest Event"},
		"type":       {"event"},
		"start_date": {"2026-09-10"},
		"end_date":   {"2026-09-01"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The end date must be a date after or equal to start date.", fieldErrors["end_date"])
}

func TestPostUpdateAppendsImages(t *testing.T) {
	h, repo, db := newPostHandler(t)
	imageRepo := repositories.NewPostImageRepository(db)

	post := &models.Post{Title: "Spring Sale", Slug: "spring-sale", Type: models.PostTypeNews}
	require.NoError(t, repo.Create(t.Context(), post))
	_, err := imageRepo.Create(t.Context(), post.ID, "post_images/old.jpg")
	require.NoError(t, err)

	req := postMultipart(t, fmt.Sprintf("/data/posts/%d", post.ID),
		url.Values{"title": {"Spring Sale"}, "type": {"news"}},
		multipartFile{field: "images[]", filename: "new.jpg", content: []byte("jpegdata")})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(post.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.PostImage{}).Where("post_id = ?", post.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestPostDeleteRemovesImages(t *testing.T) {
	h, repo, db := newPostHandler(t)
	imageRepo := repositories.NewPostImageRepository(db)

	post := &models.Post{Title: "Spring Sale", Slug: "spring-sale", Type: models.PostTypeNews}
	require.NoError(t, repo.Create(t.Context(), post))
	_, err := imageRepo.Create(t.Context(), post.ID, "post_images/a.jpg")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/data/posts/%d", post.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(post.ID)})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Post deleted successfully", resp["message"])

	var count int64
	require.NoError(t, db.Model(&models.PostImage{}).Count(&count).Error)
	require.Zero(t, count)
}
