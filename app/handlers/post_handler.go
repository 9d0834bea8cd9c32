package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/unrolled/render"
)

const postImageBucket = "post_images"

type PostHandler struct {
	render    *render.Render
	repo      repositories.PostRepositoryImpl
	imageRepo repositories.AttachmentRepositoryImpl
	store     storage.FileStore
	validator *validator.Validate
}

func NewPostHandler(rnd *render.Render, repo repositories.PostRepositoryImpl, imageRepo repositories.AttachmentRepositoryImpl, store storage.FileStore, v *validator.Validate) *PostHandler {
	return &PostHandler{render: rnd, repo: repo, imageRepo: imageRepo, store: store, validator: v}
}

type PostForm struct {
	Title       string `form:"title" validate:"required,max=255"`
	Slug        string `form:"slug"`
	Type        string `form:"type" validate:"required,oneof=news event blog"`
	Description string `form:"description"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		posts, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListPosts: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch posts"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, posts)
		return
	}

	posts, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListPosts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch posts"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(posts, total, opts.Limit, page, len(posts)))
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}

	post, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowPost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if post == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := h.readForm(r)

	fieldErrors, startDate, endDate := h.validateForm(r, form, 0)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	slug := form.Slug
	if slug == "" {
		slug = helpers.GenerateSlug(form.Title)
	}

	post := models.Post{
		Title:       form.Title,
		Slug:        slug,
		Type:        form.Type,
		Description: form.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	if err := h.repo.Create(r.Context(), &post); err != nil {
		log.Printf("CreatePost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create post"})
		return
	}

	if !h.appendImages(w, r, post.ID) {
		return
	}

	created, err := h.repo.GetByID(r.Context(), post.ID)
	if err != nil || created == nil {
		log.Printf("CreatePost: reload: %v", err)
		_ = h.render.JSON(w, http.StatusCreated, post)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, created)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}

	post, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdatePost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if post == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}

	parseRequestForm(r)

	form := h.readForm(r)

	fieldErrors, startDate, endDate := h.validateForm(r, form, id)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	slug := form.Slug
	if slug == "" {
		slug = helpers.GenerateSlug(form.Title)
	}

	post.Title = form.Title
	post.Slug = slug
	post.Type = form.Type
	post.Description = form.Description
	post.StartDate = startDate
	post.EndDate = endDate

	if err := h.repo.Update(r.Context(), post); err != nil {
		log.Printf("UpdatePost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update post"})
		return
	}

	// Update appends any newly uploaded images; existing ones are only
	// removed through the image sub-resource.
	if !h.appendImages(w, r, post.ID) {
		return
	}

	updated, err := h.repo.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		log.Printf("UpdatePost: reload: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, updated)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}

	post, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeletePost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if post == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
		return
	}

	for _, image := range post.Images {
		if err := h.store.Delete(image.ImagePath); err != nil {
			log.Printf("DeletePost: deleting file %s: %v", image.ImagePath, err)
		}
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeletePost: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete post"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (h *PostHandler) readForm(r *http.Request) PostForm {
	return PostForm{
		Title:       r.PostFormValue("title"),
		Slug:        r.PostFormValue("slug"),
		Type:        r.PostFormValue("type"),
		Description: r.PostFormValue("description"),
		StartDate:   r.PostFormValue("start_date"),
		EndDate:     r.PostFormValue("end_date"),
	}
}

func (h *PostHandler) validateForm(r *http.Request, form PostForm, excludeID uint) (map[string]string, *time.Time, *time.Time) {
	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}

	startDate, err := parseDate(form.StartDate)
	if err != nil {
		fieldErrors["start_date"] = "The start date is not a valid date."
	}
	endDate, err := parseDate(form.EndDate)
	if err != nil {
		fieldErrors["end_date"] = "The end date is not a valid date."
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		fieldErrors["end_date"] = "The end date must be a date after or equal to start date."
	}

	slug := form.Slug
	if slug == "" && form.Title != "" {
		slug = helpers.GenerateSlug(form.Title)
	}
	if slug != "" {
		taken, err := h.repo.SlugExists(r.Context(), slug, excludeID)
		if err != nil {
			log.Printf("validatePostForm: slug lookup: %v", err)
		} else if taken {
			fieldErrors["slug"] = "The slug has already been taken."
		}
	}

	for _, image := range formFiles(r, "images") {
		if msg := validateUpload(image, imageExtensions, imageExtensionList()); msg != "" {
			fieldErrors["images"] = msg
			break
		}
	}

	return fieldErrors, startDate, endDate
}

func (h *PostHandler) appendImages(w http.ResponseWriter, r *http.Request, postID uint) bool {
	for _, image := range formFiles(r, "images") {
		path, err := saveUpload(h.store, postImageBucket, image)
		if err != nil {
			log.Printf("PostImages: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return false
		}
		if _, err := h.imageRepo.Create(r.Context(), postID, path); err != nil {
			log.Printf("PostImages: creating image row: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create post image"})
			return false
		}
	}
	return true
}

// parseDate accepts the date-only form the admin UI sends, plus RFC 3339 for
// API clients. Empty input is a nil date, not an error.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errInvalidDate
}

var errInvalidDate = errors.New("invalid date")
