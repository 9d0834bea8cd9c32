package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/unrolled/render"
)

const categoryBucket = "categories"

type CategoryHandler struct {
	render    *render.Render
	repo      repositories.CategoryRepositoryImpl
	store     storage.FileStore
	validator *validator.Validate
}

func NewCategoryHandler(rnd *render.Render, repo repositories.CategoryRepositoryImpl, store storage.FileStore, v *validator.Validate) *CategoryHandler {
	return &CategoryHandler{render: rnd, repo: repo, store: store, validator: v}
}

type CategoryForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Type        string `form:"type" validate:"required,oneof=natural organic na"`
	Description string `form:"description"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		categories, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListCategories: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch categories"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, categories)
		return
	}

	categories, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListCategories: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch categories"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(categories, total, opts.Limit, page, len(categories)))
}

func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if category == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := CategoryForm{
		Name:        r.PostFormValue("name"),
		Type:        r.PostFormValue("type"),
		Description: r.PostFormValue("description"),
	}

	fieldErrors := h.validateForm(r, form)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	category := models.Category{
		Name:        form.Name,
		Type:        form.Type,
		Description: form.Description,
		Slug:        helpers.GenerateSlug(form.Type + "-" + form.Name),
		Status:      models.StatusActive,
	}

	if banner := formFile(r, "banner"); banner != nil {
		path, err := saveUpload(h.store, categoryBucket, banner)
		if err != nil {
			log.Printf("CreateCategory: saving banner: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		category.BannerPath = path
	}
	if image := formFile(r, "image"); image != nil {
		path, err := saveUpload(h.store, categoryBucket, image)
		if err != nil {
			log.Printf("CreateCategory: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		category.ImagePath = path
	}

	if err := h.repo.Create(r.Context(), &category); err != nil {
		log.Printf("CreateCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create category"})
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if category == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}

	parseRequestForm(r)

	form := CategoryForm{
		Name:        r.PostFormValue("name"),
		Type:        r.PostFormValue("type"),
		Description: r.PostFormValue("description"),
	}

	fieldErrors := h.validateForm(r, form)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	category.Name = form.Name
	category.Type = form.Type
	category.Description = form.Description
	category.Slug = helpers.GenerateSlug(form.Type + "-" + form.Name)

	// A replacement file removes the previous one before the new path is saved.
	if banner := formFile(r, "banner"); banner != nil {
		if category.BannerPath != "" {
			if err := h.store.Delete(category.BannerPath); err != nil {
				log.Printf("UpdateCategory: deleting old banner %s: %v", category.BannerPath, err)
			}
		}
		path, err := saveUpload(h.store, categoryBucket, banner)
		if err != nil {
			log.Printf("UpdateCategory: saving banner: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		category.BannerPath = path
	}
	if image := formFile(r, "image"); image != nil {
		if category.ImagePath != "" {
			if err := h.store.Delete(category.ImagePath); err != nil {
				log.Printf("UpdateCategory: deleting old image %s: %v", category.ImagePath, err)
			}
		}
		path, err := saveUpload(h.store, categoryBucket, image)
		if err != nil {
			log.Printf("UpdateCategory: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		category.ImagePath = path
	}

	if err := h.repo.Update(r.Context(), category); err != nil {
		log.Printf("UpdateCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update category"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if category == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Category not found"})
		return
	}

	if err := h.store.Delete(category.BannerPath); err != nil {
		log.Printf("DeleteCategory: deleting banner %s: %v", category.BannerPath, err)
	}
	if err := h.store.Delete(category.ImagePath); err != nil {
		log.Printf("DeleteCategory: deleting image %s: %v", category.ImagePath, err)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteCategory: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete category"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func (h *CategoryHandler) validateForm(r *http.Request, form CategoryForm) map[string]string {
	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}
	if banner := formFile(r, "banner"); banner != nil {
		if msg := validateUpload(banner, imageExtensions, imageExtensionList()); msg != "" {
			fieldErrors["banner"] = msg
		}
	}
	if image := formFile(r, "image"); image != nil {
		if msg := validateUpload(image, imageExtensions, imageExtensionList()); msg != "" {
			fieldErrors["image"] = msg
		}
	}
	return fieldErrors
}
