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

const certificateBadgeBucket = "certificate_badges"

type CertificateBadgeHandler struct {
	render    *render.Render
	repo      repositories.CertificateBadgeRepositoryImpl
	store     storage.FileStore
	validator *validator.Validate
}

func NewCertificateBadgeHandler(rnd *render.Render, repo repositories.CertificateBadgeRepositoryImpl, store storage.FileStore, v *validator.Validate) *CertificateBadgeHandler {
	return &CertificateBadgeHandler{render: rnd, repo: repo, store: store, validator: v}
}

type CertificateBadgeForm struct {
	Title       string `form:"title" validate:"max=255"`
	Description string `form:"description"`
}

func (h *CertificateBadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		badges, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListCertificateBadges: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch certificate badges"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, badges)
		return
	}

	badges, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListCertificateBadges: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch certificate badges"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(badges, total, opts.Limit, page, len(badges)))
}

func (h *CertificateBadgeHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}

	badge, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if badge == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, badge)
}

func (h *CertificateBadgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := CertificateBadgeForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}

	fieldErrors := h.validateForm(r, form)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	badge := models.CertificateBadge{
		Title:       form.Title,
		Description: form.Description,
	}

	if image := formFile(r, "image"); image != nil {
		path, err := saveUpload(h.store, certificateBadgeBucket, image)
		if err != nil {
			log.Printf("CreateCertificateBadge: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		badge.ImagePath = path
	}

	if err := h.repo.Create(r.Context(), &badge); err != nil {
		log.Printf("CreateCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create certificate badge"})
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, badge)
}

func (h *CertificateBadgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}

	badge, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if badge == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}

	parseRequestForm(r)

	form := CertificateBadgeForm{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}

	fieldErrors := h.validateForm(r, form)
	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	if hasFormValue(r, "title") {
		badge.Title = form.Title
	}
	if hasFormValue(r, "description") {
		badge.Description = form.Description
	}

	// The image is only replaced when a new file is supplied; updates without
	// a file leave the existing one alone.
	if image := formFile(r, "image"); image != nil {
		if badge.ImagePath != "" {
			if err := h.store.Delete(badge.ImagePath); err != nil {
				log.Printf("UpdateCertificateBadge: deleting old image %s: %v", badge.ImagePath, err)
			}
		}
		path, err := saveUpload(h.store, certificateBadgeBucket, image)
		if err != nil {
			log.Printf("UpdateCertificateBadge: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		badge.ImagePath = path
	}

	if err := h.repo.Update(r.Context(), badge); err != nil {
		log.Printf("UpdateCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update certificate badge"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, badge)
}

func (h *CertificateBadgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}

	badge, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if badge == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Certificate badge not found"})
		return
	}

	if err := h.store.Delete(badge.ImagePath); err != nil {
		log.Printf("DeleteCertificateBadge: deleting image %s: %v", badge.ImagePath, err)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteCertificateBadge: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete certificate badge"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Certificate badge deleted successfully"})
}

func (h *CertificateBadgeHandler) validateForm(r *http.Request, form CertificateBadgeForm) map[string]string {
	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}
	if image := formFile(r, "image"); image != nil {
		if msg := validateUpload(image, imageExtensions, imageExtensionList()); msg != "" {
			fieldErrors["image"] = msg
		}
	}
	return fieldErrors
}
