package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/unrolled/render"
)

const applicantBucket = "applicants"

type ApplicantHandler struct {
	render    *render.Render
	repo      repositories.ApplicantRepositoryImpl
	store     storage.FileStore
	validator *validator.Validate
}

func NewApplicantHandler(rnd *render.Render, repo repositories.ApplicantRepositoryImpl, store storage.FileStore, v *validator.Validate) *ApplicantHandler {
	return &ApplicantHandler{render: rnd, repo: repo, store: store, validator: v}
}

type ApplicantForm struct {
	Name       string `form:"name" validate:"required,max=255"`
	Email      string `form:"email" validate:"omitempty,email"`
	Phone      string `form:"phone" validate:"max=20"`
	AppliedFor string `form:"applied_for" validate:"max=255"`
	Experience string `form:"experience"`
	Branch     string `form:"branch" validate:"max=255"`
}

type applicantUpdateInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	AppliedFor *string `json:"applied_for"`
	Experience *int    `json:"experience"`
	Branch     *string `json:"branch"`
	Status     *string `json:"status"`
}

func (h *ApplicantHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		applicants, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListApplicants: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch applicants"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, applicants)
		return
	}

	applicants, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListApplicants: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch applicants"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(applicants, total, opts.Limit, page, len(applicants)))
}

func (h *ApplicantHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}

	applicant, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if applicant == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, applicant)
}

func (h *ApplicantHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := ApplicantForm{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		AppliedFor: r.PostFormValue("applied_for"),
		Experience: r.PostFormValue("experience"),
		Branch:     r.PostFormValue("branch"),
	}

	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}

	experience := 0
	if form.Experience != "" {
		parsed, err := strconv.Atoi(form.Experience)
		if err != nil || parsed < 0 {
			fieldErrors["experience"] = "The experience must be at least 0."
		} else {
			experience = parsed
		}
	}

	if form.Email != "" && fieldErrors["email"] == "" {
		taken, err := h.repo.EmailExists(r.Context(), form.Email, 0)
		if err != nil {
			log.Printf("CreateApplicant: email lookup: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
			return
		}
		if taken {
			fieldErrors["email"] = "The email has already been taken."
		}
	}

	resume := formFile(r, "file")
	if resume != nil {
		if msg := validateUpload(resume, documentExtensions, documentExtensionList()); msg != "" {
			fieldErrors["file"] = msg
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	applicant := models.Applicant{
		Name:       form.Name,
		Phone:      form.Phone,
		AppliedFor: form.AppliedFor,
		Experience: experience,
		Branch:     form.Branch,
		Status:     models.ApplicantStatusPending,
	}
	if form.Email != "" {
		applicant.Email = &form.Email
	}

	if resume != nil {
		path, err := saveUpload(h.store, applicantBucket, resume)
		if err != nil {
			log.Printf("CreateApplicant: saving resume: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		applicant.FilePath = path
	}

	if err := h.repo.Create(r.Context(), &applicant); err != nil {
		log.Printf("CreateApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create applicant"})
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, applicant)
}

func (h *ApplicantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}

	applicant, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if applicant == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}

	input, err := h.bindUpdateInput(r)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	fieldErrors := map[string]string{}

	if input.Email != nil && *input.Email != "" {
		taken, lookupErr := h.repo.EmailExists(r.Context(), *input.Email, id)
		if lookupErr != nil {
			log.Printf("UpdateApplicant: email lookup: %v", lookupErr)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
			return
		}
		if taken {
			fieldErrors["email"] = "The email has already been taken."
		}
	}
	if input.Experience != nil && *input.Experience < 0 {
		fieldErrors["experience"] = "The experience must be at least 0."
	}
	if input.Status != nil {
		// Any transition between declared statuses is allowed; there is no
		// workflow guard.
		switch *input.Status {
		case models.ApplicantStatusPending, models.ApplicantStatusApproved,
			models.ApplicantStatusOnHold, models.ApplicantStatusRejected:
		default:
			fieldErrors["status"] = "The selected status is invalid."
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	if input.Name != nil {
		applicant.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			applicant.Email = nil
		} else {
			applicant.Email = input.Email
		}
	}
	if input.Phone != nil {
		applicant.Phone = *input.Phone
	}
	if input.AppliedFor != nil {
		applicant.AppliedFor = *input.AppliedFor
	}
	if input.Experience != nil {
		applicant.Experience = *input.Experience
	}
	if input.Branch != nil {
		applicant.Branch = *input.Branch
	}
	if input.Status != nil {
		applicant.Status = *input.Status
	}

	if err := h.repo.Update(r.Context(), applicant); err != nil {
		log.Printf("UpdateApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update applicant"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, applicant)
}

func (h *ApplicantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}

	applicant, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if applicant == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Applicant not found"})
		return
	}

	if err := h.store.Delete(applicant.FilePath); err != nil {
		log.Printf("DeleteApplicant: deleting resume %s: %v", applicant.FilePath, err)
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteApplicant: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete applicant"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Applicant deleted successfully"})
}

func (h *ApplicantHandler) bindUpdateInput(r *http.Request) (applicantUpdateInput, error) {
	var input applicantUpdateInput

	if isJSONRequest(r) {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	parseRequestForm(r)

	strField := func(key string) *string {
		if !hasFormValue(r, key) {
			return nil
		}
		v := r.PostFormValue(key)
		return &v
	}

	input.Name = strField("name")
	input.Email = strField("email")
	input.Phone = strField("phone")
	input.AppliedFor = strField("applied_for")
	input.Branch = strField("branch")
	input.Status = strField("status")

	if hasFormValue(r, "experience") {
		experience, err := strconv.Atoi(r.PostFormValue("experience"))
		if err != nil {
			return input, err
		}
		input.Experience = &experience
	}

	return input, nil
}
