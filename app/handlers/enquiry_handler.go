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
	"github.com/unrolled/render"
)

type EnquiryHandler struct {
	render    *render.Render
	repo      repositories.EnquiryRepositoryImpl
	validator *validator.Validate
}

func NewEnquiryHandler(rnd *render.Render, repo repositories.EnquiryRepositoryImpl, v *validator.Validate) *EnquiryHandler {
	return &EnquiryHandler{render: rnd, repo: repo, validator: v}
}

type EnquiryForm struct {
	Name       string `form:"name" validate:"required,max=255"`
	Email      string `form:"email" validate:"omitempty,email"`
	Phone      string `form:"phone" validate:"max=20"`
	Message    string `form:"message"`
	Website    string `form:"website" validate:"max=255"`
	Product    string `form:"product" validate:"max=255"`
	Quantity   string `form:"quantity"`
	City       string `form:"city" validate:"max=255"`
	Region     string `form:"region" validate:"max=255"`
	Pin        string `form:"pin" validate:"max=10"`
	BranchType string `form:"branch_type" validate:"max=255"`
	Status     string `form:"status" validate:"omitempty,oneof=pending processed cancelled"`
}

type enquiryUpdateInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Message    *string `json:"message"`
	Website    *string `json:"website"`
	Product    *string `json:"product"`
	Quantity   *int    `json:"quantity"`
	City       *string `json:"city"`
	Region     *string `json:"region"`
	Pin        *string `json:"pin"`
	BranchType *string `json:"branch_type"`
	Status     *string `json:"status"`
}

func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		enquiries, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListEnquiries: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch enquiries"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, enquiries)
		return
	}

	enquiries, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListEnquiries: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch enquiries"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(enquiries, total, opts.Limit, page, len(enquiries)))
}

func (h *EnquiryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}

	enquiry, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if enquiry == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, enquiry)
}

func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := EnquiryForm{
		Name:       r.PostFormValue("name"),
		Email:      r.PostFormValue("email"),
		Phone:      r.PostFormValue("phone"),
		Message:    r.PostFormValue("message"),
		Website:    r.PostFormValue("website"),
		Product:    r.PostFormValue("product"),
		Quantity:   r.PostFormValue("quantity"),
		City:       r.PostFormValue("city"),
		Region:     r.PostFormValue("region"),
		Pin:        r.PostFormValue("pin"),
		BranchType: r.PostFormValue("branch_type"),
		Status:     r.PostFormValue("status"),
	}

	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}

	quantity := 1
	if form.Quantity != "" {
		parsed, err := strconv.Atoi(form.Quantity)
		if err != nil || parsed < 1 {
			fieldErrors["quantity"] = "The quantity must be at least 1."
		} else {
			quantity = parsed
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	status := form.Status
	if status == "" {
		status = models.EnquiryStatusPending
	}

	enquiry := models.Enquiry{
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		Message:    form.Message,
		Website:    form.Website,
		Product:    form.Product,
		Quantity:   quantity,
		City:       form.City,
		Region:     form.Region,
		Pin:        form.Pin,
		BranchType: form.BranchType,
		Status:     status,
	}

	if err := h.repo.Create(r.Context(), &enquiry); err != nil {
		log.Printf("CreateEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create enquiry"})
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, enquiry)
}

func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}

	enquiry, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if enquiry == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}

	input, err := h.bindUpdateInput(r)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	fieldErrors := map[string]string{}
	if input.Name == nil || *input.Name == "" {
		fieldErrors["name"] = "The name field is required."
	}
	if input.Email != nil && *input.Email != "" {
		if h.validator.Var(*input.Email, "email") != nil {
			fieldErrors["email"] = "The email must be a valid email address."
		}
	}
	if input.Quantity != nil && *input.Quantity < 1 {
		fieldErrors["quantity"] = "The quantity must be at least 1."
	}
	if input.Status != nil {
		switch *input.Status {
		case models.EnquiryStatusPending, models.EnquiryStatusProcessed, models.EnquiryStatusCancelled:
		default:
			fieldErrors["status"] = "The selected status is invalid."
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	if input.Name != nil {
		enquiry.Name = *input.Name
	}
	if input.Email != nil {
		enquiry.Email = *input.Email
	}
	if input.Phone != nil {
		enquiry.Phone = *input.Phone
	}
	if input.Message != nil {
		enquiry.Message = *input.Message
	}
	if input.Website != nil {
		enquiry.Website = *input.Website
	}
	if input.Product != nil {
		enquiry.Product = *input.Product
	}
	if input.Quantity != nil {
		enquiry.Quantity = *input.Quantity
	}
	if input.City != nil {
		enquiry.City = *input.City
	}
	if input.Region != nil {
		enquiry.Region = *input.Region
	}
	if input.Pin != nil {
		enquiry.Pin = *input.Pin
	}
	if input.BranchType != nil {
		enquiry.BranchType = *input.BranchType
	}
	if input.Status != nil {
		enquiry.Status = *input.Status
	}

	if err := h.repo.Update(r.Context(), enquiry); err != nil {
		log.Printf("UpdateEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update enquiry"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, enquiry)
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}

	enquiry, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if enquiry == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Enquiry not found"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteEnquiry: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete enquiry"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Enquiry deleted successfully"})
}

func (h *EnquiryHandler) bindUpdateInput(r *http.Request) (enquiryUpdateInput, error) {
	var input enquiryUpdateInput

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
	input.Message = strField("message")
	input.Website = strField("website")
	input.Product = strField("product")
	input.City = strField("city")
	input.Region = strField("region")
	input.Pin = strField("pin")
	input.BranchType = strField("branch_type")
	input.Status = strField("status")

	if hasFormValue(r, "quantity") {
		parsed, err := strconv.Atoi(r.PostFormValue("quantity"))
		if err != nil {
			parsed = 0
		}
		input.Quantity = &parsed
	}

	return input, nil
}
