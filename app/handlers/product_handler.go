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

const productImageBucket = "product_images"

type ProductHandler struct {
	render       *render.Render
	repo         repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	imageRepo    repositories.AttachmentRepositoryImpl
	store        storage.FileStore
	validator    *validator.Validate
}

func NewProductHandler(rnd *render.Render, repo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, imageRepo repositories.AttachmentRepositoryImpl, store storage.FileStore, v *validator.Validate) *ProductHandler {
	return &ProductHandler{render: rnd, repo: repo, categoryRepo: categoryRepo, imageRepo: imageRepo, store: store, validator: v}
}

type ProductForm struct {
	Name                  string `form:"name" validate:"required,max=255"`
	CategoryID            string `form:"category_id" validate:"required"`
	Variant               string `form:"variant" validate:"omitempty,oneof=whole powder flakes slice na"`
	BotanicalName         string `form:"botanical_name"`
	TradeName             string `form:"trade_name"`
	OtherNames            string `form:"other_names"`
	GeneralInfo           string `form:"general_info"`
	OriginSourcing        string `form:"origin_sourcing"`
	QualityCertifications string `form:"quality_certifications"`
	Characteristics       string `form:"characteristics"`
	PackagingShelfLife    string `form:"packaging_shelf_life"`
	MOQ                   string `form:"moq"`
	BadgeIDs              string `form:"badge_ids"`
	Status                string `form:"status" validate:"omitempty,oneof=pending active inactive"`
}

// productUpdateInput uses pointers so only supplied fields are validated and
// written, the "sometimes" update contract.
type productUpdateInput struct {
	Name                  *string `json:"name"`
	CategoryID            *uint   `json:"category_id"`
	Variant               *string `json:"variant"`
	BotanicalName         *string `json:"botanical_name"`
	TradeName             *string `json:"trade_name"`
	OtherNames            *string `json:"other_names"`
	GeneralInfo           *string `json:"general_info"`
	OriginSourcing        *string `json:"origin_sourcing"`
	QualityCertifications *string `json:"quality_certifications"`
	Characteristics       *string `json:"characteristics"`
	PackagingShelfLife    *string `json:"packaging_shelf_life"`
	MOQ                   *string `json:"moq"`
	BadgeIDs              *string `json:"badge_ids"`
	Status                *string `json:"status"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, page, all := listParams(r)

	if all {
		products, err := h.repo.GetAll(r.Context())
		if err != nil {
			log.Printf("ListProducts: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch products"})
			return
		}
		_ = h.render.JSON(w, http.StatusOK, products)
		return
	}

	products, total, err := h.repo.GetPaginated(r.Context(), opts)
	if err != nil {
		log.Printf("ListProducts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch products"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, helpers.NewPage(products, total, opts.Limit, page, len(products)))
}

func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ShowProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	parseRequestForm(r)

	form := ProductForm{
		Name:                  r.PostFormValue("name"),
		CategoryID:            r.PostFormValue("category_id"),
		Variant:               r.PostFormValue("variant"),
		BotanicalName:         r.PostFormValue("botanical_name"),
		TradeName:             r.PostFormValue("trade_name"),
		OtherNames:            r.PostFormValue("other_names"),
		GeneralInfo:           r.PostFormValue("general_info"),
		OriginSourcing:        r.PostFormValue("origin_sourcing"),
		QualityCertifications: r.PostFormValue("quality_certifications"),
		Characteristics:       r.PostFormValue("characteristics"),
		PackagingShelfLife:    r.PostFormValue("packaging_shelf_life"),
		MOQ:                   r.PostFormValue("moq"),
		BadgeIDs:              r.PostFormValue("badge_ids"),
		Status:                r.PostFormValue("status"),
	}

	fieldErrors := map[string]string{}
	if err := h.validator.Struct(&form); err != nil {
		fieldErrors = helpers.FormatValidationErrors(err.(validator.ValidationErrors))
	}

	var categoryID uint
	if form.CategoryID != "" {
		id64, err := strconv.ParseUint(form.CategoryID, 10, 32)
		if err != nil {
			fieldErrors["category_id"] = "The selected category id is invalid."
		} else {
			category, lookupErr := h.categoryRepo.GetByID(r.Context(), uint(id64))
			if lookupErr != nil {
				log.Printf("CreateProduct: category lookup: %v", lookupErr)
				_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
				return
			}
			if category == nil {
				fieldErrors["category_id"] = "The selected category id is invalid."
			}
			categoryID = uint(id64)
		}
	}

	images := formFiles(r, "images")
	for _, image := range images {
		if msg := validateUpload(image, imageExtensions, imageExtensionList()); msg != "" {
			fieldErrors["images"] = msg
			break
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	variant := form.Variant
	if variant == "" {
		variant = models.VariantNA
	}
	status := form.Status
	if status == "" {
		status = models.StatusActive
	}

	product := models.Product{
		Name:                  form.Name,
		CategoryID:            categoryID,
		Variant:               variant,
		BotanicalName:         form.BotanicalName,
		TradeName:             form.TradeName,
		OtherNames:            form.OtherNames,
		GeneralInfo:           form.GeneralInfo,
		OriginSourcing:        form.OriginSourcing,
		QualityCertifications: form.QualityCertifications,
		Characteristics:       form.Characteristics,
		PackagingShelfLife:    form.PackagingShelfLife,
		MOQ:                   form.MOQ,
		BadgeIDs:              form.BadgeIDs,
		Status:                status,
	}

	if err := h.repo.Create(r.Context(), &product); err != nil {
		log.Printf("CreateProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create product"})
		return
	}

	// Image files and rows are written one by one in upload order; there is
	// no transaction around the parent and its children.
	for _, image := range images {
		path, err := saveUpload(h.store, productImageBucket, image)
		if err != nil {
			log.Printf("CreateProduct: saving image: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		if _, err := h.imageRepo.Create(r.Context(), product.ID, path); err != nil {
			log.Printf("CreateProduct: creating image row: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create product image"})
			return
		}
	}

	created, err := h.repo.GetByID(r.Context(), product.ID)
	if err != nil || created == nil {
		log.Printf("CreateProduct: reload: %v", err)
		_ = h.render.JSON(w, http.StatusCreated, product)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("UpdateProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	input, err := h.bindUpdateInput(r)
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	fieldErrors := map[string]string{}
	updates := map[string]interface{}{}

	if input.Name != nil {
		if len(*input.Name) > 255 {
			fieldErrors["name"] = "The name may not be greater than 255."
		} else {
			updates["name"] = *input.Name
		}
	}
	if input.CategoryID != nil {
		category, lookupErr := h.categoryRepo.GetByID(r.Context(), *input.CategoryID)
		if lookupErr != nil {
			log.Printf("UpdateProduct: category lookup: %v", lookupErr)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
			return
		}
		if category == nil {
			fieldErrors["category_id"] = "The selected category id is invalid."
		} else {
			updates["category_id"] = *input.CategoryID
		}
	}
	if input.Variant != nil {
		switch *input.Variant {
		case models.VariantWhole, models.VariantPowder, models.VariantFlakes, models.VariantSlice, models.VariantNA:
			updates["variant"] = *input.Variant
		default:
			fieldErrors["variant"] = "The selected variant is invalid."
		}
	}
	if input.Status != nil {
		switch *input.Status {
		case models.StatusPending, models.StatusActive, models.StatusInactive:
			updates["status"] = *input.Status
		default:
			fieldErrors["status"] = "The selected status is invalid."
		}
	}

	text := map[string]*string{
		"botanical_name":         input.BotanicalName,
		"trade_name":             input.TradeName,
		"other_names":            input.OtherNames,
		"general_info":           input.GeneralInfo,
		"origin_sourcing":        input.OriginSourcing,
		"quality_certifications": input.QualityCertifications,
		"characteristics":        input.Characteristics,
		"packaging_shelf_life":   input.PackagingShelfLife,
		"moq":                    input.MOQ,
		"badge_ids":              input.BadgeIDs,
	}
	for column, value := range text {
		if value != nil {
			updates[column] = *value
		}
	}

	if len(fieldErrors) > 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, fieldErrors)
		return
	}

	if len(updates) > 0 {
		if err := h.repo.UpdateFields(r.Context(), id, updates); err != nil {
			log.Printf("UpdateProduct: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to update product"})
			return
		}
	}

	updated, err := h.repo.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		log.Printf("UpdateProduct: reload: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("DeleteProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if product == nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	for _, image := range product.Images {
		if err := h.store.Delete(image.ImagePath); err != nil {
			log.Printf("DeleteProduct: deleting file %s: %v", image.ImagePath, err)
		}
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DeleteProduct: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete product"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// PublicList serves the unauthenticated product feed used by the landing
// pages.
func (h *ProductHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAll(r.Context())
	if err != nil {
		log.Printf("PublicListProducts: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to fetch products"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) bindUpdateInput(r *http.Request) (productUpdateInput, error) {
	var input productUpdateInput

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
	input.Variant = strField("variant")
	input.Status = strField("status")
	input.BotanicalName = strField("botanical_name")
	input.TradeName = strField("trade_name")
	input.OtherNames = strField("other_names")
	input.GeneralInfo = strField("general_info")
	input.OriginSourcing = strField("origin_sourcing")
	input.QualityCertifications = strField("quality_certifications")
	input.Characteristics = strField("characteristics")
	input.PackagingShelfLife = strField("packaging_shelf_life")
	input.MOQ = strField("moq")
	input.BadgeIDs = strField("badge_ids")

	if hasFormValue(r, "category_id") {
		id64, err := strconv.ParseUint(r.PostFormValue("category_id"), 10, 32)
		if err != nil {
			return input, err
		}
		categoryID := uint(id64)
		input.CategoryID = &categoryID
	}

	return input, nil
}
