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
)

func newEnquiryHandler(t *testing.T) (*EnquiryHandler, repositories.EnquiryRepositoryImpl) {
	t.Helper()
	db := newTestDB(t)
	repo := repositories.NewEnquiryRepository(db)
	return NewEnquiryHandler(testRender, repo, testValidator), repo
}

func TestEnquiryCreateDefaultsQuantity(t *testing.T) {
	h, _ := newEnquiryHandler(t)

	req := postForm("/api/enquiries", url.Values{
		"name":    {"Ravi Kumar"},
		"product": {"Turmeric Powder"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Enquiry
	decodeBody(t, rec.Body, &created)
	require.Equal(t, 1, created.Quantity)
	require.Equal(t, models.EnquiryStatusPending, created.Status)
}

func TestEnquiryCreateAcceptsStatus(t *testing.T) {
	h, _ := newEnquiryHandler(t)

	req := postForm("/api/enquiries", url.Values{
		"name":   {"Ravi Kumar"},
		"status": {models.EnquiryStatusProcessed},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Enquiry
	decodeBody(t, rec.Body, &created)
	require.Equal(t, models.EnquiryStatusProcessed, created.Status)
}

func TestEnquiryCreateRejectsUnknownStatus(t *testing.T) {
	h, _ := newEnquiryHandler(t)

	req := postForm("/api/enquiries", url.Values{
		"name":   {"Ravi Kumar"},
		"status": {"spam"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The selected status is invalid.", fieldErrors["status"])
}

func TestEnquiryCreateValidation(t *testing.T) {
	h, _ := newEnquiryHandler(t)

	req := postForm("/api/enquiries", url.Values{
		"email":    {"not-an-email"},
		"quantity": {"0"},
	})
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The name field is required.", fieldErrors["name"])
	require.Equal(t, "The email must be a valid email address.", fieldErrors["email"])
	require.Equal(t, "The quantity must be at least 1.", fieldErrors["quantity"])
}

func TestEnquiryUpdateStatus(t *testing.T) {
	h, repo := newEnquiryHandler(t)

	enquiry := &models.Enquiry{Name: "Ravi Kumar", Quantity: 1, Status: models.EnquiryStatusPending}
	require.NoError(t, repo.Create(t.Context(), enquiry))

	req := putJSON(t, fmt.Sprintf("/data/enquiries/%d", enquiry.ID), map[string]interface{}{
		"name":   "Ravi Kumar",
		"status": models.EnquiryStatusProcessed,
	})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(enquiry.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := repo.GetByID(t.Context(), enquiry.ID)
	require.NoError(t, err)
	require.Equal(t, models.EnquiryStatusProcessed, updated.Status)
}

func TestEnquiryUpdateRequiresName(t *testing.T) {
	h, repo := newEnquiryHandler(t)

	enquiry := &models.Enquiry{Name: "Ravi Kumar", Quantity: 1, Status: models.EnquiryStatusPending}
	require.NoError(t, repo.Create(t.Context(), enquiry))

	req := putJSON(t, fmt.Sprintf("/data/enquiries/%d", enquiry.ID), map[string]interface{}{
		"status": models.EnquiryStatusProcessed,
	})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(enquiry.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fieldErrors map[string]string
	decodeBody(t, rec.Body, &fieldErrors)
	require.Equal(t, "The name field is required.", fieldErrors["name"])

	unchanged, err := repo.GetByID(t.Context(), enquiry.ID)
	require.NoError(t, err)
	require.Equal(t, models.EnquiryStatusPending, unchanged.Status)
}

func TestEnquiryUpdateInvalidStatus(t *testing.T) {
	h, repo := newEnquiryHandler(t)

	enquiry := &models.Enquiry{Name: "Ravi Kumar", Quantity: 1, Status: models.EnquiryStatusPending}
	require.NoError(t, repo.Create(t.Context(), enquiry))

	req := putJSON(t, fmt.Sprintf("/data/enquiries/%d", enquiry.ID), map[string]interface{}{
		"name":   "Ravi Kumar",
		"status": "spam",
	})
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(enquiry.ID)})
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEnquiryDelete(t *testing.T) {
	h, repo := newEnquiryHandler(t)

	enquiry := &models.Enquiry{Name: "Ravi Kumar", Quantity: 2, Status: models.EnquiryStatusPending}
	require.NoError(t, repo.Create(t.Context(), enquiry))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/data/enquiries/%d", enquiry.ID), nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(enquiry.ID)})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec.Body, &resp)
	require.Equal(t, "Enquiry deleted successfully", resp["message"])

	gone, err := repo.GetByID(t.Context(), enquiry.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}
