package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/spiceroute/backoffice/app/repositories"
)

const maxMultipartMemory = 32 << 20

func parseID(r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id64, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// parseRequestForm makes form values and uploaded files available regardless
// of whether the method-override middleware already parsed the body.
func parseRequestForm(r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		_ = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		_ = r.ParseForm()
	}
}

func isJSONRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// listParams reads the shared listing contract: show (page size or "all"),
// orderBy, order, page.
func listParams(r *http.Request) (opts repositories.ListOptions, page int, all bool) {
	query := r.URL.Query()

	show := query.Get("show")
	if show == "all" {
		return repositories.ListOptions{}, 0, true
	}

	perPage, err := strconv.Atoi(show)
	if err != nil || perPage < 1 {
		perPage = 10
	}

	page, err = strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	opts = repositories.ListOptions{
		Limit:   perPage,
		Offset:  (page - 1) * perPage,
		OrderBy: query.Get("orderBy"),
		Order:   query.Get("order"),
	}
	return opts, page, false
}

func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File[key]; len(headers) > 0 {
		return headers[0]
	}
	return nil
}

// formFiles accepts both the bare key and the PHP-style "key[]" the admin UI
// sends for multi-file inputs.
func formFiles(r *http.Request, key string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if headers := r.MultipartForm.File[key]; len(headers) > 0 {
		return headers
	}
	return r.MultipartForm.File[key+"[]"]
}

func hasFormValue(r *http.Request, key string) bool {
	if r.Form != nil {
		if _, ok := r.Form[key]; ok {
			return true
		}
	}
	if r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value[key]; ok {
			return true
		}
	}
	return false
}
