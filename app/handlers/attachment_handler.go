package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/unrolled/render"
)

// AttachmentHandler implements the image sub-resource shared by products and
// posts: append uploaded images to a parent row, or remove a single image.
// One handler instance serves one parent type, parameterized by repository
// and storage bucket.
type AttachmentHandler struct {
	render *render.Render
	repo   repositories.AttachmentRepositoryImpl
	store  storage.FileStore
	bucket string
	parent string
}

func NewAttachmentHandler(rnd *render.Render, repo repositories.AttachmentRepositoryImpl, store storage.FileStore, bucket, parent string) *AttachmentHandler {
	return &AttachmentHandler{render: rnd, repo: repo, store: store, bucket: bucket, parent: parent}
}

// Store handles POST /data/{parents}/{id}/images.
func (h *AttachmentHandler) Store(w http.ResponseWriter, r *http.Request) {
	parentID, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", h.parent)})
		return
	}

	exists, err := h.repo.ParentExists(r.Context(), parentID)
	if err != nil {
		log.Printf("StoreAttachment: parent lookup: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if !exists {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", h.parent)})
		return
	}

	parseRequestForm(r)

	files := formFiles(r, "images")
	if len(files) == 0 {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors": map[string]string{"images": "At least one image is required."},
		})
		return
	}
	for _, file := range files {
		if msg := validateUpload(file, imageExtensions, imageExtensionList()); msg != "" {
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"errors": map[string]string{"images": msg},
			})
			return
		}
	}

	uploaded := make([]interface{}, 0, len(files))
	for _, file := range files {
		path, err := saveUpload(h.store, h.bucket, file)
		if err != nil {
			log.Printf("StoreAttachment: saving file: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to store file"})
			return
		}
		row, err := h.repo.Create(r.Context(), parentID, path)
		if err != nil {
			log.Printf("StoreAttachment: creating row: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to create image"})
			return
		}
		uploaded = append(uploaded, row)
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Images uploaded successfully",
		"images":  uploaded,
	})
}

// Destroy handles DELETE /data/{parent}_images/{id}. The parent row is left
// untouched.
func (h *AttachmentHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
		return
	}

	path, found, err := h.repo.GetPath(r.Context(), id)
	if err != nil {
		log.Printf("DestroyAttachment: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if !found {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
		return
	}

	if h.store.Exists(path) {
		if err := h.store.Delete(path); err != nil {
			log.Printf("DestroyAttachment: deleting file %s: %v", path, err)
		}
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Printf("DestroyAttachment: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete image"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Image deleted successfully"})
}
