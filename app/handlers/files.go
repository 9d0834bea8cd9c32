package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/spiceroute/backoffice/app/storage"
)

// MaxUploadSize matches the original back-office rule of 2048 kilobytes per
// uploaded file.
const MaxUploadSize = 2048 * 1024

var imageExtensions = map[string]bool{
	".jpeg": true, ".png": true, ".jpg": true, ".gif": true, ".svg": true,
}

var documentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
}

func imageExtensionList() string    { return "jpeg, png, jpg, gif, svg" }
func documentExtensionList() string { return "pdf, doc, docx" }

// validateUpload returns the validation message for a rejected file, or ""
// when the file passes the type and size rules.
func validateUpload(header *multipart.FileHeader, allowed map[string]bool, allowedList string) string {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowed[ext] {
		return fmt.Sprintf("The file must be of type: %s.", allowedList)
	}
	if header.Size > MaxUploadSize {
		return "The file may not be greater than 2048 kilobytes."
	}
	return ""
}

func saveUpload(store storage.FileStore, bucket string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return store.Save(bucket, header.Filename, file)
}
