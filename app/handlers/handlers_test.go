package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/models/migrations"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func newTestStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	return storage.NewLocalStore(t.TempDir())
}

var testRender = render.New()

var testValidator = helpers.NewValidator()

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func putJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type multipartFile struct {
	field    string
	filename string
	content  []byte
}

func postMultipart(t *testing.T, path string, values url.Values, files ...multipartFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, vals := range values {
		for _, v := range vals {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, body io.Reader, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(body).Decode(out))
}
