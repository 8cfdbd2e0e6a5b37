package webutils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorCode(rec, http.StatusBadRequest, errors.New("invalid selection"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "invalid selection"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteJsonFile(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJsonFile(rec, map[string]int{"a": 1}, "material_info")
	assert.Equal(t, "attachment; filename=\"material_info.json\"", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "{\n    \"a\": 1\n}", rec.Body.String())
}

func TestReadJsonFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("map", "material_info.json")
	require.NoError(t, err)
	fw.Write([]byte(`{"Door": {"baseColor": null}}`))
	require.NoError(t, mw.Close())

	r := httptest.NewRequest("POST", "/action/materials", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	var v map[string]map[string]*string
	require.NoError(t, ReadJsonFile(r, "map", &v))
	assert.Contains(t, v, "Door")

	assert.Error(t, ReadJsonFile(httptest.NewRequest("GET", "/", nil), "map", &v))
}
