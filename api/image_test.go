package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"stockpix/gallery-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listResponse struct {
	Total  int64        `json:"total"`
	Page   int          `json:"page"`
	Images []model.File `json:"images"`
}

func seedFile(t *testing.T, a *API, f model.File) *model.File {
	t.Helper()

	if f.ThumbKey == "" {
		f.ThumbKey = f.FileKey
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = time.Now().Unix()
		f.UpdatedAt = f.CreatedAt
	}

	require.NoError(t, a.DB.Create(&f).Error)
	return &f
}

func TestImageListFilters(t *testing.T) {
	a := newTestAPI(t)

	seedFile(t, a, model.File{FileKey: "p1", Kind: model.KindPNG, Title: "Sunset", Category: "Nature", Keywords: model.StringSlice{"sky"}})
	seedFile(t, a, model.File{FileKey: "v1", Kind: model.KindVector, Title: "Logo", Category: "Logos"})
	seedFile(t, a, model.File{FileKey: "i1", Kind: model.KindImage, Title: "Dog", Category: "Animals"})

	w := doRequest(t, a, http.MethodGet, "/api/images", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)
	assert.Equal(t, int64(3), got.Total)
	assert.Len(t, got.Images, 3)

	// Kind filter never leaks other kinds
	w = doRequest(t, a, http.MethodGet, "/api/images?fileType=png", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 1)
	assert.Equal(t, model.KindPNG, got.Images[0].Kind)

	// Search matches title case-insensitively
	w = doRequest(t, a, http.MethodGet, "/api/images?query=SUNSET", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "Sunset", got.Images[0].Title)

	// Search matches keywords too
	w = doRequest(t, a, http.MethodGet, "/api/images?query=sky", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "p1", got.Images[0].FileKey)

	w = doRequest(t, a, http.MethodGet, "/api/images?fileType=bmp", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/images?limit=1000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/images?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageListPopularSort(t *testing.T) {
	a := newTestAPI(t)

	seedFile(t, a, model.File{FileKey: "a", Kind: model.KindPNG, Downloads: 2})
	seedFile(t, a, model.File{FileKey: "b", Kind: model.KindPNG, Downloads: 10})
	seedFile(t, a, model.File{FileKey: "c", Kind: model.KindPNG, Downloads: 5})

	w := doRequest(t, a, http.MethodGet, "/api/images?sort=popular", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 3)
	assert.Equal(t, "b", got.Images[0].FileKey)
	assert.Equal(t, "c", got.Images[1].FileKey)
	assert.Equal(t, "a", got.Images[2].FileKey)
}

func TestImageListPagination(t *testing.T) {
	a := newTestAPI(t)

	for i := range 5 {
		seedFile(t, a, model.File{FileKey: fmt.Sprintf("k%d", i), Kind: model.KindPNG})
	}

	w := doRequest(t, a, http.MethodGet, "/api/images?limit=2&page=0", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)
	assert.Equal(t, int64(5), got.Total)
	assert.Len(t, got.Images, 2)

	w = doRequest(t, a, http.MethodGet, "/api/images?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	assert.Len(t, got.Images, 1)
}

func TestCategoryImagesRequiresCategory(t *testing.T) {
	a := newTestAPI(t)

	seedFile(t, a, model.File{FileKey: "n1", Kind: model.KindPNG, Category: "Nature"})
	seedFile(t, a, model.File{FileKey: "l1", Kind: model.KindVector, Category: "Logos"})

	w := doRequest(t, a, http.MethodGet, "/api/category-images", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/category-images?category=Nature", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 1)
	assert.Equal(t, "n1", got.Images[0].FileKey)
}

func TestImageFetch(t *testing.T) {
	a := newTestAPI(t)

	file := seedFile(t, a, model.File{FileKey: "f1", Kind: model.KindPNG, Title: "Sunset"})

	w := doRequest(t, a, http.MethodGet, fmt.Sprintf("/api/images/%d", file.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.File
	decodeBody(t, w, &got)
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, "Sunset", got.Title)

	w = doRequest(t, a, http.MethodGet, "/api/images/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageRelated(t *testing.T) {
	a := newTestAPI(t)

	src := seedFile(t, a, model.File{FileKey: "src", Kind: model.KindPNG, Category: "Animals", Keywords: model.StringSlice{"dog", "cat"}})
	best := seedFile(t, a, model.File{FileKey: "best", Kind: model.KindPNG, Category: "Animals", Keywords: model.StringSlice{"dog"}})
	seedFile(t, a, model.File{FileKey: "other", Kind: model.KindPNG, Category: "Food"})

	w := doRequest(t, a, http.MethodGet, fmt.Sprintf("/api/images/%d/related", src.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)
	require.Len(t, got.Images, 2)
	assert.Equal(t, best.ID, got.Images[0].ID)

	// The source itself is never related to itself
	for _, img := range got.Images {
		assert.NotEqual(t, src.ID, img.ID)
	}

	w = doRequest(t, a, http.MethodGet, "/api/images/9999/related", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageRelatedLargeCatalog(t *testing.T) {
	a := newTestAPI(t)

	src := seedFile(t, a, model.File{FileKey: "src", Kind: model.KindPNG, Category: "Animals", Keywords: model.StringSlice{"dog"}})

	// Relevant but never downloaded
	best := seedFile(t, a, model.File{FileKey: "best", Kind: model.KindPNG, Category: "Animals", Keywords: model.StringSlice{"dog"}})

	// Far more zero-score assets than the candidate pool holds, all of
	// them heavily downloaded
	noise := make([]model.File, 0, candidatePool+100)
	for i := range candidatePool + 100 {
		noise = append(noise, model.File{
			FileKey:   fmt.Sprintf("noise%d", i),
			ThumbKey:  fmt.Sprintf("noise%d", i),
			Kind:      model.KindPNG,
			Category:  "Abstract",
			Downloads: int64(1000 + i),
			CreatedAt: time.Now().Unix(),
		})
	}
	require.NoError(t, a.DB.CreateInBatches(&noise, 100).Error)

	w := doRequest(t, a, http.MethodGet, fmt.Sprintf("/api/images/%d/related", src.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got listResponse
	decodeBody(t, w, &got)

	// Relevance beats raw popularity even when the catalog outgrows
	// the candidate pool
	require.NotEmpty(t, got.Images)
	assert.Equal(t, best.ID, got.Images[0].ID)
}

func TestImageBadIDFormat(t *testing.T) {
	a := newTestAPI(t)

	seedFile(t, a, model.File{FileKey: "b1", Kind: model.KindPNG})

	w := doRequest(t, a, http.MethodGet, "/api/images/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/images/-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, a, http.MethodGet, "/api/images/abc/related", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageDownloadComplete(t *testing.T) {
	a := newTestAPI(t)

	file := seedFile(t, a, model.File{FileKey: "d1", Kind: model.KindPNG})

	w := doRequest(t, a, http.MethodPost, fmt.Sprintf("/api/images/%d/download", file.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	decodeBody(t, w, &body)
	assert.Equal(t, float64(1), body["downloads"])

	var events int64
	require.NoError(t, a.DB.Model(model.DownloadEvent{}).Where("file_id = ?", file.ID).Count(&events).Error)
	assert.Equal(t, int64(1), events)

	w = doRequest(t, a, http.MethodPost, "/api/images/9999/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, a, http.MethodPost, "/api/images/abc/download", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
