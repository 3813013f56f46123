package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, a *API, name, kind string, active, nav bool) *model.Category {
	t.Helper()

	cat := model.Category{
		Name:      name,
		Kind:      kind,
		Active:    active,
		ShowInNav: nav,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	require.NoError(t, a.DB.Create(&cat).Error)
	return &cat
}

func TestCategoryList(t *testing.T) {
	a := newTestAPI(t)

	seedCategory(t, a, "Nature", "png", true, true)
	seedCategory(t, a, "Logos", "vector", true, false)
	seedCategory(t, a, "Hidden", "png", false, false)

	w := doRequest(t, a, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []model.Category
	decodeBody(t, w, &got)

	// Inactive categories never show up
	require.Len(t, got, 2)
	assert.Equal(t, "Logos", got[0].Name)
	assert.Equal(t, "Nature", got[1].Name)

	w = doRequest(t, a, http.MethodGet, "/api/categories?fileType=vector", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Logos", got[0].Name)

	w = doRequest(t, a, http.MethodGet, "/api/categories?nav=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Nature", got[0].Name)

	w = doRequest(t, a, http.MethodGet, "/api/categories?fileType=gif", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCreate(t *testing.T) {
	a := newTestAPI(t)
	_, cookie := seedUser(t, a, "admin@example.com", true, true)

	w := doRequest(t, a, http.MethodPost, "/api/categories", gin.H{
		"name":      "Nature",
		"file_type": "png",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var cat model.Category
	require.NoError(t, a.DB.Where("name = ?", "Nature").First(&cat).Error)
	assert.True(t, cat.Active)

	// Duplicate name
	w = doRequest(t, a, http.MethodPost, "/api/categories", gin.H{
		"name":      "Nature",
		"file_type": "png",
	}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Invalid kind
	w = doRequest(t, a, http.MethodPost, "/api/categories", gin.H{
		"name":      "Animations",
		"file_type": "gif",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryCreateRequiresAdmin(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/api/categories", gin.H{
		"name":      "Nature",
		"file_type": "png",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, cookie := seedUser(t, a, "user@example.com", false, true)

	w = doRequest(t, a, http.MethodPost, "/api/categories", gin.H{
		"name":      "Nature",
		"file_type": "png",
	}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCategoryUpdate(t *testing.T) {
	a := newTestAPI(t)
	_, cookie := seedUser(t, a, "admin@example.com", true, true)
	cat := seedCategory(t, a, "Nature", "png", true, false)

	w := doRequest(t, a, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), gin.H{
		"name":        "Wildlife",
		"file_type":   "image",
		"show_in_nav": true,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Category
	require.NoError(t, a.DB.First(&got, cat.ID).Error)
	assert.Equal(t, "Wildlife", got.Name)
	assert.Equal(t, "image", got.Kind)
	assert.True(t, got.ShowInNav)

	w = doRequest(t, a, http.MethodPut, "/api/categories/9999", gin.H{
		"name":      "Nope",
		"file_type": "png",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryUpdateDuplicateName(t *testing.T) {
	a := newTestAPI(t)
	_, cookie := seedUser(t, a, "admin@example.com", true, true)

	seedCategory(t, a, "Nature", "png", true, false)
	cat := seedCategory(t, a, "Logos", "vector", true, false)

	w := doRequest(t, a, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), gin.H{
		"name":      "Nature",
		"file_type": "vector",
	}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	var got model.Category
	require.NoError(t, a.DB.First(&got, cat.ID).Error)
	assert.Equal(t, "Logos", got.Name)

	// Keeping its own name is not a conflict
	w = doRequest(t, a, http.MethodPut, fmt.Sprintf("/api/categories/%d", cat.ID), gin.H{
		"name":        "Logos",
		"file_type":   "vector",
		"show_in_nav": true,
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryDelete(t *testing.T) {
	a := newTestAPI(t)
	_, cookie := seedUser(t, a, "admin@example.com", true, true)
	cat := seedCategory(t, a, "Nature", "png", true, false)

	file := model.File{FileKey: "k1", ThumbKey: "k1", Kind: model.KindPNG, Category: "Nature"}
	require.NoError(t, a.DB.Create(&file).Error)

	w := doRequest(t, a, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.Category{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// Assets keep their category name
	var got model.File
	require.NoError(t, a.DB.First(&got, file.ID).Error)
	assert.Equal(t, "Nature", got.Category)

	w = doRequest(t, a, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
