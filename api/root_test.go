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

func TestNewsletterSubscribe(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/api/newsletter", gin.H{"email": "reader@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, a.DB.Model(model.NewsletterSubscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Subscribing twice is a conflict, not a second row
	w = doRequest(t, a, http.MethodPost, "/api/newsletter", gin.H{"email": "reader@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, a.DB.Model(model.NewsletterSubscriber{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = doRequest(t, a, http.MethodPost, "/api/newsletter", gin.H{"email": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactCreate(t *testing.T) {
	a := newTestAPI(t)

	w := doRequest(t, a, http.MethodPost, "/api/contact", gin.H{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Licensing",
		"message": "Can I use the sunset image commercially?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var msg model.ContactMessage
	require.NoError(t, a.DB.First(&msg).Error)
	assert.Equal(t, "Licensing", msg.Subject)

	w = doRequest(t, a, http.MethodPost, "/api/contact", gin.H{
		"email":   "visitor@example.com",
		"message": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSitemap(t *testing.T) {
	a := newTestAPI(t)

	seedCategory(t, a, "Nature", "png", true, true)
	seedCategory(t, a, "Hidden", "png", false, false)
	file := seedFile(t, a, model.File{FileKey: "s1", Kind: model.KindPNG})

	w := doRequest(t, a, http.MethodGet, "/api/sitemap", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "http://www.sitemaps.org/schemas/sitemap/0.9")
	assert.Contains(t, body, "http://localhost:3000/category/Nature")
	assert.NotContains(t, body, "Hidden")
	assert.Contains(t, body, fmt.Sprintf("http://localhost:3000/image/%d", file.ID))
}

func TestDashboardStats(t *testing.T) {
	a := newTestAPI(t)
	_, cookie := seedUser(t, a, "admin@example.com", true, true)

	file := seedFile(t, a, model.File{FileKey: "st1", Kind: model.KindPNG})
	for range 3 {
		require.NoError(t, a.DB.Create(&model.DownloadEvent{FileID: file.ID, CreatedAt: time.Now()}).Error)
	}

	w := doRequest(t, a, http.MethodGet, "/api/dashboard/stats", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		TotalAssets    int64 `json:"totalAssets"`
		TotalDownloads int64 `json:"totalDownloads"`
		Days           int   `json:"days"`
		Buckets        []struct {
			Day   string `json:"day"`
			Count int64  `json:"count"`
		} `json:"buckets"`
	}
	decodeBody(t, w, &body)

	assert.Equal(t, int64(1), body.TotalAssets)
	assert.Equal(t, int64(3), body.TotalDownloads)
	assert.Equal(t, 30, body.Days)
	require.Len(t, body.Buckets, 1)
	assert.Equal(t, int64(3), body.Buckets[0].Count)

	w = doRequest(t, a, http.MethodGet, "/api/dashboard/stats?days=999", nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Non-admins are locked out
	_, userCookie := seedUser(t, a, "user@example.com", false, true)
	w = doRequest(t, a, http.MethodGet, "/api/dashboard/stats", nil, userCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
