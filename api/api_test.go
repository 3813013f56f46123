package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stockpix/gallery-api/middleware"
	"stockpix/gallery-api/model"
	"stockpix/gallery-api/security"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestAPI wires a router against a throwaway database. Object
// storage stays nil, routes that talk to S3 are not registered here.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	viper.Set("jwt.secret", "test-secret")
	viper.Set("mail.enabled", false)
	viper.Set("host.ssl.enabled", false)
	viper.Set("host.frontend_url", "http://localhost:3000")

	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000", filepath.Join(t.TempDir(), "test.db"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.File{},
		&model.Category{},
		&model.DownloadEvent{},
		&model.User{},
		&model.VerificationToken{},
		&model.NewsletterSubscriber{},
		&model.ContactMessage{},
	))

	a := &API{
		DB:    db,
		Argon: security.New(),
	}

	r := gin.New()
	r.Use(middleware.NewRequestIDMiddleware())

	jwtMiddleware := middleware.NewJWTMiddleware(db)
	adminOnly := middleware.RequireAdmin()

	r.POST("/api/users", a.UserRegister)
	r.POST("/api/users/login", a.UserLogin)
	r.GET("/api/users/verify", a.UserVerify)
	r.GET("/api/users", jwtMiddleware, a.UserFetch)

	r.GET("/api/categories", a.CategoryList)
	r.POST("/api/categories", jwtMiddleware, adminOnly, a.CategoryCreate)
	r.PUT("/api/categories/:id", jwtMiddleware, adminOnly, a.CategoryUpdate)
	r.DELETE("/api/categories/:id", jwtMiddleware, adminOnly, a.CategoryDelete)

	r.GET("/api/images", a.ImageList)
	r.GET("/api/images/:id", a.ImageFetch)
	r.GET("/api/images/:id/related", a.ImageRelated)
	r.POST("/api/images/:id/download", a.ImageDownloadComplete)
	r.GET("/api/category-images", a.CategoryImages)

	r.POST("/api/newsletter", a.NewsletterSubscribe)
	r.POST("/api/contact", a.ContactCreate)
	r.GET("/api/sitemap", a.Sitemap)
	r.GET("/api/dashboard/stats", jwtMiddleware, adminOnly, a.DashboardStats)

	a.Router = r
	return a
}

func doRequest(t *testing.T, a *API, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// seedUser creates a user directly and returns its auth cookie
func seedUser(t *testing.T, a *API, email string, admin, verified bool) (*model.User, *http.Cookie) {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword("password123")
	require.NoError(t, err)

	user := model.User{
		ID:           fmt.Sprintf("testuser%d", time.Now().UnixNano()),
		Email:        email,
		PasswordHash: hash,
		Verified:     verified,
		Admin:        admin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, a.DB.Create(&user).Error)

	token, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	return &user, &http.Cookie{Name: "auth_token", Value: token}
}
