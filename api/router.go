// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"stockpix/gallery-api/aws"
	"stockpix/gallery-api/db"
	"stockpix/gallery-api/middleware"
	"stockpix/gallery-api/security"
	"stockpix/gallery-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	S3       *aws.S3Client
	Uploader *service.Uploader
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.frontend_url")},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	jwt := middleware.NewJWTMiddleware(db)
	admin := middleware.RequireAdmin()
	publicWrite := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a session cookie
		main.HEAD("/validate", jwt, a.Validate)

		// GET /api/sitemap		-> XML sitemap over categories and assets
		main.GET("/sitemap", cacheFor(3600), a.Sitemap)

		// POST /api/newsletter		-> Subscribes an email to the newsletter
		main.POST("/newsletter", publicWrite, middleware.BodySizeLimiter(1<<20), a.NewsletterSubscribe)

		// POST /api/contact		-> Stores and forwards a contact message
		main.POST("/contact", publicWrite, middleware.BodySizeLimiter(1<<20), a.ContactCreate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the signed-in user's profile
		users.GET("", jwt, a.UserFetch)

		// POST /api/users		-> Registers a new user
		users.POST("", a.UserRegister)

		// POST /api/users/login	-> Logs in a user and sets the session cookie
		users.POST("/login", a.UserLogin)

		// GET /api/users/verify	-> Consumes an email verification token
		users.GET("/verify", a.UserVerify)
	}

	auth := main.Group("/auth")
	{
		// GET /api/auth/google		-> Starts the Google OAuth flow
		auth.GET("/google", a.GoogleRedirect)

		// GET /api/auth/google/callback -> Finishes the Google OAuth flow
		auth.GET("/google/callback", a.GoogleCallback)
	}

	categories := main.Group("/categories")
	{
		// GET /api/categories		-> Lists active categories
		categories.GET("", cacheFor(60), a.CategoryList)

		// POST /api/categories		-> Creates a category
		categories.POST("", jwt, admin, a.CategoryCreate)

		// PUT /api/categories/:id	-> Edits a category
		categories.PUT("/:id", jwt, admin, a.CategoryUpdate)

		// DELETE /api/categories/:id	-> Deletes a category (assets keep the name)
		categories.DELETE("/:id", jwt, admin, a.CategoryDelete)
	}

	images := main.Group("/images")
	{
		// GET /api/images		-> Paginated catalog listing with search and filters
		images.GET("", a.ImageList)

		// GET /api/images/:id		-> Asset detail
		images.GET("/:id", a.ImageFetch)

		// GET /api/images/:id/related	-> Relevance-ranked related assets
		images.GET("/:id/related", cacheFor(60), a.ImageRelated)

		// GET /api/images/:id/download	-> Redirects to a time-boxed signed URL
		images.GET("/:id/download", publicWrite, a.ImageDownload)

		// POST /api/images/:id/download -> Records one completed download
		images.POST("/:id/download", publicWrite, a.ImageDownloadComplete)
	}

	// GET /api/category-images		-> Catalog listing scoped to one category
	main.GET("/category-images", a.CategoryImages)

	upload := main.Group("/upload", jwt, admin)
	{
		// POST /api/upload		-> Direct multipart image upload
		upload.POST("", middleware.BodySizeLimiter(maxUploadSize), a.UploadDirect)

		// POST /api/upload/csv		-> Metadata CSV batch ingestion
		upload.POST("/csv", middleware.BodySizeLimiter(10<<20), a.UploadCSV)

		// POST /api/upload/ftp		-> Pulls a batch from an FTP server
		upload.POST("/ftp", middleware.BodySizeLimiter(1<<20), a.UploadFTP)

		// POST /api/upload/sftp	-> Pulls a batch from an SFTP server
		upload.POST("/sftp", middleware.BodySizeLimiter(1<<20), a.UploadSFTP)

		// POST /api/upload/batch-delete -> Deletes up to 100 assets
		upload.POST("/batch-delete", middleware.BodySizeLimiter(1<<20), a.UploadBatchDelete)
	}

	dashboard := main.Group("/dashboard", jwt, admin)
	{
		// GET /api/dashboard/stats	-> Download analytics buckets
		dashboard.GET("/stats", a.DashboardStats)
	}

	a.Argon = security.New()

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	a.S3 = s3
	a.Uploader = service.NewUploader(s3)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
