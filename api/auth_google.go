package api

import (
	"net/http"
	"time"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/service"
	"stockpix/gallery-api/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GoogleRedirect starts the OAuth code flow. The state value rides in
// a short-lived cookie and is compared on the callback.
func (a *API) GoogleRedirect(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !viper.GetBool("google.enabled") {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Google sign-in is disabled",
			"requestID": requestID,
		})
		return
	}

	state, err := util.GenerateToken(24)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate OAuth state", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetCookie("oauth_state", state, 300, "/", "", viper.GetBool("host.ssl.enabled"), true)
	c.Redirect(http.StatusFound, service.GoogleOAuthConfig().AuthCodeURL(state))
}

func (a *API) GoogleCallback(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if !viper.GetBool("google.enabled") {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Google sign-in is disabled",
			"requestID": requestID,
		})
		return
	}

	state, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != c.Query("state") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid OAuth state",
			"requestID": requestID,
		})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No OAuth code provided",
			"requestID": requestID,
		})
		return
	}

	gu, err := service.FetchGoogleUser(c.Request.Context(), code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Google sign-in failed",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch Google user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := a.upsertGoogleUser(gu)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upsert Google user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	authToken, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"type":    "auth",
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetCookie("oauth_state", "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
	setSessionCookies(c, authToken, user.Admin)
	c.Redirect(http.StatusFound, viper.GetString("host.frontend_url"))
}

// upsertGoogleUser links the Google subject to an existing account by
// id or email, or creates a fresh pre-verified one. A second account
// is never created for an email that already exists.
func (a *API) upsertGoogleUser(gu *service.GoogleUser) (*model.User, error) {
	var user model.User

	err := a.DB.Where("google_id = ?", gu.ID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = a.DB.Where("email = ?", gu.Email).First(&user).Error
	if err == nil {
		if uerr := a.DB.Model(&user).Updates(map[string]any{
			"google_id": gu.ID,
			"verified":  true,
		}).Error; uerr != nil {
			return nil, uerr
		}

		user.GoogleID = &gu.ID
		user.Verified = true
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	userID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		return nil, err
	}

	user = model.User{
		ID:       userID,
		Email:    gu.Email,
		Name:     gu.Name,
		Verified: true,
		GoogleID: &gu.ID,
	}

	if err := a.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
