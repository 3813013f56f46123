package api

import (
	"net/http"
	"time"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type newsletterBody struct {
	Email string `json:"email"`
}

func (a *API) NewsletterSubscribe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data newsletterBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var found bool

	r := a.DB.Model(model.NewsletterSubscriber{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		First(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check newsletter subscription", zap.Error(r.Error))
		return
	}

	if found {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     "This email is already subscribed",
			"requestID": requestID,
		})
		return
	}

	err := a.DB.Create(&model.NewsletterSubscriber{
		Email:        data.Email,
		SubscribedAt: time.Now(),
	}).Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create newsletter subscriber", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscribed successfully",
	})
}
