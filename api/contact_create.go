package api

import (
	"net/http"
	"strings"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/service"
	"stockpix/gallery-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type contactBody struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (a *API) ContactCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data contactBody
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

	if strings.TrimSpace(data.Message) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Message field can't be empty",
			"requestID": requestID,
		})
		return
	}

	msg := model.ContactMessage{
		Name:    data.Name,
		Email:   data.Email,
		Subject: data.Subject,
		Message: data.Message,
	}

	if err := a.DB.Create(&msg).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store contact message", zap.Error(err))
		return
	}

	// Forwarding is best effort, the message is already stored
	if err := service.SendContactMail(&msg); err != nil {
		zap.L().Error("Failed to forward contact message", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message received",
	})
}
