package api

import (
	"errors"
	"net/http"
	"time"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errTokenConsumed = errors.New("verification token already consumed")

type partialVerifToken struct {
	ExpiresAt time.Time
	Purpose   string
	Used      bool
}

func (a *API) UserVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification token provided",
			"requestID": requestID,
		})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No user ID provided",
			"requestID": requestID,
		})
		return
	}

	var verifRecord partialVerifToken

	err := a.DB.
		Model(model.VerificationToken{}).
		Where("user_id = ? AND token = ? AND purpose = ?", userID, token, "email_verify").
		Select("expires_at", "purpose", "used").
		First(&verifRecord).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Token expired or invalid",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to get verification token record", zap.Error(err))
		return
	}

	if verifRecord.Used {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Token was used already",
			"requestID": requestID,
		})
		return
	}

	if verifRecord.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Token expired",
			"requestID": requestID,
		})
		return
	}

	// Marking the token and flipping the user must not come apart. The
	// update is conditioned on used so a racing request can't consume
	// the same token twice.
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.VerificationToken{}).
			Where("user_id = ? AND token = ? AND used = ?", userID, token, false).
			Updates(map[string]any{
				"used":    true,
				"used_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return errTokenConsumed
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("verified", true).
			Error
	})
	if err != nil {
		if errors.Is(err, errTokenConsumed) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Token was used already",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to validate user",
			"requestID": requestID,
		})
		zap.L().Error("Failed to update user and token in transaction", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User validated successfully",
		"requestID": requestID,
	})
}
