package api

import (
	"errors"
	"net/http"
	"strconv"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) ImageFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid image ID provided",
			"requestID": requestID,
		})
		return
	}

	var file model.File

	err = a.DB.
		Where("id = ?", imageID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Image not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if image exists", zap.Uint64("id", imageID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, file)
}
