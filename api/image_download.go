package api

import (
	"errors"
	"net/http"
	"strconv"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageDownload redirects to a time-boxed presigned URL for the asset.
// Counting happens separately when the client confirms completion.
func (a *API) ImageDownload(c *gin.Context) {
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
		Select("file_key", "original_name").
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

	url, err := a.S3.PresignDownload(
		c.Request.Context(),
		file.FileKey,
		file.OriginalName,
		viper.GetDuration("download.url_ttl"),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to presign download URL", zap.Error(err))
		return
	}

	c.Redirect(http.StatusSeeOther, url)
}

// ImageDownloadComplete records one completed download. The event row
// and the counter increment land in a single transaction, a retry
// legitimately counts as a new download.
func (a *API) ImageDownloadComplete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid image ID provided",
			"requestID": requestID,
		})
		return
	}

	file, err := service.RecordDownload(a.DB, uint(imageID))
	if err != nil {
		if errors.Is(err, service.ErrAssetNotFound) {
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

		zap.L().Error("Failed to record download", zap.Uint64("id", imageID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloads": file.Downloads,
	})
}
