package api

import (
	"net/http"
	"strconv"
	"time"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type downloadBucket struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// DashboardStats feeds the admin chart: catalog totals plus per-day
// download buckets over the requested window.
func (a *API) DashboardStats(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	daysStr := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 || days > 365 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid days provided",
			"requestID": requestID,
		})
		return
	}

	var totalAssets int64
	if err := a.DB.Model(model.File{}).Count(&totalAssets).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count assets", zap.Error(err))
		return
	}

	var totalDownloads int64
	if err := a.DB.Model(model.DownloadEvent{}).Count(&totalDownloads).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count download events", zap.Error(err))
		return
	}

	cutoff := time.Now().AddDate(0, 0, -days)

	var buckets []downloadBucket

	err = a.DB.
		Model(model.DownloadEvent{}).
		Select("date(created_at) AS day, count(*) AS count").
		Where("created_at >= ?", cutoff).
		Group("date(created_at)").
		Order("day").
		Scan(&buckets).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to bucket download events", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalAssets":    totalAssets,
		"totalDownloads": totalDownloads,
		"days":           days,
		"buckets":        buckets,
	})
}
