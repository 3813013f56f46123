package api

import (
	"net/http"
	"strconv"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) CategoryList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	q := a.DB.Model(model.Category{}).Where("active = ?", true)

	if kind := c.Query("fileType"); kind != "" {
		if err := validators.KindValidator(kind); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		q = q.Where("kind = ?", kind)
	}

	if navStr := c.Query("nav"); navStr != "" {
		nav, err := strconv.ParseBool(navStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid nav filter provided",
				"requestID": requestID,
			})
			return
		}

		q = q.Where("show_in_nav = ?", nav)
	}

	var categories []model.Category

	if err := q.Order("name").Find(&categories).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list categories", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, categories)
}
