package api

import (
	"net/http"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CategoryDelete removes a category. Assets keep the free-text
// category name, deletion does not cascade.
func (a *API) CategoryDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	categoryID := c.Param("id")
	if categoryID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	res := a.DB.Where("id = ?", categoryID).Delete(model.Category{})
	if res.Error != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete category", zap.Error(res.Error), zap.String("requestID", requestID))
		return
	}

	if res.RowsAffected == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Category not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusOK)
}
