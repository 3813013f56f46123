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

func (a *API) CategoryUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	categoryID := c.Param("id")
	if categoryID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is missing",
			"requestID": requestID,
		})
		return
	}

	var data categoryBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.CategoryValidator(data.Name, data.Kind); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var category model.Category

	err := a.DB.Where("id = ?", categoryID).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Category not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if category exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var taken bool

	r := a.DB.Model(model.Category{}).
		Select("count(*) > 0").
		Where("name = ? AND id != ?", data.Name, category.ID).
		First(&taken)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if category name is taken", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if taken {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     "A category with this name already exists",
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{
		"name":        data.Name,
		"kind":        data.Kind,
		"show_in_nav": data.ShowInNav,
		"updated_at":  time.Now().Unix(),
	}
	if data.Active != nil {
		updates["active"] = *data.Active
	}

	if err := a.DB.Model(&category).Updates(updates).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, category)
}
