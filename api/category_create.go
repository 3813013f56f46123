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

type categoryBody struct {
	Name      string `json:"name"`
	Kind      string `json:"file_type"`
	Active    *bool  `json:"active"`
	ShowInNav bool   `json:"show_in_nav"`
}

func (a *API) CategoryCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

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

	var found bool

	r := a.DB.Model(model.Category{}).
		Select("count(*) > 0").
		Where("name = ?", data.Name).
		First(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if category exists", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":     "A category with this name already exists",
			"requestID": requestID,
		})
		return
	}

	active := true
	if data.Active != nil {
		active = *data.Active
	}

	category := model.Category{
		Name:      data.Name,
		Kind:      data.Kind,
		Active:    active,
		ShowInNav: data.ShowInNav,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	if err := a.DB.Create(&category).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create category", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, category)
}
