package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validSortOpts = []string{"newest", "oldest", "popular"}

type listParams struct {
	page     int
	limit    int
	query    string
	fileType string
	sort     string
	category string
}

// parseListParams validates the shared query params of the catalog
// listing endpoints. On failure it writes the response and returns nil.
func parseListParams(c *gin.Context, requestID string) *listParams {
	p := &listParams{}

	pageStr := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid page provided",
			"requestID": requestID,
		})
		return nil
	}
	p.page = page

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid limit provided",
			"requestID": requestID,
		})
		return nil
	}
	p.limit = limit

	p.fileType = c.Query("fileType")
	if p.fileType != "" {
		if err := validators.KindValidator(p.fileType); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return nil
		}
	}

	p.sort = strings.ToLower(c.DefaultQuery("sort", "newest"))
	if !slices.Contains(validSortOpts, p.sort) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid sorting option",
			"requestID": requestID,
		})
		return nil
	}

	p.query = strings.ToLower(strings.TrimSpace(c.Query("query")))
	p.category = c.Query("category")

	return p
}

func (a *API) listImages(c *gin.Context, requestID string, p *listParams) {
	q := a.DB.Model(model.File{})

	if p.fileType != "" {
		q = q.Where("kind = ?", p.fileType)
	}

	if p.category != "" {
		q = q.Where("category = ?", p.category)
	}

	if p.query != "" {
		like := "%" + p.query + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(keywords) LIKE ?", like, like)
	}

	order := ""
	switch p.sort {
	case "newest":
		order = "created_at desc"
	case "oldest":
		order = "created_at asc"
	case "popular":
		order = "downloads desc"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count images", zap.Error(err))
		return
	}

	var entries []model.File

	err := q.
		Order(order).
		Offset(p.page * p.limit).
		Limit(p.limit).
		Find(&entries).
		Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list images", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"page":   p.page,
		"images": entries,
	})
}

// ImageList is the main catalog listing with search and filters
func (a *API) ImageList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	p := parseListParams(c, requestID)
	if p == nil {
		return
	}

	a.listImages(c, requestID, p)
}

// CategoryImages is the same listing scoped to one category
func (a *API) CategoryImages(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	p := parseListParams(c, requestID)
	if p == nil {
		return
	}

	if p.category == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No category provided",
			"requestID": requestID,
		})
		return
	}

	a.listImages(c, requestID, p)
}
