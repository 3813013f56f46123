package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// candidatePool caps how many assets are pulled for in-process
// ranking. The pool is filled with scoring candidates first (category
// match or keyword overlap) and only padded with popular assets, so
// relevant assets are never crowded out by download counts.
const candidatePool = 500

func (a *API) ImageRelated(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid image ID provided",
			"requestID": requestID,
		})
		return
	}

	pageStr := c.DefaultQuery("page", "0")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid page provided",
			"requestID": requestID,
		})
		return
	}

	var src model.File

	err = a.DB.Where("id = ?", imageID).First(&src).Error
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

		zap.L().Error("Failed to fetch source image", zap.Uint64("id", imageID), zap.Error(err))
		return
	}

	candidates, err := a.relatedCandidates(&src)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch related candidates", zap.Error(err))
		return
	}

	ranked := service.RankRelated(&src, candidates)

	start := page * service.RelatedPageSize
	if start > len(ranked) {
		start = len(ranked)
	}

	end := start + service.RelatedPageSize
	if end > len(ranked) {
		end = len(ranked)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(ranked),
		"page":   page,
		"images": ranked[start:end],
	})
}

// relatedCandidates fetches up to candidatePool assets for ranking.
// Assets that can score at all come first, the rest of the pool is
// filled with the most downloaded assets.
func (a *API) relatedCandidates(src *model.File) ([]model.File, error) {
	var candidates []model.File

	match := a.DB.Session(&gorm.Session{NewDB: true})

	hasMatch := false
	if src.Category != "" {
		match = match.Where("category = ?", src.Category)
		hasMatch = true
	}

	for _, kw := range src.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}

		like := "%" + kw + "%"
		if hasMatch {
			match = match.Or("LOWER(keywords) LIKE ?", like)
		} else {
			match = match.Where("LOWER(keywords) LIKE ?", like)
		}
		hasMatch = true
	}

	if hasMatch {
		err := a.DB.
			Where("id != ?", src.ID).
			Where(match).
			Order("downloads desc").
			Limit(candidatePool).
			Find(&candidates).
			Error
		if err != nil {
			return nil, err
		}
	}

	if len(candidates) >= candidatePool {
		return candidates, nil
	}

	exclude := make([]uint, 0, len(candidates)+1)
	exclude = append(exclude, src.ID)
	for _, c := range candidates {
		exclude = append(exclude, c.ID)
	}

	var pad []model.File

	err := a.DB.
		Where("id NOT IN ?", exclude).
		Order("downloads desc").
		Limit(candidatePool - len(candidates)).
		Find(&pad).
		Error
	if err != nil {
		return nil, err
	}

	return append(candidates, pad...), nil
}
