package api

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"stockpix/gallery-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders the crawlable surface: static pages, active
// categories and asset detail pages.
func (a *API) Sitemap(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	base := viper.GetString("host.frontend_url")

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: base},
			{Loc: base + "/categories"},
			{Loc: base + "/contact"},
		},
	}

	var categories []model.Category

	err := a.DB.
		Where("active = ?", true).
		Select("name").
		Find(&categories).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list categories for sitemap", zap.Error(err))
		return
	}

	for _, cat := range categories {
		set.URLs = append(set.URLs, sitemapURL{Loc: fmt.Sprintf("%v/category/%v", base, cat.Name)})
	}

	var files []model.File

	err = a.DB.
		Select("id", "updated_at").
		Order("id").
		Find(&files).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list assets for sitemap", zap.Error(err))
		return
	}

	for _, f := range files {
		set.URLs = append(set.URLs, sitemapURL{
			Loc: fmt.Sprintf("%v/image/%v", base, f.ID),
		})
	}

	c.XML(http.StatusOK, set)
}
