package api

import (
	"errors"
	"net/http"

	"stockpix/gallery-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UploadCSV ingests a metadata CSV whose rows reference objects that
// already live in the bucket. Bad rows are skipped, only aggregate
// counts are reported.
func (a *API) UploadCSV(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded CSV", zap.Error(err))
		return
	}
	defer f.Close()

	res, err := service.IngestCSV(a.DB, f)
	if err != nil {
		if errors.Is(err, service.ErrCSVHeader) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("CSV ingestion failed", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, res)
}
