package api

import (
	"context"
	"net/http"

	"stockpix/gallery-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ingestFunc func(ctx context.Context, db *gorm.DB, src *service.RemoteSource) (*service.BatchResult, error)

// UploadFTP pulls a batch of images from an FTP server supplied in the
// request. Credentials are used once and never stored.
func (a *API) UploadFTP(c *gin.Context) {
	a.uploadRemote(c, a.Uploader.IngestFTP)
}

// UploadSFTP is the SFTP variant of UploadFTP
func (a *API) UploadSFTP(c *gin.Context) {
	a.uploadRemote(c, a.Uploader.IngestSFTP)
}

func (a *API) uploadRemote(c *gin.Context, ingest ingestFunc) {
	requestID := c.MustGet("requestID").(string)

	var src service.RemoteSource
	if err := c.ShouldBind(&src); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := src.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	res, err := ingest(c.Request.Context(), a.DB, &src)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
			"error":     "Failed to connect to the remote server",
			"requestID": requestID,
		})

		zap.L().Error("Batch ingestion failed", zap.String("host", src.Host), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, res)
}
