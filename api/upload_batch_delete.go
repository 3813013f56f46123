package api

import (
	"context"
	"net/http"

	"stockpix/gallery-api/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxBatchDelete = 100

type batchDeleteBody struct {
	IDs []uint `json:"ids"`
}

func (a *API) UploadBatchDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data batchDeleteBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if len(data.IDs) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No IDs provided",
			"requestID": requestID,
		})
		return
	}

	if len(data.IDs) > maxBatchDelete {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Too many IDs provided",
			"requestID": requestID,
		})
		return
	}

	var files []model.File

	err := a.DB.
		Where("id IN ?", data.IDs).
		Select("id", "file_key", "thumb_key").
		Find(&files).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up files for deletion", zap.Error(err))
		return
	}

	if len(files) == 0 {
		c.JSON(http.StatusOK, gin.H{"deleted": 0, "skipped": len(data.IDs)})
		return
	}

	objects := make([]types.ObjectIdentifier, 0, len(files)*2)
	ids := make([]uint, 0, len(files))

	for _, f := range files {
		ids = append(ids, f.ID)
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(f.FileKey)})
		if f.ThumbKey != "" && f.ThumbKey != f.FileKey {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(f.ThumbKey)})
		}
	}

	resp, err := a.S3.C.DeleteObjects(context.TODO(), &s3.DeleteObjectsInput{
		Bucket: a.S3.Bucket,
		Delete: &types.Delete{
			Objects: objects,
		},
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete files from S3", zap.Error(err))
		return
	}

	for _, v := range resp.Deleted {
		zap.L().Debug("Deleted item", zap.String("item", *v.Key))
	}

	if err := a.DB.Where("id IN ?", ids).Delete(model.File{}).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file records", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": len(ids),
		"skipped": len(data.IDs) - len(ids),
	})
}
