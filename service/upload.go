package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	a "stockpix/gallery-api/aws"
	"stockpix/gallery-api/model"
	"stockpix/gallery-api/util"
	"stockpix/gallery-api/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	multipartLimit = 100 << 20
	thumbWidth     = 400
)

type Uploader struct {
	S3 *a.S3Client
}

func NewUploader(s *a.S3Client) *Uploader {
	return &Uploader{S3: s}
}

// Do validates, resizes and stores one image. The returned File entity
// carries the storage keys and pixel dimensions but is not persisted,
// callers fill in the catalog metadata and create the row themselves.
func (u *Uploader) Do(ctx context.Context, r io.Reader, name string) (*model.File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file, %w", err)
	}

	mime := mimetype.Detect(data)

	kind := validators.KindForMime(mime.String())
	if kind == "" {
		return nil, validators.ErrFileTypeUnsupported
	}

	ext := mime.Extension()
	if ext == "" {
		ext = path.Ext(name)
	}

	key := util.RandStr(10)
	fileKey := key + ext
	thumbKey := fileKey

	var (
		width, height int
		thumbData     []byte
		thumbMime     string
	)

	// Vectors scale natively in the browser so they serve as their own
	// preview. Raster images get a resized thumbnail.
	if kind != model.KindVector {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image, %w", err)
		}

		width = img.Bounds().Dx()
		height = img.Bounds().Dy()

		thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)

		format := imaging.JPEG
		thumbMime = "image/jpeg"
		thumbKey = "thumb_" + key + ".jpg"

		// PNG thumbnails keep their transparency
		if kind == model.KindPNG {
			format = imaging.PNG
			thumbMime = "image/png"
			thumbKey = "thumb_" + key + ".png"
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, thumb, format); err != nil {
			return nil, fmt.Errorf("failed to encode thumbnail, %w", err)
		}
		thumbData = buf.Bytes()
	}

	jobs := 1
	if thumbData != nil {
		jobs = 2
	}

	errChan := make(chan error, jobs)
	uploadedKeys := make([]string, 0, jobs)

	var mu sync.Mutex
	var wg sync.WaitGroup

	upCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	wg.Add(jobs)

	// Upload the original
	go func() {
		defer wg.Done()

		input := &s3.PutObjectInput{
			Bucket:        u.S3.Bucket,
			Key:           aws.String(fileKey),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
			ContentType:   aws.String(mime.String()),
			CacheControl:  aws.String("public, max-age=31536000, immutable"),
		}

		var err error
		if len(data) > multipartLimit {
			up := manager.NewUploader(u.S3.C, func(u *manager.Uploader) {
				u.Concurrency = 5
				u.PartSize = 6 << 20
			})
			_, err = up.Upload(upCtx, input)
		} else {
			_, err = u.S3.C.PutObject(upCtx, input)
		}
		if err != nil {
			errChan <- fmt.Errorf("failed to upload file to S3, %w", err)
			return
		}

		mu.Lock()
		uploadedKeys = append(uploadedKeys, fileKey)
		mu.Unlock()

		errChan <- nil
	}()

	if thumbData != nil {
		go func() {
			defer wg.Done()

			_, err := u.S3.C.PutObject(upCtx, &s3.PutObjectInput{
				Bucket:        u.S3.Bucket,
				Key:           aws.String(thumbKey),
				Body:          bytes.NewReader(thumbData),
				ContentLength: aws.Int64(int64(len(thumbData))),
				ContentType:   aws.String(thumbMime),
				CacheControl:  aws.String("public, max-age=31536000, immutable"),
			})
			if err != nil {
				errChan <- fmt.Errorf("failed to upload thumbnail to S3, %w", err)
				return
			}

			mu.Lock()
			uploadedKeys = append(uploadedKeys, thumbKey)
			mu.Unlock()

			errChan <- nil
		}()
	}

	for range jobs {
		if err := <-errChan; err != nil {
			cancel()
			wg.Wait()

			mu.Lock()
			for _, k := range uploadedKeys {
				_, derr := u.S3.C.DeleteObject(context.Background(), &s3.DeleteObjectInput{
					Bucket: u.S3.Bucket,
					Key:    aws.String(k),
				})
				if derr != nil {
					zap.L().Error("Failed to cleanup after failed upload", zap.String("key", k), zap.Error(derr))
				} else {
					zap.L().Debug("Cleaned up after failed upload", zap.String("key", k))
				}
			}
			mu.Unlock()

			return nil, err
		}
	}

	wg.Wait()

	return &model.File{
		FileKey:      fileKey,
		ThumbKey:     thumbKey,
		OriginalName: name,
		Kind:         kind,
		Width:        width,
		Height:       height,
		Size:         int64(len(data)),
		CreatedAt:    time.Now().Unix(),
		UpdatedAt:    time.Now().Unix(),
	}, nil
}
