package service

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"stockpix/gallery-api/model"
	"stockpix/gallery-api/validators"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BatchResult is the aggregate outcome of a batch ingestion run.
// Which exact items failed is deliberately not reported.
type BatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// csvHeader is the required first row of a metadata CSV. Keywords are
// semicolon-separated inside their cell.
var csvHeader = []string{
	"file_key", "thumb_key", "name", "file_type", "category",
	"title", "description", "keywords", "width", "height", "size",
}

var ErrCSVHeader = errors.New("invalid CSV header")

// IngestCSV creates asset rows from a metadata CSV whose rows reference
// already-stored object keys. Bad rows are skipped and counted, the
// rest of the batch proceeds.
func IngestCSV(db *gorm.DB, r io.Reader) (*BatchResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ErrCSVHeader
	}

	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != csvHeader[i] {
			return nil, ErrCSVHeader
		}
	}

	res := &BatchResult{}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line, not end of input
			res.Skipped++
			zap.L().Warn("Skipping malformed CSV row", zap.Error(err))
			continue
		}

		file, err := fileFromRow(row)
		if err != nil {
			res.Skipped++
			zap.L().Warn("Skipping invalid CSV row", zap.String("file_key", row[0]), zap.Error(err))
			continue
		}

		if err := db.Create(file).Error; err != nil {
			res.Skipped++
			zap.L().Warn("Failed to create asset from CSV row", zap.String("file_key", file.FileKey), zap.Error(err))
			continue
		}

		res.Created++
	}

	return res, nil
}

func fileFromRow(row []string) (*model.File, error) {
	fileKey := strings.TrimSpace(row[0])
	if fileKey == "" {
		return nil, errors.New("missing file_key")
	}

	kind := strings.TrimSpace(strings.ToLower(row[3]))
	if err := validators.KindValidator(kind); err != nil {
		return nil, err
	}

	thumbKey := strings.TrimSpace(row[1])
	if thumbKey == "" {
		thumbKey = fileKey
	}

	var keywords model.StringSlice
	for _, k := range strings.Split(row[7], ";") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	width, _ := strconv.Atoi(strings.TrimSpace(row[8]))
	height, _ := strconv.Atoi(strings.TrimSpace(row[9]))
	size, _ := strconv.ParseInt(strings.TrimSpace(row[10]), 10, 64)

	return &model.File{
		FileKey:      fileKey,
		ThumbKey:     thumbKey,
		OriginalName: strings.TrimSpace(row[2]),
		Kind:         kind,
		Category:     strings.TrimSpace(row[4]),
		Title:        strings.TrimSpace(row[5]),
		Description:  strings.TrimSpace(row[6]),
		Keywords:     keywords,
		Width:        width,
		Height:       height,
		Size:         size,
		CreatedAt:    time.Now().Unix(),
		UpdatedAt:    time.Now().Unix(),
	}, nil
}
