package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"stockpix/gallery-api/model"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
	ErrNoFile              = errors.New("no file provided")
)

const maxFileNameSize = 245 // Takes into account the thumb_ prefix

// KindForMime maps a detected MIME type onto an asset kind. Returns
// an empty string for anything that isn't a supported image format.
func KindForMime(mime string) string {
	switch mime {
	case "image/png":
		return model.KindPNG
	case "image/svg+xml":
		return model.KindVector
	case "image/jpeg", "image/webp":
		return model.KindImage
	}

	return ""
}

// ImageValidator checks an uploaded file header and its content. On
// success it returns the opened file rewound to the start and the
// asset kind detected from the actual bytes.
func ImageValidator(fh *multipart.FileHeader) (int, multipart.File, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, "", ErrNoFile
	}

	// Check headers first which is easy to spoof, but faster for legit clients
	ct := fh.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") {
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, "", ErrFileNameTooLong
	}

	if fh.Size > viper.GetInt64("upload.max_size") {
		return http.StatusRequestEntityTooLarge, nil, "", ErrFileTooLarge
	}

	// And now do the checks on the actual file to avoid
	// malicious clients
	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	kind := KindForMime(mime.String())
	if kind == "" {
		f.Close()
		return http.StatusBadRequest, nil, "", ErrFileTypeUnsupported
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, "", err
	}

	return 0, f, kind, nil
}
