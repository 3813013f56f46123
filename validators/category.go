package validators

import (
	"errors"
	"slices"
	"stockpix/gallery-api/model"
	"strings"
)

var (
	ErrCategoryNameEmpty   = errors.New("no category name provided")
	ErrCategoryNameTooLong = errors.New("category name is too long")
	ErrCategoryKindInvalid = errors.New("file type must be one of png, vector, image")
)

var validKinds = []string{model.KindPNG, model.KindVector, model.KindImage}

// KindValidator checks an asset/category kind against the allowed set
func KindValidator(k string) error {
	if !slices.Contains(validKinds, k) {
		return ErrCategoryKindInvalid
	}

	return nil
}

func CategoryValidator(name, kind string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCategoryNameEmpty
	}

	if len(name) > 100 {
		return ErrCategoryNameTooLong
	}

	return KindValidator(kind)
}
