package service

import (
	"strings"
	"testing"

	"stockpix/gallery-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeaderLine = "file_key,thumb_key,name,file_type,category,title,description,keywords,width,height,size\n"

func TestIngestCSV(t *testing.T) {
	db := newTestDB(t)

	input := csvHeaderLine +
		"k1,k1_thumb,sunset.png,png,Nature,Sunset,A sunset,sky;sunset,800,600,1024\n" +
		"k2,,logo.svg,vector,Logos,Logo,,logo,0,0,512\n" +
		",missing.png,broken.png,png,Nature,,,,,,\n" + // no file_key
		"k3,k3_thumb,dog.jpg,gif,Animals,Dog,,,100,100,99\n" // bad file_type

	res, err := IngestCSV(db, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.Skipped)

	var f model.File
	require.NoError(t, db.Where("file_key = ?", "k1").First(&f).Error)
	assert.Equal(t, model.KindPNG, f.Kind)
	assert.Equal(t, model.StringSlice{"sky", "sunset"}, f.Keywords)
	assert.Equal(t, 800, f.Width)

	// Empty thumb_key falls back to the original key. Use a fresh dest:
	// gorm's First adds the dest's populated primary key as a condition.
	var f2 model.File
	require.NoError(t, db.Where("file_key = ?", "k2").First(&f2).Error)
	assert.Equal(t, "k2", f2.ThumbKey)
}

func TestIngestCSVBadHeader(t *testing.T) {
	db := newTestDB(t)

	_, err := IngestCSV(db, strings.NewReader("foo,bar\nk1,k2\n"))
	assert.ErrorIs(t, err, ErrCSVHeader)

	var count int64
	require.NoError(t, db.Model(model.File{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestIngestCSVDuplicateKeySkipped(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&model.File{FileKey: "dup", ThumbKey: "dup", Kind: model.KindPNG}).Error)

	input := csvHeaderLine + "dup,,copy.png,png,Nature,Copy,,,1,1,1\n"

	res, err := IngestCSV(db, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Skipped)
}
