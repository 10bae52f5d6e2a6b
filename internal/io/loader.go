// Image loading and saving
package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
)

var supportedFormats = []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".webp"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImage reads and decodes a color image.
func (il *ImageLoader) LoadImage(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	if !IsSupportedImageFormat(path) {
		return gocv.NewMat(), fmt.Errorf("%w: unsupported image format: %s", imgerr.ErrDecode, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: read %s: %v", imgerr.ErrDecode, path, err)
	}

	mat, err := Decode(data)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("load %s: %w", path, err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"size":     humanize.Bytes(uint64(len(data))),
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// SaveImage encodes mat in the format named by the path's extension and writes
// it, creating parent directories as needed.
func (il *ImageLoader) SaveImage(mat gocv.Mat, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if !IsSupportedImageFormat(path) {
		return fmt.Errorf("%w: unsupported image format: %s", imgerr.ErrEncode, path)
	}

	data, err := Encode(mat, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return err
	}

	if err := WriteFile(path, data); err != nil {
		return err
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"size":     humanize.Bytes(uint64(len(data))),
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

// WriteFile writes data to path, creating intermediate directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", imgerr.ErrIO, dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", imgerr.ErrIO, path, err)
	}
	return nil
}

func IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}

func GetSupportedExtensions() []string {
	return append([]string(nil), supportedFormats...)
}
