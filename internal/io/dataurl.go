package io

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
)

const pngDataURLPrefix = "data:image/png;base64,"

var dataURLHeader = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)

// DataURLBytes returns the raw bytes carried by a data URL. Anything before the
// first comma is treated as the header.
func DataURLBytes(dataURL string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURL, ",")
	if !found {
		return nil, fmt.Errorf("%w: invalid data URL", imgerr.ErrDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image: %v", imgerr.ErrDecode, err)
	}
	return raw, nil
}

// StripDataURLHeader removes a "data:image/...;base64," prefix if present.
func StripDataURLHeader(s string) string {
	return dataURLHeader.ReplaceAllString(s, "")
}

// SaveBytes returns the bytes to persist for a /save style request. Unlike
// DataURLBytes it accepts a bare base64 payload without a header.
func SaveBytes(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(StripDataURLHeader(s)))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 image", imgerr.ErrDecode)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing image", imgerr.ErrInvalidInput)
	}
	return raw, nil
}

// DecodeDataURL decodes a data URL into a BGR buffer.
func DecodeDataURL(dataURL string) (gocv.Mat, error) {
	raw, err := DataURLBytes(dataURL)
	if err != nil {
		return gocv.NewMat(), err
	}
	return Decode(raw)
}

// EncodeDataURL encodes mat as a PNG data URL. PNG keeps an alpha channel intact.
func EncodeDataURL(mat gocv.Mat) (string, error) {
	data, err := Encode(mat, string(gocv.PNGFileExt))
	if err != nil {
		return "", err
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}
