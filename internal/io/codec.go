package io

import (
	"fmt"

	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
)

// Decode decodes compressed image bytes into a 3-channel BGR buffer.
func Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: no image data", imgerr.ErrDecode)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %v", imgerr.ErrDecode, err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: failed to decode image", imgerr.ErrDecode)
	}
	return mat, nil
}

// Encode compresses mat in the format given by ext (".png", ".jpg", ...).
func Encode(mat gocv.Mat, ext string) ([]byte, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("%w: cannot encode empty image", imgerr.ErrEncode)
	}

	buf, err := gocv.IMEncode(gocv.FileExt(ext), mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imgerr.ErrEncode, err)
	}
	defer buf.Close()

	// GetBytes aliases native memory released by Close.
	out := append([]byte(nil), buf.GetBytes()...)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: encoder produced no bytes", imgerr.ErrEncode)
	}
	return out, nil
}
