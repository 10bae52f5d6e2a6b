package algorithms

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
	"valo-editor/internal/params"
)

func uniform(t *testing.T, rows, cols int, b, g, r float64) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), rows, cols, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return mat
}

func pixel(m gocv.Mat, row, col int) []uint8 {
	v := m.GetVecbAt(row, col)
	return []uint8(v)
}

func TestTransformsRejectEmptyInput(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	calls := map[string]func() (gocv.Mat, error){
		"blur":       func() (gocv.Mat, error) { return Blur(empty, 3, 0) },
		"threshold":  func() (gocv.Mat, error) { return Threshold(empty, 127, false) },
		"brightness": func() (gocv.Mat, error) { return BrightnessContrast(empty, 1, 0) },
		"edges":      func() (gocv.Mat, error) { return Edges(empty, 10, 20) },
		"sharpen":    func() (gocv.Mat, error) { return Sharpen(empty, 10) },
		"denoise":    func() (gocv.Mat, error) { return Denoise(empty, 10) },
		"rgb":        func() (gocv.Mat, error) { return RGBGain(empty, 0, 0, 0) },
		"grayscale":  func() (gocv.Mat, error) { return Grayscale(empty) },
		"remove_bg":  func() (gocv.Mat, error) { return RemoveBackground(empty) },
		"crop":       func() (gocv.Mat, error) { return Crop(empty, params.Crop{Enabled: true, W: 1, H: 1}) },
	}
	for name, call := range calls {
		out, err := call()
		require.ErrorIs(t, err, imgerr.ErrInvalidInput, name)
		out.Close()
	}
}

func TestRGBGainZeroIsIdentity(t *testing.T) {
	img := uniform(t, 10, 10, 30, 128, 250)

	out, err := RGBGain(img, 0, 0, 0)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, img.ToBytes(), out.ToBytes())
}

func TestRGBGainScalesRedOnly(t *testing.T) {
	img := uniform(t, 10, 10, 128, 128, 128)

	out, err := RGBGain(img, 50, 0, 0)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 3, out.Channels())
	// BGR order: red is the last channel.
	require.Equal(t, []uint8{128, 128, 192}, pixel(out, 5, 5))
	require.Equal(t, []uint8{128, 128, 128}, pixel(img, 5, 5))
}

func TestRGBGainClamps(t *testing.T) {
	img := uniform(t, 4, 4, 200, 200, 200)

	out, err := RGBGain(img, 100, -100, 0)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, []uint8{200, 0, 255}, pixel(out, 0, 0))
}

func TestBrightnessContrastSaturates(t *testing.T) {
	bright := uniform(t, 4, 4, 200, 200, 200)
	out, err := BrightnessContrast(bright, 1.0, 100)
	require.NoError(t, err)
	defer out.Close()
	require.Equal(t, []uint8{255, 255, 255}, pixel(out, 1, 1))

	dark := uniform(t, 4, 4, 10, 10, 10)
	out2, err := BrightnessContrast(dark, 1.0, -200)
	require.NoError(t, err)
	defer out2.Close()
	require.Equal(t, []uint8{0, 0, 0}, pixel(out2, 1, 1))

	out3, err := BrightnessContrast(dark, 2.0, 5)
	require.NoError(t, err)
	defer out3.Close()
	require.Equal(t, []uint8{25, 25, 25}, pixel(out3, 1, 1))
}

func TestThresholdKeepsChannelCount(t *testing.T) {
	img := uniform(t, 8, 8, 200, 200, 200)

	out, err := Threshold(img, 127, false)
	require.NoError(t, err)
	defer out.Close()
	require.Equal(t, 3, out.Channels())
	require.Equal(t, []uint8{255, 255, 255}, pixel(out, 0, 0))

	inv, err := Threshold(img, 127, true)
	require.NoError(t, err)
	defer inv.Close()
	require.Equal(t, []uint8{0, 0, 0}, pixel(inv, 0, 0))
}

func TestEdgesOnFlatImageAreEmpty(t *testing.T) {
	img := uniform(t, 16, 16, 90, 90, 90)

	out, err := Edges(img, 200, 10)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 3, out.Channels())
	require.Equal(t, 0, gocv.CountNonZero(toGrayForTest(t, out)))
}

func TestSharpenAndDenoiseZeroAreNoOps(t *testing.T) {
	img := uniform(t, 12, 12, 10, 100, 200)

	sharp, err := Sharpen(img, 0)
	require.NoError(t, err)
	defer sharp.Close()
	require.Equal(t, img.ToBytes(), sharp.ToBytes())

	clean, err := Denoise(img, 0)
	require.NoError(t, err)
	defer clean.Close()
	require.Equal(t, img.ToBytes(), clean.ToBytes())
}

func TestSharpenAndDenoiseKeepShape(t *testing.T) {
	img := uniform(t, 12, 14, 10, 100, 200)

	sharp, err := Sharpen(img, 30)
	require.NoError(t, err)
	defer sharp.Close()
	require.Equal(t, img.Rows(), sharp.Rows())
	require.Equal(t, img.Cols(), sharp.Cols())
	require.Equal(t, img.Type(), sharp.Type())

	clean, err := Denoise(img, 35)
	require.NoError(t, err)
	defer clean.Close()
	require.Equal(t, img.Rows(), clean.Rows())
	require.Equal(t, img.Cols(), clean.Cols())
	// A median over a flat image is the image itself.
	require.Equal(t, img.ToBytes(), clean.ToBytes())
}

func TestBlurFlatImageUnchanged(t *testing.T) {
	img := uniform(t, 20, 20, 50, 60, 70)

	out, err := Blur(img, 4, 0)
	require.NoError(t, err)
	defer out.Close()
	require.Equal(t, img.ToBytes(), out.ToBytes())
}

func TestGrayscaleExpandsBack(t *testing.T) {
	img := uniform(t, 6, 6, 0, 0, 255)

	out, err := Grayscale(img)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 3, out.Channels())
	px := pixel(out, 2, 2)
	require.Equal(t, px[0], px[1])
	require.Equal(t, px[1], px[2])
}

func TestCrop(t *testing.T) {
	img := uniform(t, 100, 100, 1, 2, 3)
	gocv.Rectangle(&img, image.Rect(25, 25, 26, 26), color.RGBA{R: 255, G: 255, B: 255}, -1)

	out, err := Crop(img, params.Crop{Enabled: true, X: 0.25, Y: 0.25, W: 0.5, H: 0.5})
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 50, out.Rows())
	require.Equal(t, 50, out.Cols())
	require.Equal(t, []uint8{255, 255, 255}, pixel(out, 0, 0))

	same, err := Crop(img, params.Crop{Enabled: false, X: 0.5, W: 0.1, H: 0.1})
	require.NoError(t, err)
	defer same.Close()
	require.Equal(t, 100, same.Cols())
}

func TestRemoveBackgroundTooSmall(t *testing.T) {
	img := uniform(t, 15, 40, 100, 100, 100)

	out, err := RemoveBackground(img)
	require.ErrorIs(t, err, imgerr.ErrSegmentation)
	out.Close()
}

func TestRemoveBackgroundProducesAlpha(t *testing.T) {
	img := uniform(t, 80, 80, 20, 30, 40)
	gocv.Rectangle(&img, image.Rect(0, 0, 80, 40), color.RGBA{R: 60, G: 50, B: 30}, -1)
	gocv.Rectangle(&img, image.Rect(30, 30, 50, 50), color.RGBA{R: 240, G: 220, B: 200}, -1)
	gocv.Rectangle(&img, image.Rect(35, 35, 45, 45), color.RGBA{R: 200, G: 40, B: 90}, -1)

	out, err := RemoveBackground(img)
	require.NoError(t, err)
	defer out.Close()

	require.Equal(t, 4, out.Channels())
	require.Equal(t, img.Rows(), out.Rows())
	require.Equal(t, img.Cols(), out.Cols())
	// Outside the seed rectangle is definite background.
	require.Equal(t, []uint8{0, 0, 0, 0}, pixel(out, 2, 2))
}

func toGrayForTest(t *testing.T, m gocv.Mat) gocv.Mat {
	t.Helper()
	gray, err := toGray(m)
	require.NoError(t, err)
	t.Cleanup(func() { gray.Close() })
	return gray
}

func TestLibraryFailuresAreReported(t *testing.T) {
	// Median blur above 5x5, Canny and GrabCut all require 8-bit input.
	float := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0.5, 0.5, 0.5, 0), 32, 32, gocv.MatTypeCV32FC3)
	defer float.Close()

	out, err := Denoise(float, 30)
	require.ErrorContains(t, err, "median filter")
	out.Close()

	out, err = Edges(float, 20, 60)
	require.ErrorContains(t, err, "canny")
	out.Close()

	out, err = RemoveBackground(float)
	require.ErrorIs(t, err, imgerr.ErrSegmentation)
	out.Close()
}
