// Image transforms over gocv.Mat buffers
package algorithms

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"valo-editor/internal/imgerr"
	"valo-editor/internal/params"
)

const (
	maxLevel = 255

	// GrabCut seeds its rectangle this many pixels inside every border.
	backgroundInset    = 10
	minSegmentSize     = 2*backgroundInset + 1
	grabCutIterations  = 5
	grabCutForeground  = 1
	grabCutProbableFgd = 3
)

// Every transform returns a newly allocated Mat owned by the caller. The input
// is never modified.

// Blur applies Gaussian smoothing. A zero sigma is derived from the kernel size.
func Blur(input gocv.Mat, kernelSize int, sigma float64) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	k := params.OddKernel(kernelSize)
	output := gocv.NewMat()
	if err := gocv.GaussianBlur(input, &output, image.Pt(k, k), params.Sigma(sigma), 0, gocv.BorderDefault); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("gaussian blur: %w", err)
	}
	return output, nil
}

// Threshold binarizes the luminance at level. Pixels above level become 255,
// the rest 0; invert flips the comparison. The result has the input's channel count.
func Threshold(input gocv.Mat, level int, invert bool) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	mode := gocv.ThresholdBinary
	if invert {
		mode = gocv.ThresholdBinaryInv
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, float32(params.Level(level)), maxLevel, mode)

	return fromGray(binary, input.Channels())
}

// BrightnessContrast computes clamp(alpha*x + beta, 0, 255) per channel.
func BrightnessContrast(input gocv.Mat, alpha float64, beta int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	output := gocv.NewMat()
	input.ConvertToWithParams(&output, gocv.MatTypeCV8U, float32(alpha), float32(beta))
	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("brightness/contrast produced an empty image")
	}
	return output, nil
}

// Brightness adds a constant offset with unit gain.
func Brightness(input gocv.Mat, offset int) (gocv.Mat, error) {
	return BrightnessContrast(input, 1.0, offset)
}

// Edges runs Canny hysteresis edge detection on the luminance.
func Edges(input gocv.Mat, low, high int) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	low, high = params.OrderThresholds(low, high)

	edges := gocv.NewMat()
	defer edges.Close()
	if err := gocv.Canny(gray, &edges, float32(low), float32(high)); err != nil {
		return gocv.NewMat(), fmt.Errorf("canny: %w", err)
	}
	if edges.Empty() {
		return gocv.NewMat(), fmt.Errorf("edge detection produced an empty image")
	}

	return fromGray(edges, input.Channels())
}

// Sharpen convolves with a 3x3 high-pass kernel whose center weight grows with value.
func Sharpen(input gocv.Mat, value int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if value <= 0 {
		return input.Clone(), nil
	}

	kernel := gocv.Zeros(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	kernel.SetFloatAt(0, 1, -1)
	kernel.SetFloatAt(1, 0, -1)
	kernel.SetFloatAt(1, 1, float32(params.SharpenCenter(value)))
	kernel.SetFloatAt(1, 2, -1)
	kernel.SetFloatAt(2, 1, -1)

	output := gocv.NewMat()
	if err := gocv.Filter2D(input, &output, -1, kernel, image.Point{X: -1, Y: -1}, 0, gocv.BorderDefault); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("sharpen: %w", err)
	}
	return output, nil
}

// Denoise applies a median filter sized from value.
func Denoise(input gocv.Mat, value int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if value <= 0 {
		return input.Clone(), nil
	}

	output := gocv.NewMat()
	if err := gocv.MedianBlur(input, &output, params.DenoiseKernel(value)); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("median filter: %w", err)
	}
	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("median filter produced an empty image")
	}
	return output, nil
}

// RGBGain scales the red, green and blue channels by 1+v/100 each, saturating
// at the 8-bit range. Channel order is BGR.
func RGBGain(input gocv.Mat, r, g, b int) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if input.Channels() < 3 {
		return gocv.NewMat(), fmt.Errorf("%w: rgb gain needs a color image, got %d channel(s)",
			imgerr.ErrInvalidInput, input.Channels())
	}

	planes := gocv.Split(input)
	defer func() {
		for _, p := range planes {
			p.Close()
		}
	}()

	gains := []float64{params.ChannelGain(b), params.ChannelGain(g), params.ChannelGain(r)}
	for i, gain := range gains {
		scaled := gocv.NewMat()
		planes[i].ConvertToWithParams(&scaled, gocv.MatTypeCV8U, float32(gain), 0)
		planes[i].Close()
		planes[i] = scaled
	}

	output := gocv.NewMat()
	gocv.Merge(planes, &output)
	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("rgb gain produced an empty image")
	}
	return output, nil
}

// Grayscale converts to luminance and expands back to the input's channel count.
func Grayscale(input gocv.Mat) (gocv.Mat, error) {
	gray, err := toGray(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()
	return fromGray(gray, input.Channels())
}

// RemoveBackground segments the image with GrabCut seeded by a rectangle inset
// from every border and returns a BGRA image whose background is transparent black.
func RemoveBackground(input gocv.Mat) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	rows, cols := input.Rows(), input.Cols()
	if rows < minSegmentSize || cols < minSegmentSize {
		return gocv.NewMat(), fmt.Errorf("%w: image %dx%d is smaller than %dx%d",
			imgerr.ErrSegmentation, cols, rows, minSegmentSize, minSegmentSize)
	}

	bgr, err := toBGR(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer bgr.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	bgdModel := gocv.NewMat()
	defer bgdModel.Close()
	fgdModel := gocv.NewMat()
	defer fgdModel.Close()

	rect := image.Rect(backgroundInset, backgroundInset, cols-backgroundInset, rows-backgroundInset)
	if err := gocv.GrabCut(bgr, &mask, rect, &bgdModel, &fgdModel, grabCutIterations, gocv.GCInitWithRect); err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: grabcut: %v", imgerr.ErrSegmentation, err)
	}
	if mask.Empty() || mask.Rows() != rows || mask.Cols() != cols {
		return gocv.NewMat(), fmt.Errorf("%w: grabcut did not produce a mask", imgerr.ErrSegmentation)
	}

	alpha := gocv.Zeros(rows, cols, gocv.MatTypeCV8U)
	defer alpha.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			switch mask.GetUCharAt(y, x) {
			case grabCutForeground, grabCutProbableFgd:
				alpha.SetUCharAt(y, x, maxLevel)
			}
		}
	}

	foreground := gocv.Zeros(rows, cols, bgr.Type())
	defer foreground.Close()
	bgr.CopyToWithMask(&foreground, alpha)

	planes := gocv.Split(foreground)
	defer func() {
		for _, p := range planes {
			p.Close()
		}
	}()

	output := gocv.NewMat()
	gocv.Merge(append(planes, alpha), &output)
	if output.Empty() {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("%w: failed to assemble transparent image", imgerr.ErrSegmentation)
	}
	return output, nil
}

// Crop slices the image to the crop rectangle. A disabled crop returns a copy.
func Crop(input gocv.Mat, crop params.Crop) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}
	if !crop.Enabled {
		return input.Clone(), nil
	}

	region := input.Region(crop.Rect(input.Cols(), input.Rows()))
	defer region.Close()
	return region.Clone(), nil
}

func checkInput(input gocv.Mat) error {
	if input.Empty() {
		return fmt.Errorf("%w: input image is empty", imgerr.ErrInvalidInput)
	}
	return nil
}

func toGray(input gocv.Mat) (gocv.Mat, error) {
	if err := checkInput(input); err != nil {
		return gocv.NewMat(), err
	}

	var code gocv.ColorConversionCode
	switch input.Channels() {
	case 1:
		return input.Clone(), nil
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return gocv.NewMat(), fmt.Errorf("%w: unsupported channel count %d", imgerr.ErrInvalidInput, input.Channels())
	}

	gray := gocv.NewMat()
	if err := gocv.CvtColor(input, &gray, code); err != nil {
		gray.Close()
		return gocv.NewMat(), fmt.Errorf("convert to grayscale: %w", err)
	}
	return gray, nil
}

func fromGray(gray gocv.Mat, channels int) (gocv.Mat, error) {
	var code gocv.ColorConversionCode
	switch channels {
	case 1:
		return gray.Clone(), nil
	case 4:
		code = gocv.ColorGrayToBGRA
	default:
		code = gocv.ColorGrayToBGR
	}

	output := gocv.NewMat()
	if err := gocv.CvtColor(gray, &output, code); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("expand grayscale: %w", err)
	}
	return output, nil
}

func toBGR(input gocv.Mat) (gocv.Mat, error) {
	var code gocv.ColorConversionCode
	switch input.Channels() {
	case 3:
		return input.Clone(), nil
	case 1:
		code = gocv.ColorGrayToBGR
	case 4:
		code = gocv.ColorBGRAToBGR
	default:
		return gocv.NewMat(), fmt.Errorf("%w: unsupported channel count %d", imgerr.ErrInvalidInput, input.Channels())
	}

	output := gocv.NewMat()
	if err := gocv.CvtColor(input, &output, code); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("convert to BGR: %w", err)
	}
	return output, nil
}
