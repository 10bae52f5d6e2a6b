package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

const maxPixelValue = 255.0

// MSE implements the mean squared error over luminance
type MSE struct{}

func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	return meanSquaredError(original, processed)
}

func (m *MSE) GetName() string {
	return "MSE"
}

func (m *MSE) GetDescription() string {
	return "Mean Squared Error of luminance"
}

func (m *MSE) IsHigherBetter() bool {
	return false
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

func NewPSNR() *PSNR {
	return &PSNR{}
}

// Calculate returns +Inf for identical images.
func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	mse, err := meanSquaredError(original, processed)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 20 * math.Log10(maxPixelValue/math.Sqrt(mse)), nil
}

func (p *PSNR) GetName() string {
	return "PSNR"
}

func (p *PSNR) GetDescription() string {
	return "Peak Signal-to-Noise Ratio - measures image quality"
}

func (p *PSNR) IsHigherBetter() bool {
	return true
}

func meanSquaredError(original, processed gocv.Mat) (float64, error) {
	if original.Empty() || processed.Empty() {
		return 0, fmt.Errorf("empty images")
	}
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return 0, fmt.Errorf("image dimensions mismatch: %dx%d vs %dx%d",
			original.Cols(), original.Rows(), processed.Cols(), processed.Rows())
	}

	gray1, err := ensureGrayscale(original)
	if err != nil {
		return 0, err
	}
	defer gray1.Close()

	gray2, err := ensureGrayscale(processed)
	if err != nil {
		return 0, err
	}
	defer gray2.Close()

	sumSquaredDiff := 0.0
	for y := 0; y < gray1.Rows(); y++ {
		for x := 0; x < gray1.Cols(); x++ {
			diff := float64(gray1.GetUCharAt(y, x)) - float64(gray2.GetUCharAt(y, x))
			sumSquaredDiff += diff * diff
		}
	}

	return sumSquaredDiff / float64(gray1.Rows()*gray1.Cols()), nil
}

// ensureGrayscale always returns a Mat the caller must close.
func ensureGrayscale(input gocv.Mat) (gocv.Mat, error) {
	var code gocv.ColorConversionCode
	switch input.Channels() {
	case 1:
		return input.Clone(), nil
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported channel count: %d", input.Channels())
	}

	gray := gocv.NewMat()
	if err := gocv.CvtColor(input, &gray, code); err != nil {
		gray.Close()
		return gocv.NewMat(), err
	}
	return gray, nil
}
