package algorithms

import (
	"gocv.io/x/gocv"

	"valo-editor/internal/params"
)

const (
	ToolBlur               = "blur"
	ToolThreshold          = "threshold"
	ToolBrightnessContrast = "brightness_contrast"
	ToolEdges              = "edges"
)

// GaussianBlur is the blur tool
type GaussianBlur struct{}

func NewGaussianBlur() *GaussianBlur {
	return &GaussianBlur{}
}

func (g *GaussianBlur) Apply(input gocv.Mat, p map[string]interface{}) (gocv.Mat, error) {
	return Blur(input, params.Int(p, "kernel_size", 9), params.Float(p, "sigma", 1.0))
}

func (g *GaussianBlur) FromSliders(primary, secondary int) map[string]interface{} {
	return map[string]interface{}{
		"kernel_size": params.OddKernel(primary),
		"sigma":       params.SliderToSigma(secondary),
	}
}

func (g *GaussianBlur) GetDefaultSliders() (int, int) {
	return 9, 10
}

func (g *GaussianBlur) GetName() string {
	return "Blur (Gaussian)"
}

func (g *GaussianBlur) GetDescription() string {
	return "Gaussian smoothing with an odd square kernel"
}

func (g *GaussianBlur) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{Name: "kernel_size", Label: "Kernel size", Min: 1, Max: 31, Default: 9,
			Description: "Size of the Gaussian kernel (forced odd)"},
		{Name: "sigma", Label: "Sigma", Min: 0, Max: 50, Default: 10,
			Description: "Standard deviation in tenths; 0 derives it from the kernel"},
	}
}

// BinaryThreshold is the threshold tool
type BinaryThreshold struct{}

func NewBinaryThreshold() *BinaryThreshold {
	return &BinaryThreshold{}
}

func (b *BinaryThreshold) Apply(input gocv.Mat, p map[string]interface{}) (gocv.Mat, error) {
	return Threshold(input, params.Int(p, "threshold", 127), params.Bool(p, "invert", false))
}

func (b *BinaryThreshold) FromSliders(primary, secondary int) map[string]interface{} {
	return map[string]interface{}{
		"threshold": params.SliderToLevel(primary),
		"invert":    secondary > 50,
	}
}

func (b *BinaryThreshold) GetDefaultSliders() (int, int) {
	return 50, 0
}

func (b *BinaryThreshold) GetName() string {
	return "Threshold (Binary)"
}

func (b *BinaryThreshold) GetDescription() string {
	return "Binarize the luminance at a fixed level"
}

func (b *BinaryThreshold) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{Name: "threshold", Label: "Threshold", Min: 0, Max: 100, Default: 50,
			Description: "Threshold level as a percentage of 255"},
		{Name: "invert", Label: "Invert", Min: 0, Max: 100, Default: 0,
			Description: "Inverts the output above 50"},
	}
}

// LinearBrightnessContrast is the brightness/contrast tool
type LinearBrightnessContrast struct{}

func NewBrightnessContrast() *LinearBrightnessContrast {
	return &LinearBrightnessContrast{}
}

func (l *LinearBrightnessContrast) Apply(input gocv.Mat, p map[string]interface{}) (gocv.Mat, error) {
	return BrightnessContrast(input, params.Float(p, "alpha", 1.0), params.Int(p, "beta", 0))
}

func (l *LinearBrightnessContrast) FromSliders(primary, secondary int) map[string]interface{} {
	return map[string]interface{}{
		"beta":  params.SliderToBeta(primary),
		"alpha": params.SliderToAlpha(secondary),
	}
}

func (l *LinearBrightnessContrast) GetDefaultSliders() (int, int) {
	return 50, 50
}

func (l *LinearBrightnessContrast) GetName() string {
	return "Brightness / Contrast"
}

func (l *LinearBrightnessContrast) GetDescription() string {
	return "Linear gain and offset, saturated to 0..255"
}

func (l *LinearBrightnessContrast) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{Name: "beta", Label: "Brightness", Min: 0, Max: 100, Default: 50,
			Description: "Offset from -200 to +200"},
		{Name: "alpha", Label: "Contrast", Min: 0, Max: 100, Default: 50,
			Description: "Gain from 0.5 to 2.0"},
	}
}

// CannyEdges is the edge detection tool
type CannyEdges struct{}

func NewCannyEdges() *CannyEdges {
	return &CannyEdges{}
}

func (c *CannyEdges) Apply(input gocv.Mat, p map[string]interface{}) (gocv.Mat, error) {
	return Edges(input, params.Int(p, "low_threshold", 51), params.Int(p, "high_threshold", 153))
}

func (c *CannyEdges) FromSliders(primary, secondary int) map[string]interface{} {
	low, high := params.OrderThresholds(params.SliderToLevel(primary), params.SliderToLevel(secondary))
	return map[string]interface{}{
		"low_threshold":  low,
		"high_threshold": high,
	}
}

func (c *CannyEdges) GetDefaultSliders() (int, int) {
	return 20, 60
}

func (c *CannyEdges) GetName() string {
	return "Edge (Canny)"
}

func (c *CannyEdges) GetDescription() string {
	return "Canny hysteresis edge detection"
}

func (c *CannyEdges) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{Name: "low_threshold", Label: "Low threshold", Min: 0, Max: 100, Default: 20,
			Description: "Lower hysteresis threshold as a percentage of 255"},
		{Name: "high_threshold", Label: "High threshold", Min: 0, Max: 100, Default: 60,
			Description: "Upper hysteresis threshold, raised to the lower one if smaller"},
	}
}
