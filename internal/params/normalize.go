// Parameter normalization: slider domain to transform domain
package params

const (
	SliderMin = 0
	SliderMax = 100

	LevelMax = 255

	GainMin = -100
	GainMax = 100
)

// OddKernel forces a kernel size to be odd and >= 1.
func OddKernel(x int) int {
	if x < 1 {
		return 1
	}
	if x%2 == 1 {
		return x
	}
	return x + 1
}

// SliderToLevel maps a 0..100 slider to a 0..255 intensity level.
// The fractional part is dropped, so 50 maps to 127.
func SliderToLevel(v int) int {
	v = clampInt(v, SliderMin, SliderMax)
	return v * LevelMax / SliderMax
}

// SliderToBeta maps a 0..100 slider to a brightness offset in -200..200.
func SliderToBeta(v int) int {
	return (v - 50) * 4
}

// SliderToAlpha maps a 0..100 slider to a contrast gain in 0.5..2.0.
func SliderToAlpha(v int) float64 {
	return 0.5 + float64(v)/100.0*1.5
}

// SliderToSigma maps the blur sigma slider (tenths) to a non-negative sigma.
func SliderToSigma(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v) / 10.0
}

// Sigma floors a Gaussian sigma at zero. Zero lets OpenCV derive it from the kernel.
func Sigma(s float64) float64 {
	if s < 0 {
		return 0
	}
	return s
}

// Level clamps an intensity to 0..255.
func Level(v int) int {
	return clampInt(v, 0, LevelMax)
}

// OrderThresholds clamps both thresholds to 0..255 and raises high to low when
// the pair is inverted.
func OrderThresholds(low, high int) (int, int) {
	low = Level(low)
	high = Level(high)
	if high < low {
		high = low
	}
	return low, high
}

// DenoiseKernel returns the median kernel for a denoise strength. Always odd.
func DenoiseKernel(v int) int {
	if v < 0 {
		v = 0
	}
	return max(1, (v/10)*2+1)
}

// SharpenCenter returns the center weight of the 3x3 sharpening kernel.
func SharpenCenter(v int) float64 {
	return 5 + float64(v)/10.0
}

// ChannelGain maps a -100..100 channel setting to a multiplicative gain.
func ChannelGain(v int) float64 {
	return 1 + float64(clampInt(v, GainMin, GainMax))/100.0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
