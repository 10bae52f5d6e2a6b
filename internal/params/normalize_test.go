package params

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOddKernel(t *testing.T) {
	cases := map[int]int{-5: 1, 0: 1, 1: 1, 2: 3, 3: 3, 8: 9, 31: 31}
	for in, want := range cases {
		require.Equal(t, want, OddKernel(in), "OddKernel(%d)", in)
	}

	for v := -10; v <= 200; v++ {
		k := OddKernel(v)
		require.GreaterOrEqual(t, k, 1)
		require.Equal(t, 1, k%2)
		require.Equal(t, k, OddKernel(k))
	}
}

func TestSliderToLevel(t *testing.T) {
	require.Equal(t, 0, SliderToLevel(0))
	require.Equal(t, 127, SliderToLevel(50))
	require.Equal(t, 255, SliderToLevel(100))
	require.Equal(t, 255, SliderToLevel(150))
	require.Equal(t, 0, SliderToLevel(-3))
}

func TestSliderToBetaAndAlpha(t *testing.T) {
	require.Equal(t, 0, SliderToBeta(50))
	require.Equal(t, 200, SliderToBeta(100))
	require.Equal(t, -200, SliderToBeta(0))

	require.InDelta(t, 0.5, SliderToAlpha(0), 1e-9)
	require.InDelta(t, 1.25, SliderToAlpha(50), 1e-9)
	require.InDelta(t, 2.0, SliderToAlpha(100), 1e-9)
}

func TestOrderThresholds(t *testing.T) {
	for low := -20; low <= 280; low += 7 {
		for high := -20; high <= 280; high += 11 {
			l, h := OrderThresholds(low, high)
			require.GreaterOrEqual(t, h, l)
			require.GreaterOrEqual(t, l, 0)
			require.LessOrEqual(t, h, LevelMax)

			l2, h2 := OrderThresholds(l, h)
			require.Equal(t, l, l2)
			require.Equal(t, h, h2)
		}
	}

	l, h := OrderThresholds(150, 40)
	require.Equal(t, 150, l)
	require.Equal(t, 150, h)
}

func TestDenoiseKernel(t *testing.T) {
	require.Equal(t, 1, DenoiseKernel(0))
	require.Equal(t, 1, DenoiseKernel(9))
	require.Equal(t, 3, DenoiseKernel(10))
	require.Equal(t, 11, DenoiseKernel(50))
	for v := 0; v <= 100; v++ {
		require.Equal(t, 1, DenoiseKernel(v)%2)
	}
}

func TestSharpenCenterAndGain(t *testing.T) {
	require.InDelta(t, 5.0, SharpenCenter(0), 1e-9)
	require.InDelta(t, 10.0, SharpenCenter(50), 1e-9)

	require.InDelta(t, 1.0, ChannelGain(0), 1e-9)
	require.InDelta(t, 1.5, ChannelGain(50), 1e-9)
	require.InDelta(t, 0.0, ChannelGain(-100), 1e-9)
	require.InDelta(t, 2.0, ChannelGain(400), 1e-9)
}

func TestCropRect(t *testing.T) {
	c := Crop{Enabled: true, X: 0.25, Y: 0.25, W: 0.5, H: 0.5}
	require.Equal(t, image.Rect(25, 25, 75, 75), c.Rect(100, 100))
}

func TestCropRectStaysInBounds(t *testing.T) {
	values := []float64{-1, -0.1, 0, 0.1, 0.33, 0.5, 0.99, 1, 1.5, 7}
	sizes := []image.Point{{1, 1}, {3, 7}, {100, 100}, {640, 480}}

	for _, size := range sizes {
		bounds := image.Rect(0, 0, size.X, size.Y)
		for _, x := range values {
			for _, y := range values {
				for _, w := range values {
					for _, h := range values {
						c := Crop{Enabled: true, X: x, Y: y, W: w, H: h}
						r := c.Rect(size.X, size.Y)
						require.True(t, r.In(bounds), "crop %+v on %v gave %v", c, size, r)
						require.GreaterOrEqual(t, r.Dx()*r.Dy(), 1)
					}
				}
			}
		}
	}
}

func TestCropNormalizeIdempotent(t *testing.T) {
	c := Crop{Enabled: true, X: -3, Y: 0.4, W: 2, H: 0.2}
	n := c.Normalize()
	require.Equal(t, Crop{Enabled: true, X: 0, Y: 0.4, W: 1, H: 0.2}, n)
	require.Equal(t, n, n.Normalize())
}

func TestAdjustmentsNormalize(t *testing.T) {
	a := Adjustments{Sharpness: -4, Denoise: -1, Red: 300, Green: -300, Blue: 20}
	n := a.Normalize()
	require.Equal(t, 0, n.Sharpness)
	require.Equal(t, 0, n.Denoise)
	require.Equal(t, 100, n.Red)
	require.Equal(t, -100, n.Green)
	require.Equal(t, 20, n.Blue)
	require.Equal(t, n, n.Normalize())

	require.True(t, DefaultAdjustments().IsIdentity())
	require.False(t, Adjustments{Mono: true}.IsIdentity())
}

func TestMapValues(t *testing.T) {
	p := map[string]interface{}{
		"a": 3,
		"b": 4.6,
		"c": true,
		"d": "nope",
	}
	require.Equal(t, 3, Int(p, "a", 0))
	require.Equal(t, 5, Int(p, "b", 0))
	require.Equal(t, 9, Int(p, "d", 9))
	require.Equal(t, 9, Int(p, "missing", 9))
	require.InDelta(t, 3.0, Float(p, "a", 0), 1e-9)
	require.True(t, Bool(p, "c", false))
	require.False(t, Bool(p, "a", false))
}
