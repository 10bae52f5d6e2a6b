package params

import "image"

// Crop is a crop rectangle expressed in fractions of the image size.
type Crop struct {
	Enabled bool    `json:"enabled"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
}

// FullFrame returns a disabled crop covering the whole image.
func FullFrame() Crop {
	return Crop{W: 1, H: 1}
}

// Normalize clamps every coordinate to [0,1] independently.
func (c Crop) Normalize() Crop {
	return Crop{
		Enabled: c.Enabled,
		X:       clampUnit(c.X),
		Y:       clampUnit(c.Y),
		W:       clampUnit(c.W),
		H:       clampUnit(c.H),
	}
}

// Rect converts the crop to pixel coordinates of a width x height buffer.
// The result always lies inside the buffer and is at least 1x1.
func (c Crop) Rect(width, height int) image.Rectangle {
	n := c.Normalize()

	x := int(n.X * float64(width))
	y := int(n.Y * float64(height))
	// x == width only when X == 1; keep at least one column.
	x = clampInt(x, 0, max(0, width-1))
	y = clampInt(y, 0, max(0, height-1))

	w := clampInt(int(n.W*float64(width)), 1, max(1, width-x))
	h := clampInt(int(n.H*float64(height)), 1, max(1, height-y))

	return image.Rect(x, y, x+w, y+h)
}
