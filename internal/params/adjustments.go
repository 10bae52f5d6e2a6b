package params

// Adjustments is the parameter set of the full editing pipeline.
type Adjustments struct {
	Brightness int  `json:"brightness"`
	Sharpness  int  `json:"sharpness" validate:"min=0"`
	Denoise    int  `json:"denoise" validate:"min=0"`
	Red        int  `json:"red" validate:"min=-100,max=100"`
	Green      int  `json:"green" validate:"min=-100,max=100"`
	Blue       int  `json:"blue" validate:"min=-100,max=100"`
	Mono       bool `json:"mono"`
	Crop       Crop `json:"crop"`
}

// DefaultAdjustments returns the identity parameter set.
func DefaultAdjustments() Adjustments {
	return Adjustments{Crop: FullFrame()}
}

// Normalize clamps every field into its valid domain.
func (a Adjustments) Normalize() Adjustments {
	return Adjustments{
		Brightness: a.Brightness,
		Sharpness:  max(0, a.Sharpness),
		Denoise:    max(0, a.Denoise),
		Red:        clampInt(a.Red, GainMin, GainMax),
		Green:      clampInt(a.Green, GainMin, GainMax),
		Blue:       clampInt(a.Blue, GainMin, GainMax),
		Mono:       a.Mono,
		Crop:       a.Crop.Normalize(),
	}
}

// IsIdentity reports whether applying the adjustments leaves pixels unchanged.
func (a Adjustments) IsIdentity() bool {
	n := a.Normalize()
	return n.Brightness == 0 && n.Sharpness == 0 && n.Denoise == 0 &&
		n.Red == 0 && n.Green == 0 && n.Blue == 0 && !n.Mono
}
