package params

// Preset is a named look applied on top of the current adjustments.
type Preset struct {
	Name        string
	Label       string
	Adjustments Adjustments
}

// PresetNone is the preset that clears every color and tone adjustment.
const PresetNone = "none"

// Presets lists the filter presets in display order. Crop is never part of a
// preset.
var Presets = []Preset{
	{Name: PresetNone, Label: "None"},
	{Name: "mono", Label: "Mono", Adjustments: Adjustments{Mono: true}},
	{Name: "dramatic-warm", Label: "Dramatic warm",
		Adjustments: Adjustments{Red: 25, Green: 5, Blue: -15, Sharpness: 20}},
	{Name: "noir", Label: "Noir",
		Adjustments: Adjustments{Mono: true, Sharpness: 35, Brightness: -5}},
	{Name: "dramatic-cool", Label: "Dramatic cool",
		Adjustments: Adjustments{Red: -10, Green: 5, Blue: 25}},
}

// LookupPreset returns the preset called name.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// WithPreset replaces every field except Crop with the preset's values.
// Unknown names behave like PresetNone.
func (a Adjustments) WithPreset(name string) Adjustments {
	p, ok := LookupPreset(name)
	if !ok {
		p, _ = LookupPreset(PresetNone)
	}
	out := p.Adjustments
	out.Crop = a.Crop
	return out
}

// CropAspect is a crop shape offered by the editor. A zero Ratio is free form.
type CropAspect struct {
	Label string
	Ratio float64
}

var CropAspects = []CropAspect{
	{Label: "Free", Ratio: 0},
	{Label: "1:1", Ratio: 1},
	{Label: "4:3", Ratio: 4.0 / 3.0},
	{Label: "3:2", Ratio: 3.0 / 2.0},
	{Label: "16:9", Ratio: 16.0 / 9.0},
}

// centeredCropFill is the share of each side a centered crop may use.
const centeredCropFill = 0.8

// CenteredCrop returns an enabled crop centered on a width x height image.
// With a positive aspect (width/height) the rectangle is the largest one of that
// shape fitting in 80% of each side; otherwise it covers 80% of each side.
func CenteredCrop(aspect float64, width, height int) Crop {
	w, h := centeredCropFill, centeredCropFill

	if aspect > 0 && width > 0 && height > 0 {
		W, H := float64(width), float64(height)
		pxW := centeredCropFill * W
		pxH := pxW / aspect
		if pxH > centeredCropFill*H {
			pxH = centeredCropFill * H
			pxW = pxH * aspect
		}
		w = pxW / W
		h = pxH / H
	}

	return Crop{
		Enabled: true,
		X:       (1 - w) / 2,
		Y:       (1 - h) / 2,
		W:       w,
		H:       h,
	}
}
