package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"valo-editor/internal/core"
	"valo-editor/internal/params"
)

// adjustSlider is a slider with a label that shows its value.
type adjustSlider struct {
	name   string
	slider *widget.Slider
	label  *widget.Label
}

func newAdjustSlider(name string, lo, hi float64, onChanged func()) *adjustSlider {
	s := &adjustSlider{
		name:   name,
		slider: widget.NewSlider(lo, hi),
		label:  widget.NewLabel(""),
	}
	s.slider.Step = 1
	s.slider.OnChanged = func(float64) { onChanged() }
	s.refresh()
	return s
}

func (s *adjustSlider) value() int {
	return int(s.slider.Value)
}

func (s *adjustSlider) refresh() {
	s.label.SetText(fmt.Sprintf("%s: %d", s.name, s.value()))
}

// AdjustPanel edits the full pipeline parameter set and applies presets.
type AdjustPanel struct {
	container fyne.CanvasObject

	presetSelect *widget.Select
	presetNames  map[string]string // label -> preset name

	brightness, sharpness, denoise *adjustSlider
	red, green, blue               *adjustSlider
	mono                           *widget.Check

	onChanged func()
	updating  bool
}

func NewAdjustPanel() *AdjustPanel {
	ap := &AdjustPanel{
		presetNames: make(map[string]string),
	}
	ap.initializeUI()
	return ap
}

func (ap *AdjustPanel) initializeUI() {
	var labels []string
	for _, p := range params.Presets {
		ap.presetNames[p.Label] = p.Name
		labels = append(labels, p.Label)
	}
	ap.presetSelect = widget.NewSelect(labels, ap.applyPreset)

	ap.brightness = newAdjustSlider("Brightness", -100, 100, ap.changed)
	ap.sharpness = newAdjustSlider("Sharpness", params.SliderMin, params.SliderMax, ap.changed)
	ap.denoise = newAdjustSlider("Denoise", params.SliderMin, params.SliderMax, ap.changed)
	ap.red = newAdjustSlider("Red", params.GainMin, params.GainMax, ap.changed)
	ap.green = newAdjustSlider("Green", params.GainMin, params.GainMax, ap.changed)
	ap.blue = newAdjustSlider("Blue", params.GainMin, params.GainMax, ap.changed)
	ap.mono = widget.NewCheck("Monochrome", func(bool) { ap.changed() })

	resetBtn := widget.NewButton("Clear Adjustments", ap.Reset)

	box := container.NewVBox(
		widget.NewForm(widget.NewFormItem("Preset", ap.presetSelect)),
		ap.mono,
	)
	for _, s := range ap.sliders() {
		box.Add(s.label)
		box.Add(s.slider)
	}
	box.Add(resetBtn)
	ap.container = box

	ap.updating = true
	ap.presetSelect.SetSelected(labels[0])
	ap.updating = false
}

func (ap *AdjustPanel) sliders() []*adjustSlider {
	return []*adjustSlider{ap.brightness, ap.sharpness, ap.denoise, ap.red, ap.green, ap.blue}
}

// Adjustments returns the parameter set shown by the controls. Cropping is
// handled by the crop tab, so the crop is always the full frame.
func (ap *AdjustPanel) Adjustments() params.Adjustments {
	return params.Adjustments{
		Brightness: ap.brightness.value(),
		Sharpness:  ap.sharpness.value(),
		Denoise:    ap.denoise.value(),
		Red:        ap.red.value(),
		Green:      ap.green.value(),
		Blue:       ap.blue.value(),
		Mono:       ap.mono.Checked,
		Crop:       params.FullFrame(),
	}
}

// SetAdjustments moves every control to adj and fires a single change.
func (ap *AdjustPanel) SetAdjustments(adj params.Adjustments) {
	adj = adj.Normalize()

	ap.updating = true
	ap.brightness.slider.SetValue(float64(adj.Brightness))
	ap.sharpness.slider.SetValue(float64(adj.Sharpness))
	ap.denoise.slider.SetValue(float64(adj.Denoise))
	ap.red.slider.SetValue(float64(adj.Red))
	ap.green.slider.SetValue(float64(adj.Green))
	ap.blue.slider.SetValue(float64(adj.Blue))
	ap.mono.SetChecked(adj.Mono)
	ap.updating = false

	ap.changed()
}

func (ap *AdjustPanel) applyPreset(label string) {
	if ap.updating {
		return
	}
	ap.SetAdjustments(ap.Adjustments().WithPreset(ap.presetNames[label]))
}

// Reset clears every adjustment and selects the empty preset.
func (ap *AdjustPanel) Reset() {
	ap.updating = true
	ap.presetSelect.SetSelected(params.Presets[0].Label)
	ap.updating = false
	ap.SetAdjustments(params.DefaultAdjustments())
}

func (ap *AdjustPanel) changed() {
	for _, s := range ap.sliders() {
		s.refresh()
	}
	if ap.updating || ap.onChanged == nil {
		return
	}
	ap.onChanged()
}

func (ap *AdjustPanel) Title() string {
	return "Adjust"
}

func (ap *AdjustPanel) Summary() string {
	if ap.presetSelect.Selected != "" && ap.presetSelect.Selected != params.Presets[0].Label {
		return "Adjustments (" + ap.presetSelect.Selected + ")"
	}
	return "Adjustments"
}

func (ap *AdjustPanel) Operation() (core.Operation, error) {
	return core.AdjustmentsOperation(ap.Adjustments()), nil
}

func (ap *AdjustPanel) SetOnChanged(fn func()) {
	ap.onChanged = fn
}

func (ap *AdjustPanel) GetContainer() fyne.CanvasObject {
	return ap.container
}
