package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"valo-editor/internal/core"
	"valo-editor/internal/params"
)

// CropPanel picks a crop rectangle, either from an aspect preset or by hand.
// Coordinates are percentages of the current buffer.
type CropPanel struct {
	container fyne.CanvasObject

	aspectSelect *widget.Select
	aspects      map[string]float64 // label -> width/height ratio

	x, y, w, h *widget.Slider
	rectLabel  *widget.Label

	width, height int

	onChanged func()
	updating  bool
}

func NewCropPanel() *CropPanel {
	cp := &CropPanel{
		aspects: make(map[string]float64),
	}
	cp.initializeUI()
	return cp
}

func (cp *CropPanel) initializeUI() {
	var labels []string
	for _, a := range params.CropAspects {
		cp.aspects[a.Label] = a.Ratio
		labels = append(labels, a.Label)
	}
	cp.aspectSelect = widget.NewSelect(labels, func(string) { cp.applyAspect() })

	cp.x = newPercentSlider(cp.changed)
	cp.y = newPercentSlider(cp.changed)
	cp.w = newPercentSlider(cp.changed)
	cp.h = newPercentSlider(cp.changed)
	cp.rectLabel = widget.NewLabel("--")

	cp.container = container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Aspect", cp.aspectSelect),
			widget.NewFormItem("Left %", cp.x),
			widget.NewFormItem("Top %", cp.y),
			widget.NewFormItem("Width %", cp.w),
			widget.NewFormItem("Height %", cp.h),
		),
		cp.rectLabel,
	)

	cp.updating = true
	cp.aspectSelect.SetSelected(labels[0])
	cp.updating = false
	cp.fitAspect()
}

func newPercentSlider(onChanged func()) *widget.Slider {
	s := widget.NewSlider(0, 100)
	s.Step = 0.1
	s.OnChanged = func(float64) { onChanged() }
	return s
}

// SetImageSize sets the dimensions of the buffer being cropped and re-fits the
// selected aspect to them. No change is fired.
func (cp *CropPanel) SetImageSize(width, height int) {
	cp.width, cp.height = width, height
	cp.fitAspect()
}

func (cp *CropPanel) applyAspect() {
	if cp.updating {
		return
	}
	cp.fitAspect()
	cp.changed()
}

// fitAspect moves the sliders to the centered crop of the selected aspect.
func (cp *CropPanel) fitAspect() {
	c := params.CenteredCrop(cp.aspects[cp.aspectSelect.Selected], cp.width, cp.height)

	cp.updating = true
	cp.x.SetValue(c.X * 100)
	cp.y.SetValue(c.Y * 100)
	cp.w.SetValue(c.W * 100)
	cp.h.SetValue(c.H * 100)
	cp.updating = false
	cp.refreshLabel()
}

// Crop returns the enabled crop shown by the sliders.
func (cp *CropPanel) Crop() params.Crop {
	return params.Crop{
		Enabled: true,
		X:       cp.x.Value / 100,
		Y:       cp.y.Value / 100,
		W:       cp.w.Value / 100,
		H:       cp.h.Value / 100,
	}.Normalize()
}

func (cp *CropPanel) refreshLabel() {
	if cp.width <= 0 || cp.height <= 0 {
		cp.rectLabel.SetText("--")
		return
	}
	r := cp.Crop().Rect(cp.width, cp.height)
	cp.rectLabel.SetText(fmt.Sprintf("%dx%d at (%d, %d)", r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
}

func (cp *CropPanel) changed() {
	if cp.updating {
		return
	}
	cp.refreshLabel()
	if cp.onChanged != nil {
		cp.onChanged()
	}
}

func (cp *CropPanel) Title() string {
	return "Crop"
}

func (cp *CropPanel) Summary() string {
	return "Crop " + cp.rectLabel.Text
}

func (cp *CropPanel) Operation() (core.Operation, error) {
	return core.CropOperation(cp.Crop()), nil
}

func (cp *CropPanel) SetOnChanged(fn func()) {
	cp.onChanged = fn
}

func (cp *CropPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}
