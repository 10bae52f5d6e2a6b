package gui

import (
	"fmt"
	"math"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"valo-editor/internal/metrics"
)

// RightPanel shows session state, image information and the quality of the
// current buffer against the original.
type RightPanel struct {
	container *container.Scroll

	statusCard      *widget.Card
	stateLabel      *widget.Label
	lastActionLabel *widget.Label

	imageInfoCard *widget.Card
	fileLabel     *widget.Label
	sizeLabel     *widget.Label
	channelsLabel *widget.Label

	qualityCard  *widget.Card
	evaluator    *metrics.Evaluator
	metricLabels map[string]*widget.Label
	psnrBar      *widget.ProgressBar

	debugCard  *widget.Card
	debugLabel *widget.Label

	onWindowTitleChange func(title string)
}

func NewRightPanel() *RightPanel {
	rp := &RightPanel{
		evaluator:    metrics.NewEvaluator(),
		metricLabels: make(map[string]*widget.Label),
	}

	rp.createStatusSection()
	rp.createImageInfoSection()
	rp.createQualitySection()
	rp.createDebugSection()

	rp.container = container.NewScroll(container.NewVBox(
		rp.statusCard,
		rp.imageInfoCard,
		rp.qualityCard,
		rp.debugCard,
	))
	return rp
}

func (rp *RightPanel) createStatusSection() {
	rp.stateLabel = widget.NewLabel("no image")
	rp.lastActionLabel = widget.NewLabel("Open an image to begin")
	rp.lastActionLabel.Wrapping = fyne.TextWrapWord

	rp.statusCard = widget.NewCard("Status", "", container.NewVBox(
		widget.NewLabelWithStyle("State:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.stateLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Last:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		rp.lastActionLabel,
	))
}

func (rp *RightPanel) createImageInfoSection() {
	rp.fileLabel = widget.NewLabel("--")
	rp.fileLabel.Truncation = fyne.TextTruncateEllipsis
	rp.sizeLabel = widget.NewLabel("--")
	rp.channelsLabel = widget.NewLabel("--")

	rp.imageInfoCard = widget.NewCard("Image", "", widget.NewForm(
		widget.NewFormItem("File", rp.fileLabel),
		widget.NewFormItem("Size", rp.sizeLabel),
		widget.NewFormItem("Channels", rp.channelsLabel),
	))
}

// createQualitySection adds one row per registered metric.
func (rp *RightPanel) createQualitySection() {
	rp.psnrBar = widget.NewProgressBar()

	rows := container.NewVBox()
	for _, name := range rp.evaluator.Names() {
		metric, _ := rp.evaluator.Get(name)
		label := widget.NewLabel(metricText(metric, 0, false))
		rp.metricLabels[name] = label

		hint := widget.NewLabelWithStyle(metricHint(metric), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		hint.Wrapping = fyne.TextWrapWord
		rows.Add(label)
		if name == "psnr" {
			rows.Add(rp.psnrBar)
		}
		rows.Add(hint)
	}

	rp.qualityCard = widget.NewCard("Quality vs. original", "", rows)
}

func (rp *RightPanel) createDebugSection() {
	rp.debugLabel = widget.NewLabel("--")
	rp.debugLabel.Wrapping = fyne.TextWrapWord
	rp.debugCard = widget.NewCard("Debug", "", rp.debugLabel)
	rp.debugCard.Hide()
}

func (rp *RightPanel) ShowImageInfo(path string, width, height, channels int) {
	name := filepath.Base(path)
	rp.fileLabel.SetText(name)
	rp.sizeLabel.SetText(fmt.Sprintf("%dx%d", width, height))
	rp.channelsLabel.SetText(fmt.Sprintf("%d", channels))

	if rp.onWindowTitleChange != nil {
		rp.onWindowTitleChange(fmt.Sprintf("V.A.L.O. Editor - %s", name))
	}
}

// ShowSize updates the size of the current buffer.
func (rp *RightPanel) ShowSize(width, height int) {
	rp.sizeLabel.SetText(fmt.Sprintf("%dx%d", width, height))
}

// UpdateMetrics shows values keyed by metric name. Metrics missing from
// values could not be computed, for example after a crop.
func (rp *RightPanel) UpdateMetrics(values map[string]float64) {
	for name, label := range rp.metricLabels {
		metric, _ := rp.evaluator.Get(name)
		value, ok := values[name]
		if !ok {
			label.SetText(metric.GetName() + ": n/a")
			continue
		}
		label.SetText(metricText(metric, value, true))
	}

	psnr, ok := values["psnr"]
	if !ok {
		rp.psnrBar.SetValue(0)
		return
	}
	// 40 dB and above reads as visually identical
	rp.psnrBar.SetValue(math.Min(1, math.Max(0, psnr/40.0)))
}

func metricText(metric metrics.Metric, value float64, ok bool) string {
	switch {
	case !ok:
		return metric.GetName() + ": --"
	case math.IsInf(value, 1):
		return metric.GetName() + ": identical"
	default:
		return fmt.Sprintf("%s: %.2f", metric.GetName(), value)
	}
}

func metricHint(metric metrics.Metric) string {
	if metric.IsHigherBetter() {
		return metric.GetDescription() + " (higher is better)"
	}
	return metric.GetDescription() + " (lower is better)"
}

func (rp *RightPanel) ClearMetrics() {
	for name, label := range rp.metricLabels {
		metric, _ := rp.evaluator.Get(name)
		label.SetText(metricText(metric, 0, false))
	}
	rp.psnrBar.SetValue(0)
}

// ClearImageInfo returns the image section to its empty state.
func (rp *RightPanel) ClearImageInfo() {
	rp.fileLabel.SetText("--")
	rp.sizeLabel.SetText("--")
	rp.channelsLabel.SetText("--")
	rp.ClearMetrics()

	if rp.onWindowTitleChange != nil {
		rp.onWindowTitleChange("V.A.L.O. Editor")
	}
}

// EnableDebug shows the debug section.
func (rp *RightPanel) EnableDebug() {
	rp.debugCard.Show()
}

func (rp *RightPanel) ShowDebug(text string) {
	rp.debugLabel.SetText(text)
}

func (rp *RightPanel) UpdateStatus(state, lastAction string) {
	rp.stateLabel.SetText(state)
	rp.lastActionLabel.SetText(lastAction)
}

func (rp *RightPanel) ShowError(message string) {
	rp.lastActionLabel.SetText("Error: " + message)
}

func (rp *RightPanel) SetWindowTitleChangeCallback(callback func(string)) {
	rp.onWindowTitleChange = callback
}

func (rp *RightPanel) GetContainer() fyne.CanvasObject {
	return rp.container
}
