package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"valo-editor/internal/algorithms"
	"valo-editor/internal/core"
)

// editorTab is one tab of the control area. Its operation drives both the
// preview and Apply. A nil operation means there is nothing to apply.
type editorTab interface {
	Title() string
	Summary() string
	Operation() (core.Operation, error)
	SetOnChanged(func())
	GetContainer() fyne.CanvasObject
}

// ControlPanel holds the tool selector and the two parameter sliders.
type ControlPanel struct {
	container *fyne.Container

	toolSelect *widget.Select
	toolNames  map[string]string // display name -> registry key
	tool       string

	primary, secondary           *widget.Slider
	primaryLabel, secondaryLabel *widget.Label
	description                  *widget.Label

	onChanged func()
	// set while sliders are moved programmatically
	updating bool
}

func NewControlPanel() *ControlPanel {
	cp := &ControlPanel{
		toolNames: make(map[string]string),
	}
	cp.initializeUI()
	return cp
}

func (cp *ControlPanel) initializeUI() {
	var options []string
	for _, name := range algorithms.Names() {
		algorithm, _ := algorithms.Get(name)
		cp.toolNames[algorithm.GetName()] = name
		options = append(options, algorithm.GetName())
	}

	cp.primary = widget.NewSlider(0, 100)
	cp.secondary = widget.NewSlider(0, 100)
	cp.primary.Step = 1
	cp.secondary.Step = 1
	cp.primary.OnChanged = func(float64) { cp.changed() }
	cp.secondary.OnChanged = func(float64) { cp.changed() }

	cp.primaryLabel = widget.NewLabel("")
	cp.secondaryLabel = widget.NewLabel("")
	cp.description = widget.NewLabel("")
	cp.description.Wrapping = fyne.TextWrapWord

	cp.toolSelect = widget.NewSelect(options, cp.selectTool)

	params := widget.NewForm(
		widget.NewFormItem("Tool", cp.toolSelect),
		widget.NewFormItem("", cp.description),
	)

	cp.container = container.NewVBox(
		params,
		cp.primaryLabel, cp.primary,
		cp.secondaryLabel, cp.secondary,
	)

	if len(options) > 0 {
		cp.toolSelect.SetSelected(options[0])
	}
}

// selectTool reconfigures both sliders for the tool and resets them to its
// defaults.
func (cp *ControlPanel) selectTool(display string) {
	name, ok := cp.toolNames[display]
	if !ok {
		return
	}
	algorithm, _ := algorithms.Get(name)
	cp.tool = name
	cp.description.SetText(algorithm.GetDescription())

	info := algorithm.GetParameterInfo()
	cp.updating = true
	configureSlider(cp.primary, info[0])
	configureSlider(cp.secondary, info[1])
	cp.updating = false

	cp.changed()
}

func configureSlider(s *widget.Slider, info algorithms.ParameterInfo) {
	s.Min = float64(info.Min)
	s.Max = float64(info.Max)
	s.SetValue(float64(info.Default))
}

func (cp *ControlPanel) changed() {
	if cp.updating || cp.tool == "" {
		return
	}
	if cp.onChanged != nil {
		cp.onChanged()
	}
}

// CurrentStep builds the processing step for the selected tool and slider
// positions.
func (cp *ControlPanel) CurrentStep() (core.ProcessingStep, error) {
	return core.NewToolStep(cp.tool, int(cp.primary.Value), int(cp.secondary.Value))
}

// Operation returns the current step and refreshes the value labels.
func (cp *ControlPanel) Operation() (core.Operation, error) {
	step, err := cp.CurrentStep()
	if err != nil {
		return nil, err
	}
	cp.UpdateLabels(step.Parameters)
	return step, nil
}

// UpdateLabels shows the native values derived from the sliders.
func (cp *ControlPanel) UpdateLabels(values map[string]interface{}) {
	algorithm, ok := algorithms.Get(cp.tool)
	if !ok {
		return
	}
	info := algorithm.GetParameterInfo()
	cp.primaryLabel.SetText(paramText(info[0], values[info[0].Name]))
	cp.secondaryLabel.SetText(paramText(info[1], values[info[1].Name]))
}

func paramText(info algorithms.ParameterInfo, value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return info.Label + ": on"
		}
		return info.Label + ": off"
	case float64:
		return fmt.Sprintf("%s: %.2f", info.Label, v)
	case int:
		return fmt.Sprintf("%s: %d", info.Label, v)
	default:
		return info.Label
	}
}

func (cp *ControlPanel) Title() string {
	return "Tools"
}

// Summary names the selected tool.
func (cp *ControlPanel) Summary() string {
	return cp.toolSelect.Selected
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetOnChanged(fn func()) {
	cp.onChanged = fn
}
