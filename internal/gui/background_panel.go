package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"valo-editor/internal/core"
)

// BackgroundPanel toggles foreground segmentation. Segmentation is slow, so
// nothing is previewed or applied until it is switched on.
type BackgroundPanel struct {
	container fyne.CanvasObject
	remove    *widget.Check
	onChanged func()
}

func NewBackgroundPanel() *BackgroundPanel {
	bp := &BackgroundPanel{}
	bp.remove = widget.NewCheck("Remove background", func(bool) {
		if bp.onChanged != nil {
			bp.onChanged()
		}
	})

	hint := widget.NewLabel("Keeps the subject in the middle of the frame and makes the rest transparent.")
	hint.Wrapping = fyne.TextWrapWord

	bp.container = container.NewVBox(bp.remove, hint)
	return bp
}

func (bp *BackgroundPanel) Title() string {
	return "Background"
}

func (bp *BackgroundPanel) Summary() string {
	return "Remove background"
}

func (bp *BackgroundPanel) Operation() (core.Operation, error) {
	if !bp.remove.Checked {
		return nil, nil
	}
	return core.RemoveBackgroundOperation(), nil
}

func (bp *BackgroundPanel) SetOnChanged(fn func()) {
	bp.onChanged = fn
}

func (bp *BackgroundPanel) GetContainer() fyne.CanvasObject {
	return bp.container
}
