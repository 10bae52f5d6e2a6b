package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ActionCallbacks are the button events of the action bar.
type ActionCallbacks struct {
	OnOpen  func()
	OnSave  func()
	OnUndo  func()
	OnRedo  func()
	OnReset func()
	OnApply func()
}

// ActionBar holds the file, history and commit buttons.
type ActionBar struct {
	container *fyne.Container

	openBtn, saveBtn           *widget.Button
	undoBtn, redoBtn, resetBtn *widget.Button
	applyBtn                   *widget.Button

	callbacks ActionCallbacks
}

func NewActionBar() *ActionBar {
	ab := &ActionBar{}

	ab.openBtn = widget.NewButton("Open Image", func() { ab.fire(ab.callbacks.OnOpen) })
	ab.saveBtn = widget.NewButton("Save Output", func() { ab.fire(ab.callbacks.OnSave) })
	ab.undoBtn = widget.NewButton("Undo", func() { ab.fire(ab.callbacks.OnUndo) })
	ab.redoBtn = widget.NewButton("Redo", func() { ab.fire(ab.callbacks.OnRedo) })
	ab.resetBtn = widget.NewButton("Reset", func() { ab.fire(ab.callbacks.OnReset) })
	ab.applyBtn = widget.NewButton("Apply", func() { ab.fire(ab.callbacks.OnApply) })
	ab.applyBtn.Importance = widget.HighImportance

	ab.container = container.NewVBox(
		container.NewGridWithColumns(2, ab.openBtn, ab.saveBtn),
		container.NewGridWithColumns(3, ab.undoBtn, ab.redoBtn, ab.resetBtn),
		ab.applyBtn,
	)
	ab.Disable()
	return ab
}

func (ab *ActionBar) fire(fn func()) {
	if fn != nil {
		fn()
	}
}

// Enable turns on the actions that need a loaded image. Undo and Redo follow
// SetHistory.
func (ab *ActionBar) Enable() {
	ab.saveBtn.Enable()
	ab.resetBtn.Enable()
	ab.applyBtn.Enable()
}

func (ab *ActionBar) Disable() {
	ab.saveBtn.Disable()
	ab.resetBtn.Disable()
	ab.applyBtn.Disable()
	ab.SetHistory(false, false)
}

func (ab *ActionBar) SetHistory(canUndo, canRedo bool) {
	setEnabled(ab.undoBtn, canUndo)
	setEnabled(ab.redoBtn, canRedo)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (ab *ActionBar) SetCallbacks(callbacks ActionCallbacks) {
	ab.callbacks = callbacks
}

func (ab *ActionBar) GetContainer() fyne.CanvasObject {
	return ab.container
}
