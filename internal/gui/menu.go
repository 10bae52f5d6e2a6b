// Menu handler for file actions
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	imgio "valo-editor/internal/io"
)

// MenuCallbacks are the actions the menu and the file dialogs trigger.
type MenuCallbacks struct {
	OnOpen  func(string) error
	OnSave  func(string) error
	OnClose func() error
	OnUndo  func() error
	OnRedo  func() error
	OnReset func() error
	// SaveName proposes the file name of the save dialog.
	SaveName func() string
}

// MenuHandler owns the file dialogs and the main menu
type MenuHandler struct {
	window fyne.Window
	logger logrus.FieldLogger

	callbacks MenuCallbacks
}

func NewMenuHandler(window fyne.Window, logger logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		window: window,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.OpenImage),
		fyne.NewMenuItem("Save Output...", mh.SaveImage),
		fyne.NewMenuItem("Close Image", mh.action("Close Failed", mh.callbacks.OnClose)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Exit", func() {
			mh.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mh.action("Undo Failed", mh.callbacks.OnUndo)),
		fyne.NewMenuItem("Redo", mh.action("Redo Failed", mh.callbacks.OnRedo)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset to Original", mh.action("Reset Failed", mh.callbacks.OnReset)),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
}

// action wraps fn for a menu item. Callbacks must be set before the menu is
// built.
func (mh *MenuHandler) action(title string, fn func() error) func() {
	return func() {
		if fn == nil {
			return
		}
		if err := fn(); err != nil {
			mh.showError(title, err)
		}
	}
}

func (mh *MenuHandler) OpenImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mh.logger.WithField("filepath", path).Info("Loading selected image")
		if mh.callbacks.OnOpen == nil {
			return
		}
		if err := mh.callbacks.OnOpen(path); err != nil {
			mh.showError("Could Not Open Image", err)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.GetSupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) SaveImage() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		// The session encodes and writes the file itself.
		writer.Close()

		if mh.callbacks.OnSave == nil {
			return
		}
		if err := mh.callbacks.OnSave(path); err != nil {
			mh.showError("Failed to Save Image", err)
		}
	}, mh.window)

	fileDialog.SetFileName(mh.saveName())
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imgio.GetSupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("V.A.L.O. Editor"),
		widget.NewSeparator(),
		widget.NewLabel("Preview a tool or adjustment, apply it, and save the result."),
		widget.NewLabel("Built with Go, Fyne and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(360, 200))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) saveName() string {
	if mh.callbacks.SaveName == nil {
		return defaultSaveName
	}
	return mh.callbacks.SaveName()
}

func (mh *MenuHandler) SetCallbacks(callbacks MenuCallbacks) {
	mh.callbacks = callbacks
}
