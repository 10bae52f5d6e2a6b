// Main editor window
package gui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"valo-editor/internal/core"
	imgio "valo-editor/internal/io"
)

const defaultSaveName = "output.png"

var (
	errNoImage        = errors.New("no image loaded")
	errNothingToApply = errors.New("nothing to apply")
)

// Application wires the editing session to the window
type Application struct {
	app       fyne.App
	window    fyne.Window
	logger    logrus.FieldLogger
	debugMode bool

	session *core.Session
	loader  *imgio.ImageLoader

	controls    *ControlPanel
	adjust      *AdjustPanel
	crop        *CropPanel
	background  *BackgroundPanel
	editorTabs  []editorTab
	tabs        *container.AppTabs
	actions     *ActionBar
	images      *CenterPanel
	status      *RightPanel
	menuHandler *MenuHandler

	mainContent *container.Split
}

func NewApplication(app fyne.App, logger logrus.FieldLogger, debugMode bool) *Application {
	window := app.NewWindow("V.A.L.O. Editor")
	window.Resize(fyne.NewSize(1200, 700))
	window.CenterOnScreen()

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		debugMode: debugMode,
		loader:    imgio.NewImageLoader(logger),
	}

	a.initializeGUI()
	a.setupCallbacks()
	a.setupLayout()

	return a
}

func (a *Application) initializeGUI() {
	a.controls = NewControlPanel()
	a.adjust = NewAdjustPanel()
	a.crop = NewCropPanel()
	a.background = NewBackgroundPanel()
	a.editorTabs = []editorTab{a.controls, a.adjust, a.crop, a.background}

	a.actions = NewActionBar()
	a.images = NewCenterPanel()
	a.status = NewRightPanel()
	a.menuHandler = NewMenuHandler(a.window, a.logger)

	if a.debugMode {
		a.status.EnableDebug()
	}
}

func (a *Application) setupLayout() {
	var items []*container.TabItem
	for _, tab := range a.editorTabs {
		items = append(items, container.NewTabItem(tab.Title(), tab.GetContainer()))
	}
	a.tabs = container.NewAppTabs(items...)
	a.tabs.OnSelected = func(*container.TabItem) { a.RefreshPreview() }

	controls := container.NewBorder(nil, a.actions.GetContainer(), nil, nil, a.tabs)
	left := container.NewVSplit(controls, a.status.GetContainer())
	left.SetOffset(0.6)

	a.mainContent = container.NewHSplit(left, a.images.GetContainer())
	a.mainContent.SetOffset(0.3)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(a.mainContent)
}

func (a *Application) setupCallbacks() {
	a.menuHandler.SetCallbacks(MenuCallbacks{
		OnOpen:   a.LoadImageFromPath,
		OnSave:   a.SaveImage,
		OnClose:  a.CloseImage,
		OnUndo:   a.Undo,
		OnRedo:   a.Redo,
		OnReset:  a.Reset,
		SaveName: a.saveName,
	})

	a.actions.SetCallbacks(ActionCallbacks{
		OnOpen:  a.menuHandler.OpenImage,
		OnSave:  a.menuHandler.SaveImage,
		OnUndo:  a.handle("Undo Failed", a.Undo),
		OnRedo:  a.handle("Redo Failed", a.Redo),
		OnReset: a.handle("Reset Failed", a.Reset),
		OnApply: a.handle("Apply Failed", a.Apply),
	})

	for _, tab := range a.editorTabs {
		tab.SetOnChanged(a.RefreshPreview)
	}

	a.status.SetWindowTitleChangeCallback(a.window.SetTitle)
}

func (a *Application) handle(title string, fn func() error) func() {
	return func() {
		if err := fn(); err != nil {
			a.showError(title, err)
		}
	}
}

// activeTab is the selected tab, or the tool tab before the layout exists.
func (a *Application) activeTab() editorTab {
	if a.tabs == nil {
		return a.controls
	}
	return a.editorTabs[a.tabs.SelectedIndex()]
}

// LoadImageFromPath opens path in a new session. The previous session is kept
// if loading fails.
func (a *Application) LoadImageFromPath(path string) error {
	session, err := core.Open(path, a.loader, a.logger)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if a.session != nil {
		a.session.Close()
	}
	a.session = session

	original := session.Original()
	defer original.Close()
	a.images.SetOriginal(original)

	meta := session.Metadata()
	a.status.ShowImageInfo(path, meta.Width, meta.Height, meta.Channels)
	a.actions.Enable()
	a.syncSession()
	a.updateStatus(fmt.Sprintf("Loaded: %s", path))

	return nil
}

// CloseImage releases the session and clears both views.
func (a *Application) CloseImage() error {
	if a.session == nil {
		return errNoImage
	}
	a.session.Close()
	a.session = nil

	a.images.Reset()
	a.status.ClearImageInfo()
	a.actions.Disable()
	a.updateStatus("Image closed")
	return nil
}

// RefreshPreview recomputes the preview from the current buffer and the
// selected tab. Nothing is committed.
func (a *Application) RefreshPreview() {
	tab := a.activeTab()
	op, err := tab.Operation()
	if err != nil {
		a.status.ShowError(err.Error())
		return
	}

	if a.session == nil {
		return
	}

	start := time.Now()
	var preview gocv.Mat
	if op == nil {
		preview = a.session.Current()
	} else {
		preview, err = a.session.Preview(op)
		if err != nil {
			a.logger.WithError(err).Warn("Preview failed")
			a.status.ShowError(err.Error())
			return
		}
	}
	defer preview.Close()

	a.images.SetPreview(preview)
	if a.debugMode {
		elapsed := time.Since(start)
		a.logger.WithFields(logrus.Fields{
			"tab":     tab.Title(),
			"elapsed": elapsed,
		}).Debug("Preview computed")
		a.status.ShowDebug(fmt.Sprintf("%s preview: %dx%d, %d channels, %s",
			tab.Title(), preview.Cols(), preview.Rows(), preview.Channels(), elapsed.Round(time.Microsecond)))
	}
}

// Apply commits the selected tab's operation to the current buffer.
func (a *Application) Apply() error {
	if a.session == nil {
		return errNoImage
	}

	tab := a.activeTab()
	op, err := tab.Operation()
	if err != nil {
		return err
	}
	if op == nil {
		return errNothingToApply
	}
	if err := a.session.Commit(op); err != nil {
		return err
	}

	a.syncSession()
	a.updateStatus(fmt.Sprintf("Applied: %s", tab.Summary()))
	return nil
}

// Undo steps the current buffer back one commit.
func (a *Application) Undo() error {
	return a.stepHistory("Undone", func(s *core.Session) error { return s.Undo() })
}

// Redo re-applies the latest undone commit.
func (a *Application) Redo() error {
	return a.stepHistory("Redone", func(s *core.Session) error { return s.Redo() })
}

func (a *Application) stepHistory(message string, step func(*core.Session) error) error {
	if a.session == nil {
		return errNoImage
	}
	if err := step(a.session); err != nil {
		return err
	}
	a.syncSession()
	a.updateStatus(message)
	return nil
}

// Reset restores the current buffer to the original.
func (a *Application) Reset() error {
	if a.session == nil {
		return errNoImage
	}
	if err := a.session.Reset(); err != nil {
		return err
	}

	a.syncSession()
	a.updateStatus("Reset to original image")
	return nil
}

// syncSession refreshes everything that depends on the current buffer.
func (a *Application) syncSession() {
	width, height := a.session.Size()
	a.status.ShowSize(width, height)
	a.crop.SetImageSize(width, height)
	a.actions.SetHistory(a.session.CanUndo(), a.session.CanRedo())

	if a.session.State() == core.Loaded {
		a.status.ClearMetrics()
	} else {
		a.status.UpdateMetrics(a.session.Compare())
	}
	a.RefreshPreview()
}

// SaveImage writes the current buffer to path.
func (a *Application) SaveImage(path string) error {
	if a.session == nil {
		return errNoImage
	}
	if err := a.session.Save(path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	a.showInfo("Saved", fmt.Sprintf("Output image saved to:\n%s", path))
	a.updateStatus(fmt.Sprintf("Saved: %s", path))
	return nil
}

// saveName proposes "<name>_edited<ext>" for the loaded file.
func (a *Application) saveName() string {
	if a.session == nil {
		return defaultSaveName
	}
	base := filepath.Base(a.session.Filepath())
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" || stem == "." || !imgio.IsSupportedImageFormat(base) {
		return defaultSaveName
	}
	return stem + "_edited" + ext
}

func (a *Application) updateStatus(message string) {
	state := "no image"
	if a.session != nil {
		state = a.session.State().String()
	}
	a.status.UpdateStatus(state, message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main window")

	a.window.SetCloseIntercept(func() {
		a.cleanup()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) cleanup() {
	a.logger.Info("Cleaning up application resources")
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
	a.status.ShowError(err.Error())
}

func (a *Application) showInfo(title, message string) {
	a.logger.WithField("message", message).Info(title)
	dialog.ShowInformation(title, message, a.window)
}
