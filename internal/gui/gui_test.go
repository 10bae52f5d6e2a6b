package gui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"valo-editor/internal/algorithms"
	"valo-editor/internal/core"
	"valo-editor/internal/metrics"
	"valo-editor/internal/params"
)

func TestParamText(t *testing.T) {
	require.Equal(t, "Threshold: 127", paramText(algorithms.ParameterInfo{Label: "Threshold"}, 127))
	require.Equal(t, "Sigma: 1.00", paramText(algorithms.ParameterInfo{Label: "Sigma"}, 1.0))
	require.Equal(t, "Invert: on", paramText(algorithms.ParameterInfo{Label: "Invert"}, true))
	require.Equal(t, "Invert: off", paramText(algorithms.ParameterInfo{Label: "Invert"}, false))
	require.Equal(t, "Kernel size", paramText(algorithms.ParameterInfo{Label: "Kernel size"}, nil))
}

func TestMetricText(t *testing.T) {
	psnr, mse := metrics.NewPSNR(), metrics.NewMSE()
	require.Equal(t, "PSNR: identical", metricText(psnr, math.Inf(1), true))
	require.Equal(t, "PSNR: 31.25", metricText(psnr, 31.25, true))
	require.Equal(t, "MSE: --", metricText(mse, 0, false))
	require.Contains(t, metricHint(psnr), "higher is better")
	require.Contains(t, metricHint(mse), "lower is better")
}

func TestControlPanel_SelectToolAppliesDefaults(t *testing.T) {
	test.NewApp()

	cp := NewControlPanel()
	calls := 0
	cp.SetOnChanged(func() { calls++ })

	blur, _ := algorithms.Get(algorithms.ToolBlur)
	cp.toolSelect.SetSelected(blur.GetName())
	require.Equal(t, algorithms.ToolBlur, cp.tool)
	require.Equal(t, float64(9), cp.primary.Value)
	require.Equal(t, float64(10), cp.secondary.Value)
	require.Equal(t, float64(31), cp.primary.Max)

	threshold, _ := algorithms.Get(algorithms.ToolThreshold)
	cp.toolSelect.SetSelected(threshold.GetName())
	require.Equal(t, float64(50), cp.primary.Value)
	require.Equal(t, float64(0), cp.secondary.Value)
	require.Equal(t, 1, calls, "reconfiguring sliders fires a single change")

	step, err := cp.CurrentStep()
	require.NoError(t, err)
	require.Equal(t, 127, step.Parameters["threshold"])

	cp.UpdateLabels(step.Parameters)
	require.Equal(t, "Threshold: 127", cp.primaryLabel.Text)
	require.Equal(t, "Invert: off", cp.secondaryLabel.Text)
}

func TestActionBar_ButtonsNeedImage(t *testing.T) {
	test.NewApp()

	ab := NewActionBar()
	require.True(t, ab.applyBtn.Disabled())
	require.True(t, ab.saveBtn.Disabled())
	require.True(t, ab.undoBtn.Disabled())
	require.False(t, ab.openBtn.Disabled())

	ab.Enable()
	require.False(t, ab.applyBtn.Disabled())
	require.False(t, ab.resetBtn.Disabled())
	require.True(t, ab.undoBtn.Disabled(), "history buttons follow SetHistory")

	ab.SetHistory(true, false)
	require.False(t, ab.undoBtn.Disabled())
	require.True(t, ab.redoBtn.Disabled())

	ab.Disable()
	require.True(t, ab.undoBtn.Disabled())
	require.True(t, ab.saveBtn.Disabled())
}

func TestAdjustPanel_Presets(t *testing.T) {
	test.NewApp()

	ap := NewAdjustPanel()
	calls := 0
	ap.SetOnChanged(func() { calls++ })
	require.True(t, ap.Adjustments().IsIdentity())

	ap.presetSelect.SetSelected("Noir")
	require.Equal(t, 1, calls, "a preset fires a single change")
	require.Equal(t, params.Adjustments{
		Mono: true, Sharpness: 35, Brightness: -5, Crop: params.FullFrame(),
	}, ap.Adjustments())
	require.Equal(t, "Sharpness: 35", ap.sharpness.label.Text)
	require.Equal(t, "Adjustments (Noir)", ap.Summary())

	ap.red.slider.SetValue(40)
	require.Equal(t, 2, calls)
	require.Equal(t, 40, ap.Adjustments().Red)

	ap.presetSelect.SetSelected("Dramatic cool")
	require.Equal(t, params.Adjustments{
		Red: -10, Green: 5, Blue: 25, Crop: params.FullFrame(),
	}, ap.Adjustments(), "a preset replaces earlier slider values")

	ap.Reset()
	require.True(t, ap.Adjustments().IsIdentity())
	require.Equal(t, "None", ap.presetSelect.Selected)
	require.Equal(t, "Adjustments", ap.Summary())

	op, err := ap.Operation()
	require.NoError(t, err)
	require.NotNil(t, op)
}

func TestCropPanel_Aspect(t *testing.T) {
	test.NewApp()

	cp := NewCropPanel()
	calls := 0
	cp.SetOnChanged(func() { calls++ })

	cp.SetImageSize(200, 100)
	require.Zero(t, calls, "resizing does not fire a change")
	c := cp.Crop()
	require.True(t, c.Enabled)
	require.InDelta(t, 0.8, c.W, 0.01)
	require.InDelta(t, 0.8, c.H, 0.01)

	cp.aspectSelect.SetSelected("1:1")
	require.Equal(t, 1, calls)
	r := cp.Crop().Rect(200, 100)
	require.InDelta(t, 80, r.Dx(), 1)
	require.InDelta(t, 80, r.Dy(), 1)
	require.InDelta(t, 60, r.Min.X, 1)
	require.InDelta(t, 10, r.Min.Y, 1)
	require.Contains(t, cp.rectLabel.Text, " at (")

	cp.w.SetValue(25)
	require.Equal(t, 2, calls)
	require.InDelta(t, 0.25, cp.Crop().W, 0.01)
}

func TestBackgroundPanel_OffByDefault(t *testing.T) {
	test.NewApp()

	bp := NewBackgroundPanel()
	op, err := bp.Operation()
	require.NoError(t, err)
	require.Nil(t, op)

	bp.remove.SetChecked(true)
	op, err = bp.Operation()
	require.NoError(t, err)
	require.NotNil(t, op)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// writeFlatImage writes a 24x24 mid-gray PNG and returns its path.
func writeFlatImage(t *testing.T, dir string) string {
	t.Helper()
	src := filepath.Join(dir, "in.png")
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 100, 100, 0), 24, 24, gocv.MatTypeCV8UC3)
	defer mat.Close()
	require.True(t, gocv.IMWrite(src, mat))
	return src
}

func newTestApplication(t *testing.T, debug bool) *Application {
	t.Helper()
	a := NewApplication(test.NewApp(), testLogger(), debug)
	t.Cleanup(a.cleanup)
	return a
}

func pixel(t *testing.T, s *core.Session) []uint8 {
	t.Helper()
	current := s.Current()
	defer current.Close()
	v := current.GetVecbAt(0, 0)
	return []uint8{v[0], v[1], v[2]}
}

func TestApplication_EditCycle(t *testing.T) {
	dir := t.TempDir()
	src := writeFlatImage(t, dir)
	a := newTestApplication(t, false)

	require.ErrorIs(t, a.Apply(), errNoImage)
	require.Error(t, a.LoadImageFromPath(filepath.Join(dir, "missing.png")))
	require.Nil(t, a.session)

	require.NoError(t, a.LoadImageFromPath(src))
	require.Equal(t, core.Loaded, a.session.State())
	require.False(t, a.actions.applyBtn.Disabled())
	require.True(t, a.actions.undoBtn.Disabled())

	bc, _ := algorithms.Get(algorithms.ToolBrightnessContrast)
	a.controls.toolSelect.SetSelected(bc.GetName())
	a.controls.primary.SetValue(60)  // beta = +40
	a.controls.secondary.SetValue(0) // alpha = 0.5

	require.NoError(t, a.Apply())
	require.Equal(t, core.Modified, a.session.State())
	current := a.session.Current()
	require.Equal(t, uint8(90), current.GetVecbAt(0, 0)[0])
	current.Close()
	require.Equal(t, "modified", a.status.stateLabel.Text)

	out := filepath.Join(dir, "out", "result.png")
	require.NoError(t, a.SaveImage(out))
	require.FileExists(t, out)

	require.NoError(t, a.Reset())
	require.Equal(t, core.Loaded, a.session.State())
	require.Equal(t, "PSNR: --", a.status.metricLabels["psnr"].Text)
	require.True(t, a.actions.undoBtn.Disabled())
}

func TestApplication_AdjustUndoRedo(t *testing.T) {
	src := writeFlatImage(t, t.TempDir())
	a := newTestApplication(t, false)
	require.NoError(t, a.LoadImageFromPath(src))

	a.tabs.SelectIndex(1)
	require.Same(t, a.adjust, a.activeTab())
	a.adjust.brightness.slider.SetValue(20)

	require.NoError(t, a.Apply())
	require.Equal(t, []uint8{120, 120, 120}, pixel(t, a.session))
	require.False(t, a.actions.undoBtn.Disabled())
	require.True(t, a.actions.redoBtn.Disabled())
	require.NotEqual(t, "PSNR: --", a.status.metricLabels["psnr"].Text)

	require.NoError(t, a.Undo())
	require.Equal(t, []uint8{100, 100, 100}, pixel(t, a.session))
	require.Equal(t, core.Loaded, a.session.State())
	require.True(t, a.actions.undoBtn.Disabled())
	require.False(t, a.actions.redoBtn.Disabled())
	require.ErrorIs(t, a.Undo(), core.ErrNoHistory)

	require.NoError(t, a.Redo())
	require.Equal(t, []uint8{120, 120, 120}, pixel(t, a.session))
	require.Equal(t, core.Modified, a.session.State())
	require.Equal(t, "Redone", a.status.lastActionLabel.Text)

	a.adjust.presetSelect.SetSelected("Dramatic warm")
	require.NoError(t, a.Apply())
	warm := pixel(t, a.session)
	require.Greater(t, warm[2], warm[0], "red gain above blue gain")
	require.Equal(t, "Applied: Adjustments (Dramatic warm)", a.status.lastActionLabel.Text)
}

func TestApplication_CropAndBackgroundTabs(t *testing.T) {
	src := writeFlatImage(t, t.TempDir())
	a := newTestApplication(t, false)
	require.NoError(t, a.LoadImageFromPath(src))

	a.tabs.SelectIndex(2)
	a.crop.aspectSelect.SetSelected("1:1")
	require.NoError(t, a.Apply())

	w, h := a.session.Size()
	require.InDelta(t, 19, w, 1)
	require.Equal(t, w, h)
	require.Equal(t, fmt.Sprintf("%dx%d", w, h), a.status.sizeLabel.Text)
	require.Equal(t, "PSNR: n/a", a.status.metricLabels["psnr"].Text, "metrics need equal sizes")

	a.tabs.SelectIndex(3)
	require.ErrorIs(t, a.Apply(), errNothingToApply)
	require.Equal(t, core.Modified, a.session.State())

	require.NoError(t, a.Undo())
	w, _ = a.session.Size()
	require.Equal(t, 24, w)
	require.Equal(t, "24x24", a.status.sizeLabel.Text)
}

func TestApplication_CloseImage(t *testing.T) {
	src := writeFlatImage(t, t.TempDir())
	a := newTestApplication(t, false)
	require.ErrorIs(t, a.CloseImage(), errNoImage)

	require.NoError(t, a.LoadImageFromPath(src))
	require.Equal(t, "in_edited.png", a.saveName())

	require.NoError(t, a.CloseImage())
	require.Nil(t, a.session)
	require.True(t, a.actions.applyBtn.Disabled())
	require.Equal(t, "--", a.status.fileLabel.Text)
	require.Equal(t, "no image", a.status.stateLabel.Text)
	require.Equal(t, defaultSaveName, a.saveName())
	require.ErrorIs(t, a.Undo(), errNoImage)
}

func TestApplication_DebugMode(t *testing.T) {
	src := writeFlatImage(t, t.TempDir())

	quiet := newTestApplication(t, false)
	require.False(t, quiet.status.debugCard.Visible())

	a := newTestApplication(t, true)
	require.True(t, a.status.debugCard.Visible())
	require.NoError(t, a.LoadImageFromPath(src))
	require.Contains(t, a.status.debugLabel.Text, "Tools preview: 24x24, 3 channels")
}
