// Original and preview display
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"gocv.io/x/gocv"
)

type CenterPanel struct {
	container *container.Split

	originalImage *canvas.Image
	previewImage  *canvas.Image
}

func NewCenterPanel() *CenterPanel {
	cp := &CenterPanel{}
	cp.initializeUI()
	return cp
}

func (cp *CenterPanel) initializeUI() {
	placeholder := createPlaceholderImage()

	cp.originalImage = canvas.NewImageFromImage(placeholder)
	cp.originalImage.FillMode = canvas.ImageFillContain
	cp.originalImage.SetMinSize(fyne.NewSize(400, 400))

	cp.previewImage = canvas.NewImageFromImage(placeholder)
	cp.previewImage.FillMode = canvas.ImageFillContain
	cp.previewImage.SetMinSize(fyne.NewSize(400, 400))

	cp.container = container.NewHSplit(
		widget.NewCard("Original", "", cp.originalImage),
		widget.NewCard("Preview", "", cp.previewImage),
	)
	cp.container.SetOffset(0.5)
}

func createPlaceholderImage() image.Image {
	placeholder := image.NewRGBA(image.Rect(0, 0, 400, 400))
	dark := color.RGBA{17, 17, 17, 255}
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			placeholder.Set(x, y, dark)
		}
	}
	return placeholder
}

func (cp *CenterPanel) SetOriginal(mat gocv.Mat) {
	setCanvasImage(cp.originalImage, mat)
}

func (cp *CenterPanel) SetPreview(mat gocv.Mat) {
	setCanvasImage(cp.previewImage, mat)
}

// setCanvasImage converts a BGR, gray or BGRA buffer for display.
func setCanvasImage(target *canvas.Image, mat gocv.Mat) {
	if mat.Empty() {
		return
	}
	img, err := mat.ToImage()
	if err != nil {
		return
	}
	target.Image = img
	target.Refresh()
}

func (cp *CenterPanel) Reset() {
	placeholder := createPlaceholderImage()
	cp.originalImage.Image = placeholder
	cp.previewImage.Image = placeholder
	cp.originalImage.Refresh()
	cp.previewImage.Refresh()
}

func (cp *CenterPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}
