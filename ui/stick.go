package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const stickViewSize = 200

var (
	gridColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	dotColor  = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

// stickView draws the processed stick position: crosshair axes and a dot
// that moves with the normalized vector. Screen Y grows downward, same
// as the processed coordinates, so no flipping is needed.
type stickView struct {
	dot       *canvas.Circle
	container *fyne.Container
}

func newStickView() *stickView {
	horizontal := canvas.NewLine(gridColor)
	horizontal.Position1 = fyne.NewPos(0, stickViewSize/2)
	horizontal.Position2 = fyne.NewPos(stickViewSize, stickViewSize/2)

	vertical := canvas.NewLine(gridColor)
	vertical.Position1 = fyne.NewPos(stickViewSize/2, 0)
	vertical.Position2 = fyne.NewPos(stickViewSize/2, stickViewSize)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = gridColor
	border.StrokeWidth = 1
	border.Resize(fyne.NewSize(stickViewSize, stickViewSize))

	dot := canvas.NewCircle(dotColor)
	dot.Resize(fyne.NewSize(10, 10))

	view := &stickView{
		dot:       dot,
		container: container.NewWithoutLayout(border, horizontal, vertical, dot),
	}
	view.Update(0, 0)

	return view
}

// Update moves the dot to the normalized position. Call from the fyne
// goroutine only.
func (v *stickView) Update(x, y float64) {
	// keep the dot inside the border at full deflection
	r := float32(stickViewSize/2 - 8)

	px := stickViewSize/2 + float32(x)*r - 5
	py := stickViewSize/2 + float32(y)*r - 5

	v.dot.Move(fyne.NewPos(px, py))
	v.dot.Refresh()
}

func (v *stickView) Widget() fyne.CanvasObject {
	v.container.Resize(fyne.NewSize(stickViewSize, stickViewSize))
	return v.container
}
