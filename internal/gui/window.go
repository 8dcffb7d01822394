package gui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-stencil/internal/extract"
	"github.com/ironsheep/image-stencil/internal/stencil"
	"github.com/ironsheep/image-stencil/internal/tuner"
)

const (
	AppID = "com.ironsheep.image-stencil"
	Title = "Edge Detection"
)

// Window is the live tuning window: one slider per parameter above the
// rendered stencil.
type Window struct {
	app  fyne.App
	win  fyne.Window
	ctrl *tuner.Controller
	log  logrus.FieldLogger

	preview  *canvas.Image
	status   *widget.Label
	sliders  map[tuner.Param]*widget.Slider
	viewSize image.Point
}

// New builds the window for ctrl. The preview is no larger than the working
// area maxW x maxH. Nothing is shown until Run.
func New(a fyne.App, ctrl *tuner.Controller, maxW, maxH int, log logrus.FieldLogger) *Window {
	size := ctrl.Result().Size()
	w := &Window{
		app:      a,
		win:      a.NewWindow(Title),
		ctrl:     ctrl,
		log:      log,
		sliders:  make(map[tuner.Param]*widget.Slider),
		viewSize: image.Pt(max(1, min(size.X, maxW)), max(1, min(size.Y, maxH))),
	}

	w.preview = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	w.preview.FillMode = canvas.ImageFillContain
	w.preview.ScaleMode = canvas.ImageScalePixels
	w.preview.SetMinSize(fyne.NewSize(float32(w.viewSize.X), float32(w.viewSize.Y)))

	w.status = widget.NewLabel("")

	controls := container.NewVBox()
	for _, p := range tuner.Sliders() {
		controls.Add(w.slider(p))
	}
	controls.Add(w.status)

	w.win.SetContent(container.NewBorder(controls, nil, nil, nil, w.preview))
	w.win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			w.confirm()
		}
	})
	w.win.SetCloseIntercept(w.confirm)

	ctrl.OnChange(func(*extract.Result) { w.refresh() })
	w.refresh()
	return w
}

// slider builds the labelled control for p.
func (w *Window) slider(p tuner.Param) fyne.CanvasObject {
	lo, hi := p.Range()
	value := w.ctrl.Value(p)

	s := widget.NewSlider(float64(lo), float64(hi))
	s.Step = 1
	s.Value = float64(value)
	valueLabel := widget.NewLabel(fmt.Sprintf("%d", value))

	s.OnChanged = func(v float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f", v))
		if _, err := w.ctrl.Set(p, int(v)); err != nil {
			w.log.WithError(err).WithField("param", string(p)).Warn("Parameter update rejected")
			w.status.SetText(err.Error())
		}
	}
	w.sliders[p] = s

	return container.NewBorder(nil, nil, widget.NewLabel(string(p)), valueLabel, s)
}

// refresh re-renders the preview from the controller's current result.
func (w *Window) refresh() {
	img, err := w.ctrl.Preview(w.viewSize.X, w.viewSize.Y)
	if err != nil {
		w.log.WithError(err).Error("Failed to render preview")
		w.status.SetText(err.Error())
		return
	}

	w.preview.Image = img
	w.preview.Refresh()
	w.status.SetText(fmt.Sprintf("%d contours", len(w.ctrl.Result().Contours)))
}

// confirm freezes the parameters and ends the event loop.
func (w *Window) confirm() {
	if w.ctrl.Confirmed() {
		return
	}

	w.log.Debug("Preview closed")
	if _, err := w.ctrl.Confirm(); err != nil {
		w.log.WithError(err).Error("Failed to build stencil")
	}
	w.win.Close()
	w.app.Quit()
}

// Run shows the window and blocks until the user presses Esc or closes it,
// then returns the confirmed stencil.
func (w *Window) Run() (*stencil.Document, error) {
	w.win.Resize(fyne.NewSize(float32(w.viewSize.X), float32(w.viewSize.Y)))
	w.win.ShowAndRun()
	return w.ctrl.Confirm()
}
