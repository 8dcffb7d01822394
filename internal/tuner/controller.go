package tuner

import (
	"image"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-stencil/internal/extract"
	"github.com/ironsheep/image-stencil/internal/stencil"
)

// ErrFrozen is returned when parameters change after Confirm.
var ErrFrozen = errors.New("parameters are confirmed")

// Controller holds the live parameter set for one working image and keeps
// the extraction result in step with it.
type Controller struct {
	mu sync.Mutex

	img       image.Image
	extractor extract.Extractor
	size      stencil.PhysicalSize
	style     stencil.Style
	log       logrus.FieldLogger

	params    extract.Params
	result    *extract.Result
	confirmed bool

	listeners []func(*extract.Result)
}

// Options configures a Controller.
type Options struct {
	Extractor extract.Extractor
	Size      stencil.PhysicalSize
	Style     stencil.Style
	Params    extract.Params
	Logger    logrus.FieldLogger
}

// New creates a controller for img and runs the first extraction.
func New(img image.Image, opts Options) (*Controller, error) {
	if opts.Extractor == nil {
		opts.Extractor = extract.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if err := opts.Size.Validate(); err != nil {
		return nil, err
	}

	c := &Controller{
		img:       img,
		extractor: opts.Extractor,
		size:      opts.Size,
		style:     opts.Style,
		log:       opts.Logger.WithField("extractor", opts.Extractor.Name()),
		params:    opts.Params.Clamp(),
	}

	res, err := c.extract(c.params)
	if err != nil {
		return nil, err
	}
	c.result = res

	return c, nil
}

// Params returns the current parameter set.
func (c *Controller) Params() extract.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Value returns the current value of p.
func (c *Controller) Value(p Param) int {
	return p.Get(c.Params())
}

// Result returns the latest extraction result.
func (c *Controller) Result() *extract.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// OnChange registers fn to be called with every new result.
func (c *Controller) OnChange(fn func(*extract.Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Set changes p to v, clamped to its range, and returns the updated result.
//
// Setting a value that is already current is a no-op. Only line thickness
// is applied without re-running extraction.
func (c *Controller) Set(p Param, v int) (*extract.Result, error) {
	if !p.Valid() {
		return nil, errors.Wrapf(ErrUnknownParam, "%q", string(p))
	}

	c.mu.Lock()
	if c.confirmed {
		c.mu.Unlock()
		return nil, ErrFrozen
	}

	next := p.set(c.params, v).Clamp()
	if next == c.params {
		res := c.result
		c.mu.Unlock()
		return res, nil
	}

	var res *extract.Result
	if p.affectsContours() {
		var err error
		if res, err = c.extract(next); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	} else {
		updated := *c.result
		updated.Params = next
		res = &updated
	}

	c.params = next
	c.result = res
	listeners := append([]func(*extract.Result){}, c.listeners...)
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"param":    string(p),
		"value":    p.Get(next),
		"contours": len(res.Contours),
	}).Debug("Parameter changed")

	for _, fn := range listeners {
		fn(res)
	}

	return res, nil
}

// Document builds the stencil for the current result.
func (c *Controller) Document() (*stencil.Document, error) {
	c.mu.Lock()
	res := c.result
	c.mu.Unlock()

	return stencil.New(res.Contours, res.Size(), c.size, res.Params.LineThickness, c.style)
}

// Preview renders the current stencil to fit within maxW x maxH.
func (c *Controller) Preview(maxW, maxH int) (image.Image, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}

	sz := doc.PreviewSize(maxW, maxH)
	return stencil.Rasterize(doc, sz.X, sz.Y)
}

// Confirm freezes the parameter set and returns the final document.
// Calling it again returns the same stencil.
func (c *Controller) Confirm() (*stencil.Document, error) {
	c.mu.Lock()
	if !c.confirmed {
		c.confirmed = true
		c.log.WithFields(logrus.Fields{
			"low":       c.params.LowThreshold,
			"high":      c.params.HighThreshold,
			"blur":      c.params.BlurKernel,
			"thickness": c.params.LineThickness,
			"contours":  len(c.result.Contours),
		}).Info("Parameters confirmed")
	}
	c.mu.Unlock()

	return c.Document()
}

// Confirmed reports whether Confirm has been called.
func (c *Controller) Confirmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed
}

func (c *Controller) extract(p extract.Params) (*extract.Result, error) {
	res, err := c.extractor.Extract(c.img, p)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to extract contours with %s", c.extractor.Name())
	}
	return res, nil
}
