package extract

import (
	"image"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-stencil/internal/contour"
	"github.com/ironsheep/image-stencil/internal/imaging"
)

// ErrEmptyImage is returned when the source image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Result is the output of one extraction run.
type Result struct {
	// Edges is the binary edge map (255 = edge) with a zero origin.
	Edges *image.Gray

	// Contours are the external contours traced from Edges, in pixel
	// coordinates of the working image.
	Contours []contour.Contour

	// Params are the clamped parameters the result was produced with.
	Params Params
}

// Size returns the working pixel size the result was computed on.
func (r *Result) Size() image.Point {
	return r.Edges.Bounds().Size()
}

// Extractor turns an image and a parameter set into contours.
//
// Implementations must be pure: identical inputs give identical results.
type Extractor interface {
	Extract(img image.Image, p Params) (*Result, error)
	Name() string
}

// Native is the pure-Go extractor: grayscale, Gaussian blur, Canny and
// external border following.
type Native struct{}

// NewNative returns the pure-Go extractor.
func NewNative() *Native {
	return &Native{}
}

// Name identifies the backend in logs.
func (n *Native) Name() string {
	return "native"
}

// Extract runs the pipeline on img with p clamped to its valid ranges.
func (n *Native) Extract(img image.Image, p Params) (*Result, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	p = p.Clamp()
	low, high := p.OrderedThresholds()
	edges := imaging.Canny(img, p.EffectiveKernel(), low, high)
	contours := contour.Filter(contour.FindExternal(edges), p.MinContourSize)

	return &Result{
		Edges:    edges,
		Contours: contours,
		Params:   p,
	}, nil
}

func checkImage(img image.Image) error {
	if img == nil {
		return errors.Wrap(ErrEmptyImage, "nil image")
	}
	if img.Bounds().Empty() {
		return errors.Wrapf(ErrEmptyImage, "bounds %v", img.Bounds())
	}
	return nil
}
