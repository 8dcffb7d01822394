//go:build gocv

package extract

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/ironsheep/image-stencil/internal/contour"
	"github.com/ironsheep/image-stencil/internal/imaging"
)

// OpenCV runs the same pipeline through gocv: GaussianBlur, Canny and
// FindContours with external retrieval and simple chain approximation.
type OpenCV struct{}

// Default returns the OpenCV extractor when built with the gocv tag.
func Default() Extractor {
	return &OpenCV{}
}

// Name identifies the backend in logs.
func (o *OpenCV) Name() string {
	return "opencv"
}

// Extract runs the OpenCV pipeline on img with p clamped to its valid ranges.
func (o *OpenCV) Extract(img image.Image, p Params) (*Result, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	p = p.Clamp()

	src, err := gocv.ImageGrayToMatGray(imaging.Grayscale(img))
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert image to mat")
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := p.EffectiveKernel()
	if err := gocv.GaussianBlur(src, &blurred, image.Point{X: k, Y: k}, 0, 0, gocv.BorderDefault); err != nil {
		return nil, errors.Wrap(err, "unable to blur image")
	}

	edgesMat := gocv.NewMat()
	defer edgesMat.Close()
	low, high := p.OrderedThresholds()
	if err := gocv.Canny(blurred, &edgesMat, float32(low), float32(high)); err != nil {
		return nil, errors.Wrap(err, "unable to detect edges")
	}

	edgeImg, err := edgesMat.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert edge mat")
	}
	edges, ok := edgeImg.(*image.Gray)
	if !ok {
		edges = imaging.Grayscale(edgeImg)
	}

	found := gocv.FindContours(edgesMat, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer found.Close()

	contours := make([]contour.Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		contours = append(contours, contour.Contour{Points: found.At(i).ToPoints()})
	}

	return &Result{
		Edges:    edges,
		Contours: contour.Filter(contours, p.MinContourSize),
		Params:   p,
	}, nil
}
