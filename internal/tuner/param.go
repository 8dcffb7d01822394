package tuner

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/image-stencil/internal/extract"
)

// ErrUnknownParam is returned by Set for a name that is not a slider.
var ErrUnknownParam = errors.New("unknown parameter")

// Param names one adjustable value. The string form is the slider label.
type Param string

// Adjustable parameters, in slider order.
const (
	LowThreshold  Param = "minThresh"
	HighThreshold Param = "maxThresh"
	LineThickness Param = "Line Thickness"
	BlurKernel    Param = "Gaussian Kernel"
)

// Sliders lists every parameter in display order.
func Sliders() []Param {
	return []Param{LowThreshold, HighThreshold, LineThickness, BlurKernel}
}

// Range returns the inclusive bounds of p.
func (p Param) Range() (lo, hi int) {
	switch p {
	case LowThreshold, HighThreshold:
		return extract.ThresholdMin, extract.ThresholdMax
	case LineThickness:
		return extract.LineThicknessMin, extract.LineThicknessMax
	case BlurKernel:
		return extract.BlurKernelMin, extract.BlurKernelMax
	}
	return 0, 0
}

// Valid reports whether p is one of the known sliders.
func (p Param) Valid() bool {
	switch p {
	case LowThreshold, HighThreshold, LineThickness, BlurKernel:
		return true
	}
	return false
}

// Get reads p from params.
func (p Param) Get(params extract.Params) int {
	switch p {
	case LowThreshold:
		return params.LowThreshold
	case HighThreshold:
		return params.HighThreshold
	case LineThickness:
		return params.LineThickness
	case BlurKernel:
		return params.BlurKernel
	}
	return 0
}

// set returns params with p replaced by v (unclamped).
func (p Param) set(params extract.Params, v int) extract.Params {
	switch p {
	case LowThreshold:
		params.LowThreshold = v
	case HighThreshold:
		params.HighThreshold = v
	case LineThickness:
		params.LineThickness = v
	case BlurKernel:
		params.BlurKernel = v
	}
	return params
}

// affectsContours reports whether changing p requires a new extraction.
// Line thickness only changes how the contours are drawn.
func (p Param) affectsContours() bool {
	return p != LineThickness
}
