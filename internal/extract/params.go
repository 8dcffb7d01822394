package extract

import "github.com/ironsheep/image-stencil/internal/imaging"

// Parameter bounds enforced by Clamp. They match the slider ranges of the
// preview window.
const (
	ThresholdMin = 0
	ThresholdMax = 255

	BlurKernelMin = 0
	BlurKernelMax = 50

	LineThicknessMin = 1
	LineThicknessMax = 11

	MinContourSizeMin = 0
	MinContourSizeMax = 1000
)

// Params is the set of values the user tunes while previewing a stencil.
type Params struct {
	// LowThreshold is the Canny hysteresis low threshold.
	LowThreshold int `json:"low_threshold"`

	// HighThreshold is the Canny hysteresis high threshold.
	HighThreshold int `json:"high_threshold"`

	// BlurKernel is the raw Gaussian kernel size; see EffectiveKernel.
	BlurKernel int `json:"blur_kernel"`

	// LineThickness is the stroke width of contour paths in working pixels.
	LineThickness int `json:"line_thickness"`

	// MinContourSize drops contours whose bounds are smaller than this many
	// pixels in both directions. Zero keeps everything.
	MinContourSize int `json:"min_contour_size"`
}

// DefaultParams returns the starting slider positions.
func DefaultParams() Params {
	return Params{
		LowThreshold:   30,
		HighThreshold:  100,
		BlurKernel:     5,
		LineThickness:  2,
		MinContourSize: 0,
	}
}

// Clamp returns a copy of p with every field inside its valid range.
func (p Params) Clamp() Params {
	p.LowThreshold = clampInt(p.LowThreshold, ThresholdMin, ThresholdMax)
	p.HighThreshold = clampInt(p.HighThreshold, ThresholdMin, ThresholdMax)
	p.BlurKernel = clampInt(p.BlurKernel, BlurKernelMin, BlurKernelMax)
	p.LineThickness = clampInt(p.LineThickness, LineThicknessMin, LineThicknessMax)
	p.MinContourSize = clampInt(p.MinContourSize, MinContourSizeMin, MinContourSizeMax)
	return p
}

// EffectiveKernel returns the odd kernel size actually used for blurring.
func (p Params) EffectiveKernel() int {
	return imaging.OddKernel(p.BlurKernel)
}

// OrderedThresholds returns the thresholds with low <= high.
func (p Params) OrderedThresholds() (int, int) {
	if p.LowThreshold > p.HighThreshold {
		return p.HighThreshold, p.LowThreshold
	}
	return p.LowThreshold, p.HighThreshold
}

// WithThresholds returns a copy of p with new Canny thresholds.
func (p Params) WithThresholds(low, high int) Params {
	p.LowThreshold = low
	p.HighThreshold = high
	return p
}

// WithBlurKernel returns a copy of p with a new blur kernel size.
func (p Params) WithBlurKernel(k int) Params {
	p.BlurKernel = k
	return p
}

// WithLineThickness returns a copy of p with a new stroke width.
func (p Params) WithLineThickness(t int) Params {
	p.LineThickness = t
	return p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
