package stencil

import (
	"math"

	"github.com/pkg/errors"
)

// Unit conversions.
const (
	MillimetersPerInch  = 25.4
	MillimetersPerPoint = 0.35278

	// BorderStrokePoints is the cutting border hairline width in points.
	BorderStrokePoints = 0.072
)

// ErrInvalidSize is returned for non-positive or non-finite dimensions.
var ErrInvalidSize = errors.New("invalid stencil size")

// PhysicalSize is the requested output size in inches.
type PhysicalSize struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// WidthMM returns the width in millimetres.
func (s PhysicalSize) WidthMM() float64 {
	return s.WidthIn * MillimetersPerInch
}

// HeightMM returns the height in millimetres.
func (s PhysicalSize) HeightMM() float64 {
	return s.HeightIn * MillimetersPerInch
}

// Validate rejects zero, negative, NaN and infinite dimensions.
func (s PhysicalSize) Validate() error {
	for _, v := range []float64{s.WidthIn, s.HeightIn} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidSize, "%gx%g in", s.WidthIn, s.HeightIn)
		}
	}
	return nil
}

// BorderStrokeMM returns the cutting border hairline width in millimetres.
func BorderStrokeMM() float64 {
	return BorderStrokePoints * MillimetersPerPoint
}
