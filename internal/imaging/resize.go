package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Default working area the source image is fitted into before processing.
const (
	DefaultMaxWidth  = 600
	DefaultMaxHeight = 400
)

// FitSize returns the size a width x height image takes when fitted into a
// maxWidth x maxHeight working area.
//
// Images that already fit keep their size. Larger images are scaled by a single
// factor so the aspect ratio is preserved within rounding; neither side drops
// below one pixel.
func FitSize(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	scale := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	newWidth := int(math.Round(float64(width) * scale))
	newHeight := int(math.Round(float64(height) * scale))
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	return newWidth, newHeight
}

// FitToWorkArea resizes img so it fits within maxWidth x maxHeight.
//
// Downscaling uses the box filter, which averages source pixels over each
// destination pixel. Images that already fit are returned unchanged.
func FitToWorkArea(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	newWidth, newHeight := FitSize(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if newWidth == bounds.Dx() && newHeight == bounds.Dy() {
		return img
	}
	return imaging.Resize(img, newWidth, newHeight, imaging.Box)
}
