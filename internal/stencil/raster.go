package stencil

import (
	"bytes"
	"image"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize renders the document at width x height pixels.
//
// The viewBox is stretched to the target, so callers wanting undistorted
// output should size it with PreviewSize.
func Rasterize(d *Document, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid raster size %dx%d", width, height)
	}

	// The renderer sizes from the viewBox; it does not understand the
	// millimetre suffix on the root dimensions.
	doc := d.Element()
	root := doc.Root()
	root.RemoveAttr("width")
	root.RemoveAttr("height")

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode svg")
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse svg")
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1.0)
	return img, nil
}
