package stencil

import (
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-stencil/internal/contour"
)

// ErrEmptyWorkArea is returned when the traced image has no pixels.
var ErrEmptyWorkArea = errors.New("empty working area")

// DefaultFileName is the name the stencil is saved under when none is given.
const DefaultFileName = "rubber_stamp.svg"

// Document is a stencil ready to be encoded.
//
// Paths are kept in working-image pixel coordinates; Transform maps them
// into the millimetre box described by Size.
type Document struct {
	Size        PhysicalSize
	WorkArea    image.Point
	StrokeWidth float64
	Style       Style
	Paths       []string
}

// New builds a document from traced contours.
//
// workArea is the pixel size of the image the contours were traced on and
// strokeWidth is the line thickness in the same pixel units.
func New(contours []contour.Contour, workArea image.Point, size PhysicalSize, strokeWidth int, style Style) (*Document, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if workArea.X <= 0 || workArea.Y <= 0 {
		return nil, errors.Wrapf(ErrEmptyWorkArea, "%dx%d px", workArea.X, workArea.Y)
	}
	if strokeWidth < 1 {
		strokeWidth = 1
	}

	normalized, err := style.Normalize()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(contours))
	for _, c := range contours {
		if d := PathData(c); d != "" {
			paths = append(paths, d)
		}
	}

	return &Document{
		Size:        size,
		WorkArea:    workArea,
		StrokeWidth: float64(strokeWidth),
		Style:       normalized,
		Paths:       paths,
	}, nil
}

// Transform returns the scale and offset that place the working area inside
// the physical box.
func (d *Document) Transform() (sx, sy, tx, ty float64) {
	w, h := d.Size.WidthMM(), d.Size.HeightMM()
	pw, ph := float64(d.WorkArea.X), float64(d.WorkArea.Y)

	if d.Style.Stretch {
		return w / pw, h / ph, 0, 0
	}

	s := math.Min(w/pw, h/ph)
	return s, s, (w - pw*s) / 2, (h - ph*s) / 2
}

// PreviewSize returns the largest pixel size with the document's aspect
// ratio that fits in maxW x maxH.
func (d *Document) PreviewSize(maxW, maxH int) image.Point {
	w, h := d.Size.WidthMM(), d.Size.HeightMM()
	s := math.Min(float64(maxW)/w, float64(maxH)/h)
	return image.Pt(
		max(1, int(math.Round(w*s))),
		max(1, int(math.Round(h*s))),
	)
}

// PathData converts a contour into closed SVG path data.
//
// Contour points index pixel cells, so each one is written at the cell
// centre (x+0.5, y+0.5) to line up with the background rect. Single-point
// contours become a zero-length segment so the round cap still draws a dot.
func PathData(c contour.Contour) string {
	if c.Len() == 0 {
		return ""
	}

	var b strings.Builder
	writePoint := func(cmd string, p image.Point) {
		b.WriteString(cmd)
		b.WriteString(formatNumber(float64(p.X)+0.5, 1))
		b.WriteByte(',')
		b.WriteString(formatNumber(float64(p.Y)+0.5, 1))
	}

	for i, p := range c.Points {
		if i == 0 {
			writePoint("M", p)
		} else {
			writePoint(" L", p)
		}
	}
	if c.Len() == 1 {
		writePoint(" L", c.Points[0])
	}
	b.WriteString(" Z")

	return b.String()
}

// formatNumber prints v with at most prec decimals and no trailing zeros.
func formatNumber(v float64, prec int) string {
	scale := math.Pow(10, float64(prec))
	r := math.Round(v*scale) / scale
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
