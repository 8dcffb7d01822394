package stencil

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1"
)

// ErrLowContrast is returned when the stroke would be invisible on the background.
var ErrLowContrast = errors.New("stroke colour too close to background")

// minStrokeContrast is the smallest CIEDE2000 distance (go-colorful scale,
// black to white is about 1.0) allowed between stroke and background.
const minStrokeContrast = 0.1

// namedColors covers the basic SVG keywords; everything else goes through
// the hex/rgb/hsl parser.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"lime":    "#00ff00",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
}

// Style holds the colours and fitting mode of a stencil document.
type Style struct {
	// Background fills the working area; the laser engraves it away.
	Background string `json:"background"`

	// Stroke draws the contours that stay raised.
	Stroke string `json:"stroke"`

	// Border is the cutting outline colour.
	Border string `json:"border"`

	// Stretch maps the working area onto the physical box without keeping
	// its aspect ratio.
	Stretch bool `json:"stretch"`
}

// DefaultStyle returns black background, white strokes and a red border.
func DefaultStyle() Style {
	return Style{
		Background: "black",
		Stroke:     "white",
		Border:     "red",
	}
}

// Normalize parses every colour into #rrggbb form and checks that the stroke
// stands out from the background.
func (s Style) Normalize() (Style, error) {
	var err error
	if s.Background, err = NormalizeColor(s.Background); err != nil {
		return s, errors.Wrap(err, "background")
	}
	if s.Stroke, err = NormalizeColor(s.Stroke); err != nil {
		return s, errors.Wrap(err, "stroke")
	}
	if s.Border, err = NormalizeColor(s.Border); err != nil {
		return s, errors.Wrap(err, "border")
	}

	bg, _ := colorful.Hex(s.Background)
	stroke, _ := colorful.Hex(s.Stroke)
	if d := bg.DistanceCIEDE2000(stroke); d < minStrokeContrast {
		return s, errors.Wrapf(ErrLowContrast, "%s on %s (distance %.3f)", s.Stroke, s.Background, d)
	}

	return s, nil
}

// NormalizeColor converts a colour keyword, hex, rgb() or hsl() string to
// lower-case #rrggbb.
func NormalizeColor(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if hex, ok := namedColors[value]; ok {
		value = hex
	}

	parsed, err := colors.Parse(value)
	if err != nil {
		return "", errors.Wrapf(err, "unable to parse colour %q", value)
	}

	rgb := parsed.ToRGB()
	c := colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}
	return c.Hex(), nil
}
