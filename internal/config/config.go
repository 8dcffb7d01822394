package config

import (
	"flag"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-stencil/internal/extract"
	"github.com/ironsheep/image-stencil/internal/imaging"
	"github.com/ironsheep/image-stencil/internal/stencil"
)

// EnvPrefix is prepended to upper-cased flag names to form environment
// variable overrides, e.g. IMAGE_STENCIL_LOG_LEVEL.
const EnvPrefix = "IMAGE_STENCIL"

// ErrInvalidDimension is returned for a height or width that is not a
// positive number.
var ErrInvalidDimension = errors.New("invalid dimension")

// Config is everything one run needs.
type Config struct {
	ImagePath string
	HeightIn  float64
	WidthIn   float64
	Output    string

	MaxWidth  int
	MaxHeight int

	Params extract.Params
	Style  stencil.Style

	NoPreview  bool
	PreviewPNG string
	LogLevel   string
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		Output:    stencil.DefaultFileName,
		MaxWidth:  imaging.DefaultMaxWidth,
		MaxHeight: imaging.DefaultMaxHeight,
		Params:    extract.DefaultParams(),
		Style:     stencil.DefaultStyle(),
		LogLevel:  "info",
	}
}

// Parse reads flags from args, with IMAGE_STENCIL_* environment variables
// as fallbacks. Command-line values win over the environment.
func Parse(args []string, output io.Writer) (*Config, error) {
	cfg := Default()
	fs := newFlagSet(cfg, output)

	if err := flagset.SetFlagsFromEnvVars(fs, EnvPrefix); err != nil {
		return nil, errors.Wrap(err, "unable to read environment")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// PrintDefaults writes the flag list to w.
func PrintDefaults(w io.Writer) {
	newFlagSet(Default(), w).PrintDefaults()
}

// newFlagSet binds every flag to a field of cfg.
func newFlagSet(cfg *Config, output io.Writer) *flag.FlagSet {
	fs := flagset.NewFlagSet("image-stencil")
	fs.Init("image-stencil", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = fs.PrintDefaults

	fs.StringVar(&cfg.ImagePath, "image", "", "Path to the source image. Prompted for when empty.")
	fs.Float64Var(&cfg.HeightIn, "height", 0, "Stencil height in inches. Prompted for when zero.")
	fs.Float64Var(&cfg.WidthIn, "width", 0, "Stencil width in inches. Prompted for when zero.")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Where to write the SVG.")

	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Working area width in pixels.")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Working area height in pixels.")

	fs.IntVar(&cfg.Params.LowThreshold, "low", cfg.Params.LowThreshold, "Initial low Canny threshold (0-255).")
	fs.IntVar(&cfg.Params.HighThreshold, "high", cfg.Params.HighThreshold, "Initial high Canny threshold (0-255).")
	fs.IntVar(&cfg.Params.BlurKernel, "blur", cfg.Params.BlurKernel, "Initial Gaussian kernel size (0-50, rounded up to odd).")
	fs.IntVar(&cfg.Params.LineThickness, "thickness", cfg.Params.LineThickness, "Initial stroke width in working pixels (1-11).")
	fs.IntVar(&cfg.Params.MinContourSize, "min-contour-size", cfg.Params.MinContourSize, "Drop contours smaller than this many pixels in both directions.")

	fs.BoolVar(&cfg.Style.Stretch, "stretch", false, "Stretch the artwork to the border instead of keeping its aspect ratio.")
	fs.StringVar(&cfg.Style.Background, "background", cfg.Style.Background, "Background colour.")
	fs.StringVar(&cfg.Style.Stroke, "stroke", cfg.Style.Stroke, "Contour colour.")
	fs.StringVar(&cfg.Style.Border, "border", cfg.Style.Border, "Cutting border colour.")

	fs.BoolVar(&cfg.NoPreview, "no-preview", false, "Skip the tuning window and export with the initial parameters.")
	fs.StringVar(&cfg.PreviewPNG, "preview-png", "", "Also save the rendered stencil as a PNG.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error).")

	return fs
}

// Size returns the requested physical size.
func (c *Config) Size() stencil.PhysicalSize {
	return stencil.PhysicalSize{WidthIn: c.WidthIn, HeightIn: c.HeightIn}
}

// Level parses LogLevel.
func (c *Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel, errors.Wrapf(err, "unable to parse log level %q", c.LogLevel)
	}
	return lvl, nil
}

// Validate checks the whole configuration. It expects prompting to be done.
func (c *Config) Validate() error {
	if err := imaging.CheckPath(c.ImagePath); err != nil {
		return err
	}
	if err := checkDimension("height", c.HeightIn); err != nil {
		return err
	}
	if err := checkDimension("width", c.WidthIn); err != nil {
		return err
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output path is empty")
	}
	if c.MaxWidth < 1 || c.MaxHeight < 1 {
		return errors.Errorf("working area %dx%d must be at least 1x1", c.MaxWidth, c.MaxHeight)
	}
	if _, err := c.Style.Normalize(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func checkDimension(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalidDimension, "%s must be a positive number of inches, got %g", name, v)
	}
	return nil
}
