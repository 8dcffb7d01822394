package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-stencil/internal/config"
	"github.com/ironsheep/image-stencil/internal/extract"
	"github.com/ironsheep/image-stencil/internal/gui"
	"github.com/ironsheep/image-stencil/internal/imaging"
	"github.com/ironsheep/image-stencil/internal/stencil"
	"github.com/ironsheep/image-stencil/internal/tuner"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before flag parsing
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-stencil %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-stencil - turn an image into a laser-engraving SVG stencil")
			fmt.Println()
			fmt.Println("Usage: image-stencil [options]")
			fmt.Println()
			fmt.Println("Missing image path, height and width are prompted for on stdin.")
			fmt.Println("Adjust the sliders in the preview window, then press Esc or close")
			fmt.Println("the window to save.")
			fmt.Println()
			fmt.Println("Options:")
			config.PrintDefaults(os.Stdout)
			fmt.Println()
			fmt.Println("Every option can also be set with an environment variable, e.g.")
			fmt.Println("  IMAGE_STENCIL_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  IMAGE_STENCIL_NO_PREVIEW=true    Export without opening a window")
			return
		}
	}

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one conversion and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level, err := cfg.Level()
	logger := initLogger(level, stderr)
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		return 1
	}
	logger.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
	}).Debug("Starting image-stencil")

	if err := cfg.Prompt(stdin, stdout); err != nil {
		return fail(logger, stdout, err)
	}
	if err := cfg.Validate(); err != nil {
		return fail(logger, stdout, err)
	}

	doc, ctrl, err := convert(cfg, logger)
	if err != nil {
		return fail(logger, stdout, err)
	}

	if err := stencil.Save(cfg.Output, doc); err != nil {
		return fail(logger, stdout, err)
	}
	logger.WithFields(logrus.Fields{
		"path":     cfg.Output,
		"contours": len(doc.Paths),
	}).Info("Stencil saved")

	if cfg.PreviewPNG != "" {
		if err := savePreview(cfg, ctrl); err != nil {
			return fail(logger, stdout, err)
		}
	}

	fmt.Fprintf(stdout, "SVG saved as '%s'\n", cfg.Output)
	return 0
}

// convert loads the image, lets the user tune it (unless disabled) and
// returns the confirmed stencil.
func convert(cfg *config.Config, logger *logrus.Logger) (*stencil.Document, *tuner.Controller, error) {
	cache := imaging.NewImageCache()

	info, err := imaging.LoadImageInfo(cache, cfg.ImagePath)
	if err != nil {
		return nil, nil, err
	}
	logger.WithFields(logrus.Fields{
		"path":   cfg.ImagePath,
		"width":  info.Width,
		"height": info.Height,
		"format": info.Format,
	}).Debug("Image loaded")

	img, err := cache.Load(cfg.ImagePath)
	if err != nil {
		return nil, nil, err
	}
	work := imaging.FitToWorkArea(img, cfg.MaxWidth, cfg.MaxHeight)
	logger.WithField("size", work.Bounds().Size().String()).Debug("Working image ready")

	ctrl, err := tuner.New(work, tuner.Options{
		Extractor: extract.Default(),
		Size:      cfg.Size(),
		Style:     cfg.Style,
		Params:    cfg.Params,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, err
	}
	res := ctrl.Result()
	logger.WithFields(logrus.Fields{
		"edge_pixels": imaging.CountEdgePixels(res.Edges),
		"contours":    len(res.Contours),
	}).Debug("Initial extraction done")

	if cfg.NoPreview {
		doc, err := ctrl.Confirm()
		return doc, ctrl, err
	}

	doc, err := gui.New(app.NewWithID(gui.AppID), ctrl, cfg.MaxWidth, cfg.MaxHeight, logger.WithField("component", "gui")).Run()
	return doc, ctrl, err
}

func savePreview(cfg *config.Config, ctrl *tuner.Controller) error {
	img, err := ctrl.Preview(cfg.MaxWidth, cfg.MaxHeight)
	if err != nil {
		return err
	}
	if err := imgio.Save(cfg.PreviewPNG, img, imgio.PNGEncoder()); err != nil {
		return errors.Wrapf(err, "unable to save preview %s", cfg.PreviewPNG)
	}
	return nil
}

func fail(logger *logrus.Logger, stdout io.Writer, err error) int {
	logger.WithError(err).Error("Stencil generation failed")
	fmt.Fprintf(stdout, "Error: %v\n", err)
	return 1
}

// initLogger configures logrus for the given level. Debug output is
// human-readable; everything else is JSON.
func initLogger(level logrus.Level, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	if level >= logrus.DebugLevel {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
