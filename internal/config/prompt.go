package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/image-stencil/internal/imaging"
)

// Prompt text shown for values missing from flags and environment.
const (
	PromptImage  = "Enter the image path (e.g., 'images/image.jpg'): "
	PromptHeight = "Enter height in inches: "
	PromptWidth  = "Enter width in inches: "
)

// Prompt asks for the image path, height and width in that order, skipping
// any already set. The path is checked before dimensions are asked for.
func (c *Config) Prompt(r io.Reader, w io.Writer) error {
	in := bufio.NewReader(r)

	if c.ImagePath == "" {
		path, err := ask(in, w, PromptImage)
		if err != nil {
			return err
		}
		c.ImagePath = path
	}
	if err := imaging.CheckPath(c.ImagePath); err != nil {
		return err
	}

	if c.HeightIn == 0 {
		v, err := askDimension(in, w, "height", PromptHeight)
		if err != nil {
			return err
		}
		c.HeightIn = v
	}
	if c.WidthIn == 0 {
		v, err := askDimension(in, w, "width", PromptWidth)
		if err != nil {
			return err
		}
		c.WidthIn = v
	}

	return nil
}

func ask(in *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrapf(err, "unable to read answer to %q", strings.TrimSpace(prompt))
	}
	return strings.TrimSpace(line), nil
}

func askDimension(in *bufio.Reader, w io.Writer, name, prompt string) (float64, error) {
	answer, err := ask(in, w, prompt)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidDimension, "%s %q is not a number", name, answer)
	}
	if err := checkDimension(name, v); err != nil {
		return 0, err
	}
	return v, nil
}
