package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 1200, 800))
	for y := 0; y < 800; y++ {
		for x := 0; x < 1200; x++ {
			c := color.White
			if x >= 300 && x < 900 && y >= 200 && y < 600 {
				c = color.Black
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, "stamp.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRun_Headless(t *testing.T) {
	dir := t.TempDir()
	input := writeTestImage(t, dir)
	output := filepath.Join(dir, "out.svg")
	previewPNG := filepath.Join(dir, "preview.png")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-no-preview",
		"-output", output,
		"-preview-png", previewPNG,
	}, strings.NewReader(input+"\n5\n5\n"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "SVG saved as '"+output+"'")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(output))
	border := doc.FindElement("//rect[@id='border']")
	require.NotNil(t, border)
	assert.Equal(t, "127", border.SelectAttrValue("width", ""))
	assert.Equal(t, "127", border.SelectAttrValue("height", ""))

	// The 1200x800 source is traced on a 600x400 working area
	bg := doc.FindElement("//rect[@id='background']")
	require.NotNil(t, bg)
	assert.Equal(t, "600", bg.SelectAttrValue("width", ""))
	assert.Equal(t, "400", bg.SelectAttrValue("height", ""))
	assert.NotEmpty(t, doc.FindElements("//path"))

	_, err := os.Stat(previewPNG)
	assert.NoError(t, err)
}

func TestRun_DebugLogsExtraction(t *testing.T) {
	dir := t.TempDir()
	input := writeTestImage(t, dir)

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-no-preview",
		"-log-level", "debug",
		"-image", input,
		"-height", "1",
		"-width", "1",
		"-output", filepath.Join(dir, "out.svg"),
	}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stderr.String(), "Initial extraction done")
	assert.Contains(t, stderr.String(), "edge_pixels=")
	assert.NotContains(t, stderr.String(), "edge_pixels=0 ")
}

func TestRun_MissingImage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-no-preview"}, strings.NewReader("does/not/exist.png\n"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "Error:")
	assert.NotContains(t, stdout.String(), "Enter height")
}

func TestRun_BadDimension(t *testing.T) {
	input := writeTestImage(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run([]string{"-no-preview", "-image", input}, strings.NewReader("tall\n"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "invalid dimension")
}

func TestRun_BadFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-bogus"}, strings.NewReader(""), &stdout, &stderr))
}

func TestInitLogger(t *testing.T) {
	var out bytes.Buffer

	logger := initLogger(logrus.DebugLevel, &out)
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Contains(t, out.String(), "Debug logging enabled")

	logger = initLogger(logrus.InfoLevel, &out)
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
