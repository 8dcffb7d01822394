package tuner

import (
	"image"
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-stencil/internal/extract"
	"github.com/ironsheep/image-stencil/internal/stencil"
)

// countingExtractor wraps the native backend and records every call.
type countingExtractor struct {
	calls []extract.Params
	fail  error
}

func (e *countingExtractor) Name() string { return "counting" }

func (e *countingExtractor) Extract(img image.Image, p extract.Params) (*extract.Result, error) {
	e.calls = append(e.calls, p)
	if e.fail != nil {
		return nil, e.fail
	}
	return extract.NewNative().Extract(img, p)
}

func boxImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			c := color.White
			if x >= 15 && x < 45 && y >= 10 && y < 30 {
				c = color.Black
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func newController(t *testing.T, ex extract.Extractor) *Controller {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := New(boxImage(), Options{
		Extractor: ex,
		Size:      stencil.PhysicalSize{WidthIn: 3, HeightIn: 2},
		Style:     stencil.DefaultStyle(),
		Params:    extract.DefaultParams(),
		Logger:    logger,
	})
	require.NoError(t, err)
	return c
}

func TestNew_RunsFirstExtraction(t *testing.T) {
	ex := &countingExtractor{}
	c := newController(t, ex)

	require.Len(t, ex.calls, 1)
	assert.Equal(t, extract.DefaultParams(), c.Params())
	require.NotNil(t, c.Result())
	assert.Len(t, c.Result().Contours, 1)
	assert.False(t, c.Confirmed())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(boxImage(), Options{Size: stencil.PhysicalSize{WidthIn: 0, HeightIn: 1}})
	assert.ErrorIs(t, err, stencil.ErrInvalidSize)

	boom := errors.New("boom")
	_, err = New(boxImage(), Options{
		Extractor: &countingExtractor{fail: boom},
		Size:      stencil.PhysicalSize{WidthIn: 1, HeightIn: 1},
	})
	assert.ErrorIs(t, err, boom)
}

func TestSet_ClampsAndReExtracts(t *testing.T) {
	ex := &countingExtractor{}
	c := newController(t, ex)

	res, err := c.Set(HighThreshold, 400)
	require.NoError(t, err)
	assert.Equal(t, 255, c.Value(HighThreshold))
	assert.Equal(t, 255, res.Params.HighThreshold)
	assert.Len(t, ex.calls, 2)

	_, err = c.Set(BlurKernel, -4)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Value(BlurKernel))
	assert.Len(t, ex.calls, 3)
}

func TestSet_SameValueIsNoop(t *testing.T) {
	ex := &countingExtractor{}
	c := newController(t, ex)
	before := c.Result()

	res, err := c.Set(LowThreshold, 30)
	require.NoError(t, err)
	assert.Same(t, before, res)
	assert.Len(t, ex.calls, 1)
}

func TestSet_LineThicknessSkipsExtraction(t *testing.T) {
	ex := &countingExtractor{}
	c := newController(t, ex)
	before := c.Result()

	res, err := c.Set(LineThickness, 7)
	require.NoError(t, err)
	assert.Len(t, ex.calls, 1)
	assert.Equal(t, 7, res.Params.LineThickness)
	assert.Equal(t, before.Contours, res.Contours)
	assert.Equal(t, 2, before.Params.LineThickness, "earlier results are not modified")

	doc, err := c.Document()
	require.NoError(t, err)
	assert.Equal(t, 7.0, doc.StrokeWidth)
}

func TestSet_UnknownParam(t *testing.T) {
	c := newController(t, &countingExtractor{})
	_, err := c.Set(Param("Contrast"), 3)
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestSet_ExtractionFailureKeepsState(t *testing.T) {
	ex := &countingExtractor{}
	c := newController(t, ex)
	before := c.Result()

	ex.fail = errors.New("backend gone")
	_, err := c.Set(LowThreshold, 50)
	assert.Error(t, err)
	assert.Equal(t, 30, c.Value(LowThreshold))
	assert.Same(t, before, c.Result())
}

func TestOnChange(t *testing.T) {
	c := newController(t, &countingExtractor{})

	var seen []int
	c.OnChange(func(res *extract.Result) {
		seen = append(seen, res.Params.LowThreshold)
	})

	_, err := c.Set(LowThreshold, 10)
	require.NoError(t, err)
	_, err = c.Set(LowThreshold, 10)
	require.NoError(t, err)
	_, err = c.Set(LowThreshold, 20)
	require.NoError(t, err)

	assert.Equal(t, []int{10, 20}, seen)
}

func TestConfirm_Freezes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c, err := New(boxImage(), Options{
		Size:   stencil.PhysicalSize{WidthIn: 3, HeightIn: 2},
		Style:  stencil.DefaultStyle(),
		Params: extract.DefaultParams(),
		Logger: logger,
	})
	require.NoError(t, err)

	doc, err := c.Confirm()
	require.NoError(t, err)
	assert.True(t, c.Confirmed())
	assert.Len(t, doc.Paths, 1)
	assert.InDelta(t, 76.2, doc.Size.WidthMM(), 1e-9)

	_, err = c.Set(LowThreshold, 5)
	assert.ErrorIs(t, err, ErrFrozen)

	_, err = c.Confirm()
	require.NoError(t, err)

	confirmations := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "Parameters confirmed" {
			confirmations++
			assert.Equal(t, logrus.InfoLevel, e.Level)
		}
	}
	assert.Equal(t, 1, confirmations)
}

func TestPreview(t *testing.T) {
	c := newController(t, &countingExtractor{})

	img, err := c.Preview(300, 300)
	require.NoError(t, err)
	// 3in x 2in keeps its 3:2 shape
	assert.Equal(t, image.Rect(0, 0, 300, 200), img.Bounds())
}

func TestSliders(t *testing.T) {
	sliders := Sliders()
	require.Len(t, sliders, 4)
	assert.Equal(t, "minThresh", string(sliders[0]))

	for _, p := range sliders {
		assert.True(t, p.Valid())
		lo, hi := p.Range()
		assert.Less(t, lo, hi, string(p))
		v := p.Get(extract.DefaultParams())
		assert.GreaterOrEqual(t, v, lo, string(p))
		assert.LessOrEqual(t, v, hi, string(p))
	}

	assert.False(t, Param("nope").Valid())
}
