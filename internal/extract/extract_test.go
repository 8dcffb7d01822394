package extract

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// speckledImage is a black canvas with a bright square and a grid of isolated
// single-pixel specks, the kind of noise blurring is meant to remove.
func speckledImage() *image.RGBA {
	img := solidImage(170, 170, color.Black)
	for y := 100; y < 150; y++ {
		for x := 100; x < 150; x++ {
			img.Set(x, y, color.White)
		}
	}
	for y := 10; y <= 80; y += 10 {
		for x := 10; x <= 80; x += 10 {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestNative_SolidImageHasNoContours(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{200, 40, 90, 255})

	res, err := NewNative().Extract(img, DefaultParams())
	require.NoError(t, err)

	assert.Empty(t, res.Contours)
	assert.Equal(t, image.Pt(100, 100), res.Size())
}

func TestNative_SquareHasOneContour(t *testing.T) {
	img := solidImage(120, 80, color.White)
	for y := 20; y < 60; y++ {
		for x := 30; x < 90; x++ {
			img.Set(x, y, color.Black)
		}
	}

	res, err := NewNative().Extract(img, DefaultParams())
	require.NoError(t, err)
	require.Len(t, res.Contours, 1)

	b := res.Contours[0].Bounds()
	assert.InDelta(t, 30, b.Min.X, 2)
	assert.InDelta(t, 20, b.Min.Y, 2)
	assert.InDelta(t, 90, b.Max.X, 2)
	assert.InDelta(t, 60, b.Max.Y, 2)
}

func TestNative_Deterministic(t *testing.T) {
	img := speckledImage()
	p := DefaultParams().WithThresholds(20, 60).WithBlurKernel(3)

	first, err := NewNative().Extract(img, p)
	require.NoError(t, err)
	second, err := NewNative().Extract(img, p)
	require.NoError(t, err)

	assert.Equal(t, first.Contours, second.Contours)
	assert.Equal(t, first.Edges.Pix, second.Edges.Pix)
}

func TestNative_BlurDoesNotAddContours(t *testing.T) {
	img := speckledImage()
	ex := NewNative()

	counts := make([]int, 0, 3)
	for _, k := range []int{1, 5, 15} {
		res, err := ex.Extract(img, DefaultParams().WithBlurKernel(k))
		require.NoError(t, err)
		counts = append(counts, len(res.Contours))
	}

	assert.GreaterOrEqual(t, counts[0], 64, "every speck should be outlined without blur")
	for i := 1; i < len(counts); i++ {
		assert.LessOrEqual(t, counts[i], counts[i-1], "contour counts %v", counts)
	}
}

func TestNative_MinContourSizeDropsSpecks(t *testing.T) {
	img := speckledImage()
	p := DefaultParams().WithBlurKernel(1)

	all, err := NewNative().Extract(img, p)
	require.NoError(t, err)

	p.MinContourSize = 10
	filtered, err := NewNative().Extract(img, p)
	require.NoError(t, err)

	assert.Less(t, len(filtered.Contours), len(all.Contours))
	assert.NotEmpty(t, filtered.Contours, "the square must survive the filter")
}

func TestNative_ClampsParams(t *testing.T) {
	img := solidImage(20, 20, color.White)

	res, err := NewNative().Extract(img, Params{
		LowThreshold:   -10,
		HighThreshold:  999,
		BlurKernel:     80,
		LineThickness:  0,
		MinContourSize: -1,
	})
	require.NoError(t, err)

	assert.Equal(t, Params{
		LowThreshold:   0,
		HighThreshold:  255,
		BlurKernel:     50,
		LineThickness:  1,
		MinContourSize: 0,
	}, res.Params)
}

func TestNative_EmptyImage(t *testing.T) {
	_, err := NewNative().Extract(nil, DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = NewNative().Extract(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestDefault(t *testing.T) {
	ex := Default()
	require.NotNil(t, ex)
	assert.NotEmpty(t, ex.Name())
}

func TestParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 30, p.LowThreshold)
	assert.Equal(t, 100, p.HighThreshold)
	assert.Equal(t, 5, p.BlurKernel)
	assert.Equal(t, 2, p.LineThickness)

	assert.Equal(t, 1, p.WithBlurKernel(0).EffectiveKernel())
	assert.Equal(t, 7, p.WithBlurKernel(6).EffectiveKernel())
	assert.Equal(t, 9, p.WithBlurKernel(9).EffectiveKernel())

	low, high := p.WithThresholds(120, 40).OrderedThresholds()
	assert.Equal(t, 40, low)
	assert.Equal(t, 120, high)

	// With* helpers never mutate the receiver
	_ = p.WithLineThickness(9)
	assert.Equal(t, 2, p.LineThickness)
}
