package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"already fits", 300, 200, 300, 200},
		{"exact work area", 600, 400, 600, 400},
		{"wide", 1200, 400, 600, 200},
		{"tall", 400, 1200, 133, 400},
		{"square larger", 1000, 1000, 400, 400},
		{"wide but height bound", 700, 650, 431, 400},
		{"extreme aspect", 10000, 2, 600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.width, tt.height, DefaultMaxWidth, DefaultMaxHeight)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize(%d, %d): got %dx%d, want %dx%d",
					tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
			if w > DefaultMaxWidth || h > DefaultMaxHeight {
				t.Errorf("FitSize(%d, %d) = %dx%d exceeds the work area", tt.width, tt.height, w, h)
			}
		})
	}
}

func TestFitSize_PreservesAspectRatio(t *testing.T) {
	for width := 250; width <= 3000; width += 175 {
		for height := 180; height <= 2500; height += 230 {
			w, h := FitSize(width, height, DefaultMaxWidth, DefaultMaxHeight)

			// One pixel of rounding on either side bounds the ratio error
			want := float64(width) / float64(height)
			lo := (float64(w) - 1) / (float64(h) + 1)
			hi := (float64(w) + 1) / math.Max(float64(h)-1, 1)
			if want < lo || want > hi {
				t.Errorf("%dx%d -> %dx%d: ratio %.4f outside [%.4f, %.4f]",
					width, height, w, h, want, lo, hi)
			}
		}
	}
}

func TestFitToWorkArea(t *testing.T) {
	img := createInMemoryImage(1200, 800, color.RGBA{10, 20, 30, 255})

	resized := FitToWorkArea(img, DefaultMaxWidth, DefaultMaxHeight)

	if resized.Bounds().Dx() != 600 || resized.Bounds().Dy() != 400 {
		t.Errorf("dimensions: got %dx%d, want 600x400",
			resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	// Area averaging of a solid image keeps its color
	r, g, b, _ := resized.At(300, 200).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("color drifted: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestFitToWorkArea_SmallImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	resized := FitToWorkArea(img, DefaultMaxWidth, DefaultMaxHeight)

	if resized != image.Image(img) {
		t.Error("an image that already fits should be returned as-is")
	}
}
