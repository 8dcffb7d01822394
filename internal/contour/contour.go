package contour

import "image"

// Contour is a closed boundary polyline in pixel coordinates.
//
// The last point connects back to the first; it is not repeated.
type Contour struct {
	Points []image.Point
}

// Len returns the number of points in the contour.
func (c Contour) Len() int {
	return len(c.Points)
}

// Bounds returns the smallest rectangle containing every point.
// Max is exclusive, so a single-pixel contour has a 1x1 bounds.
func (c Contour) Bounds() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c.Points[0], Max: c.Points[0].Add(image.Pt(1, 1))}
	for _, p := range c.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// Filter drops contours whose bounds are smaller than minSize pixels in both
// directions. A minSize of one or less keeps everything.
func Filter(contours []Contour, minSize int) []Contour {
	if minSize <= 1 {
		return contours
	}
	kept := make([]Contour, 0, len(contours))
	for _, c := range contours {
		b := c.Bounds()
		if b.Dx() >= minSize || b.Dy() >= minSize {
			kept = append(kept, c)
		}
	}
	return kept
}

// Simplify removes points that lie in the middle of a straight horizontal,
// vertical or diagonal run, keeping only the run end points.
//
// The input is treated as a closed loop. Contours of one or two points are
// returned unchanged.
func Simplify(points []image.Point) []image.Point {
	n := len(points)
	if n <= 2 {
		return points
	}

	out := make([]image.Point, 0, n)
	for i, p := range points {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		// Every step identical cannot close a loop; keep the input intact.
		return points
	}
	return out
}
