package contour

import "image"

// directions lists the 8 neighbours clockwise (Y down), starting east.
var directions = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
}

// 4-connected neighbour offsets used for background flooding.
var orthogonal = [4]image.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}

// binaryMap is a zero-based view of an edge image.
type binaryMap struct {
	pix    []uint8
	stride int
	width  int
	height int
}

func (m *binaryMap) inside(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.width && p.Y < m.height
}

// fg reports whether p is a foreground pixel. Points outside the map are background.
func (m *binaryMap) fg(p image.Point) bool {
	return m.inside(p) && m.pix[p.Y*m.stride+p.X] != 0
}

// FindExternal returns the outer boundary of every external foreground region
// in edges, simplified with Simplify.
//
// Any non-zero pixel counts as foreground. Returned points use the coordinate
// space of edges (they include edges.Bounds().Min).
func FindExternal(edges *image.Gray) []Contour {
	bounds := edges.Bounds()
	m := &binaryMap{
		pix:    edges.Pix,
		stride: edges.Stride,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
	if m.width == 0 || m.height == 0 {
		return nil
	}

	outside := markOutside(m)
	visited := make([]bool, m.width*m.height)

	contours := make([]Contour, 0)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			start := image.Pt(x, y)
			if visited[y*m.width+x] || !m.fg(start) {
				continue
			}

			pixels, external := fillRegion(m, visited, outside, start)
			if !external {
				continue
			}

			points := Simplify(traceBoundary(m, start, pixels))
			if bounds.Min != (image.Point{}) {
				for i := range points {
					points[i] = points[i].Add(bounds.Min)
				}
			}
			contours = append(contours, Contour{Points: points})
		}
	}

	return contours
}

// markOutside floods the background reachable from the image frame.
//
// Background is 4-connected so an 8-connected ring of foreground seals its hole.
func markOutside(m *binaryMap) []bool {
	outside := make([]bool, m.width*m.height)
	stack := make([]image.Point, 0, 2*(m.width+m.height))

	push := func(p image.Point) {
		if m.inside(p) && !outside[p.Y*m.width+p.X] && !m.fg(p) {
			outside[p.Y*m.width+p.X] = true
			stack = append(stack, p)
		}
	}

	for x := 0; x < m.width; x++ {
		push(image.Pt(x, 0))
		push(image.Pt(x, m.height-1))
	}
	for y := 0; y < m.height; y++ {
		push(image.Pt(0, y))
		push(image.Pt(m.width-1, y))
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range orthogonal {
			push(p.Add(d))
		}
	}

	return outside
}

// fillRegion performs iterative flood-fill of the 8-connected region at start.
//
// It marks the region visited, returns its pixel count, and reports whether the
// region touches the frame or the outside background.
func fillRegion(m *binaryMap, visited, outside []bool, start image.Point) (int, bool) {
	stack := []image.Point{start}
	visited[start.Y*m.width+start.X] = true
	pixels := 0
	external := false

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		pixels++

		if !external {
			if p.X == 0 || p.Y == 0 || p.X == m.width-1 || p.Y == m.height-1 {
				external = true
			} else {
				for _, d := range orthogonal {
					q := p.Add(d)
					if outside[q.Y*m.width+q.X] {
						external = true
						break
					}
				}
			}
		}

		for _, d := range directions {
			q := p.Add(d)
			if m.fg(q) && !visited[q.Y*m.width+q.X] {
				visited[q.Y*m.width+q.X] = true
				stack = append(stack, q)
			}
		}
	}

	return pixels, external
}

// traceBoundary walks the outer boundary of the region containing start using
// Moore-neighbour tracing.
//
// start must be the first pixel of the region in raster order, so its west,
// north-west, north and north-east neighbours are background. Tracing stops
// when the walk is back at start and about to repeat its first step.
func traceBoundary(m *binaryMap, start image.Point, pixels int) []image.Point {
	points := []image.Point{start}

	// search scans clockwise from direction from and returns the first
	// foreground neighbour of p.
	search := func(p image.Point, from int) (int, bool) {
		for i := 0; i < 8; i++ {
			d := (from + i) % 8
			if m.fg(p.Add(directions[d])) {
				return d, true
			}
		}
		return 0, false
	}

	k, ok := search(start, 4)
	if !ok {
		return points
	}
	first := start.Add(directions[k])

	p := first
	for steps := 8*pixels + 8; steps > 0; steps-- {
		// Resume from the background cell examined just before p.
		from := (k + 6) % 8
		if k%2 == 1 {
			from = (k + 5) % 8
		}
		nk, _ := search(p, from)
		next := p.Add(directions[nk])
		if p == start && next == first {
			break
		}
		points = append(points, p)
		p, k = next, nk
	}

	return points
}
