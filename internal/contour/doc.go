// Package contour traces the outer boundaries of connected regions in a binary
// edge map.
//
// # Connectivity
//
// Foreground pixels (any non-zero value) are grouped 8-connected; background is
// treated as 4-connected, which keeps the two consistent on diagonal touches.
//
// # External Contours Only
//
// Only regions reachable from the image frame through background are traced.
// A region that sits entirely inside a hole of another region contributes no
// contour of its own, matching the "external retrieval" mode of common
// computer-vision libraries.
//
// # Point Order
//
// Each contour starts at the top-most, left-most pixel of its region and walks
// the boundary clockwise (in image coordinates, with Y pointing down). Contours
// are returned in raster order of their start pixels, so results are fully
// deterministic.
package contour
