// Package imaging loads source images and prepares them for edge detection.
//
// It covers decoding (with a small cache), fitting an image into the working
// area, grayscale conversion, Gaussian blur and Canny edge detection. All
// operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Working Area
//
// Traced coordinates are working-image pixels, so the working area bounds
// both the cost of a preview frame and the detail available to the stencil.
// FitToWorkArea only ever shrinks; images that already fit are untouched.
//
// # Edge Maps
//
// Canny returns a *image.Gray with a zero origin holding EdgeOn (255) for
// edge pixels and EdgeOff (0) elsewhere, one pixel wide after non-maximum
// suppression. Identical inputs always give identical maps.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// A missing or unreadable path is reported as ErrImageNotFound so callers can
// tell it apart from a file that exists but cannot be decoded.
package imaging
