//go:build !gocv

package extract

// Default returns the extractor compiled into this binary. Build with the
// gocv tag to use OpenCV instead of the pure-Go pipeline.
func Default() Extractor {
	return NewNative()
}
