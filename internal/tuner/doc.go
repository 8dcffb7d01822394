// Package tuner holds the interactive parameter state between the sliders
// and the extractor.
//
// A Controller owns one working image. Every Set re-runs extraction (line
// thickness excepted) and notifies listeners; Confirm freezes the values
// and yields the stencil to export.
package tuner
