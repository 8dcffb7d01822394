// Package stencil builds the laser-engraving SVG from traced contours.
//
// # Document Layout
//
// The root element is sized in millimetres and its viewBox uses millimetre
// user units, so the red cutting border is exactly the requested physical
// size:
//
//	<svg width="127mm" height="127mm" viewBox="0 0 127 127">
//	  <g id="artwork" transform="translate(..) scale(..)">   pixel space
//	    <rect id="background" .../>                           working area, black
//	    <path d="M x,y L ... Z" .../>                         one per contour, white
//	  </g>
//	  <rect id="border" width="127" height="127" .../>       mm, red hairline
//	</svg>
//
// Traced paths keep working-image pixel coordinates; the artwork group maps
// them into the physical box, centred with a uniform scale unless Stretch is
// set.
//
// # Writing
//
// Save encodes the whole document first and then replaces the destination in
// one rename, so a failed export never leaves a truncated file behind.
//
// # Preview
//
// Rasterize renders an encoded document back to pixels. The interactive
// preview uses it, so what the user sees is what gets exported.
package stencil
