// Package render rasterises sampler output.
//
// [Accumulator] is a persistent density buffer for bifurcation diagrams:
// batches of (control, value) pairs are composited as translucent marks,
// so the picture builds up across calls instead of being redrawn. An
// overlay layer on top carries the current control line and trajectory
// markers. [FieldView] draws a 2D trajectory over the contour bands of a
// potential.
//
// Both draw through a [Provider], which supplies surfaces at device
// resolution (logical size times pixel ratio).
package render
