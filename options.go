package ggblit

import "github.com/gogpu/gg"

// Default display mode used when the destination is not sized from the
// source.
const (
	DefaultModeWidth  = 640
	DefaultModeHeight = 480
)

// DisplayOption configures a Display during creation.
//
// Example:
//
//	d, err := ggblit.CreateDisplay(desc,
//	    ggblit.WithMode(1280, 720),
//	    ggblit.WithInterpolation(gg.InterpBicubic))
type DisplayOption func(*displayOptions)

// displayOptions holds optional configuration for Display creation.
type displayOptions struct {
	width, height int
	interp        gg.InterpolationMode
}

// defaultDisplayOptions returns the default display options.
func defaultDisplayOptions() displayOptions {
	return displayOptions{
		width:  DefaultModeWidth,
		height: DefaultModeHeight,
		interp: gg.InterpBilinear,
	}
}

// WithMode sets the display resolution used when the surface description
// does not carry a width and height.
func WithMode(width, height int) DisplayOption {
	return func(o *displayOptions) {
		o.width = width
		o.height = height
	}
}

// WithInterpolation sets the filter used when a blit scales its source.
func WithInterpolation(mode gg.InterpolationMode) DisplayOption {
	return func(o *displayOptions) {
		o.interp = mode
	}
}
