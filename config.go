// seehuhn.de/go/heatmap - heatmap rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package heatmap

import (
	"image"
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/heatmap/palette"
)

// Config holds the settings of a heatmap.
type Config struct {
	// Gradient defines the colours for intensities between 0 and 1.
	Gradient palette.Gradient

	// MaxOpacity and MinOpacity limit the alpha of drawn pixels.
	MaxOpacity float64
	MinOpacity float64

	// Opacity, if positive, gives all drawn pixels the same alpha.
	Opacity float64

	// Blur is the fraction of a point's radius over which it fades out.
	// Zero draws solid discs.
	Blur float64

	// Width and Height, if both positive, give a minimum surface size.
	Width, Height int

	// Container is the area of the host the heatmap covers. Its size is
	// the default surface size.
	Container image.Rectangle

	// BackgroundColor is a CSS colour placed behind the heatmap by
	// Heatmap.Flatten. It is never part of exported images.
	BackgroundColor string
}

// DefaultConfig returns the settings used for options which are not
// given: a blue, green, yellow and red gradient, opacity between 0 and 1
// and a blur of 0.85.
func DefaultConfig() Config {
	return Config{
		Gradient:   palette.DefaultGradient(),
		MaxOpacity: 1,
		MinOpacity: 0,
		Blur:       0.85,
	}
}

// size returns the surface size. The container size is used, enlarged
// to Width×Height if both of these are set.
func (c *Config) size() (int, int) {
	w, h := c.Container.Dx(), c.Container.Dy()
	if c.Width > 0 && c.Height > 0 {
		w = max(w, c.Width)
		h = max(h, c.Height)
	}
	return w, h
}

// Option changes a setting of a new heatmap.
type Option func(*options)

type options struct {
	conf      Config
	onExtrema func(Extrema)
	logger    *slog.Logger
}

// WithGradient sets the colour gradient.
func WithGradient(g palette.Gradient) Option {
	return func(o *options) {
		o.conf.Gradient = slices.Clone(g)
	}
}

// WithMaxOpacity sets the highest alpha of drawn pixels, between 0 and 1.
func WithMaxOpacity(a float64) Option {
	return func(o *options) {
		o.conf.MaxOpacity = a
	}
}

// WithMinOpacity sets the lowest alpha of drawn pixels, between 0 and 1.
func WithMinOpacity(a float64) Option {
	return func(o *options) {
		o.conf.MinOpacity = a
	}
}

// WithOpacity gives all drawn pixels the alpha a. This overrides the
// opacity limits. Zero restores them.
func WithOpacity(a float64) Option {
	return func(o *options) {
		o.conf.Opacity = a
	}
}

// WithBlur sets the fraction of a point's radius over which it fades out.
func WithBlur(b float64) Option {
	return func(o *options) {
		o.conf.Blur = b
	}
}

// WithSize sets the minimum surface size. Fractional sizes are rounded
// down.
func WithSize(width, height float64) Option {
	return func(o *options) {
		o.conf.Width = int(math.Floor(width))
		o.conf.Height = int(math.Floor(height))
	}
}

// WithContainer sets the host area the heatmap covers.
func WithContainer(r image.Rectangle) Option {
	return func(o *options) {
		o.conf.Container = r
	}
}

// WithBackgroundColor sets the CSS colour used by Heatmap.Flatten.
func WithBackgroundColor(c string) Option {
	return func(o *options) {
		o.conf.BackgroundColor = c
	}
}

// WithOnExtremaChange registers a function which is called whenever the
// value range changes or the heatmap is repainted, before drawing starts.
// It is meant for updating a legend.
func WithOnExtremaChange(fn func(Extrema)) Option {
	return func(o *options) {
		o.onExtrema = fn
	}
}

// WithLogger sets the logger of the heatmap, instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConfig replaces all settings by c.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.conf = c
		o.conf.Gradient = slices.Clone(c.Gradient)
	}
}
