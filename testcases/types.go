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

// Package testcases is a corpus of heatmap scenarios, each a sequence of
// updates applied to a fresh heatmap together with the expected outcome.
package testcases

import (
	"seehuhn.de/go/heatmap/store"
)

// TestCase defines a single heatmap scenario.
type TestCase struct {
	Name   string // lowercase a-z and _ only
	Width  int    // surface width in pixels
	Height int    // surface height in pixels
	Style  Style  // rendering settings
	Steps  []Step // updates, applied in order

	WantMin    float64 // value range after the last step
	WantMax    float64
	WantPoints int // number of merged points after the last step

	Pixels []Pixel // pixel checks after the last step
}

// Style holds the rendering settings of a scenario. The zero value
// means solid discs with opacity limits 0 and 1.
type Style struct {
	Blur       float64
	MaxOpacity float64 // zero is replaced by 1
	MinOpacity float64
	Opacity    float64
}

// Step is an update applied to the heatmap.
type Step interface {
	isStep()
}

// Add merges samples into the heatmap.
type Add struct {
	Samples []store.Sample
}

func (Add) isStep() {}

// Set replaces all data.
type Set struct {
	Data store.Data
}

func (Set) isStep() {}

// Extremum overrides the value range and redraws.
type Extremum struct {
	Min, Max float64
}

func (Extremum) isStep() {}

// Repaint redraws the whole heatmap.
type Repaint struct{}

func (Repaint) isStep() {}

// Pixel is an expectation about the alpha of one surface pixel.
type Pixel struct {
	X, Y int

	// MinAlpha and MaxAlpha bound the alpha channel, inclusive.
	MinAlpha, MaxAlpha uint8
}

// transparent expects pixel (x, y) to be empty.
func transparent(x, y int) Pixel {
	return Pixel{X: x, Y: y, MinAlpha: 0, MaxAlpha: 0}
}

// opaque expects pixel (x, y) to be fully covered.
func opaque(x, y int) Pixel {
	return Pixel{X: x, Y: y, MinAlpha: 255, MaxAlpha: 255}
}

// alphaBetween expects the alpha of pixel (x, y) to lie in [lo, hi].
func alphaBetween(x, y int, lo, hi uint8) Pixel {
	return Pixel{X: x, Y: y, MinAlpha: lo, MaxAlpha: hi}
}

// sample is a helper to create a store.Sample.
func sample(value, left, top, w, h float64) store.Sample {
	return store.Sample{
		Value:    value,
		Position: store.Position{Left: left, Top: top, Width: w, Height: h},
	}
}
