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

package store

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Position is an axis-aligned rectangle in surface pixel coordinates.
type Position struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sample is a single weighted observation.
type Sample struct {
	Value    float64  `json:"value"`
	Position Position `json:"position"`
}

// Key identifies the grid cell a sample falls into. Samples with equal
// keys are merged into one point.
type Key struct {
	X, Y int64
}

// DefaultWidth and DefaultHeight give the rectangle substituted for
// samples without a usable size.
const (
	DefaultWidth  = 40
	DefaultHeight = 40
)

// gridSize is the cell size used to group rectangle centres.
const gridSize = 10

// rect returns the rectangle as an r2.Rect.
func (p Position) rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: p.Left, Hi: p.Left + p.Width},
		Y: r1.Interval{Lo: p.Top, Hi: p.Top + p.Height},
	}
}

// Area returns the area of the rectangle.
func (p Position) Area() float64 {
	size := p.rect().Size()
	return size.X * size.Y
}

// Normalize replaces a rectangle without positive width and height by
// the default rectangle at the same top-left corner. A NaN value becomes
// 0, so that it cannot spread into the value range or the merged sums.
func (s Sample) Normalize() Sample {
	if math.IsNaN(s.Value) {
		s.Value = 0
	}
	w, h := s.Position.Width, s.Position.Height
	if !(w > 0) || !(h > 0) {
		s.Position.Width = DefaultWidth
		s.Position.Height = DefaultHeight
	}
	return s
}

// XY returns the centre of the sample's rectangle rounded to the nearest
// multiple of 10. Halves round up.
func XY(s Sample) (x, y float64) {
	k := KeyOf(s)
	return float64(k.X * gridSize), float64(k.Y * gridSize)
}

// KeyOf returns the grid cell of the sample's rectangle centre.
func KeyOf(s Sample) Key {
	c := s.Position.rect().Center()
	return Key{
		X: int64(math.Floor(c.X/gridSize + 0.5)),
		Y: int64(math.Floor(c.Y/gridSize + 0.5)),
	}
}

// Merge combines two samples of the same cell. The values are added and
// the rectangle with the larger area is kept; on a tie the rectangle of a
// wins.
func Merge(a, b Sample) Sample {
	pos := a.Position
	if a.Position.Area() < b.Position.Area() {
		pos = b.Position
	}
	return Sample{
		Value:    a.Value + b.Value,
		Position: pos,
	}
}
