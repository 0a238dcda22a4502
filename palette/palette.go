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

// Package palette turns colour gradients into the 256-entry lookup tables
// used to colour a heatmap.
//
// A Gradient is a list of colour stops on [0, 1]. Between two stops,
// colours are interpolated linearly on premultiplied sRGB components.
// Before the first and after the last stop, the end colours are
// extended.
package palette

import (
	"image/color"
	"math"
	"slices"
)

// Size is the number of entries in a Palette.
const Size = 256

// Stop is a colour at a position along a gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient is a list of colour stops. The stops need not be sorted.
// Offsets outside [0, 1] are allowed, but only the part of the gradient
// between 0 and 1 is ever used.
type Gradient []Stop

// Palette maps an intensity index to a colour. Index 0 belongs to fully
// transparent stamp pixels and is never used for drawing.
type Palette [Size]color.NRGBA

// DefaultGradient returns the gradient used when none is configured:
// blue, green, yellow and red.
func DefaultGradient() Gradient {
	return Gradient{
		{Offset: 0.25, Color: color.NRGBA{R: 0, G: 0, B: 255, A: 255}},
		{Offset: 0.55, Color: color.NRGBA{R: 0, G: 255, B: 0, A: 255}},
		{Offset: 0.85, Color: color.NRGBA{R: 255, G: 255, B: 0, A: 255}},
		{Offset: 1.0, Color: color.NRGBA{R: 255, G: 0, B: 0, A: 255}},
	}
}

// Sorted returns a copy of g with the stops ordered by offset. Stops with
// equal offsets keep their relative order.
func (g Gradient) Sorted() Gradient {
	res := slices.Clone(g)
	slices.SortStableFunc(res, func(a, b Stop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		default:
			return 0
		}
	})
	return res
}

// At returns the colour of the gradient at position t.
// An empty gradient is transparent black everywhere.
func (g Gradient) At(t float64) color.NRGBA {
	return g.Sorted().at(t)
}

// at is At for a gradient which is already sorted.
func (g Gradient) at(t float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	last := g[len(g)-1]
	if t >= last.Offset {
		return last.Color
	}

	// first stop strictly beyond t
	idx, _ := slices.BinarySearchFunc(g, t, func(s Stop, t float64) int {
		if s.Offset <= t {
			return -1
		}
		return 1
	})
	lo, hi := g[idx-1], g[idx]
	return blend(lo.Color, hi.Color, (t-lo.Offset)/(hi.Offset-lo.Offset))
}

// New samples g at the centres of Size equal intervals of [0, 1].
func New(g Gradient) *Palette {
	sorted := g.Sorted()
	p := &Palette{}
	for i := range p {
		p[i] = sorted.at((float64(i) + 0.5) / Size)
	}
	return p
}

// blend interpolates between two colours on premultiplied components,
// so that a transparent stop does not bleed its colour into the
// neighbouring interval.
func blend(a, b color.NRGBA, frac float64) color.NRGBA {
	alpha := lerp(float64(a.A), float64(b.A), frac)
	if alpha <= 0 {
		return color.NRGBA{}
	}
	channel := func(ca, cb uint8) uint8 {
		pa := float64(ca) * float64(a.A) / 255
		pb := float64(cb) * float64(b.A) / 255
		return toByte(lerp(pa, pb, frac) * 255 / alpha)
	}
	return color.NRGBA{
		R: channel(a.R, b.R),
		G: channel(a.G, b.G),
		B: channel(a.B, b.B),
		A: toByte(alpha),
	}
}

func lerp(a, b, frac float64) float64 {
	return a + frac*(b-a)
}

func toByte(x float64) uint8 {
	return uint8(math.Round(min(max(x, 0), 255)))
}
