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

package render

import (
	"image"
	"math"
)

// Colorize colours the template tpl into dst, which must have the same
// bounds. Each pixel takes the palette entry indexed by its template
// alpha, with the alpha replaced by ComputeAlpha. Pixels with template
// alpha 0 are left unchanged.
func (r *Renderer) Colorize(dst *image.NRGBA, tpl *image.Alpha) {
	b := tpl.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := tpl.Pix[tpl.PixOffset(b.Min.X, y):]
		out := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for i := range b.Dx() {
			a := src[i]
			if a == 0 {
				continue
			}
			c := r.palette[a]
			out[4*i] = c.R
			out[4*i+1] = c.G
			out[4*i+2] = c.B
			out[4*i+3] = r.ComputeAlpha(a)
		}
	}
}

// ComputeAlpha returns the output alpha for a pixel with template alpha a.
// A positive fixed opacity wins; otherwise a is clamped to the opacity
// limits.
func (r *Renderer) ComputeAlpha(a uint8) uint8 {
	if r.opacity > 0 {
		return clampByte(r.opacity * 255)
	}

	hi := r.maxOpacity * 255
	lo := r.minOpacity * 255
	alpha := float64(a)
	switch {
	case alpha >= hi:
		alpha = hi
	case alpha < lo:
		alpha = lo
	}
	return clampByte(alpha)
}

// clampByte rounds half to even and saturates to 0..255.
func clampByte(x float64) uint8 {
	if !(x > 0) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(x))
}
