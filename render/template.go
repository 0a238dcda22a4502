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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/heatmap/raster"
	"seehuhn.de/go/heatmap/store"
)

// templateKey identifies a cached template. Points with equal keys share
// a template.
type templateKey struct {
	Width, Height float64
	Value         float64
}

// template is a cached stamp, drawn for intensity t. The alpha image
// covers the part of the stamp that was visible when it was built.
type template struct {
	t     float64
	alpha *image.Alpha
}

// maxStampSize is the largest point width or height which is drawn.
// Beyond this, pixel positions are no longer exact in float64.
const maxStampSize = 1 << 40

// lookup returns the part win of the stamp for a point, in stamp
// coordinates. The stamp is built if the cache has no entry for the key,
// the entry was drawn for a different intensity or does not cover win.
func (r *Renderer) lookup(pos store.Position, value, t float64, win image.Rectangle) *image.Alpha {
	key := templateKey{Width: pos.Width, Height: pos.Height, Value: value}
	if tpl, ok := r.templates[key]; ok && tpl.t == t && win.In(tpl.alpha.Bounds()) {
		instrumentTemplateHit()
		return tpl.alpha.SubImage(win).(*image.Alpha)
	}

	alpha := r.Stamp(pos.Width, pos.Height, t, win)
	if alpha == nil {
		return nil
	}
	r.templates[key] = &template{t: t, alpha: alpha}
	instrumentTemplateBuild()
	r.log.Debug("heatmap template built",
		"width", pos.Width, "height", pos.Height, "value", value, "intensity", t,
		"window", win.String())
	return alpha
}

// Stamp draws the part win of the grayscale template of a w×h point at
// intensity t.
//
// The stamp is a circle of diameter max(w, h), squeezed into the w×h
// rectangle. Without blur it is a solid disc of alpha t. With blur b the
// alpha is t inside the radius (1-b)·r and falls off linearly to zero at
// the radius r.
//
// The full stamp measures int(w)×int(h) pixels, with (0, 0) at the
// top-left corner of the point rectangle. The result has the bounds of
// win clipped to the stamp; nil is returned if this is empty or if w or
// h exceeds 2^40.
func (r *Renderer) Stamp(w, h, t float64, win image.Rectangle) *image.Alpha {
	if !(w >= 1 && h >= 1) || w > maxStampSize || h > maxStampSize {
		return nil
	}
	win = win.Intersect(image.Rect(0, 0, int(w), int(h)))
	if win.Empty() {
		return nil
	}
	dst := image.NewAlpha(win)

	side := max(w, h)
	radius := side / 2
	blurFactor := 1 - r.blur
	if blurFactor >= 1 {
		clip := rect.Rect{
			LLx: float64(win.Min.X), LLy: float64(win.Min.Y),
			URx: float64(win.Max.X), URy: float64(win.Max.Y),
		}
		if r.raster == nil {
			r.raster = raster.NewRasterizer(clip)
		} else {
			r.raster.Reset(clip)
		}
		r.raster.CTM = matrix.Scale(w/side, h/side)
		r.raster.FillAlpha(dst, raster.Circle(radius, radius, radius), t)
		return dst
	}

	inner := radius * blurFactor
	sx, sy := side/w, side/h
	for py := win.Min.Y; py < win.Max.Y; py++ {
		v := (float64(py)+0.5)*sy - radius
		row := dst.Pix[dst.PixOffset(win.Min.X, py):]
		for px := win.Min.X; px < win.Max.X; px++ {
			u := (float64(px)+0.5)*sx - radius
			d := math.Hypot(u, v)
			row[px-win.Min.X] = alphaByte(t * (1 - falloff(d, inner, radius)))
		}
	}
	return dst
}

// falloff is the position of distance d within the ramp from inner to
// outer, clamped to [0, 1].
func falloff(d, inner, outer float64) float64 {
	if d <= inner {
		return 0
	}
	if d >= outer {
		return 1
	}
	return (d - inner) / (outer - inner)
}

// alphaByte maps [0, 1] onto 0..255, rounding to nearest.
func alphaByte(a float64) uint8 {
	return uint8(math.Round(min(max(a, 0), 1) * 255))
}
