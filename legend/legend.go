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

// Package legend draws the colour bar of a heatmap palette.
package legend

import (
	"image"
	"image/color"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/heatmap/palette"
	"seehuhn.de/go/heatmap/raster"
	"seehuhn.de/go/heatmap/render"
)

// Options controls the appearance of a legend. A nil *Options draws a
// horizontal bar without frame.
type Options struct {
	// Vertical draws the bar from bottom (lowest value) to top. Otherwise
	// the bar runs from left to right.
	Vertical bool

	// Border is the colour of the frame. The frame is only drawn if
	// BorderWidth is positive.
	Border      color.NRGBA
	BorderWidth float64

	// Join is the corner style of the frame.
	Join graphics.LineJoinStyle
}

// Render draws the palette as a w×h colour bar.
func Render(pal *palette.Palette, w, h int, opt *Options) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("legend has no pixels").
			WithType(render.ErrTypeInvalidSurface).
			WithTag("width", w).
			WithTag("height", h)
	}
	if opt == nil {
		opt = &Options{}
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := w
	if opt.Vertical {
		n = h
	}
	for i := range n {
		c := pal[i*palette.Size/n]
		var r image.Rectangle
		if opt.Vertical {
			r = image.Rect(0, h-1-i, w, h-i)
		} else {
			r = image.Rect(i, 0, i+1, h)
		}
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}

	if opt.BorderWidth > 0 {
		drawFrame(img, opt)
	}
	return img, nil
}

// drawFrame strokes a rectangle along the inside of the image edge.
func drawFrame(img *image.RGBA, opt *Options) {
	b := img.Bounds()
	fw, fh := float64(b.Dx()), float64(b.Dy())
	d := opt.BorderWidth / 2

	frame := raster.Polygon(
		vec.Vec2{X: d, Y: d},
		vec.Vec2{X: fw - d, Y: d},
		vec.Vec2{X: fw - d, Y: fh - d},
		vec.Vec2{X: d, Y: fh - d},
	)

	mask := image.NewAlpha(b)
	r := raster.NewRasterizer(rect.Rect{LLx: 0, LLy: 0, URx: fw, URy: fh})
	r.Width = opt.BorderWidth
	r.Join = opt.Join
	r.Stroke(frame, func(y, xMin int, coverage []float32) {
		row := mask.Pix[mask.PixOffset(xMin, y):]
		for i, c := range coverage {
			row[i] = uint8(min(c, 1)*255 + 0.5)
		}
	})

	draw.DrawMask(img, b, image.NewUniform(opt.Border), image.Point{}, mask, image.Point{}, draw.Over)
}
