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

// Package render draws heatmap points onto an RGBA surface.
//
// Every point is drawn as a stamp: a grayscale template whose alpha
// channel encodes the point's intensity, falling off towards the edge of
// the point's rectangle. The template is coloured through a 256-entry
// palette, using the template alpha as the palette index, and composited
// onto the surface with source-over blending.
package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"log/slog"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/draw"

	"seehuhn.de/go/heatmap/palette"
	"seehuhn.de/go/heatmap/raster"
	"seehuhn.de/go/heatmap/store"
)

// ErrTypeInvalidSurface is the error type returned for a surface without
// pixels.
const ErrTypeInvalidSurface = "invalid-surface"

// Options configures a Renderer. A nil *Options gives the default palette,
// no blur, and opacity limits 0 and 1.
type Options struct {
	// Palette maps stamp alpha to colour. Nil selects the palette of
	// palette.DefaultGradient.
	Palette *palette.Palette

	// Blur is the fraction of the point radius over which a stamp fades
	// out. Zero or less draws solid discs. Values are clamped to 1.
	Blur float64

	// MaxOpacity and MinOpacity limit the alpha of coloured pixels, as
	// fractions of full opacity.
	MaxOpacity float64
	MinOpacity float64

	// Opacity, if positive, replaces the alpha of every coloured pixel.
	Opacity float64

	// Logger receives debug messages. Nil disables logging.
	Logger *slog.Logger
}

// Renderer implements store.Renderer on an in-memory surface.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	surface *image.RGBA
	palette *palette.Palette

	blur       float64
	maxOpacity float64
	minOpacity float64
	opacity    float64

	templates map[templateKey]*template
	raster    *raster.Rasterizer

	// range of the most recent snapshot
	min, max float64

	log *slog.Logger
}

var _ store.Renderer = (*Renderer)(nil)

// New allocates a transparent surface of the given size.
func New(width, height int, opt *Options) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("surface has no pixels").
			WithType(ErrTypeInvalidSurface).
			WithTag("width", width).
			WithTag("height", height)
	}

	if opt == nil {
		opt = &Options{MaxOpacity: 1}
	}
	r := &Renderer{
		surface:    image.NewRGBA(image.Rect(0, 0, width, height)),
		palette:    opt.Palette,
		blur:       min(opt.Blur, 1),
		maxOpacity: opt.MaxOpacity,
		minOpacity: opt.MinOpacity,
		opacity:    opt.Opacity,
		templates:  make(map[templateKey]*template),
		max:        1,
		log:        opt.Logger,
	}
	if r.palette == nil {
		r.palette = palette.New(palette.DefaultGradient())
	}
	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}
	return r, nil
}

// RenderAll clears the surface and draws all points of s.
func (r *Renderer) RenderAll(s store.Snapshot) {
	instrumentRender(renderModeAll)
	r.Clear()
	r.draw(s)
}

// RenderPartial draws the points of s on top of the existing surface.
// A snapshot without points leaves the renderer untouched.
func (r *Renderer) RenderPartial(s store.Snapshot) {
	instrumentRender(renderModePartial)
	r.draw(s)
}

func (r *Renderer) draw(s store.Snapshot) {
	if len(s.Points) == 0 {
		return
	}
	r.min, r.max = s.Min, s.Max

	for _, p := range s.Points {
		at, win, ok := r.visible(p.Position)
		if !ok {
			continue
		}
		value := p.Value
		if math.IsNaN(value) {
			// NaN never matches a cache key
			value = 0
		}
		t := Intensity(value, s.Min, s.Max)
		tpl := r.lookup(p.Position, value, t, win)
		if tpl == nil {
			continue
		}

		col := image.NewNRGBA(tpl.Bounds())
		r.Colorize(col, tpl)

		draw.Draw(r.surface, tpl.Bounds().Add(at), col, tpl.Bounds().Min, draw.Over)
		instrumentPointDrawn()
	}

	r.log.Debug("heatmap points drawn",
		"points", len(s.Points), "min", s.Min, "max", s.Max, "templates", len(r.templates))
}

// visible returns the surface position of the top-left pixel of a point's
// stamp and the part of the stamp, in stamp coordinates, which lies on
// the surface. The result is false if no pixel of the stamp is visible.
func (r *Renderer) visible(pos store.Position) (image.Point, image.Rectangle, bool) {
	if !(pos.Width >= 1 && pos.Height >= 1) || pos.Width > maxStampSize || pos.Height > maxStampSize {
		return image.Point{}, image.Rectangle{}, false
	}
	size := r.surface.Bounds().Size()
	left, top := math.Round(pos.Left), math.Round(pos.Top)
	x0 := max(left, 0)
	x1 := min(left+math.Floor(pos.Width), float64(size.X))
	y0 := max(top, 0)
	y1 := min(top+math.Floor(pos.Height), float64(size.Y))
	if !(x0 < x1 && y0 < y1) {
		return image.Point{}, image.Rectangle{}, false
	}

	// left and top are bounded by the surface and the stamp size here
	at := image.Pt(int(left), int(top))
	win := image.Rect(int(x0-left), int(y0-top), int(x1-left), int(y1-top))
	return at, win, true
}

// Intensity maps a value onto the alpha of its template. Values are capped
// at hi, and the result is at least 0.01 so that every point stays
// visible. If the range is empty, the intensity is 1.
func Intensity(value, lo, hi float64) float64 {
	if !(hi > lo) {
		return 1
	}
	t := (min(value, hi) - lo) / (hi - lo)
	if !(t >= minIntensity) {
		return minIntensity
	}
	return min(t, 1)
}

// minIntensity is the lowest template alpha.
const minIntensity = 0.01

// Clear makes the whole surface transparent.
func (r *Renderer) Clear() {
	clear(r.surface.Pix)
}

// Image returns the surface. The image is drawn into by later calls.
func (r *Renderer) Image() *image.RGBA {
	return r.surface
}

// Extrema returns the range of the most recently drawn snapshot.
func (r *Renderer) Extrema() store.Extrema {
	return store.Extrema{Min: r.min, Max: r.max}
}

// CacheSize returns the number of cached templates.
func (r *Renderer) CacheSize() int {
	return len(r.templates)
}

// ExportImage returns the surface as a PNG file.
func (r *Renderer) ExportImage() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, r.surface); err != nil {
		return nil, errors.New("encoding heatmap image failed").Wrap(err)
	}
	return buf.Bytes(), nil
}

// DataURL returns the surface as a "data:image/png;base64," URL.
func (r *Renderer) DataURL() (string, error) {
	data, err := r.ExportImage()
	if err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

const dataURLPrefix = "data:image/png;base64,"
