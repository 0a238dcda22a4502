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

// Package heatmap renders weighted rectangles as a coloured heatmap
// overlay.
//
// Samples are merged per 10×10 grid cell of their rectangle centres.
// Each merged point is drawn as a soft disc filling its rectangle, with
// an intensity given by its value relative to the observed value range,
// and coloured through a gradient. Adding data only draws the new
// points, unless the value range grows, in which case the whole heatmap
// is redrawn.
//
// A minimal use:
//
//	h, err := heatmap.New(heatmap.WithContainer(image.Rect(0, 0, 800, 600)))
//	if err != nil {
//		...
//	}
//	h.AddData(heatmap.Sample{
//		Value:    3,
//		Position: heatmap.Position{Left: 100, Top: 80, Width: 40, Height: 40},
//	})
//	png, err := h.ExportImage()
//
// A Heatmap is not safe for concurrent use.
package heatmap

import (
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"golang.org/x/image/draw"

	"seehuhn.de/go/heatmap/palette"
	"seehuhn.de/go/heatmap/render"
	"seehuhn.de/go/heatmap/store"
)

// Error types of New.
const (
	ErrTypeInvalidSurface = render.ErrTypeInvalidSurface
	ErrTypeInvalidColor   = palette.ErrTypeInvalidColor
)

type (
	// Sample is a single weighted rectangle.
	Sample = store.Sample

	// Position is the rectangle of a sample, in surface pixels.
	Position = store.Position

	// Data is a complete data set for Heatmap.SetData.
	Data = store.Data
)

// Extrema is passed to the function registered with WithOnExtremaChange.
type Extrema struct {
	Min      float64
	Max      float64
	Gradient palette.Gradient
}

// Heatmap is a heatmap surface together with its data.
type Heatmap struct {
	conf       Config
	store      *store.Store
	renderer   *render.Renderer
	palette    *palette.Palette
	background color.NRGBA
	log        *slog.Logger
}

// New creates an empty heatmap. The options are applied on top of
// DefaultConfig.
func New(opts ...Option) (*Heatmap, error) {
	o := &options{conf: DefaultConfig()}
	for _, opt := range opts {
		opt(o)
	}
	conf := o.conf

	log := o.logger
	if log == nil {
		log = Logger()
	}

	h := &Heatmap{
		conf: conf,
		log:  log,
	}

	if len(conf.Gradient) == 0 {
		return nil, errors.New("gradient has no colour stops").
			WithType(ErrTypeInvalidColor)
	}
	h.palette = palette.New(conf.Gradient)

	if conf.BackgroundColor != "" {
		bg, err := palette.ParseColor(conf.BackgroundColor)
		if err != nil {
			return nil, errors.New("invalid background colour").
				WithType(ErrTypeInvalidColor).
				Wrap(err)
		}
		h.background = bg
	}

	width, height := conf.size()
	r, err := render.New(width, height, &render.Options{
		Palette:    h.palette,
		Blur:       conf.Blur,
		MaxOpacity: conf.MaxOpacity,
		MinOpacity: conf.MinOpacity,
		Opacity:    conf.Opacity,
		Logger:     log,
	})
	if err != nil {
		return nil, errors.New("cannot create heatmap surface").
			WithType(ErrTypeInvalidSurface).
			WithTag("container", conf.Container.String()).
			Wrap(err)
	}
	h.renderer = r

	var onChange func(store.Extrema)
	if o.onExtrema != nil {
		onChange = func(e store.Extrema) {
			o.onExtrema(Extrema{
				Min:      e.Min,
				Max:      e.Max,
				Gradient: slices.Clone(conf.Gradient),
			})
		}
	}
	h.store = store.New(r, &store.Options{
		OnExtremaChange: onChange,
		Logger:          log,
	})

	log.Debug("heatmap created", "width", width, "height", height, "blur", conf.Blur)
	return h, nil
}

// AddData merges the samples into the heatmap and draws them.
func (h *Heatmap) AddData(samples ...Sample) *Heatmap {
	h.store.Add(samples...)
	return h
}

// SetData replaces all data. The value range is set to d.Min and d.Max
// and the heatmap is redrawn.
func (h *Heatmap) SetData(d Data) *Heatmap {
	h.store.Replace(d)
	return h
}

// SetExtremum sets the value range and redraws the heatmap. Stored values
// are not changed.
func (h *Heatmap) SetExtremum(min, max float64) *Heatmap {
	h.store.SetExtremum(min, max, true)
	return h
}

// Repaint redraws the whole heatmap.
func (h *Heatmap) Repaint() *Heatmap {
	h.store.Repaint()
	return h
}

// ExportImage returns the heatmap as a PNG image with a transparent
// background.
func (h *Heatmap) ExportImage() ([]byte, error) {
	return h.renderer.ExportImage()
}

// DataURL returns the heatmap as a "data:image/png;base64," URL.
func (h *Heatmap) DataURL() (string, error) {
	return h.renderer.DataURL()
}

// Image returns the heatmap surface. The image changes as data is added.
func (h *Heatmap) Image() image.Image {
	return h.renderer.Image()
}

// Flatten returns a copy of the heatmap drawn over the background colour.
func (h *Heatmap) Flatten() *image.RGBA {
	src := h.renderer.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(h.background), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	return dst
}

// Palette returns the colour table derived from the gradient.
func (h *Heatmap) Palette() *palette.Palette {
	p := *h.palette
	return &p
}

// Snapshot returns the value range and all merged points.
func (h *Heatmap) Snapshot() Data {
	s := h.store.Snapshot()
	return Data{Min: s.Min, Max: s.Max, Points: s.Points}
}

// Config returns the settings of the heatmap.
func (h *Heatmap) Config() Config {
	c := h.conf
	c.Gradient = slices.Clone(c.Gradient)
	return c
}
