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
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/heatmap/palette"
	"seehuhn.de/go/heatmap/store"
)

func newRenderer(t *testing.T, w, h int, opt *Options) *Renderer {
	t.Helper()
	r, err := New(w, h, opt)
	require.NoError(t, err)
	return r
}

func point(value, left, top, w, h float64) store.Sample {
	return store.Sample{Value: value, Position: store.Position{Left: left, Top: top, Width: w, Height: h}}
}

func TestNewInvalidSurface(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := New(size[0], size[1], nil)
		require.Error(t, err)
		require.Equal(t, ErrTypeInvalidSurface, errors.Type(err))
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		value, lo, hi float64
		want          float64
	}{
		{5, 0, 10, 0.5},
		{0, 0, 10, 0.01},
		{-3, 0, 10, 0.01},
		{0.05, 0, 10, 0.01},
		{20, 0, 10, 1},
		{10, 0, 10, 1},
		{4, 2, 10, 0.25},
		{7, 5, 5, 1},
		{7, 6, 5, 1},
		{math.NaN(), 0, 1, 0.01},
	}
	for _, tc := range tests {
		got := Intensity(tc.value, tc.lo, tc.hi)
		require.InDelta(t, tc.want, got, 1e-12, "Intensity(%g, %g, %g)", tc.value, tc.lo, tc.hi)
		require.GreaterOrEqual(t, got, 0.01)
		require.LessOrEqual(t, got, 1.0)
	}
}

func TestComputeAlpha(t *testing.T) {
	r := newRenderer(t, 1, 1, &Options{MaxOpacity: 0.6, MinOpacity: 0.1})
	require.Equal(t, uint8(153), r.ComputeAlpha(200))
	require.Equal(t, uint8(153), r.ComputeAlpha(153))
	require.Equal(t, uint8(100), r.ComputeAlpha(100))
	require.Equal(t, uint8(26), r.ComputeAlpha(10)) // 25.5 rounds to even

	r = newRenderer(t, 1, 1, &Options{MaxOpacity: 0.6, Opacity: 0.5})
	for _, a := range []uint8{1, 100, 255} {
		require.Equal(t, uint8(128), r.ComputeAlpha(a))
	}

	r = newRenderer(t, 1, 1, nil)
	require.Equal(t, uint8(1), r.ComputeAlpha(1))
	require.Equal(t, uint8(255), r.ComputeAlpha(255))
}

func sumAlpha(img *image.Alpha) float64 {
	var total float64
	for _, a := range img.Pix {
		total += float64(a)
	}
	return total
}

func TestStampDisc(t *testing.T) {
	r := newRenderer(t, 1, 1, &Options{MaxOpacity: 1})

	tpl := r.Stamp(20, 20, 1, image.Rect(0, 0, 20, 20))
	require.Equal(t, image.Rect(0, 0, 20, 20), tpl.Bounds())
	require.Equal(t, uint8(255), tpl.AlphaAt(10, 10).A)
	require.Equal(t, uint8(0), tpl.AlphaAt(0, 0).A)
	require.InEpsilon(t, math.Pi*100*255, sumAlpha(tpl), 0.03)

	half := r.Stamp(20, 20, 0.5, image.Rect(0, 0, 20, 20))
	require.InDelta(t, 128, int(half.AlphaAt(10, 10).A), 1)
}

func TestStampEllipse(t *testing.T) {
	r := newRenderer(t, 1, 1, nil)

	tpl := r.Stamp(40, 20, 1, image.Rect(0, 0, 40, 20))
	require.Equal(t, image.Rect(0, 0, 40, 20), tpl.Bounds())
	require.Equal(t, uint8(255), tpl.AlphaAt(20, 10).A)
	require.Equal(t, uint8(255), tpl.AlphaAt(2, 10).A)
	require.Equal(t, uint8(0), tpl.AlphaAt(2, 1).A)
	require.InEpsilon(t, math.Pi*20*10*255, sumAlpha(tpl), 0.03)
}

func TestStampBlur(t *testing.T) {
	r := newRenderer(t, 1, 1, &Options{Blur: 0.5, MaxOpacity: 1})
	tpl := r.Stamp(20, 20, 0.5, image.Rect(0, 0, 20, 20))

	// inside half the radius the stamp is flat
	require.Equal(t, uint8(128), tpl.AlphaAt(10, 10).A)
	require.Equal(t, uint8(128), tpl.AlphaAt(13, 10).A)

	// then falls off to zero at the radius
	require.Less(t, tpl.AlphaAt(17, 10).A, uint8(128))
	require.Greater(t, tpl.AlphaAt(17, 10).A, uint8(0))
	require.Equal(t, uint8(0), tpl.AlphaAt(0, 0).A)

	r = newRenderer(t, 1, 1, &Options{Blur: 1, MaxOpacity: 1})
	tpl = r.Stamp(20, 20, 1, image.Rect(0, 0, 20, 20))

	// pixel centre (10.5, 10.5) is 0.707 from the centre
	want := math.Round(255 * (1 - math.Sqrt2/2/10))
	require.Equal(t, uint8(want), tpl.AlphaAt(10, 10).A)
}

func TestStampTooSmall(t *testing.T) {
	r := newRenderer(t, 1, 1, nil)
	require.Nil(t, r.Stamp(0.5, 20, 1, image.Rect(0, 0, 20, 20)))
	require.Nil(t, r.Stamp(20, 0, 1, image.Rect(0, 0, 20, 20)))
}

func TestStampWindow(t *testing.T) {
	win := image.Rect(10, 5, 30, 12)
	for _, blur := range []float64{0, 0.85} {
		r := newRenderer(t, 1, 1, &Options{Blur: blur, MaxOpacity: 1})
		full := r.Stamp(40, 20, 1, image.Rect(0, 0, 40, 20))
		part := r.Stamp(40, 20, 1, win)
		require.Equal(t, win, part.Bounds())
		for y := win.Min.Y; y < win.Max.Y; y++ {
			for x := win.Min.X; x < win.Max.X; x++ {
				require.InDelta(t, int(full.AlphaAt(x, y).A), int(part.AlphaAt(x, y).A), 1,
					"blur %g, pixel (%d, %d)", blur, x, y)
			}
		}
	}

	// the window is clipped to the stamp
	r := newRenderer(t, 1, 1, nil)
	require.Equal(t, image.Rect(30, 0, 40, 20), r.Stamp(40, 20, 1, image.Rect(30, -5, 60, 25)).Bounds())
	require.Nil(t, r.Stamp(40, 20, 1, image.Rect(40, 0, 50, 20)))
	require.Nil(t, r.Stamp(1e13, 20, 1, image.Rect(0, 0, 10, 10)))
}

func TestColorize(t *testing.T) {
	p := &palette.Palette{}
	p[128] = color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	p[255] = color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	r := newRenderer(t, 1, 1, &Options{Palette: p, MaxOpacity: 0.5})

	tpl := image.NewAlpha(image.Rect(0, 0, 3, 1))
	tpl.Pix[0] = 0
	tpl.Pix[1] = 128
	tpl.Pix[2] = 255

	dst := image.NewNRGBA(tpl.Bounds())
	r.Colorize(dst, tpl)

	require.Equal(t, color.NRGBA{}, dst.NRGBAAt(0, 0))
	require.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 128}, dst.NRGBAAt(1, 0))
	require.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 128}, dst.NRGBAAt(2, 0))
}

func TestRenderPlacement(t *testing.T) {
	r := newRenderer(t, 100, 100, &Options{MaxOpacity: 1})
	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 10, 10, 20, 20)}})

	img := r.Image()
	require.Equal(t, uint8(255), img.RGBAAt(20, 20).A)
	require.Equal(t, uint8(0), img.RGBAAt(5, 5).A)
	require.Equal(t, uint8(0), img.RGBAAt(35, 20).A)

	// full intensity is the last palette entry
	require.Equal(t, uint8(255), img.RGBAAt(20, 20).R)
	require.Equal(t, store.Extrema{Min: 0, Max: 1}, r.Extrema())
}

func TestRenderClippedPoint(t *testing.T) {
	for _, blur := range []float64{0, 0.85} {
		opt := &Options{Blur: blur, MaxOpacity: 1}
		wide := newRenderer(t, 40, 20, opt)
		wide.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 10, 0, 20, 20)}})
		narrow := newRenderer(t, 20, 20, opt)
		narrow.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, -10, 0, 20, 20)}})

		// the right half of the point is drawn at the left edge
		for y := range 20 {
			for x := range 10 {
				want := wide.Image().RGBAAt(x+20, y).A
				got := narrow.Image().RGBAAt(x, y).A
				require.InDelta(t, int(want), int(got), 1, "blur %g, pixel (%d, %d)", blur, x, y)
			}
		}
		require.Zero(t, narrow.Image().RGBAAt(15, 10).A)
	}
}

func TestRenderHugePoint(t *testing.T) {
	r := newRenderer(t, 10, 10, &Options{MaxOpacity: 1})

	// the surface lies in the corner of the rectangle, outside the disc
	require.NotPanics(t, func() {
		r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 0, 0, 1e10, 1e10)}})
	})
	require.Zero(t, r.Image().RGBAAt(0, 0).A)
	require.Zero(t, r.Image().RGBAAt(9, 9).A)

	// the surface lies in the middle of the disc
	p := point(1, 5-5e9, 5-5e9, 1e10, 1e10)
	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{p}})
	for y := range 10 {
		for x := range 10 {
			require.Equal(t, uint8(255), r.Image().RGBAAt(x, y).A, "pixel (%d, %d)", x, y)
		}
	}
	require.Equal(t, image.Rect(4999999995, 4999999995, 5000000005, 5000000005), r.lastStamp(t, p).Bounds())

	// stamps only cover the visible part of the point
	r = newRenderer(t, 10, 10, &Options{Blur: 0.85, MaxOpacity: 1})
	p = point(1, -1995, -1995, 4000, 4000)
	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{p}})
	require.Equal(t, image.Rect(1995, 1995, 2005, 2005), r.lastStamp(t, p).Bounds())
	require.NotZero(t, r.Image().RGBAAt(5, 5).A)
}

func TestRenderOffSurface(t *testing.T) {
	r := newRenderer(t, 10, 10, &Options{MaxOpacity: 1})
	drawn := testutil.ToFloat64(pointsDrawn)

	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{
		point(1, 100, 100, 20, 20),
		point(1, -30, 0, 20, 20),
		point(1, 0, 10, 20, 20),
		point(1, -1e30, 0, 1e9, 20),
		point(1, math.NaN(), 0, 20, 20),
		point(1, math.Inf(-1), 0, 20, 20),
	}})
	require.Equal(t, drawn, testutil.ToFloat64(pointsDrawn))
	require.Zero(t, r.CacheSize())
	require.Equal(t, make([]uint8, len(r.Image().Pix)), r.Image().Pix)
}

func TestRenderPartialEmpty(t *testing.T) {
	r := newRenderer(t, 50, 50, &Options{MaxOpacity: 1})
	r.RenderAll(store.Snapshot{Min: 0, Max: 4, Points: []store.Sample{point(4, 0, 0, 20, 20)}})
	before := bytes.Clone(r.Image().Pix)

	r.RenderPartial(store.Snapshot{Min: 100, Max: 200})
	require.Equal(t, before, r.Image().Pix)
	require.Equal(t, store.Extrema{Min: 0, Max: 4}, r.Extrema())
}

func TestRenderAllClears(t *testing.T) {
	r := newRenderer(t, 100, 100, &Options{MaxOpacity: 1})
	r.RenderPartial(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 0, 0, 20, 20)}})
	require.NotZero(t, r.Image().RGBAAt(10, 10).A)

	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 60, 60, 20, 20)}})
	require.Zero(t, r.Image().RGBAAt(10, 10).A)
	require.NotZero(t, r.Image().RGBAAt(70, 70).A)

	r.RenderAll(store.Snapshot{Min: 0, Max: 1})
	require.Equal(t, make([]uint8, len(r.Image().Pix)), r.Image().Pix)
}

func TestSourceOver(t *testing.T) {
	r := newRenderer(t, 40, 40, &Options{MaxOpacity: 1, Opacity: 0.5})
	p := point(1, 0, 0, 20, 20)

	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{p}})
	single := r.Image().RGBAAt(10, 10).A

	r.RenderPartial(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{p}})
	double := r.Image().RGBAAt(10, 10).A

	require.InDelta(t, 128, int(single), 1)
	require.InDelta(t, 192, int(double), 1)
}

func TestTemplateCache(t *testing.T) {
	r := newRenderer(t, 100, 100, &Options{Blur: 0.85, MaxOpacity: 1})
	hits := testutil.ToFloat64(templateHits)
	builds := testutil.ToFloat64(templateBuilds)

	points := []store.Sample{point(3, 0, 0, 30, 30), point(3, 50, 50, 30, 30)}
	r.RenderAll(store.Snapshot{Min: 0, Max: 10, Points: points})
	require.Equal(t, 1, r.CacheSize())
	require.Equal(t, builds+1, testutil.ToFloat64(templateBuilds))
	require.Equal(t, hits+1, testutil.ToFloat64(templateHits))

	// a new range changes the intensity of the same key
	r.RenderAll(store.Snapshot{Min: 0, Max: 3, Points: points[:1]})
	require.Equal(t, 1, r.CacheSize())
	require.Equal(t, builds+2, testutil.ToFloat64(templateBuilds))
	require.Equal(t, uint8(255), r.lastStamp(t, points[0]).AlphaAt(15, 15).A)

	r.RenderPartial(store.Snapshot{Min: 0, Max: 3, Points: []store.Sample{point(1, 0, 0, 30, 31)}})
	require.Equal(t, 2, r.CacheSize())
}

func TestTemplateCacheNaN(t *testing.T) {
	r := newRenderer(t, 100, 100, &Options{Blur: 0, MaxOpacity: 1})
	points := []store.Sample{point(math.NaN(), 0, 0, 30, 30), point(0, 50, 50, 30, 30)}
	for range 3 {
		r.RenderAll(store.Snapshot{Min: 0, Max: 10, Points: points})
	}
	require.Equal(t, 1, r.CacheSize())
	require.Equal(t, r.Image().At(15, 15), r.Image().At(65, 65))
}

func (r *Renderer) lastStamp(t *testing.T, p store.Sample) *image.Alpha {
	t.Helper()
	tpl, ok := r.templates[templateKey{Width: p.Position.Width, Height: p.Position.Height, Value: p.Value}]
	require.True(t, ok)
	return tpl.alpha
}

func TestRenderMetrics(t *testing.T) {
	r := newRenderer(t, 20, 20, nil)
	all := testutil.ToFloat64(renderCount.WithLabelValues(renderModeAll))
	partial := testutil.ToFloat64(renderCount.WithLabelValues(renderModePartial))
	drawn := testutil.ToFloat64(pointsDrawn)

	r.RenderAll(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 0, 0, 10, 10)}})
	r.RenderPartial(store.Snapshot{Min: 0, Max: 1, Points: []store.Sample{point(1, 5, 5, 10, 10), point(1, 0, 0, 0.5, 10)}})

	require.Equal(t, all+1, testutil.ToFloat64(renderCount.WithLabelValues(renderModeAll)))
	require.Equal(t, partial+1, testutil.ToFloat64(renderCount.WithLabelValues(renderModePartial)))
	require.Equal(t, drawn+2, testutil.ToFloat64(pointsDrawn))
}

func TestExportImage(t *testing.T) {
	r := newRenderer(t, 64, 32, &Options{Blur: 0.85, MaxOpacity: 1})
	r.RenderAll(store.Snapshot{Min: 0, Max: 2, Points: []store.Sample{point(1, 10, 5, 20, 20)}})

	data, err := r.ExportImage()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())

	_, _, _, want := r.Image().At(20, 15).RGBA()
	_, _, _, got := img.At(20, 15).RGBA()
	require.NotZero(t, want)
	require.Equal(t, want, got)
	_, _, _, got = img.At(63, 31).RGBA()
	require.Zero(t, got)

	url, err := r.DataURL()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	require.Equal(t, data, decoded)
}

func TestWithStore(t *testing.T) {
	r := newRenderer(t, 200, 200, &Options{Blur: 0.85, MaxOpacity: 1})
	s := store.New(r, nil)

	s.Add(point(1, 10, 10, 40, 40))
	require.NotZero(t, r.Image().RGBAAt(30, 30).A)

	s.Add(point(5, 100, 100, 40, 40))
	require.Equal(t, store.Extrema{Min: 0, Max: 5}, r.Extrema())
	require.NotZero(t, r.Image().RGBAAt(120, 120).A)
	require.Equal(t, 2, r.CacheSize())
}
