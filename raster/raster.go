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

// Package raster converts outlines into anti-aliased pixel coverage.
//
// The heatmap renderer uses it for the filled-disc point stamps and the
// legend uses it for the frame around the colour bar.
package raster

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline, starting at pixel xMin.
// The slice is only valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer computes coverage values, the fraction of each pixel covered
// by a filled or stroked outline, from 0 (outside) to 1 (inside).
// Internal buffers are reused across calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used for the ends of open subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where two stroke segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit converts miter joins into bevels when exceeded. At least 1.
	MiterLimit float64

	cover   []float32
	area    []float32
	rowUsed []bool
	edges   []edge

	bboxEmpty bool
	devXMin   float64
	devXMax   float64
	devYMin   float64
	devYMax   float64

	polyline []vec.Vec2 // flattened subpath, reused
}

// NewRasterizer returns a Rasterizer with the given clip rectangle, the
// identity CTM and PDF default stroke parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
	}
}

// Reset sets a new clip rectangle and restores the identity CTM, keeping
// the internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.CTM = matrix.Identity
}

// Fill fills the outline using the nonzero winding rule.
func (r *Rasterizer) Fill(p path.Path, emit EmitFunc) {
	r.clearEdges()
	r.walk(p)
	r.sweep(emit)
}

func (r *Rasterizer) clearEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// sweep converts the collected edges into coverage, row by row.
func (r *Rasterizer) sweep(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	r.rowUsed = slices.Grow(r.rowUsed[:0], height)[:height]
	clear(r.cover)
	clear(r.area)
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		last := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			lo, hi := row*width, (row+1)*width
			accumulate(e, y, r.cover[lo:hi], r.area[lo:hi], xMin)
			r.rowUsed[row] = true
		}
	}

	for row := range height {
		if !r.rowUsed[row] {
			continue
		}
		lo, hi := row*width, (row+1)*width
		coverage := r.cover[lo:hi]
		integrate(coverage, r.area[lo:hi])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// FillAlpha fills the outline into dst, writing coverage scaled by alpha.
// Pixels outside the outline are left unchanged.
func (r *Rasterizer) FillAlpha(dst *image.Alpha, p path.Path, alpha float64) {
	b := dst.Bounds()
	r.Fill(p, func(y, xMin int, coverage []float32) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		for i, c := range coverage {
			x := xMin + i
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			dst.Pix[dst.PixOffset(x, y)] = toByte(float64(c) * alpha)
		}
	})
}

// toByte maps [0, 1] onto 0..255, rounding to nearest.
func toByte(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

// walk flattens the outline into device-space edges.
// Subpaths are closed implicitly.
func (r *Rasterizer) walk(p path.Path) {
	var current, start vec.Vec2
	open := false
	closeSubpath := func() {
		if open && current != start {
			r.addEdge(current, start)
		}
		current = start
		open = false
	}
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			closeSubpath()
			current = pts[0]
			start = current
		case path.CmdLineTo:
			r.addEdge(current, pts[0])
			current = pts[0]
			open = true
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], r.addEdge)
			current = pts[1]
			open = true
		case path.CmdCubeTo:
			r.fillCubic(current, pts[0], pts[1], pts[2])
			current = pts[2]
			open = true
		case path.CmdClose:
			closeSubpath()
		}
	}
	closeSubpath()
}

// transformLinear applies the 2×2 linear part of the CTM.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic emits line segments approximating a quadratic Bézier.
// The segment count is chosen from the device-space error of the curve.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic emits line segments approximating a cubic Bézier, using
// Wang's formula for the segment count.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	n := r.cubicSegments(p0, p1, p2, p3)

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) cubicSegments(p0, p1, p2, p3 vec.Vec2) int {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	if !(m > 0) || math.IsInf(m, 0) {
		return 1
	}
	nf := math.Sqrt(3 * m / (4 * r.Flatness))
	if !(nf > 1) {
		return 1
	}
	return int(math.Ceil(min(nf, maxCurveSegments)))
}

// fillCubic adds the edges of a cubic Bézier. Curves needing more than
// maxCubicSegments lines are split in half. A piece whose control points
// all lie on one side of the clip rectangle is replaced by its chord,
// which has the same coverage inside the clip rectangle.
func (r *Rasterizer) fillCubic(p0, p1, p2, p3 vec.Vec2) {
	if r.cubicSegments(p0, p1, p2, p3) <= maxCubicSegments {
		r.flattenCubic(p0, p1, p2, p3, r.addEdge)
		return
	}
	if r.outsideClip(p0, p1, p2, p3) {
		r.addEdge(p0, p3)
		return
	}

	a1 := p0.Add(p1).Mul(0.5)
	m := p1.Add(p2).Mul(0.5)
	b2 := p2.Add(p3).Mul(0.5)
	a2 := a1.Add(m).Mul(0.5)
	b1 := m.Add(b2).Mul(0.5)
	mid := a2.Add(b1).Mul(0.5)
	r.fillCubic(p0, a1, a2, mid)
	r.fillCubic(mid, b1, b2, p3)
}

// outsideClip reports whether the device-space bounding box of the points
// lies entirely left of, right of, above or below the clip rectangle.
func (r *Rasterizer) outsideClip(pts ...vec.Vec2) bool {
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		x := r.CTM[0]*p.X + r.CTM[2]*p.Y + r.CTM[4]
		y := r.CTM[1]*p.X + r.CTM[3]*p.Y + r.CTM[5]
		xMin, xMax = min(xMin, x), max(xMax, x)
		yMin, yMax = min(yMin, y), max(yMax, y)
	}
	return xMax <= r.Clip.LLx || xMin >= r.Clip.URx ||
		yMax <= r.Clip.LLy || yMin >= r.Clip.URy
}

// addEdge transforms a user-space segment to device space and records it.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.devXMin, r.devXMax = min(x0, x1), max(x0, x1)
		r.devYMin, r.devYMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)
}

// Each edge deposits two quantities per pixel of a scanline:
//
//	cover: signed vertical extent of the edge inside the pixel column
//	area:  cover weighted by the part of the pixel right of the edge
//
// integrate turns a scanline's buffers into coverage by carrying the
// running cover sum from left to right.

// accumulate adds the contribution of e on scanline y. The buffers start
// at device column x0; contributions left of x0 are folded into the first
// pixel, contributions right of the buffer are dropped.
func accumulate(e *edge, y int, cover, area []float32, x0 int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	colA := int(math.Floor(min(xa, xb)))
	colB := int(math.Floor(max(xa, xb)))
	if colA == colB {
		deposit(cover, area, x0, colA, sign*float32(yBot-yTop), (xa+xb)/2)
		return
	}

	dydx := 1 / e.dxdy
	for col := colA; col <= colB; col++ {
		ya := e.y0 + dydx*(float64(col)-e.x0)
		yb := e.y0 + dydx*(float64(col+1)-e.x0)
		lo := max(min(ya, yb), yTop)
		hi := min(max(ya, yb), yBot)
		if hi <= lo {
			continue
		}
		xMid := e.x0 + e.dxdy*((lo+hi)/2-e.y0)
		deposit(cover, area, x0, col, sign*float32(hi-lo), xMid)
	}
}

// deposit records a segment piece of vertical extent c in column col,
// crossing the column at horizontal position xMid.
func deposit(cover, area []float32, x0, col int, c float32, xMid float64) {
	i := col - x0
	switch {
	case i < 0:
		cover[0] += c
		area[0] += c
	case i < len(cover):
		cover[i] += c
		area[i] += c * float32(1-(xMid-float64(col)))
	}
}

// integrate converts one scanline of cover/area values into nonzero
// coverage, in place in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of coverage and its offset, or
// nil if everything is zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// Circle returns a closed counter-clockwise (in a y-up frame) outline of
// a circle built from four cubic Bézier arcs.
func Circle(cx, cy, radius float64) path.Path {
	kr := circleKappa * radius
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: cx + x, Y: cy + y} }
	arcs := [4][3]vec.Vec2{
		{pt(radius, kr), pt(kr, radius), pt(0, radius)},
		{pt(-kr, radius), pt(-radius, kr), pt(-radius, 0)},
		{pt(-radius, -kr), pt(-kr, -radius), pt(0, -radius)},
		{pt(kr, -radius), pt(radius, -kr), pt(radius, 0)},
	}
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = pt(radius, 0)
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		for _, arc := range arcs {
			buf = arc
			if !yield(path.CmdCubeTo, buf[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// Polygon returns the closed outline through pts.
func Polygon(pts ...vec.Vec2) path.Path {
	return polyline(pts, true)
}

// Polyline returns the open outline through pts.
func Polyline(pts ...vec.Vec2) path.Path {
	return polyline(pts, false)
}

func polyline(pts []vec.Vec2, closed bool) path.Path {
	pts = slices.Clone(pts)
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		for i, p := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			buf[0] = p
			if !yield(cmd, buf[:]) {
				return
			}
		}
		if closed && len(pts) > 0 {
			yield(path.CmdClose, nil)
		}
	}
}

const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// maxCubicSegments is the number of lines above which fillCubic
	// splits a curve before flattening it.
	maxCubicSegments = 64

	// maxCurveSegments bounds the flattening of a single curve.
	maxCurveSegments = 1 << 20

	// defaultMiterLimit matches PDF/PostScript: joins become bevels when
	// the interior angle is below about 11.5 degrees.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// circleKappa places the control points of a quarter-circle cubic.
	circleKappa = 0.5522847498
)
