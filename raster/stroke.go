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

package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p using Width, Cap, Join and MiterLimit.
//
// The stroke is assembled from one polygon per segment, join and cap, all
// with the same orientation, and filled with the nonzero rule so that
// overlapping pieces merge without seams.
func (r *Rasterizer) Stroke(p path.Path, emit EmitFunc) {
	d := r.Width / 2
	if d <= 0 {
		return
	}

	r.clearEdges()
	r.eachPolyline(p, func(pts []vec.Vec2, closed bool) {
		r.strokePolyline(pts, closed, d)
	})
	r.sweep(emit)
}

// eachPolyline flattens p into polylines in user space. Consecutive
// duplicate points are dropped; a closed polyline does not repeat its
// first point.
func (r *Rasterizer) eachPolyline(p path.Path, yield func(pts []vec.Vec2, closed bool)) {
	line := r.polyline[:0]
	drew := false
	add := func(from, to vec.Vec2) {
		if len(line) == 0 {
			line = append(line, from)
		}
		drew = true
		if to.Sub(line[len(line)-1]).Length() > zeroLengthThreshold {
			line = append(line, to)
		}
	}
	flush := func(closed bool) {
		if drew && len(line) > 0 {
			if closed && len(line) > 1 && line[0].Sub(line[len(line)-1]).Length() <= zeroLengthThreshold {
				line = line[:len(line)-1]
			}
			yield(line, closed && len(line) > 1)
		}
		line = line[:0]
		drew = false
	}

	var current, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			current = pts[0]
			start = current
			line = append(line, current)
		case path.CmdLineTo:
			add(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], add)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], add)
			current = pts[2]
		case path.CmdClose:
			flush(true)
			current = start
		}
	}
	flush(false)
	r.polyline = line
}

// strokePolyline adds the edges of the stroke polygons of one polyline.
// d is half the stroke width.
func (r *Rasterizer) strokePolyline(pts []vec.Vec2, closed bool, d float64) {
	n := len(pts)
	if n == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pts[0], d)
		case graphics.LineCapSquare:
			c := pts[0]
			r.addPolygon(
				vec.Vec2{X: c.X - d, Y: c.Y - d},
				vec.Vec2{X: c.X + d, Y: c.Y - d},
				vec.Vec2{X: c.X + d, Y: c.Y + d},
				vec.Vec2{X: c.X - d, Y: c.Y + d},
			)
		}
		return
	}

	segments := n - 1
	if closed {
		segments = n
	}
	for i := range segments {
		r.addSegment(pts[i], pts[(i+1)%n], d)
	}
	for i := 1; i < n-1; i++ {
		r.addJoin(pts[i-1], pts[i], pts[i+1], d)
	}
	if closed {
		r.addJoin(pts[n-2], pts[n-1], pts[0], d)
		r.addJoin(pts[n-1], pts[0], pts[1], d)
		return
	}
	r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
	r.addCap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), d)
}

// addSegment adds the rectangle covering the segment a→b.
func (r *Rasterizer) addSegment(a, b vec.Vec2, d float64) {
	N := normal(unit(b.Sub(a))).Mul(d)
	r.addPolygon(a.Add(N), b.Add(N), b.Sub(N), a.Sub(N))
}

// addJoin adds the join geometry at p for the corner a→p→b on the outer
// side of the turn.
func (r *Rasterizer) addJoin(a, p, b vec.Vec2, d float64) {
	T1 := unit(p.Sub(a))
	T2 := unit(b.Sub(p))
	cross := T1.X*T2.Y - T1.Y*T2.X
	cos := T1.Dot(T2)
	if math.Abs(cross) < collinearityThreshold && cos > 0 {
		return
	}
	if r.Join == graphics.LineJoinRound {
		r.addDisc(p, d)
		return
	}

	side := 1.0
	if cross > 0 {
		side = -1
	}
	N1 := normal(T1).Mul(side * d)
	N2 := normal(T2).Mul(side * d)

	if r.Join == graphics.LineJoinMiter {
		sinHalf := math.Sqrt((1 + cos) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			bisector := N1.Add(N2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				tip := p.Add(bisector.Mul(d / (sinHalf * l)))
				r.addPolygon(p, p.Add(N1), tip, p.Add(N2))
				return
			}
		}
	}
	r.addPolygon(p, p.Add(N1), p.Add(N2))
}

// addCap adds the cap at the end point p. T points away from the line.
func (r *Rasterizer) addCap(p, T vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapSquare:
		N := normal(T).Mul(d)
		ext := T.Mul(d)
		r.addPolygon(p.Add(N), p.Add(N).Add(ext), p.Sub(N).Add(ext), p.Sub(N))
	case graphics.LineCapRound:
		r.addDisc(p, d)
	}
}

// addDisc adds a full circle of radius d around c.
func (r *Rasterizer) addDisc(c vec.Vec2, d float64) {
	r.walk(Circle(c.X, c.Y, d))
}

// addPolygon adds the edges of a closed polygon, oriented like Circle.
// Polygons with (almost) no area are skipped.
func (r *Rasterizer) addPolygon(pts ...vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(area) < zeroLengthThreshold {
		return
	}
	if area < 0 {
		slices.Reverse(pts)
	}

	for i, p := range pts {
		r.addEdge(p, pts[(i+1)%len(pts)])
	}
}

// unit returns v scaled to length 1, or the zero vector.
func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l <= zeroLengthThreshold {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// normal returns v rotated by 90° counter-clockwise.
func normal(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

const (
	// collinearityThreshold detects nearly collinear segments where no
	// join is needed.
	collinearityThreshold = 1e-6

	// miterEpsilon absorbs rounding at the miter limit boundary.
	miterEpsilon = 1e-10
)
