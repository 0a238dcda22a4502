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

// Package store keeps the merged points of a heatmap together with the
// running range of their values, and decides how much of the heatmap has
// to be redrawn after each update.
//
// Samples whose rectangle centres fall into the same 10×10 cell are merged
// into one point. As long as new data stays within the current value
// range, only the new or changed points are drawn on top of the existing
// image. When the range grows, the colour of every point may change and
// the whole surface is redrawn.
package store

import "log/slog"

// Extrema is the range of point values used to normalise intensities.
type Extrema struct {
	Min float64
	Max float64
}

// Snapshot is a read-only copy of (part of) the store's state, handed to
// a Renderer.
type Snapshot struct {
	Min    float64
	Max    float64
	Points []Sample
}

// Data is a complete data set, as accepted by Store.Replace.
type Data struct {
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Points []Sample `json:"data"`
}

// Renderer draws the points of a snapshot.
type Renderer interface {
	// RenderAll clears the surface and draws all points of s.
	RenderAll(s Snapshot)

	// RenderPartial draws the points of s on top of the current surface.
	RenderPartial(s Snapshot)
}

// Options configures a Store. A nil *Options is valid.
type Options struct {
	// OnExtremaChange, if set, is called with the new range before the
	// surface is redrawn because the range changed.
	OnExtremaChange func(Extrema)

	// Logger receives debug messages. Nil disables logging.
	Logger *slog.Logger
}

// Store holds the merged points of a heatmap.
//
// A Store is not safe for concurrent use.
type Store struct {
	renderer Renderer
	onChange func(Extrema)
	log      *slog.Logger

	min, max float64
	points   map[Key]Sample
	order    []Key // keys in insertion order
}

// New returns an empty store with range [0, 1] which draws through r.
// r may be nil, in which case nothing is drawn.
func New(r Renderer, opt *Options) *Store {
	s := &Store{
		renderer: r,
		min:      0,
		max:      1,
		points:   make(map[Key]Sample),
	}
	if opt != nil {
		s.onChange = opt.OnExtremaChange
		s.log = opt.Logger
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Add merges the samples into the store and redraws.
//
// If the value range is unchanged afterwards, only the points created or
// updated by this call are drawn, using the previous range. Otherwise the
// observer is notified and the whole surface is redrawn.
func (s *Store) Add(samples ...Sample) {
	prevMin, prevMax := s.min, s.max
	changed := s.merge(samples, true)

	if s.min == prevMin && s.max == prevMax {
		s.log.Debug("heatmap points added",
			"samples", len(samples), "changed", len(changed), "redraw", "partial")
		if s.renderer == nil {
			return
		}
		points := make([]Sample, len(changed))
		for i, k := range changed {
			points[i] = s.points[k]
		}
		s.renderer.RenderPartial(Snapshot{Min: prevMin, Max: prevMax, Points: points})
		return
	}

	s.log.Debug("heatmap points added",
		"samples", len(samples), "changed", len(changed), "redraw", "full",
		"min", s.min, "max", s.max)
	s.Repaint()
}

// Replace discards all points, sets the range to d.Min and d.Max exactly,
// merges d.Points and redraws everything.
func (s *Store) Replace(d Data) {
	clear(s.points)
	s.order = s.order[:0]
	s.min, s.max = d.Min, d.Max
	s.merge(d.Points, false)

	s.log.Debug("heatmap data replaced",
		"samples", len(d.Points), "points", len(s.order), "min", s.min, "max", s.max)
	s.Repaint()
}

// SetExtremum overrides the value range without touching the points.
// The observer is notified if the range changed; if repaint is true the
// surface is redrawn under the new range.
func (s *Store) SetExtremum(min, max float64, repaint bool) {
	changed := min != s.min || max != s.max
	s.min, s.max = min, max
	if changed {
		s.notify()
	}
	if repaint && s.renderer != nil {
		s.renderer.RenderAll(s.Snapshot())
	}
}

// Repaint notifies the observer of the current range and redraws all
// points.
func (s *Store) Repaint() {
	s.notify()
	if s.renderer != nil {
		s.renderer.RenderAll(s.Snapshot())
	}
}

// Snapshot returns the current range and all points in insertion order.
func (s *Store) Snapshot() Snapshot {
	points := make([]Sample, len(s.order))
	for i, k := range s.order {
		points[i] = s.points[k]
	}
	return Snapshot{Min: s.min, Max: s.max, Points: points}
}

// Extrema returns the current value range.
func (s *Store) Extrema() Extrema {
	return Extrema{Min: s.min, Max: s.max}
}

// Len returns the number of merged points.
func (s *Store) Len() int {
	return len(s.order)
}

// merge folds samples into the point map and returns the keys touched,
// in order of first occurrence. If track is set, the range is widened to
// include every merged value.
func (s *Store) merge(samples []Sample, track bool) []Key {
	var changed []Key
	seen := make(map[Key]bool, len(samples))
	for _, sample := range samples {
		sample = sample.Normalize()
		k := KeyOf(sample)

		merged := sample
		if prev, ok := s.points[k]; ok {
			merged = Merge(prev, sample)
		} else {
			s.order = append(s.order, k)
		}
		s.points[k] = merged

		if !seen[k] {
			seen[k] = true
			changed = append(changed, k)
		}
		if track {
			s.min = min(s.min, merged.Value)
			s.max = max(s.max, merged.Value)
		}
	}
	return changed
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(Extrema{Min: s.min, Max: s.max})
	}
}
