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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	renderModeLabel   = "mode"
	renderModeAll     = "all"
	renderModePartial = "partial"
)

var (
	renderCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heatmap_render_count_total",
		Help: "The total number of render calls.",
	}, []string{renderModeLabel})

	pointsDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatmap_points_drawn_total",
		Help: "The total number of point stamps drawn.",
	})

	templateBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatmap_template_builds_total",
		Help: "The total number of point templates built.",
	})

	templateHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "heatmap_template_hits_total",
		Help: "The total number of point templates reused from the cache.",
	})
)

func instrumentRender(mode string) {
	renderCount.
		With(prometheus.Labels{renderModeLabel: mode}).
		Inc()
}

func instrumentPointDrawn() {
	pointsDrawn.Inc()
}

func instrumentTemplateBuild() {
	templateBuilds.Inc()
}

func instrumentTemplateHit() {
	templateHits.Inc()
}
