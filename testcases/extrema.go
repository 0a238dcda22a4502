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

package testcases

import "seehuhn.de/go/heatmap/store"

var extremaCases = []TestCase{
	{
		Name:   "set_data_range",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Set{Data: store.Data{Min: 0, Max: 10, Points: []store.Sample{sample(5, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    10,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 126, 130)},
	},
	{
		// values above the range are drawn at full intensity
		Name:   "set_data_capped",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Set{Data: store.Data{Min: 0, Max: 2, Points: []store.Sample{sample(8, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    2,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(10, 10)},
	},
	{
		Name:   "set_data_resets",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(9, 40, 40, 20, 20)}},
			Set{Data: store.Data{Min: 0, Max: 1, Points: []store.Sample{sample(1, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(10, 10), transparent(50, 50)},
	},
	{
		Name:   "extremum_override",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(4, 0, 0, 20, 20)}},
			Extremum{Min: 2, Max: 10},
		},
		WantMin:    2,
		WantMax:    10,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 62, 66)},
	},
	{
		Name:   "extremum_then_repaint",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(4, 0, 0, 20, 20)}},
			Extremum{Min: 2, Max: 10},
			Repaint{},
		},
		WantMin:    2,
		WantMax:    10,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 62, 66)},
	},
	{
		Name:   "min_intensity",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Set{Data: store.Data{Min: 0, Max: 100, Points: []store.Sample{sample(0.5, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    100,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 2, 3)},
	},
	{
		Name:   "negative_values",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{
				sample(-4, 0, 0, 20, 20),
				sample(4, 40, 0, 20, 20),
			}},
		},
		WantMin:    -4,
		WantMax:    4,
		WantPoints: 2,
		Pixels:     []Pixel{alphaBetween(10, 10, 2, 3), opaque(50, 10)},
	},
}
