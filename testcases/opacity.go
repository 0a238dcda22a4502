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

var opacityCases = []TestCase{
	{
		Name:   "max_opacity",
		Width:  64,
		Height: 64,
		Style:  Style{MaxOpacity: 0.5},
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 20, 20)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 128, 128), transparent(30, 30)},
	},
	{
		// faint pixels are raised to the minimum opacity
		Name:   "min_opacity",
		Width:  64,
		Height: 64,
		Style:  Style{MinOpacity: 0.5},
		Steps: []Step{
			Set{Data: store.Data{Min: 0, Max: 10, Points: []store.Sample{sample(1, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    10,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 128, 128), transparent(0, 0)},
	},
	{
		Name:   "fixed_opacity",
		Width:  64,
		Height: 64,
		Style:  Style{Opacity: 0.3},
		Steps: []Step{
			Set{Data: store.Data{Min: 0, Max: 10, Points: []store.Sample{sample(10, 0, 0, 20, 20)}}},
		},
		WantMin:    0,
		WantMax:    10,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(10, 10, 76, 76), transparent(0, 0)},
	},
	{
		Name:   "overlap",
		Width:  64,
		Height: 64,
		Style:  Style{Opacity: 0.5},
		Steps: []Step{
			Add{Samples: []store.Sample{
				sample(1, 0, 0, 40, 40),
				sample(1, 10, 0, 40, 40),
			}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 2,
		Pixels:     []Pixel{alphaBetween(25, 20, 190, 194), alphaBetween(5, 20, 127, 129)},
	},
}
