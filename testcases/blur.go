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

var blurCases = []TestCase{
	{
		Name:   "solid_disc",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 40, 40)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(20, 20), opaque(20, 1), transparent(1, 1)},
	},
	{
		Name:   "default_blur",
		Width:  64,
		Height: 64,
		Style:  Style{Blur: 0.85},
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 40, 40)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels: []Pixel{
			opaque(20, 20),
			alphaBetween(30, 20, 138, 146),
			alphaBetween(39, 20, 4, 12),
			transparent(0, 0),
		},
	},
	{
		Name:   "full_blur",
		Width:  64,
		Height: 64,
		Style:  Style{Blur: 1},
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 40, 40)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{alphaBetween(30, 20, 118, 124), transparent(0, 0)},
	},
	{
		Name:   "ellipse",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 60, 20)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels: []Pixel{
			opaque(30, 10),
			opaque(2, 10),
			opaque(30, 1),
			transparent(5, 1),
			transparent(30, 25),
		},
	},
}
