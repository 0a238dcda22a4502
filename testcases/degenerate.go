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

import (
	"math"

	"seehuhn.de/go/heatmap/store"
)

var degenerateCases = []TestCase{
	{
		// rectangles without size become 40×40
		Name:   "zero_size",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 0, 0)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(20, 20), opaque(38, 20)},
	},
	{
		Name:   "negative_size",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, -5, 10)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(20, 20)},
	},
	{
		// narrower than one pixel: merged but not drawn
		Name:   "sub_pixel",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 0.5, 20)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{transparent(0, 10)},
	},
	{
		Name:   "empty_add",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 0,
		Pixels:     []Pixel{transparent(0, 0)},
	},
	{
		Name:   "equal_extrema",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Set{Data: store.Data{Min: 5, Max: 5, Points: []store.Sample{sample(5, 0, 0, 20, 20)}}},
		},
		WantMin:    5,
		WantMax:    5,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(10, 10)},
	},
	{
		Name:   "off_surface",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{
				sample(1, -10, -10, 40, 40),
				sample(1, 200, 200, 20, 20),
			}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 2,
		Pixels:     []Pixel{opaque(10, 10), transparent(63, 63)},
	},
	{
		// only the part on the surface is drawn
		Name:   "huge_rectangle",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 32-5e9, 32-5e9, 1e10, 1e10)}},
		},
		WantMin:    0,
		WantMax:    1,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(0, 0), opaque(32, 32), opaque(63, 63)},
	},
	{
		// NaN values count as 0
		Name:   "nan_value",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(math.NaN(), 0, 0, 20, 20)}},
			Add{Samples: []store.Sample{sample(2, 40, 40, 20, 20)}},
		},
		WantMin:    0,
		WantMax:    2,
		WantPoints: 2,
		Pixels:     []Pixel{alphaBetween(10, 10, 1, 8), opaque(50, 50)},
	},
}
