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

var mergeCases = []TestCase{
	{
		Name:   "same_cell",
		Width:  200,
		Height: 200,
		Steps: []Step{
			Add{Samples: []store.Sample{
				sample(5, 10, 10, 100, 100),
				sample(7, 12, 8, 100, 100),
			}},
		},
		WantMin:    0,
		WantMax:    12,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(60, 60), transparent(5, 5)},
	},
	{
		Name:   "separate_cells",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{
				sample(2, 0, 0, 20, 20),
				sample(4, 40, 0, 20, 20),
			}},
		},
		WantMin:    0,
		WantMax:    4,
		WantPoints: 2,
		Pixels:     []Pixel{alphaBetween(10, 10, 126, 130), opaque(50, 10)},
	},
	{
		// the second batch stays within the range and is drawn on top
		Name:   "incremental",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(4, 0, 0, 20, 20)}},
			Add{Samples: []store.Sample{sample(2, 40, 0, 20, 20)}},
		},
		WantMin:    0,
		WantMax:    4,
		WantPoints: 2,
		Pixels:     []Pixel{opaque(10, 10), alphaBetween(50, 10, 126, 130)},
	},
	{
		Name:   "accumulate",
		Width:  100,
		Height: 100,
		Steps: []Step{
			Add{Samples: []store.Sample{sample(1, 0, 0, 20, 20)}},
			Add{Samples: []store.Sample{sample(1, 0, 0, 20, 20)}},
			Add{Samples: []store.Sample{sample(1, 0, 0, 20, 20)}},
		},
		WantMin:    0,
		WantMax:    3,
		WantPoints: 1,
		Pixels:     []Pixel{opaque(10, 10), transparent(30, 10)},
	},
}
