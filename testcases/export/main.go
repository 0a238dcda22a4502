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

// Command export writes the test cases as input files for the heatmap
// command, together with an index of the expected results.
// Run from the module root directory.
package main

import (
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"

	"seehuhn.de/go/heatmap"
	"seehuhn.de/go/heatmap/store"
	"seehuhn.de/go/heatmap/testcases"
)

const outDir = "testdata"

func main() {
	var index struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logs.Fatal(errors.New("creating output directory failed").Wrap(err))
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			in, ok := toInput(tc)
			if !ok {
				logs.WithTag("testcase", name).Info("skipped, steps cannot be expressed as input file")
				continue
			}

			file := name + ".json"
			if err := writeJSON(filepath.Join(outDir, file), in); err != nil {
				logs.Fatal(err)
			}
			index.TestCases = append(index.TestCases, toJSON(name, file, tc))
		}
	}

	if err := writeJSON(filepath.Join(outDir, "testcases.json"), index); err != nil {
		logs.Fatal(err)
	}
	logs.WithTag("count", len(index.TestCases)).Info("test cases exported")
}

type jsonTestCase struct {
	Name       string  `json:"name"`
	File       string  `json:"file"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Blur       float64 `json:"blur"`
	MaxOpacity float64 `json:"max_opacity"`
	MinOpacity float64 `json:"min_opacity,omitempty"`
	Opacity    float64 `json:"opacity,omitempty"`
	WantMin    float64 `json:"want_min"`
	WantMax    float64 `json:"want_max"`
	WantPoints int     `json:"want_points"`
}

func toJSON(name, file string, tc testcases.TestCase) jsonTestCase {
	maxOpacity := tc.Style.MaxOpacity
	if maxOpacity == 0 {
		maxOpacity = 1
	}
	return jsonTestCase{
		Name:       name,
		File:       file,
		Width:      tc.Width,
		Height:     tc.Height,
		Blur:       tc.Style.Blur,
		MaxOpacity: maxOpacity,
		MinOpacity: tc.Style.MinOpacity,
		Opacity:    tc.Style.Opacity,
		WantMin:    tc.WantMin,
		WantMax:    tc.WantMax,
		WantPoints: tc.WantPoints,
	}
}

// toInput converts the steps of tc into an input file. This works for an
// optional leading Set, any number of Add steps, and, without Set, a
// trailing Extremum. JSON has no encoding for NaN values.
func toInput(tc testcases.TestCase) (*heatmap.Input, bool) {
	in := &heatmap.Input{}
	for i, step := range tc.Steps {
		switch s := step.(type) {
		case testcases.Set:
			if i != 0 || s.Data.Points == nil || hasNaN(s.Data.Points) {
				return nil, false
			}
			in.Min, in.Max = &s.Data.Min, &s.Data.Max
			in.Data = s.Data.Points
		case testcases.Add:
			if in.Min != nil && in.Data == nil || hasNaN(s.Samples) {
				return nil, false
			}
			in.Batches = append(in.Batches, s.Samples)
		case testcases.Extremum:
			if in.Data != nil {
				return nil, false
			}
			in.Min, in.Max = &s.Min, &s.Max
		case testcases.Repaint:
		default:
			return nil, false
		}
	}
	return in, true
}

func hasNaN(samples []store.Sample) bool {
	return slices.ContainsFunc(samples, func(s store.Sample) bool {
		return math.IsNaN(s.Value)
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.New("encoding test case failed").
			WithTag("path", path).
			Wrap(err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.New("writing test case failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
