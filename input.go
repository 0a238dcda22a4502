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

package heatmap

import (
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// ErrTypeInvalidInput is the error type of malformed data files.
const ErrTypeInvalidInput = "invalid-input"

// Input is the JSON form of a sequence of heatmap updates:
//
//	{"min": 0, "max": 10, "data": [...]}
//	{"batches": [[...], [...]]}
//
// Data, if present, replaces all points and requires Max. Each batch is
// then added in turn. Without Data, Min and Max together override the
// value range after the batches.
type Input struct {
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
	Data    []Sample   `json:"data,omitempty"`
	Batches [][]Sample `json:"batches,omitempty"`
}

// ReadInput decodes an Input from r.
func ReadInput(r io.Reader) (*Input, error) {
	in := &Input{}
	if err := json.NewDecoder(r).Decode(in); err != nil {
		return nil, errors.New("decoding heatmap input failed").
			WithType(ErrTypeInvalidInput).
			Wrap(err)
	}
	if err := in.check(); err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Input) check() error {
	if in.Data != nil && in.Max == nil {
		return errors.New("heatmap input has data but no max").
			WithType(ErrTypeInvalidInput)
	}
	return nil
}

// Apply performs the updates of in on h.
func (in *Input) Apply(h *Heatmap) error {
	if err := in.check(); err != nil {
		return err
	}
	if in.Data != nil {
		d := Data{Max: *in.Max, Points: in.Data}
		if in.Min != nil {
			d.Min = *in.Min
		}
		h.SetData(d)
	}
	for _, batch := range in.Batches {
		h.AddData(batch...)
	}
	if in.Data == nil && in.Min != nil && in.Max != nil {
		h.SetExtremum(*in.Min, *in.Max)
	}
	return nil
}
