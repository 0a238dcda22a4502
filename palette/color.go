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

package palette

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"golang.org/x/image/colornames"
)

// ErrTypeInvalidColor is the error type of colour and gradient parsing
// failures.
const ErrTypeInvalidColor = "invalid-color"

// ParseColor parses a CSS colour: a colour name ("yellow"), "transparent",
// a hex colour ("#ff0", "#ffff00", "#ffff0080"), or a functional
// notation "rgb(r,g,b)" or "rgba(r,g,b,a)". Channels of the functional
// notation may be integers in 0..255 or percentages; the alpha value is
// a number in [0, 1] or a percentage.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "transparent":
		return color.NRGBA{}, nil

	case strings.HasPrefix(s, "#"):
		if c, ok := parseHex(s[1:]); ok {
			return c, nil
		}

	case strings.HasPrefix(s, "rgb"):
		if c, ok := parseFunctional(s); ok {
			return c, nil
		}

	default:
		if c, ok := colornames.Map[s]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
	}

	return color.NRGBA{}, errors.New("invalid colour").
		WithType(ErrTypeInvalidColor).
		WithTag("color", s)
}

// MustParseColor is like ParseColor but panics on malformed input.
// It is meant for colour literals in code.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (color.NRGBA, bool) {
	switch len(s) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range s {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		s = expanded.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

func parseFunctional(s string) (color.NRGBA, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, false
	}
	name := strings.TrimSpace(s[:open])
	args := strings.Split(s[open+1:len(s)-1], ",")

	switch {
	case name == "rgb" && len(args) == 3:
	case name == "rgba" && len(args) == 4:
	default:
		return color.NRGBA{}, false
	}

	var c [4]uint8
	c[3] = 255
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		scale := 1.0
		if i == 3 {
			scale = 255
		}
		if strings.HasSuffix(arg, "%") {
			arg = strings.TrimSuffix(arg, "%")
			scale = 255.0 / 100
		}
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil || math.IsNaN(x) {
			return color.NRGBA{}, false
		}
		c[i] = toByte(x * scale)
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, true
}

// ParseGradient converts a map from stop offsets to CSS colours, for
// example {"0.25": "rgb(0,0,255)", "1.0": "red"}, into a sorted gradient.
func ParseGradient(stops map[string]string) (Gradient, error) {
	g := make(Gradient, 0, len(stops))
	for key, value := range stops {
		offset, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
		if err != nil {
			return nil, errors.New("invalid gradient stop offset").
				WithType(ErrTypeInvalidColor).
				WithTag("offset", key).
				Wrap(err)
		}
		c, err := ParseColor(value)
		if err != nil {
			return nil, errors.New("invalid gradient stop colour").
				WithType(ErrTypeInvalidColor).
				WithTag("offset", key).
				Wrap(err)
		}
		g = append(g, Stop{Offset: offset, Color: c})
	}
	return g.Sorted(), nil
}

// UnmarshalJSON reads a gradient written as a JSON object mapping stop
// offsets to CSS colours.
func (g *Gradient) UnmarshalJSON(data []byte) error {
	var stops map[string]string
	if err := json.Unmarshal(data, &stops); err != nil {
		return errors.New("gradient must be an object of offsets to colours").
			WithType(ErrTypeInvalidColor).
			Wrap(err)
	}
	res, err := ParseGradient(stops)
	if err != nil {
		return err
	}
	*g = res
	return nil
}

// MarshalJSON writes the gradient in the form read by UnmarshalJSON.
// Colours are written as "rgba(r,g,b,a)".
func (g Gradient) MarshalJSON() ([]byte, error) {
	stops := make(map[string]string, len(g))
	for _, s := range g {
		key := strconv.FormatFloat(s.Offset, 'g', -1, 64)
		stops[key] = FormatColor(s.Color)
	}
	return json.Marshal(stops)
}

// FormatColor writes c in CSS functional notation.
func FormatColor(c color.NRGBA) string {
	var b strings.Builder
	b.WriteString("rgba(")
	for _, v := range []uint8{c.R, c.G, c.B} {
		b.WriteString(strconv.Itoa(int(v)))
		b.WriteByte(',')
	}
	b.WriteString(strconv.FormatFloat(float64(c.A)/255, 'g', 4, 64))
	b.WriteByte(')')
	return b.String()
}
