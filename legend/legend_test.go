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

package legend

import (
	"image/color"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/heatmap/palette"
	"seehuhn.de/go/heatmap/render"
)

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestHorizontal(t *testing.T) {
	pal := palette.New(palette.DefaultGradient())
	img, err := Render(pal, 256, 10, nil)
	require.NoError(t, err)

	for x := range 256 {
		require.Equal(t, rgba(pal[x]), img.RGBAAt(x, 0), "x=%d", x)
		require.Equal(t, img.RGBAAt(x, 0), img.RGBAAt(x, 9))
	}
}

func TestVerticalScaled(t *testing.T) {
	pal := palette.New(palette.DefaultGradient())
	img, err := Render(pal, 4, 64, &Options{Vertical: true})
	require.NoError(t, err)

	require.Equal(t, rgba(pal[0]), img.RGBAAt(2, 63))
	require.Equal(t, rgba(pal[252]), img.RGBAAt(2, 0))
	require.Equal(t, rgba(pal[128]), img.RGBAAt(2, 31))
}

func TestFrame(t *testing.T) {
	pal := palette.New(palette.Gradient{{Offset: 0, Color: color.NRGBA{G: 255, A: 255}}})
	black := color.NRGBA{A: 255}

	for _, join := range []graphics.LineJoinStyle{graphics.LineJoinMiter, graphics.LineJoinRound, graphics.LineJoinBevel} {
		img, err := Render(pal, 40, 20, &Options{Border: black, BorderWidth: 2, Join: join})
		require.NoError(t, err)

		// edges are covered, the inside keeps the bar colour
		require.Equal(t, rgba(black), img.RGBAAt(20, 0), "%v", join)
		require.Equal(t, rgba(black), img.RGBAAt(0, 10), "%v", join)
		require.Equal(t, rgba(black), img.RGBAAt(39, 10), "%v", join)
		require.Equal(t, rgba(black), img.RGBAAt(20, 19), "%v", join)
		require.Equal(t, rgba(pal[0]), img.RGBAAt(20, 10), "%v", join)
		require.Equal(t, rgba(pal[0]), img.RGBAAt(2, 2), "%v", join)
	}

	// the miter corner is square
	img, err := Render(pal, 40, 20, &Options{Border: black, BorderWidth: 2})
	require.NoError(t, err)
	require.Equal(t, rgba(black), img.RGBAAt(0, 0))
}

func TestInvalidSize(t *testing.T) {
	_, err := Render(palette.New(palette.DefaultGradient()), 0, 10, nil)
	require.Equal(t, render.ErrTypeInvalidSurface, errors.Type(err))
}
