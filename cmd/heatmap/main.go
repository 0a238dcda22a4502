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

// Command heatmap renders a JSON data file into a PNG heatmap.
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"

	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/heatmap"
	"seehuhn.de/go/heatmap/legend"
	"seehuhn.de/go/heatmap/palette"
)

// The version number. Set at build.
var version = "v0.1.0"

// Keeps the field names of config intact under obfuscation, so that the
// command line options are generated correctly.
var _ = reflect.TypeOf(config{})

type config struct {
	Input        string  `cli:""        env:"HEATMAP_INPUT"         help:"JSON data file to render (- for stdin)."`
	Output       string  `cli:""        env:"HEATMAP_OUTPUT"        help:"PNG file for the heatmap."`
	Flattened    string  `cli:""        env:"HEATMAP_FLATTENED"     help:"PNG file for the heatmap over the background colour."`
	Legend       string  `cli:""        env:"HEATMAP_LEGEND"        help:"PNG file for the colour legend."`
	LegendWidth  int     `cli:",hidden" env:"HEATMAP_LEGEND_WIDTH"  help:"Width of the legend in pixels."`
	LegendHeight int     `cli:",hidden" env:"HEATMAP_LEGEND_HEIGHT" help:"Height of the legend in pixels."`
	Width        int     `cli:""        env:"HEATMAP_WIDTH"         help:"Surface width in pixels."`
	Height       int     `cli:""        env:"HEATMAP_HEIGHT"        help:"Surface height in pixels."`
	Blur         float64 `cli:""        env:"HEATMAP_BLUR"          help:"Fraction of the point radius over which points fade out."`
	MaxOpacity   float64 `cli:""        env:"HEATMAP_MAX_OPACITY"   help:"Highest alpha of drawn pixels."`
	MinOpacity   float64 `cli:""        env:"HEATMAP_MIN_OPACITY"   help:"Lowest alpha of drawn pixels."`
	Opacity      float64 `cli:""        env:"HEATMAP_OPACITY"       help:"Fixed alpha of drawn pixels, overriding the limits."`
	Gradient     string  `cli:""        env:"HEATMAP_GRADIENT"      help:"Gradient as JSON object of offsets to CSS colours."`
	Background   string  `cli:""        env:"HEATMAP_BACKGROUND"    help:"CSS background colour of the flattened image."`
	LogLevel     string  `cli:""        env:"HEATMAP_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogIndent    bool    `cli:""        env:"HEATMAP_LOG_INDENT"    help:"Indent logs."`
	Version      bool    `cli:""        env:"-"                     help:"Show version."`
	Help         bool    `cli:""        env:"-"                     help:"Show help."`
}

func main() {
	defaults := heatmap.DefaultConfig()
	conf := config{
		Input:        "-",
		Output:       "heatmap.png",
		LegendWidth:  256,
		LegendHeight: 16,
		Width:        800,
		Height:       600,
		Blur:         defaults.Blur,
		MaxOpacity:   defaults.MaxOpacity,
		MinOpacity:   defaults.MinOpacity,
		Background:   "white",
		LogLevel:     logs.InfoLevel.String(),
	}

	cli.Register().
		Help("Renders a JSON data file into a PNG heatmap.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	if logs.ParseLevel(conf.LogLevel) == logs.DebugLevel {
		heatmap.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(conf); err != nil {
		logs.Fatal(err)
	}
}

func run(conf config) error {
	opts := []heatmap.Option{
		heatmap.WithSize(float64(conf.Width), float64(conf.Height)),
		heatmap.WithBlur(conf.Blur),
		heatmap.WithMaxOpacity(conf.MaxOpacity),
		heatmap.WithMinOpacity(conf.MinOpacity),
		heatmap.WithOpacity(conf.Opacity),
		heatmap.WithBackgroundColor(conf.Background),
		heatmap.WithOnExtremaChange(func(e heatmap.Extrema) {
			logs.WithTag("min", e.Min).
				WithTag("max", e.Max).
				Debug("value range changed")
		}),
	}
	if conf.Gradient != "" {
		var g palette.Gradient
		if err := json.Unmarshal([]byte(conf.Gradient), &g); err != nil {
			return errors.New("invalid gradient option").Wrap(err)
		}
		opts = append(opts, heatmap.WithGradient(g))
	}

	h, err := heatmap.New(opts...)
	if err != nil {
		return err
	}

	in, err := readInput(conf.Input)
	if err != nil {
		return err
	}
	if err := in.Apply(h); err != nil {
		return err
	}

	data, err := h.ExportImage()
	if err != nil {
		return err
	}
	if err := writeFile(conf.Output, data); err != nil {
		return err
	}

	if conf.Flattened != "" {
		if err := writePNG(conf.Flattened, h.Flatten()); err != nil {
			return err
		}
	}

	if conf.Legend != "" {
		img, err := legend.Render(h.Palette(), conf.LegendWidth, conf.LegendHeight, &legend.Options{
			Border:      palette.MustParseColor("black"),
			BorderWidth: 1,
			Join:        graphics.LineJoinMiter,
		})
		if err != nil {
			return errors.New("rendering legend failed").Wrap(err)
		}
		if err := writePNG(conf.Legend, img); err != nil {
			return err
		}
	}

	snap := h.Snapshot()
	logs.WithTag("input", conf.Input).
		WithTag("output", conf.Output).
		WithTag("points", len(snap.Points)).
		WithTag("min", snap.Min).
		WithTag("max", snap.Max).
		Info("heatmap rendered")
	return nil
}

func readInput(name string) (*heatmap.Input, error) {
	if name == "-" {
		return heatmap.ReadInput(os.Stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, errors.New("opening input failed").
			WithTag("path", name).
			Wrap(err)
	}
	defer f.Close()

	in, err := heatmap.ReadInput(f)
	if err != nil {
		return nil, errors.New("reading input failed").
			WithTag("path", name).
			Wrap(err)
	}
	return in, nil
}

func writePNG(name string, img image.Image) error {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return errors.New("encoding image failed").
			WithTag("path", name).
			Wrap(err)
	}
	return writeFile(name, buf.Bytes())
}

func writeFile(name string, data []byte) error {
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return errors.New("writing output failed").
			WithTag("path", name).
			Wrap(err)
	}
	return nil
}
