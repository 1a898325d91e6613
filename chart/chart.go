// Package chart renders coherence curves of one or more channels to an image.
package chart

import (
	"errors"
	"fmt"

	"github.com/wiless/coherence"
	"github.com/wiless/vlib"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type Domain int

const (
	Distance Domain = iota
	Time
)

var Domains = [...]string{
	"distance",
	"time",
}

func (d Domain) String() string {
	if d < 0 || int(d) >= len(Domains) {
		return "unknown"
	}
	return Domains[d]
}

var ErrNoChannels = errors.New("chart: no channels to plot")

type Options struct {
	Title  string
	Domain Domain
	Width  vg.Length
	Height vg.Length
}

func DefaultOptions() Options {
	return Options{
		Title:  "Channel coherence",
		Domain: Distance,
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
	}
}

// Plot returns a plot with one line per channel evaluated at deltas.
func Plot(deltas vlib.VectorF, opts Options, channels ...*coherence.Channel) (*plot.Plot, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.Y.Label.Text = "Coherence"
	p.Y.Min = 0
	p.Y.Max = 1
	if opts.Domain == Time {
		p.X.Label.Text = "Time delta (s)"
	} else {
		p.X.Label.Text = "Distance delta"
	}

	for i, ch := range channels {
		var values vlib.VectorF
		if opts.Domain == Time {
			values = ch.TimeProfile(deltas)
		} else {
			values = ch.Profile(deltas)
		}
		pts := make(plotter.XYs, len(deltas))
		for k := range deltas {
			pts[k].X = deltas[k]
			pts[k].Y = values[k]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("chart: %v: %w", ch, err)
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(ch.String(), line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save renders the plot to filename, the format follows the file extension.
func Save(filename string, deltas vlib.VectorF, opts Options, channels ...*coherence.Channel) error {
	p, err := Plot(deltas, opts, channels...)
	if err != nil {
		return err
	}
	if opts.Width == 0 || opts.Height == 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	return p.Save(opts.Width, opts.Height, filename)
}
