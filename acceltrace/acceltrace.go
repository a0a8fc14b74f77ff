// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package acceltrace records acceleration samples and plots them as an
// image.
//
// It is the offline counterpart to a live terminal meter: record a burst of
// samples while reproducing a vibration or tap, then render the trace to a
// PNG for a report or a bug ticket.
package acceltrace

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/msa3xx"
)

const standardGravity = 9.806

// Recorder accumulates samples in a fixed-size ring; once full, the oldest
// samples fall off.
type Recorder struct {
	samples []msa3xx.Sample
	start   int
	n       int
}

// NewRecorder returns a Recorder keeping the last capacity samples. A
// non-positive capacity keeps 1024.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Recorder{samples: make([]msa3xx.Sample, capacity)}
}

// Add appends one sample.
func (r *Recorder) Add(s msa3xx.Sample) {
	r.samples[(r.start+r.n)%len(r.samples)] = s
	if r.n < len(r.samples) {
		r.n++
	} else {
		r.start = (r.start + 1) % len(r.samples)
	}
}

// Len is the number of recorded samples.
func (r *Recorder) Len() int {
	return r.n
}

// Samples returns the recorded samples, oldest first.
func (r *Recorder) Samples() []msa3xx.Sample {
	out := make([]msa3xx.Sample, r.n)
	for i := 0; i < r.n; i++ {
		out[i] = r.samples[(r.start+i)%len(r.samples)]
	}
	return out
}

// RenderOpts represents the options available for rendering a trace.
type RenderOpts struct {
	// Width and Height of the image in pixels. Zero picks 800x300.
	Width, Height int
	// FullScale is the acceleration at the top and bottom edge, in m/s².
	// Zero picks ±2g.
	FullScale float64
	// Title is drawn across the top when not empty.
	Title string

	_ struct{}
}

var axisNames = [3]string{"X", "Y", "Z"}

// One RGB color per axis, matched to the live meter's coloring.
var axisColors = [3][3]float64{
	{0.8, 0.1, 0.1},
	{0.1, 0.6, 0.1},
	{0.2, 0.2, 0.8},
}

const margin = 40.0

// Render plots the recorded samples, one colored polyline per axis, and
// returns the image.
func (r *Recorder) Render(opts *RenderOpts) (image.Image, error) {
	if r.n == 0 {
		return nil, errors.New("acceltrace: no samples recorded")
	}
	o := RenderOpts{Width: 800, Height: 300, FullScale: 2 * standardGravity}
	if opts != nil {
		if opts.Width > 0 {
			o.Width = opts.Width
		}
		if opts.Height > 0 {
			o.Height = opts.Height
		}
		if opts.FullScale > 0 {
			o.FullScale = opts.FullScale
		}
		o.Title = opts.Title
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(o.Width, o.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 12}))

	w := float64(o.Width)
	h := float64(o.Height)
	centerY := h / 2
	plotW := w - 2*margin
	halfH := centerY - margin/2

	// Frame and zero line.
	dc.SetRGB(0.6, 0.6, 0.6)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, centerY, w-margin, centerY)
	dc.DrawRectangle(margin, centerY-halfH, plotW, 2*halfH)
	dc.Stroke()

	// Scale labels.
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(fmtAccel(o.FullScale), margin-4, centerY-halfH, 1, 0.5)
	dc.DrawStringAnchored("0", margin-4, centerY, 1, 0.5)
	dc.DrawStringAnchored(fmtAccel(-o.FullScale), margin-4, centerY+halfH, 1, 0.5)
	if o.Title != "" {
		dc.DrawStringAnchored(o.Title, w/2, margin/4, 0.5, 0.5)
	}

	samples := r.Samples()
	for axis := 0; axis < 3; axis++ {
		c := axisColors[axis]
		dc.SetRGB(c[0], c[1], c[2])
		// Legend.
		dc.DrawStringAnchored(axisNames[axis], w-margin+12, centerY-halfH+16*float64(axis), 0, 0.5)
		dc.SetLineWidth(1.5)
		for i, s := range samples {
			x := margin
			if len(samples) > 1 {
				x += float64(i) / float64(len(samples)-1) * plotW
			}
			v := [3]float64{s.X, s.Y, s.Z}[axis]
			y := centerY - clamp(v/o.FullScale, -1, 1)*halfH
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
	return dc.Image(), nil
}

// EncodePNG renders the trace and encodes it as PNG to w.
func (r *Recorder) EncodePNG(w io.Writer, opts *RenderOpts) error {
	img, err := r.Render(opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func fmtAccel(v float64) string {
	return fmt.Sprintf("%+.1f m/s²", v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
