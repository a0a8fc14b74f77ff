// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accelview renders live acceleration samples as colored bars on an
// ANSI terminal (stdout).
//
// Useful to eyeball a sensor's output without attaching a scope or logging
// pipeline: each axis gets a bar growing left or right from a center line,
// scaled to a configurable full-scale acceleration.
package accelview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
	"periph.io/x/msa3xx"
)

// standardGravity in m/s², to express full scale in g.
const standardGravity = 9.806

// Opts represents the options available for the meter.
type Opts struct {
	// Width is the number of character cells per half bar. The full bar is
	// 2*Width+1 cells wide.
	Width int
	// FullScale is the acceleration that fills a half bar, in m/s². Zero
	// picks ±2g.
	FullScale float64
	// Palette maps bar colors onto the terminal's 256 color cube.
	Palette *ansi256.Palette

	_ struct{}
}

// Meter renders acceleration samples to a terminal, one line redrawn in
// place.
type Meter struct {
	w         io.Writer
	width     int
	fullScale float64
	palette   ansi256.Palette

	buf bytes.Buffer
}

// New returns a Meter that displays at the console.
func New(opts *Opts) *Meter {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Meter writing to w instead of the console.
func NewWriter(w io.Writer, opts *Opts) *Meter {
	width := opts.Width
	if width <= 0 {
		width = 16
	}
	fullScale := opts.FullScale
	if fullScale <= 0 {
		fullScale = 2 * standardGravity
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Meter{w: w, width: width, fullScale: fullScale, palette: *p}
}

func (m *Meter) String() string {
	return "AccelView"
}

var axisColors = [3]color.NRGBA{
	{R: 0xFF, A: 0xFF},
	{G: 0xFF, A: 0xFF},
	{B: 0x80, G: 0x80, R: 0x80, A: 0xFF},
}

// Update redraws the meter line with a new sample.
func (m *Meter) Update(s msa3xx.Sample) error {
	// One buffer, reused across calls.
	m.buf.Reset()
	_, _ = m.buf.WriteString("\r\033[0m")
	for i, v := range [3]float64{s.X, s.Y, s.Z} {
		m.bar(msa3xx.Axis(i).String(), v, axisColors[i])
	}
	_, _ = m.buf.WriteString("\033[0m ")
	_, err := m.buf.WriteTo(m.w)
	return err
}

// bar appends one axis label and its signed bar to the buffer.
func (m *Meter) bar(label string, v float64, c color.NRGBA) {
	fmt.Fprintf(&m.buf, " %s %+8.3f ", label, v)
	cells := int(v / m.fullScale * float64(m.width))
	if cells > m.width {
		cells = m.width
	}
	if cells < -m.width {
		cells = -m.width
	}
	block := m.palette.Block(c)
	for i := -m.width; i <= m.width; i++ {
		switch {
		case i == 0:
			_, _ = m.buf.WriteString("\033[0m|")
		case i < 0 && v < 0 && i >= cells, i > 0 && v >= 0 && i <= cells:
			_, _ = m.buf.WriteString(block)
		default:
			_, _ = m.buf.WriteString("\033[0m ")
		}
	}
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and moves to a fresh line so the shell
// prompt is not corrupted.
func (m *Meter) Halt() error {
	_, err := m.w.Write([]byte("\n\033[0m"))
	return err
}

var _ conn.Resource = &Meter{}
var _ fmt.Stringer = &Meter{}
