// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package accelview

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"periph.io/x/msa3xx"
)

func TestUpdate(t *testing.T) {
	var buf bytes.Buffer
	m := NewWriter(&buf, &Opts{Width: 4})
	if err := m.Update(msa3xx.Sample{X: 9.806, Y: -9.806}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\r\033[0m") {
		t.Errorf("output does not redraw in place: %q", out)
	}
	if !strings.HasSuffix(out, "\033[0m ") {
		t.Errorf("output does not reset attributes: %q", out)
	}
	for _, label := range []string{" X ", " Y ", " Z "} {
		if !strings.Contains(out, label) {
			t.Errorf("output misses the %q label: %q", label, out)
		}
	}
	if !strings.Contains(out, "+9.806") || !strings.Contains(out, "-9.806") {
		t.Errorf("output misses numeric readouts: %q", out)
	}
}

func TestUpdate_Clamps(t *testing.T) {
	// A sample way past full scale must render the same bar as one exactly
	// at full scale rather than overflow the line.
	readout := regexp.MustCompile(` *[+-][0-9]+\.[0-9]+`)
	render := func(x float64) string {
		var buf bytes.Buffer
		m := NewWriter(&buf, &Opts{Width: 4, FullScale: 9.806})
		if err := m.Update(msa3xx.Sample{X: x}); err != nil {
			t.Fatal(err)
		}
		// Strip the numeric readouts, only the bars matter.
		return readout.ReplaceAllString(buf.String(), "")
	}
	if render(980.6) != render(9.806) {
		t.Error("an oversized sample changed the bar geometry")
	}
}

func TestDefaults(t *testing.T) {
	var buf bytes.Buffer
	m := NewWriter(&buf, &Opts{})
	if m.width != 16 {
		t.Errorf("width = %d, want 16", m.width)
	}
	if m.fullScale != 2*standardGravity {
		t.Errorf("fullScale = %g, want %g", m.fullScale, 2*standardGravity)
	}
}

func TestHalt(t *testing.T) {
	var buf bytes.Buffer
	m := NewWriter(&buf, &Opts{})
	if err := m.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n\033[0m" {
		t.Errorf("Halt wrote %q", got)
	}
}
