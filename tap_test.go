// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package msa3xx

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestTapped_NotConfigured(t *testing.T) {
	// Before EnableTapDetection the answer is known without bus traffic.
	bus := &i2ctest.Playback{DontPanic: true}
	d := testDev(bus)
	if tapped, err := d.Tapped(); err != nil || tapped {
		t.Errorf("Tapped() = %t, %v; want false, nil", tapped, err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEnableTapDetection_SingleTap(t *testing.T) {
	sim := newRegSim(testAddr)
	sim.regs[regTapDur] = 0x04 // preexisting duration bits must survive
	sim.rmw(regTapDur, 6, 1, 0) // shock: long initial window
	sim.rmw(regTapDur, 7, 1, 1) // quiet: long quiet window
	sim.rmw(regTapTh, 0, 5, 25)
	sim.rmw(regIntSet0, 5, 1, 1)
	sim.read(regMotionInt)
	sim.regs[regMotionInt] = 1 << 5
	sim.read(regMotionInt)
	sim.regs[regMotionInt] = 1 << 4
	sim.read(regMotionInt)
	bus := sim.playback()
	d := testDev(bus)

	if err := d.EnableTapDetection(nil); err != nil {
		t.Fatal(err)
	}
	if got, want := sim.regs[regTapDur], byte(0x84); got != want {
		t.Errorf("TAPDUR = %#02x, want %#02x", got, want)
	}
	// No interrupt pending, then the single tap bit, then only the double
	// tap bit which a single tap configuration must ignore.
	for i, want := range []bool{false, true, false} {
		tapped, err := d.Tapped()
		if err != nil {
			t.Fatal(err)
		}
		if tapped != want {
			t.Errorf("Tapped() #%d = %t, want %t", i, tapped, want)
		}
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEnableTapDetection_DoubleTap(t *testing.T) {
	sim := newRegSim(testAddr)
	sim.rmw(regTapDur, 6, 1, 1) // shock: short initial window
	sim.rmw(regTapDur, 7, 1, 0) // quiet: short quiet window
	sim.rmw(regTapTh, 0, 5, 9)
	sim.rmw(regTapDur, 0, 3, byte(Duration700Ms))
	sim.rmw(regIntSet0, 4, 1, 1)
	sim.regs[regMotionInt] = 1 << 4
	sim.read(regMotionInt)
	sim.regs[regMotionInt] = 1 << 5
	sim.read(regMotionInt)
	bus := sim.playback()
	d := testDev(bus)

	cfg := TapConfig{
		TapCount:        2,
		Threshold:       9,
		DoubleTapWindow: Duration700Ms,
	}
	if err := d.EnableTapDetection(&cfg); err != nil {
		t.Fatal(err)
	}
	if tapped, err := d.Tapped(); err != nil || !tapped {
		t.Errorf("Tapped() = %t, %v; want true, nil", tapped, err)
	}
	// The single tap bit must not satisfy a double tap configuration.
	if tapped, err := d.Tapped(); err != nil || tapped {
		t.Errorf("Tapped() = %t, %v; want false, nil", tapped, err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEnableTapDetection_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		cfg  TapConfig
	}{
		{"double tap window too long", TapConfig{TapCount: 1, DoubleTapWindow: 8}},
		{"tap count zero", TapConfig{TapCount: 0}},
		{"tap count three", TapConfig{TapCount: 3}},
		{"threshold overflows the field", TapConfig{TapCount: 1, Threshold: 32}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// An empty playback: any register traffic fails the test.
			bus := &i2ctest.Playback{DontPanic: true}
			d := testDev(bus)
			err := d.EnableTapDetection(&test.cfg)
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("err = %v, want *RangeError", err)
			}
			if tapped, _ := d.Tapped(); tapped {
				t.Error("Tapped() became true after a rejected configuration")
			}
			if err := bus.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
