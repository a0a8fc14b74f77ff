// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package msa3xx

// TapDuration is the window in which a second tap must land to count as a
// double tap.
type TapDuration byte

const (
	Duration50Ms  TapDuration = 0b000
	Duration100Ms TapDuration = 0b001
	Duration150Ms TapDuration = 0b010
	Duration200Ms TapDuration = 0b011
	Duration250Ms TapDuration = 0b100
	Duration375Ms TapDuration = 0b101
	Duration500Ms TapDuration = 0b110
	Duration700Ms TapDuration = 0b111
)

// TapConfig holds the tap detection parameters.
type TapConfig struct {
	// TapCount is 1 to detect single taps or 2 to detect double taps.
	TapCount int
	// Threshold desensitizes detection as it grows. It is a 5-bit register
	// value whose physical meaning scales with the configured Range.
	Threshold uint8
	// LongInitialWindow selects a 70ms window for the initial acceleration
	// spike instead of 50ms.
	LongInitialWindow bool
	// LongQuietWindow selects a 30ms quiet period after the spike instead of
	// 20ms.
	LongQuietWindow bool
	// DoubleTapWindow is how long after the first tap a second one still
	// counts as a double tap. Only used when TapCount is 2.
	DoubleTapWindow TapDuration
}

// DefaultTapConfig detects single taps at medium sensitivity.
var DefaultTapConfig = TapConfig{
	TapCount:          1,
	Threshold:         25,
	LongInitialWindow: true,
	LongQuietWindow:   true,
	DoubleTapWindow:   Duration250Ms,
}

// EnableTapDetection configures and arms the tap interrupt. cfg may be nil
// for DefaultTapConfig.
//
// Parameters are validated before any bus traffic, so a *RangeError leaves
// every tap register exactly as it was.
func (d *Dev) EnableTapDetection(cfg *TapConfig) error {
	if cfg == nil {
		cfg = &DefaultTapConfig
	}
	if cfg.DoubleTapWindow > Duration700Ms {
		return &RangeError{Field: "DoubleTapWindow", Value: uint(cfg.DoubleTapWindow), Max: uint(Duration700Ms)}
	}
	if cfg.TapCount != 1 && cfg.TapCount != 2 {
		return &RangeError{Field: "TapCount", Value: uint(cfg.TapCount), Max: 2}
	}
	if cfg.Threshold >= 1<<fieldTapThresh.width {
		return &RangeError{Field: "Threshold", Value: uint(cfg.Threshold), Max: 1<<fieldTapThresh.width - 1}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	shock := uint(1)
	if cfg.LongInitialWindow {
		shock = 0
	}
	quiet := uint(0)
	if cfg.LongQuietWindow {
		quiet = 1
	}
	if err := d.writeField(fieldTapShock, shock); err != nil {
		return err
	}
	if err := d.writeField(fieldTapQuiet, quiet); err != nil {
		return err
	}
	if err := d.writeField(fieldTapThresh, uint(cfg.Threshold)); err != nil {
		return err
	}
	if cfg.TapCount == 1 {
		if err := d.writeField(fieldSingleTapEn, 1); err != nil {
			return err
		}
	} else {
		if err := d.writeField(fieldTapDuration, uint(cfg.DoubleTapWindow)); err != nil {
			return err
		}
		if err := d.writeField(fieldDoubleTapEn, 1); err != nil {
			return err
		}
	}
	// The device cannot report back which style was armed, so it is mirrored
	// here for Tapped.
	d.tapCount = cfg.TapCount
	return nil
}

// Tapped polls the motion interrupt status once and reports whether the
// configured tap style fired. It is always false before EnableTapDetection
// has succeeded.
func (d *Dev) Tapped() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tapCount == 0 {
		return false, nil
	}
	status, err := d.readByte(regMotionInt)
	if err != nil {
		return false, err
	}
	if status == 0 {
		return false, nil
	}
	if d.tapCount == 1 {
		return status&(1<<5) != 0, nil
	}
	return status&(1<<4) != 0, nil
}
