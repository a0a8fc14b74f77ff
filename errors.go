// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package msa3xx

import "fmt"

// DeviceNotFoundError is returned by NewI2C when the part ID register does
// not hold the expected value. Nothing beyond the ID register has been
// touched when this error is returned.
type DeviceNotFoundError struct {
	Variant Variant
	Got     byte
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("cannot find a %s: part ID 0x%02X, want 0x%02X", e.Variant, e.Got, partID)
}

// RangeError is returned when a parameter does not fit the register field it
// is destined for. The operation has no effect on the device.
type RangeError struct {
	Field string
	Value uint
	Max   uint
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be at most %d, got %d", e.Field, e.Max, e.Value)
}
