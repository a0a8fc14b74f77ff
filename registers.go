// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package msa3xx

import (
	"encoding/binary"
	"fmt"
)

// Register addresses shared by the MSA301 and MSA311.
const (
	regPartID    = 0x01 // Part ID, expected to be 0x13 for both parts
	regOutXL     = 0x02 // X-axis output, low byte
	regOutXH     = 0x03 // X-axis output, high byte
	regOutYL     = 0x04 // Y-axis output, low byte
	regOutYH     = 0x05 // Y-axis output, high byte
	regOutZL     = 0x06 // Z-axis output, low byte
	regOutZH     = 0x07 // Z-axis output, high byte
	regMotionInt = 0x09 // Motion interrupt status; bit5=single tap, bit4=double tap
	regDataInt   = 0x0A // Data interrupt status
	regResRange  = 0x0F // Resolution and range
	regODR       = 0x10 // Output data rate and axis disable bits
	regPowerMode = 0x11 // Power mode and bandwidth
	regIntSet0   = 0x16 // Interrupt enable set 0
	regIntSet1   = 0x17 // Interrupt enable set 1
	regIntMap0   = 0x19 // Interrupt pin mapping 0
	regIntMap1   = 0x1A // Interrupt pin mapping 1
	regTapDur    = 0x2A // Tap duration, shock and quiet windows
	regTapTh     = 0x2B // Tap threshold
)

// field describes one logical setting packed into a device register: where it
// lives, how wide it is and whether it may be written. All multi-byte
// registers on this part are little-endian.
type field struct {
	reg    byte // register address
	offset uint // bit offset of the least significant bit
	width  uint // width in bits
	nbytes uint // register width in bytes
	ro     bool // read-only
}

// The full set of logical settings, one auditable table instead of scattered
// shift/mask expressions.
var (
	fieldPartID      = field{reg: regPartID, width: 8, nbytes: 1, ro: true}
	fieldMotionInt   = field{reg: regMotionInt, width: 8, nbytes: 1, ro: true}
	fieldRange       = field{reg: regResRange, offset: 0, width: 2, nbytes: 1}
	fieldResolution  = field{reg: regResRange, offset: 2, width: 2, nbytes: 1}
	fieldDataRate    = field{reg: regODR, offset: 0, width: 4, nbytes: 1}
	fieldDisableZ    = field{reg: regODR, offset: 5, width: 1, nbytes: 1}
	fieldDisableY    = field{reg: regODR, offset: 6, width: 1, nbytes: 1}
	fieldDisableX    = field{reg: regODR, offset: 7, width: 1, nbytes: 1}
	fieldBandwidth   = field{reg: regPowerMode, offset: 1, width: 4, nbytes: 1}
	fieldPowerMode   = field{reg: regPowerMode, offset: 6, width: 2, nbytes: 1}
	fieldDoubleTapEn = field{reg: regIntSet0, offset: 4, width: 1, nbytes: 1}
	fieldSingleTapEn = field{reg: regIntSet0, offset: 5, width: 1, nbytes: 1}
	fieldTapDuration = field{reg: regTapDur, offset: 0, width: 3, nbytes: 1}
	fieldTapShock    = field{reg: regTapDur, offset: 6, width: 1, nbytes: 1}
	fieldTapQuiet    = field{reg: regTapDur, offset: 7, width: 1, nbytes: 1}
	fieldTapThresh   = field{reg: regTapTh, offset: 0, width: 5, nbytes: 1}
)

// readField reads the register(s) backing f and extracts its bits as an
// unsigned integer.
func (d *Dev) readField(f field) (uint, error) {
	buf := make([]byte, f.nbytes)
	if err := d.d.Tx([]byte{f.reg}, buf); err != nil {
		return 0, err
	}
	var v uint
	for i := int(f.nbytes) - 1; i >= 0; i-- {
		v = v<<8 | uint(buf[i])
	}
	return (v >> f.offset) & (1<<f.width - 1), nil
}

// writeField updates the bits backing f with a read-modify-write cycle,
// leaving every other bit in the register untouched. A value that does not
// fit in the field is rejected rather than silently masked, so a caller bug
// cannot corrupt a neighboring setting.
func (d *Dev) writeField(f field, v uint) error {
	if f.ro {
		return fmt.Errorf("msa3xx: register 0x%02X is read-only", f.reg)
	}
	if v >= 1<<f.width {
		return &RangeError{Field: fmt.Sprintf("register 0x%02X bits [%d:%d]", f.reg, f.offset+f.width-1, f.offset), Value: v, Max: 1<<f.width - 1}
	}
	buf := make([]byte, f.nbytes)
	if err := d.d.Tx([]byte{f.reg}, buf); err != nil {
		return err
	}
	var cur uint
	for i := int(f.nbytes) - 1; i >= 0; i-- {
		cur = cur<<8 | uint(buf[i])
	}
	mask := uint(1<<f.width-1) << f.offset
	cur = cur&^mask | v<<f.offset
	w := make([]byte, f.nbytes+1)
	w[0] = f.reg
	for i := uint(0); i < f.nbytes; i++ {
		w[i+1] = byte(cur >> (8 * i))
	}
	return d.d.Tx(w, nil)
}

// readSigned16 burst-reads count 16-bit two's-complement little-endian words
// starting at reg, relying on the device's register auto-increment.
func (d *Dev) readSigned16(reg byte, count int) ([]int16, error) {
	buf := make([]byte, 2*count)
	if err := d.d.Tx([]byte{reg}, buf); err != nil {
		return nil, err
	}
	out := make([]int16, count)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	return out, nil
}

// readByte reads a single whole register.
func (d *Dev) readByte(reg byte) (byte, error) {
	buf := make([]byte, 1)
	err := d.d.Tx([]byte{reg}, buf)
	return buf[0], err
}
