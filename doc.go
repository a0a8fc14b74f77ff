// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package msa3xx controls an MSA301 or MSA311 3-axis accelerometer over I²C.
//
// The two parts share a register map and differ only in bus address. The
// driver verifies the part ID at construction, configures a known measurement
// state (normal power mode, 500Hz data rate, 250Hz bandwidth, ±4g range,
// 14-bit resolution, all axes enabled) and then serves acceleration samples
// in m/s². It can also arm the part's single/double tap interrupt and poll
// its status.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/product-files/4344/MSA301-V1.0-ENG.pdf
//
// https://cdn-shop.adafruit.com/product-files/5309/MSA311-V1.1-ENG.pdf
package msa3xx
