// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package example

import (
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"periph.io/x/msa3xx"
	"periph.io/x/msa3xx/accelview"
	"periph.io/x/msa3xx/acceltrace"
)

// Example reads acceleration at 50Hz for ten seconds, shows a live terminal
// meter and writes the recorded trace to trace.png on exit.
func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := msa3xx.NewI2C(b, msa3xx.MSA301, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	meter := accelview.New(&accelview.Opts{Width: 24, FullScale: 4 * 9.806})
	defer meter.Halt()
	rec := acceltrace.NewRecorder(512)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	stop := time.After(10 * time.Second)

	for {
		select {
		case <-stop:
			f, err := os.Create("trace.png")
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			if err := rec.EncodePNG(f, &acceltrace.RenderOpts{Title: d.String()}); err != nil {
				log.Fatal(err)
			}
			return
		case <-ticker.C:
			s, err := d.Acceleration()
			if err != nil {
				log.Fatal(err)
			}
			rec.Add(s)
			if err := meter.Update(s); err != nil {
				log.Fatal(err)
			}
		}
	}
}
