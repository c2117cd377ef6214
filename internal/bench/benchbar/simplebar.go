// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import "github.com/schollz/progressbar/v3"

// Bar wraps a progressbar so callers never deal with its error returns,
// which carry nothing actionable during a benchmark run.
type Bar struct {
	pb *progressbar.ProgressBar
}

func NewBar(description string, maxItems int) *Bar {
	pb := progressbar.Default(int64(maxItems), description)
	_ = pb.Set(0)

	return &Bar{pb: pb}
}

func (b *Bar) Inc() {
	_ = b.pb.Add(1)
}

func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
