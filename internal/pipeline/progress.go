package pipeline

import (
	"io"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// Progressor is told how many of total report files have been read.
type Progressor func(curr, total int64)

// BarProgressor draws a progress bar on w. The bar is created on first use
// and cleared once every file has been read.
func BarProgressor(w io.Writer) Progressor {
	var bar *progressbar.ProgressBar
	var init sync.Once
	return func(curr, total int64) {
		init.Do(func() {
			bar = progressbar.NewOptions64(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionSetDescription("reading reports"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Set64(curr)
	}
}

// NoopProgressor discards progress.
func NoopProgressor() Progressor {
	return func(curr, total int64) {}
}
