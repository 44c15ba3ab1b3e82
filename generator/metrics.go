package generator

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	set = metrics.NewSet()

	bytesRead  = set.NewCounter("securerandom_bytes_read_total")
	rejections = set.NewCounter("securerandom_rejections_total")
)

// BytesRead returns the total number of bytes read through ReadExactly.
func BytesRead() uint64 {
	return bytesRead.Get()
}

// Rejections returns the total number of samples discarded by range generators.
func Rejections() uint64 {
	return rejections.Get()
}

// WriteMetrics writes the generator metrics in Prometheus text format to w.
func WriteMetrics(w io.Writer) {
	set.WritePrometheus(w)
}
