package tui

import (
	"math"
	"strings"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline draws values as a single row of block characters, averaging
// neighbouring points when there are more values than columns.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	cols := resample(values, width)

	lo, hi := cols[0], cols[0]
	for _, v := range cols {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range cols {
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1)))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// tickLine places labels under a sparkline of the given width. idx are
// point indices out of n points; labels that would overlap are skipped.
func tickLine(labels []string, idx []int, n, width int) string {
	if n == 0 || width <= 0 {
		return ""
	}
	cols := min(n, width)
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, i := range idx {
		pos := i * cols / n
		label := []rune(labels[i])
		if pos < next || pos+len(label) > width {
			continue
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}
