package chart

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	yAxisFormatter   = "function (v) { return '$' + v.toLocaleString(); }"
	tooltipFormatter = "function (p) { var x = Array.isArray(p) ? p[0] : p; return x.seriesName.split(' ')[0] + ': $' + x.value.toLocaleString(); }"
)

// EchartsEngine builds go-echarts line charts. When ExportDir is set every
// built chart is also written there as a standalone HTML page.
type EchartsEngine struct {
	ExportDir string
	Log       *slog.Logger
}

// EchartsInstance is a built line chart.
type EchartsInstance struct {
	spec      Spec
	line      *charts.Line
	path      string
	destroyed bool
}

// Build creates the line chart for spec.
func (e *EchartsEngine) Build(spec Spec) (Instance, error) {
	inst := &EchartsInstance{spec: spec, line: NewLineChart(spec)}

	if e.ExportDir != "" {
		path, err := inst.export(e.ExportDir)
		if err != nil {
			return nil, err
		}
		inst.path = path
		if e.Log != nil {
			e.Log.Info("chart exported", "symbol", spec.Symbol, "days", spec.Days, "path", path)
		}
	}
	return inst, nil
}

// NewLineChart configures a go-echarts line chart from spec.
func NewLineChart(spec Spec) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.SeriesLabel,
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    spec.SeriesLabel,
			Subtitle: rangeLabel(spec.Days),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Show:     true,
				Interval: strconv.Itoa(spec.TickInterval),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: true,
			AxisLabel: &opts.AxisLabel{
				Show:      true,
				Formatter: opts.FuncOpts(yAxisFormatter),
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "axis",
			Formatter: opts.FuncOpts(tooltipFormatter),
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	data := make([]opts.LineData, len(spec.Values))
	for i, v := range spec.Values {
		data[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(spec.Labels).
		AddSeries(spec.SeriesLabel, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.1}),
		)
	return line
}

// Render writes the chart as an HTML page.
func (i *EchartsInstance) Render(w io.Writer) error {
	if i.destroyed {
		return fmt.Errorf("chart %s destroyed", i.spec.Symbol)
	}
	return i.line.Render(w)
}

// Spec returns the spec the chart was built from.
func (i *EchartsInstance) Spec() Spec { return i.spec }

// Path returns the exported HTML file, if any.
func (i *EchartsInstance) Path() string { return i.path }

// Destroy releases the chart. Exported files are left in place.
func (i *EchartsInstance) Destroy() {
	i.destroyed = true
	i.line = nil
}

func (i *EchartsInstance) export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating chart export dir: %w", err)
	}
	name := fmt.Sprintf("%s-%dd-%s.html",
		strings.ToLower(i.spec.Symbol), i.spec.Days, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := i.line.Render(f); err != nil {
		return "", fmt.Errorf("rendering chart %s: %w", path, err)
	}
	return path, nil
}

func rangeLabel(days int) string {
	if days == 1 {
		return "Last 24 hours"
	}
	return fmt.Sprintf("Last %d days", days)
}
