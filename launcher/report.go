package launcher

import (
	"fmt"
	"path"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/zeu5/offline-subopt/types"
	"github.com/zeu5/offline-subopt/util"
)

// Summary of the durations and outcomes of a launch, durations in seconds
type Summary struct {
	Jobs   int
	Failed int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

func Summarize(results []types.Result) Summary {
	s := Summary{Jobs: len(results)}
	if len(results) == 0 {
		return s
	}
	durations := make([]float64, len(results))
	for i, r := range results {
		durations[i] = r.Duration.Seconds()
		if r.Failed() {
			s.Failed++
		}
	}
	s.Mean, s.Std = stat.MeanStdDev(durations, nil)
	if len(durations) < 2 {
		s.Std = 0
	}
	s.Min = floats.Min(durations)
	s.Max = floats.Max(durations)
	return s
}

func (s Summary) Printable() string {
	return fmt.Sprintf("Jobs: %d, Failed: %d || Duration(s) mean: %.1f, std: %.1f, min: %.1f, max: %.1f",
		s.Jobs, s.Failed, s.Mean, s.Std, s.Min, s.Max)
}

// WriteReport stores summary.txt and the durations plot in dir
func WriteReport(dir string, results []types.Result) error {
	s := Summarize(results)
	failed := make([]string, 0)
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, fmt.Sprintf("%s (exit %d) %s", r.JobID, r.ExitCode, r.Error))
		}
	}
	sort.Strings(failed)
	lines := append([]string{s.Printable(), "", "Failed jobs:"}, failed...)
	if err := util.WriteToFile(path.Join(dir, "summary.txt"), lines...); err != nil {
		return err
	}
	return plotDurations(path.Join(dir, "durations.png"), results)
}

// one bar per device with the mean duration of its jobs
func plotDurations(plotPath string, results []types.Result) error {
	perDevice := make(map[int][]float64)
	for _, r := range results {
		perDevice[r.Device] = append(perDevice[r.Device], r.Duration.Seconds())
	}
	devices := make([]int, 0, len(perDevice))
	for d := range perDevice {
		devices = append(devices, d)
	}
	sort.Ints(devices)

	means := make(plotter.Values, len(devices))
	names := make([]string, len(devices))
	for i, d := range devices {
		means[i] = stat.Mean(perDevice[d], nil)
		names[i] = "gpu " + strconv.Itoa(d)
	}

	p := plot.New()
	p.Title.Text = "Job duration per device"
	p.Y.Label.Text = "Mean duration (s)"
	bars, err := plotter.NewBarChart(means, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(8*vg.Inch, 4*vg.Inch, plotPath)
}
