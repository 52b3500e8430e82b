package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

const (
	topModulesLimit = 20
	xAxisRotate     = 60
)

// WriteChart renders a bar chart of occurrence counts for the most imported
// modules as a standalone HTML page.
func WriteChart(report importmodel.Report, w io.Writer) error {
	labels, data := topModules(report)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Imported modules"}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: xAxisRotate, Interval: "0"},
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Occurrences"}),
	)
	bar.SetXAxis(labels)

	barData := make([]opts.BarData, len(data))
	for i, v := range data {
		barData[i] = opts.BarData{Value: v}
	}

	bar.AddSeries("Occurrences", barData)

	err := bar.Render(w)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}

// topModules returns up to topModulesLimit modules ordered by descending
// occurrence count, name as a tiebreak.
func topModules(report importmodel.Report) (labels []string, data []int) {
	items := make(importmodel.Report, len(report))
	copy(items, report)

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}

		return items[i].Name < items[j].Name
	})

	if len(items) > topModulesLimit {
		items = items[:topModulesLimit]
	}

	labels = make([]string, len(items))
	data = make([]int, len(items))

	for i, item := range items {
		labels[i] = item.Name
		data[i] = item.Count
	}

	return labels, data
}
