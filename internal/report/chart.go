// Package report renders the performance dashboard artifacts: an echarts
// HTML page and an optional PNG snapshot of it.
package report

import (
	"bytes"
	"fmt"

	"vantage/internal/analytics"
	"vantage/internal/types"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	chartypes "github.com/go-echarts/go-echarts/v2/types"
)

const (
	colorBackground  = "#0b1220"
	colorTextPrimary = "#eceff4"
	colorEquityLine  = "#4cc9f0"
	colorProfitBar   = "#2dd4a7"
)

// BuildPage assembles the equity-curve line chart and the monthly P&L bars
// for one computed snapshot and returns the rendered HTML.
func BuildPage(snap *analytics.MetricsSnapshot, curve []types.EquityPoint, monthly []analytics.MonthlyBucket) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = fmt.Sprintf("Performance %s", snap.Period)

	page.AddCharts(equityChart(snap, curve), monthlyChart(monthly))

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, fmt.Errorf("render report page: %w", err)
	}
	return buf.Bytes(), nil
}

func equityChart(snap *analytics.MetricsSnapshot, curve []types.EquityPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           chartypes.ThemeWesteros,
			Width:           "920px",
			Height:          "420px",
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Equity curve (%s)", snap.Period),
			Subtitle: fmt.Sprintf("start %.2f · pnl %.2f · max drawdown %.2f%%",
				snap.StartingEquity, snap.Basic.TotalPnL, snap.Risk.MaxDrawdown),
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	xs := make([]string, 0, len(curve)+1)
	points := make([]opts.LineData, 0, len(curve)+1)
	xs = append(xs, "start")
	points = append(points, opts.LineData{Value: snap.StartingEquity})
	for _, pt := range curve {
		xs = append(xs, pt.Timestamp.Format("01-02 15:04"))
		points = append(points, opts.LineData{Value: pt.Equity})
	}
	line.SetXAxis(xs).AddSeries("equity", points,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Color: colorEquityLine}),
	)
	return line
}

func monthlyChart(monthly []analytics.MonthlyBucket) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:           chartypes.ThemeWesteros,
			Width:           "920px",
			Height:          "320px",
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      "Monthly P&L",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	xs := make([]string, 0, len(monthly))
	bars := make([]opts.BarData, 0, len(monthly))
	for _, b := range monthly {
		xs = append(xs, b.Month)
		bars = append(bars, opts.BarData{Value: b.PnL})
	}
	bar.SetXAxis(xs).AddSeries("pnl", bars,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: colorProfitBar}),
	)
	return bar
}
