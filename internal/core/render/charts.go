// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render turns a BrandAnalysis into its presentation artifacts:
// the chart page, the chart data feed, and the PDF report. Rendering is a
// pure function of the analysis, so the same analysis always produces the
// same artifacts.
package render

import (
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
)

// EngagementAxis is one axis of the engagement radar.
type EngagementAxis struct {
	Name  string  `json:"name"`
	Value float32 `json:"value"`
}

// EngagementAxes defines the radar's five axes and their placeholder
// values on a 0..1 scale. The model reports engagement as free text, not
// per-axis numbers, so the radar illustrates the engagement dimensions
// rather than measuring them.
// TODO: derive axis values from per-platform statistics once the creator
// onboarding flow collects them.
var EngagementAxes = []EngagementAxis{
	{Name: "Audience Reach", Value: 0.8},
	{Name: "Comments", Value: 0.7},
	{Name: "Shares", Value: 0.6},
	{Name: "Likes", Value: 0.9},
	{Name: "Saves", Value: 0.5},
}

// ThemeBar is one bar of the theme relevance chart.
type ThemeBar struct {
	Theme  string `json:"theme"`
	Weight int    `json:"weight"`
}

// PieSlice is one slice of the audience composition chart.
type PieSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// ChartData is the JSON feed backing the chart views.
type ChartData struct {
	Radar    []EngagementAxis `json:"radar"`
	Themes   []ThemeBar       `json:"themes"`
	Audience []PieSlice       `json:"audience"`
}

// themeWeight assigns a relative weight to a theme. No per-theme relevance
// score comes back from the model, so the label's rune length serves as a
// stand-in that keeps the bars distinct and deterministic.
func themeWeight(theme string) int {
	return len([]rune(theme))
}

// BuildChartData derives the chart feed from an analysis. Themes keep the
// model's order; the audience pie shows the three audience dimensions as
// equal slices.
func BuildChartData(a *model.BrandAnalysis) *ChartData {
	themes := make([]ThemeBar, 0, len(a.Themes))
	for _, theme := range a.Themes {
		themes = append(themes, ThemeBar{Theme: theme, Weight: themeWeight(theme)})
	}

	return &ChartData{
		Radar:  EngagementAxes,
		Themes: themes,
		Audience: []PieSlice{
			{Label: "Age: " + a.TargetAudience.AgeRange, Value: 1},
			{Label: "Gender: " + a.TargetAudience.Gender, Value: 1},
			{Label: "Location: " + a.TargetAudience.Location, Value: 1},
		},
	}
}

// NewEngagementRadar builds the engagement radar chart.
func NewEngagementRadar(data *ChartData) *charts.Radar {
	indicators := make([]*opts.Indicator, 0, len(data.Radar))
	values := make([]float32, 0, len(data.Radar))
	for _, axis := range data.Radar {
		indicators = append(indicators, &opts.Indicator{Name: axis.Name, Max: 1})
		values = append(values, axis.Value)
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Engagement Profile"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	radar.AddSeries("Engagement", []opts.RadarData{{Value: values}})
	return radar
}

// NewThemesBar builds the theme relevance bar chart. Bars appear in the
// order the model listed the themes.
func NewThemesBar(data *ChartData) *charts.Bar {
	themes := make([]string, 0, len(data.Themes))
	weights := make([]opts.BarData, 0, len(data.Themes))
	for _, t := range data.Themes {
		themes = append(themes, t.Theme)
		weights = append(weights, opts.BarData{Value: t.Weight})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Content Themes"}))
	bar.SetXAxis(themes).AddSeries("Relevance", weights)
	return bar
}

// NewAudiencePie builds the audience composition pie chart.
func NewAudiencePie(data *ChartData) *charts.Pie {
	slices := make([]opts.PieData, 0, len(data.Audience))
	for _, s := range data.Audience {
		slices = append(slices, opts.PieData{Name: s.Label, Value: s.Value})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Estimated Audience"}))
	pie.AddSeries("Audience", slices)
	return pie
}

// RenderChartPage writes the full chart page (radar, bars, pie) as a
// standalone HTML document.
func RenderChartPage(w io.Writer, a *model.BrandAnalysis) error {
	data := BuildChartData(a)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		NewEngagementRadar(data),
		NewThemesBar(data),
		NewAudiencePie(data),
	)
	return page.Render(w)
}

// SortedNiches returns the market niches in a stable alphabetical order
// for display surfaces that group rather than rank.
func SortedNiches(a *model.BrandAnalysis) []string {
	out := make([]string, len(a.MarketNiches))
	copy(out, a.MarketNiches)
	sort.Strings(out)
	return out
}
