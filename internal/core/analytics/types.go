package analytics

import "time"

// DateRange represents a time period for filtering
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Previous returns the range of equal length that ends right before r.
func (r DateRange) Previous() DateRange {
	d := r.End.Sub(r.Start)
	end := r.Start.Add(-time.Nanosecond)
	return DateRange{Start: end.Add(-d), End: end}
}

// Bucket is one group of an aggregation.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ChartData represents generic chart data format
type ChartData struct {
	Type   string        `json:"type"`   // "line", "bar"
	Labels []string      `json:"labels"` // X-axis labels
	Data   []ChartSeries `json:"data"`   // Y-axis data series
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string `json:"name"`
	Values []int  `json:"values"`
	Color  string `json:"color,omitempty"`
}

// PieChartData represents pie chart specific data
type PieChartData struct {
	Type   string   `json:"type"` // "pie" or "donut"
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors,omitempty"`
}

// StatCard represents a summary statistic card
type StatCard struct {
	Title       string  `json:"title"`
	Value       string  `json:"value"`
	Change      float64 `json:"change"`       // Percentage change
	ChangeLabel string  `json:"change_label"` // "к прошлому периоду"
	Trend       string  `json:"trend"`        // "up", "down", "neutral"
	Icon        string  `json:"icon,omitempty"`
}

// StatCardConfig represents configuration for a stat card
type StatCardConfig struct {
	Title       string
	Format      string // "number", "percentage"
	Icon        string
	ChangeLabel string
}
