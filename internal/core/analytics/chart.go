package analytics

import (
	"fmt"
	"math"
)

// ToLineChartData converts buckets to line chart format
func ToLineChartData(buckets []Bucket, name string) ChartData {
	c := ToBarChartData(buckets, name)
	c.Type = "line"
	return c
}

// ToBarChartData converts buckets to bar chart format
func ToBarChartData(buckets []Bucket, name string) ChartData {
	labels := make([]string, len(buckets))
	values := make([]int, len(buckets))

	for i, b := range buckets {
		labels[i] = b.Key
		values[i] = b.Count
	}

	return ChartData{
		Type:   "bar",
		Labels: labels,
		Data: []ChartSeries{
			{
				Name:   name,
				Values: values,
			},
		},
	}
}

// ToPieChartData converts buckets to pie chart format
func ToPieChartData(buckets []Bucket) PieChartData {
	labels := make([]string, len(buckets))
	values := make([]int, len(buckets))

	for i, b := range buckets {
		labels[i] = b.Key
		values[i] = b.Count
	}

	return PieChartData{
		Type:   "pie",
		Labels: labels,
		Values: values,
	}
}

// ToStatCard builds a card comparing current with the previous period.
func ToStatCard(cfg StatCardConfig, current, previous float64) StatCard {
	card := StatCard{
		Title:       cfg.Title,
		Value:       formatStatValue(current, cfg.Format),
		Icon:        cfg.Icon,
		ChangeLabel: cfg.ChangeLabel,
		Trend:       "neutral",
	}

	if previous > 0 {
		change := ((current - previous) / previous) * 100
		card.Change = math.Round(change*10) / 10

		if change > 0 {
			card.Trend = "up"
		} else if change < 0 {
			card.Trend = "down"
		}
	}

	return card
}

// Percent returns part/total*100, zero when total is zero.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func formatStatValue(num float64, format string) string {
	switch format {
	case "percentage":
		return fmt.Sprintf("%.1f%%", num)
	case "number":
		if num >= 1000000 {
			return fmt.Sprintf("%.1fM", num/1000000)
		} else if num >= 1000 {
			return fmt.Sprintf("%.1fK", num/1000)
		}
		return fmt.Sprintf("%.0f", num)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}
