package analytics

import (
	"sort"
	"time"
)

// Aggregator provides in-memory aggregation helpers over timestamped records
type Aggregator[T any] struct {
	items     []T
	timestamp func(T) time.Time
}

// NewAggregator creates a new aggregator
func NewAggregator[T any](items []T, timestamp func(T) time.Time) *Aggregator[T] {
	return &Aggregator[T]{items: items, timestamp: timestamp}
}

// Within keeps the records whose timestamp falls inside r.
func (a *Aggregator[T]) Within(r DateRange) *Aggregator[T] {
	out := make([]T, 0, len(a.items))
	for _, it := range a.items {
		if r.Contains(a.timestamp(it)) {
			out = append(out, it)
		}
	}
	return &Aggregator[T]{items: out, timestamp: a.timestamp}
}

// Where keeps the records matching keep.
func (a *Aggregator[T]) Where(keep func(T) bool) *Aggregator[T] {
	out := make([]T, 0, len(a.items))
	for _, it := range a.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return &Aggregator[T]{items: out, timestamp: a.timestamp}
}

// Count returns the number of records
func (a *Aggregator[T]) Count() int {
	return len(a.items)
}

// Sum adds up value over all records
func (a *Aggregator[T]) Sum(value func(T) float64) float64 {
	var total float64
	for _, it := range a.items {
		total += value(it)
	}
	return total
}

// CountBy groups records by key, largest group first; ties sort by key.
// limit <= 0 returns every group.
func (a *Aggregator[T]) CountBy(key func(T) string, limit int) []Bucket {
	counts := map[string]int{}
	for _, it := range a.items {
		counts[key(it)]++
	}
	buckets := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, Bucket{Key: k, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}

// Daily counts records per day of r. Days without records are present
// with a zero count.
func (a *Aggregator[T]) Daily(r DateRange) []Bucket {
	days := GetDailyRanges(r)
	buckets := make([]Bucket, len(days))
	for i, d := range days {
		buckets[i].Key = d.Start.Format("2006-01-02")
	}
	for _, it := range a.items {
		ts := a.timestamp(it)
		for i, d := range days {
			if d.Contains(ts) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
