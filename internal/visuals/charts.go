// Package visuals builds chart-ready payloads and Mermaid renderings from
// simulation outcomes. Everything here is presentation glue; no decision
// logic lives in this package.
package visuals

import (
	"time"

	"whatif/internal/state"
)

// TimelineEntry is one bar in a before/after schedule timeline.
type TimelineEntry struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category state.Category `json:"category"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Delegate string         `json:"delegate,omitempty"`
}

// MetricBar pairs a baseline and simulated value for one metric.
type MetricBar struct {
	Name      string  `json:"name"`
	Baseline  float64 `json:"baseline"`
	Simulated float64 `json:"simulated"`
}

// Data is the chart-ready visualization payload attached to a simulation
// result: timelines, metric bars, category distribution and a weekday x hour
// conflict heatmap.
type Data struct {
	TimelineBefore  []TimelineEntry                `json:"timeline_before"`
	TimelineAfter   []TimelineEntry                `json:"timeline_after"`
	MetricBars      []MetricBar                    `json:"metric_bars"`
	CategoryShare   map[state.Category]float64     `json:"category_share"`
	ConflictHeatmap [7][24]int                     `json:"conflict_heatmap"`
}

// Build assembles the payload from baseline and simulated states.
func Build(baseline, simulated state.SystemState) *Data {
	d := &Data{
		TimelineBefore: timeline(baseline),
		TimelineAfter:  timeline(simulated),
		MetricBars: []MetricBar{
			{Name: "Scheduled Hours", Baseline: baseline.Metrics.TotalScheduledHours, Simulated: simulated.Metrics.TotalScheduledHours},
			{Name: "Productivity", Baseline: baseline.Metrics.ProductivityScore, Simulated: simulated.Metrics.ProductivityScore},
			{Name: "Completion Rate", Baseline: baseline.Metrics.CompletionRate, Simulated: simulated.Metrics.CompletionRate},
			{Name: "Work-Life Balance", Baseline: baseline.Metrics.WorkLifeBalance, Simulated: simulated.Metrics.WorkLifeBalance},
			{Name: "Stress", Baseline: baseline.Metrics.StressLevel, Simulated: simulated.Metrics.StressLevel},
			{Name: "Energy", Baseline: baseline.Metrics.EnergyBalance, Simulated: simulated.Metrics.EnergyBalance},
		},
		CategoryShare:   copyShare(simulated.Distribution.ShareByCategory),
		ConflictHeatmap: heatmap(simulated),
	}
	return d
}

// copyShare snapshots the distribution map; the payload must not observe
// later state mutation.
func copyShare(share map[state.Category]float64) map[state.Category]float64 {
	if share == nil {
		return nil
	}
	out := make(map[state.Category]float64, len(share))
	for cat, v := range share {
		out[cat] = v
	}
	return out
}

func timeline(s state.SystemState) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(s.Events))
	for _, e := range s.Events {
		entries = append(entries, TimelineEntry{
			ID:       e.ID,
			Title:    e.Title,
			Category: e.Category,
			Start:    e.StartTime,
			End:      e.EndTime,
			Delegate: e.Delegate,
		})
	}
	return entries
}

// heatmap buckets conflicting events by weekday and hour. Each conflicting
// event contributes one count per hour it spans.
func heatmap(s state.SystemState) [7][24]int {
	var hm [7][24]int

	conflicting := make(map[string]bool)
	for _, c := range s.Conflicts {
		for _, id := range c.Items {
			conflicting[id] = true
		}
	}

	for _, e := range s.Events {
		if !conflicting[e.ID] {
			continue
		}
		for t := e.StartTime.Truncate(time.Hour); t.Before(e.EndTime); t = t.Add(time.Hour) {
			hm[int(t.Weekday())][t.Hour()]++
		}
	}
	return hm
}
