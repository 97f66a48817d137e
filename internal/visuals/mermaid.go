package visuals

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"whatif/internal/state"
)

// GenerateTimelineChart creates a Mermaid gantt chart showing the schedule
// before and after the simulated changes.
func GenerateTimelineChart(d *Data) string {
	if d == nil || (len(d.TimelineBefore) == 0 && len(d.TimelineAfter) == 0) {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("gantt\n")
	sb.WriteString("    title Schedule Before / After\n")
	sb.WriteString("    dateFormat HH:mm\n")
	sb.WriteString("    axisFormat %H:%M\n")

	writeSection := func(name string, entries []TimelineEntry) {
		if len(entries) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("    section %s\n", name))
		for _, e := range entries {
			title := strings.ReplaceAll(e.Title, ":", " ")
			if e.Delegate != "" {
				title += " (delegated)"
			}
			sb.WriteString(fmt.Sprintf("    %s :%s, %s\n",
				title, e.Start.Format("15:04"), e.End.Format("15:04")))
		}
	}
	writeSection("Before", d.TimelineBefore)
	writeSection("After", d.TimelineAfter)

	sb.WriteString("```")
	return sb.String()
}

// GenerateMetricsChart creates a Mermaid xychart comparing baseline and
// simulated metric values side by side.
func GenerateMetricsChart(d *Data) string {
	if d == nil || len(d.MetricBars) == 0 {
		return ""
	}

	var labels []string
	var baseline []string
	var simulated []string
	maxY := 0.0
	for _, bar := range d.MetricBars {
		labels = append(labels, fmt.Sprintf("\"%s\"", bar.Name))
		baseline = append(baseline, fmt.Sprintf("%.1f", bar.Baseline))
		simulated = append(simulated, fmt.Sprintf("%.1f", bar.Simulated))
		if bar.Baseline > maxY {
			maxY = bar.Baseline
		}
		if bar.Simulated > maxY {
			maxY = bar.Simulated
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Metrics: Baseline vs Simulated\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Value\" 0 --> %d\n", int(math.Ceil(maxY*1.2))+1))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(baseline, ", ")))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(simulated, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateDistributionChart creates a Mermaid pie chart of the simulated
// category distribution.
func GenerateDistributionChart(d *Data) string {
	if d == nil || len(d.CategoryShare) == 0 {
		return ""
	}

	cats := make([]string, 0, len(d.CategoryShare))
	for cat := range d.CategoryShare {
		cats = append(cats, string(cat))
	}
	sort.Strings(cats)

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("pie title Time by Category\n")
	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("    \"%s\" : %.1f\n", cat, d.CategoryShare[state.Category(cat)]*100))
	}
	sb.WriteString("```")
	return sb.String()
}
