package visuals

import (
	"fmt"
	"html/template"
	"os"

	"whatif/internal/state"
)

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>What-If Report: {{.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; } h2 { font-size: 1.1em; margin-top: 1.5em; }
table { border-collapse: collapse; margin-top: 0.5em; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
.grade { font-size: 2em; font-weight: bold; }
.bar { display: inline-block; height: 12px; background: #4a90d9; }
.baseline { background: #bbb; }
</style>
</head>
<body>
<h1>What-If Report: {{.Name}}</h1>
<p>{{.Description}}</p>
<p>Recommendation: <b>{{.Recommendation}}</b> (confidence {{printf "%.0f" .Confidence}}%)<br>
{{.Reasoning}}</p>
<p class="grade">{{.Grade}} <small>({{printf "%.1f" .Overall}}/100)</small></p>

<h2>Metrics</h2>
<table>
<tr><th>Metric</th><th>Baseline</th><th>Simulated</th></tr>
{{range .Bars}}<tr><td>{{.Name}}</td>
<td><span class="bar baseline" style="width:{{printf "%.0f" .Baseline}}px"></span> {{printf "%.1f" .Baseline}}</td>
<td><span class="bar" style="width:{{printf "%.0f" .Simulated}}px"></span> {{printf "%.1f" .Simulated}}</td></tr>
{{end}}
</table>

<h2>Schedule After</h2>
<table>
<tr><th>Time</th><th>Title</th><th>Category</th><th>Delegate</th></tr>
{{range .After}}<tr><td>{{.Start.Format "15:04"}}&ndash;{{.End.Format "15:04"}}</td><td>{{.Title}}</td><td>{{.Category}}</td><td>{{.Delegate}}</td></tr>
{{end}}
</table>

<h2>Recommendations</h2>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>
</body>
</html>
`))

// WriteHTMLReport renders a self-contained HTML report for a simulated
// scenario to path.
func WriteHTMLReport(path string, scn *state.WhatIfScenario, d *Data) error {
	if scn.Impact == nil || scn.Score == nil || d == nil {
		return fmt.Errorf("scenario %s has no simulation outcome to report", scn.ID)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	return reportTmpl.Execute(file, map[string]interface{}{
		"Name":            scn.Name,
		"Description":     scn.Description,
		"Recommendation":  scn.Impact.Overall.Recommendation,
		"Confidence":      scn.Impact.Overall.Confidence,
		"Reasoning":       scn.Impact.Overall.Reasoning,
		"Grade":           scn.Score.Grade,
		"Overall":         scn.Score.Overall,
		"Bars":            d.MetricBars,
		"After":           d.TimelineAfter,
		"Recommendations": scn.Recommendations,
	})
}
