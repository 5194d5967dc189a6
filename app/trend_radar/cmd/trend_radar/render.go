package main

import (
	"io"
	"text/template"

	"github.com/iWorld-y/trend_radar/app/trend_radar/pkg/model"
)

const markdownTpl = `# Keyword News Trend Report
{{range .}}
## {{.Keyword}}

*Last updated: {{.LastUpdated}}*

### Trend Change Analysis

{{.TrendChange}}

### Latest Summary Report

{{.CurrentSummary}}

### Latest Articles
{{range .Current}}
- [{{or .Title "No Title"}}]({{or .URL "#"}}) ({{or .Date "N/A"}})
  {{or .TrailText "No summary available"}}
{{- end}}
{{end}}`

var reportTpl = template.Must(template.New("report").Parse(markdownTpl))

// renderMarkdown 按存储顺序输出所有关键词的报告
func renderMarkdown(w io.Writer, reports []*model.KeywordReport) error {
	return reportTpl.Execute(w, reports)
}
