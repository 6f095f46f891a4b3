package report

import (
	"fmt"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

type educationLevel struct {
	title      string
	percentage number
}

// Education renders education levels by share of respondents, dropping
// levels nobody reported. The list may sit under "response" or "level" and
// the share under "percentage_of_respondents" or "percentage".
func Education(f onet.Fragment) string {
	rec, ok := f.Record()
	if !ok {
		return "Données d'éducation indisponibles."
	}
	items := rec.Get("response")
	if !truthy(items) {
		items = rec.Get("level")
	}
	entries := list(items)
	if len(entries) == 0 {
		return "Aucune donnée d'éducation."
	}

	var rows []educationLevel
	for _, item := range entries {
		pct := item.Get("percentage_of_respondents")
		if !truthy(pct) {
			pct = item.Get("percentage")
		}
		title := item.Get("title")
		if !truthy(title) {
			title = item.Get("name")
		}
		row := educationLevel{
			title:      text(title, "N/A"),
			percentage: numberOf(pct),
		}
		if row.percentage.value > 0 {
			rows = append(rows, row)
		}
	}
	sortDesc(rows, func(e educationLevel) float64 { return e.percentage.value })

	out := make([]string, 0, len(rows))
	for _, e := range rows {
		out = append(out, fmt.Sprintf("- **%s** (%s%%)", e.title, e.percentage.text))
	}
	return lines(out)
}
