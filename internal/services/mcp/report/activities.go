package report

import (
	"strings"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

// DetailedActivities renders the first detailed work activities in catalog
// order, skipping blank titles.
func DetailedActivities(f onet.Fragment, limit int) string {
	rec, ok := f.Record()
	if !ok {
		return "Données d'activités détaillées indisponibles."
	}
	items := list(rec.Get("activity"))
	if len(items) == 0 {
		return "Aucune activité détaillée répertoriée."
	}
	var out []string
	for _, item := range capped(items, limit) {
		if title := strings.TrimSpace(item.Get("title").String()); title != "" {
			out = append(out, "- "+title)
		}
	}
	return lines(out)
}
