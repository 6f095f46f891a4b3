package report

import (
	"fmt"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

type task struct {
	title      string
	category   string
	importance number
}

// Tasks renders the most important tasks, marking core tasks distinctly.
func Tasks(f onet.Fragment, limit int) string {
	rec, ok := f.Record()
	if !ok {
		return "Données de tâches indisponibles."
	}
	var rows []task
	for _, item := range list(rec.Get("task")) {
		rows = append(rows, task{
			title:      text(item.Get("title"), "Titre non spécifié"),
			category:   text(item.Get("category"), "N/A"),
			importance: numberOf(item.Get("importance")),
		})
	}
	if len(rows) == 0 {
		return "Aucune tâche répertoriée."
	}
	sortDesc(rows, func(t task) float64 { return t.importance.value })

	out := make([]string, 0, limit)
	for _, t := range capped(rows, limit) {
		marker := "🔸"
		if t.category == "Core" {
			marker = "🔹"
		}
		out = append(out, fmt.Sprintf("%s **%s** (Imp: %s)", marker, t.title, t.importance.text))
	}
	return lines(out)
}
