package report

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

// Ranking weights for technology examples.
const (
	inDemandBonus = 50
	hotBonus      = 20
)

type technology struct {
	title      string
	hot        bool
	inDemand   bool
	percentage number
}

func (t technology) score() float64 {
	s := t.percentage.value
	if t.inDemand {
		s += inDemandBonus
	}
	if t.hot {
		s += hotBonus
	}
	return s
}

func (t technology) display() string {
	markers := ""
	if t.hot {
		markers += "🔥"
	}
	if t.inDemand {
		markers += "📈"
	}
	s := strings.TrimSpace(t.title + " " + markers)
	if t.percentage.value > 0 {
		s += fmt.Sprintf(" (%s%%)", t.percentage.text)
	}
	return s
}

type technologyCategory struct {
	title string
	tools []technology
}

func parseTechnology(rec gjson.Result) []technologyCategory {
	var cats []technologyCategory
	for _, cat := range list(rec.Get("category")) {
		c := technologyCategory{title: text(cat.Get("title"), "Divers")}
		examples := append(list(cat.Get("example")), list(cat.Get("example_more"))...)
		for _, ex := range examples {
			c.tools = append(c.tools, technology{
				title:      text(ex.Get("title"), "Inconnu"),
				hot:        truthy(ex.Get("hot_technology")),
				inDemand:   truthy(ex.Get("in_demand")),
				percentage: numberOf(ex.Get("percentage")),
			})
		}
		cats = append(cats, c)
	}
	return cats
}

// Technology renders one line per category with its highest ranked tools.
// Rank is percentage plus a bonus for in-demand and hot technologies.
func Technology(f onet.Fragment, perCategory int) string {
	rec, ok := f.Record()
	if !ok {
		return "Données technologiques indisponibles."
	}
	cats := parseTechnology(rec)
	if len(cats) == 0 {
		return "Aucune technologie répertoriée."
	}

	var out []string
	for _, c := range cats {
		sortDesc(c.tools, technology.score)
		top := capped(c.tools, perCategory)
		if len(top) == 0 {
			continue
		}
		names := make([]string, len(top))
		for i, t := range top {
			names[i] = t.display()
		}
		out = append(out, fmt.Sprintf("- **%s**: %s", c.title, strings.Join(names, ", ")))
	}
	return lines(out)
}
