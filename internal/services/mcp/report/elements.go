package report

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

type scoredElement struct {
	name        string
	description string
	importance  number
}

// ScoredElements renders skills, knowledge, abilities, work activities or
// work styles as "name (score/100): description", highest importance first.
func ScoredElements(f onet.Fragment, limit int) string {
	rec, ok := f.Record()
	if !ok {
		return "Données indisponibles."
	}
	var rows []scoredElement
	for _, item := range list(rec.Get("element")) {
		rows = append(rows, scoredElement{
			name:        text(item.Get("name"), "Inconnu"),
			description: strings.TrimSpace(item.Get("description").String()),
			importance:  numberOf(item.Get("importance")),
		})
	}
	if len(rows) == 0 {
		return "Aucune donnée répertoriée."
	}
	sortDesc(rows, func(e scoredElement) float64 { return e.importance.value })

	out := make([]string, 0, limit)
	for _, e := range capped(rows, limit) {
		out = append(out, fmt.Sprintf("- **%s** (%s/100): %s", e.name, e.importance.text, e.description))
	}
	return lines(out)
}

type contextResponse struct {
	description string
	percentage  number
}

type contextElement struct {
	name      string
	context   number
	responses []contextResponse
}

// top returns the most frequent response; ties go to the first listed.
func (e contextElement) top() (contextResponse, bool) {
	if len(e.responses) == 0 {
		return contextResponse{}, false
	}
	best := e.responses[0]
	for _, r := range e.responses[1:] {
		if r.percentage.value > best.percentage.value {
			best = r
		}
	}
	return best, true
}

// WorkContext renders the highest rated working conditions together with the
// answer most respondents gave for each.
func WorkContext(f onet.Fragment, limit int) string {
	rec, ok := f.Record()
	if !ok {
		return "Données de contexte indisponibles."
	}
	var rows []contextElement
	for _, item := range list(rec.Get("element")) {
		e := contextElement{
			name:    text(item.Get("name"), "Inconnu"),
			context: numberOf(item.Get("context")),
		}
		for _, resp := range list(item.Get("response")) {
			e.responses = append(e.responses, contextResponse{
				description: resp.Get("description").String(),
				percentage:  numberOf(resp.Get("percentage_of_respondents")),
			})
		}
		rows = append(rows, e)
	}
	if len(rows) == 0 {
		return "Aucun contexte répertorié."
	}
	sortDesc(rows, func(e contextElement) float64 { return e.context.value })

	out := make([]string, 0, limit)
	for _, e := range capped(rows, limit) {
		if r, ok := e.top(); ok {
			out = append(out, fmt.Sprintf("- **%s**: %s (%s%%)", e.name, r.description, r.percentage.text))
			continue
		}
		out = append(out, fmt.Sprintf("- **%s**", e.name))
	}
	return lines(out)
}

type interest struct {
	name        string
	description string
	score       number
}

// hollandCode returns the initials of the two highest scoring interests in
// the order given.
func hollandCode(rows []interest) string {
	var b strings.Builder
	for _, r := range capped(rows, 2) {
		if c, _ := utf8.DecodeRuneInString(r.name); c != utf8.RuneError {
			b.WriteRune(unicode.ToUpper(c))
		}
	}
	return b.String()
}

// Interests renders the RIASEC profile: a two-letter Holland code followed by
// every interest area, highest score first.
func Interests(f onet.Fragment) string {
	rec, ok := f.Record()
	if !ok {
		return "Données d'intérêts indisponibles."
	}
	var rows []interest
	for _, item := range list(rec.Get("element")) {
		rows = append(rows, interest{
			name:        text(item.Get("name"), "Inconnu"),
			description: item.Get("description").String(),
			score:       numberOf(item.Get("occupational_interest")),
		})
	}
	if len(rows) == 0 {
		return "Aucun profil d'intérêt."
	}
	sortDesc(rows, func(i interest) float64 { return i.score.value })

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, fmt.Sprintf("- **%s** (Score: %s): %s", r.name, r.score.text, r.description))
	}
	return fmt.Sprintf("**Code Holland (RIASEC)** : %s\n", hollandCode(rows)) + lines(out)
}
