package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
	"github.com/louisbranch/onet-mcp/internal/services/mcp/report"
)

// Catalog is the upstream occupation catalog used by the tools.
type Catalog interface {
	Search(ctx context.Context, keyword string) onet.Fragment
	FetchProfile(ctx context.Context, code string) onet.Profile
}

const (
	searchNoResults = "Aucun métier trouvé pour ce mot-clé."
	searchTrailer   = "\nUtilisez le Code SOC pour obtenir les détails."
	noReportedTitle = "Aucun titre similaire disponible."
)

// SearchOccupation looks occupations up by keyword and renders the matches.
func SearchOccupation(ctx context.Context, catalog Catalog, keyword string) string {
	frag := catalog.Search(ctx, keyword)
	if reason, failed := fragmentError(frag); failed {
		return "Erreur lors de la recherche : " + reason
	}

	matches := frag.Body.Get("occupation")
	if !matches.IsArray() || len(matches.Array()) == 0 {
		return searchNoResults
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Résultats trouvés pour '%s' :\n", keyword)
	for _, item := range matches.Array() {
		fmt.Fprintf(&b, "- **%s** (Code SOC: `%s`)\n", item.Get("title").String(), item.Get("code").String())
	}
	b.WriteString(searchTrailer)
	return b.String()
}

// CleanCode strips surrounding whitespace and any quote characters that
// clients tend to paste around SOC codes.
func CleanCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.NewReplacer("'", "", `"`, "").Replace(code)
	return strings.TrimSpace(code)
}

// detailSection is one fixed heading of the occupation report.
type detailSection struct {
	heading string
	render  func(onet.Profile) string
}

var detailSections = []detailSection{
	{"## Zone d'Emploi (Job Zone)", func(p onet.Profile) string {
		return report.JobZone(p.Get(onet.SectionJobZone))
	}},
	{"## 1. Tâches Principales", func(p onet.Profile) string {
		return report.Tasks(p.Get(onet.SectionTasks), report.TaskLimit)
	}},
	{"## 2. Activités Professionnelles Générales (Work Activities)", func(p onet.Profile) string {
		return report.ScoredElements(p.Get(onet.SectionWorkActivities), report.ScoredElementLimit)
	}},
	{"## 3. Activités Détaillées (Detailed Work Activities)", func(p onet.Profile) string {
		return report.DetailedActivities(p.Get(onet.SectionDetailedWorkActivities), report.DetailedActivityLimit)
	}},
	{"## 4. Technologies & Outils", func(p onet.Profile) string {
		return report.Technology(p.Get(onet.SectionTechnologySkills), report.TechnologyPerCategory)
	}},
	{"## 5. Compétences Transversales (Skills)", func(p onet.Profile) string {
		return report.ScoredElements(p.Get(onet.SectionSkills), report.ScoredElementLimit)
	}},
	{"## 6. Capacités (Abilities)", func(p onet.Profile) string {
		return report.ScoredElements(p.Get(onet.SectionAbilities), report.ScoredElementLimit)
	}},
	{"## 7. Connaissances (Knowledge)", func(p onet.Profile) string {
		return report.ScoredElements(p.Get(onet.SectionKnowledge), report.ScoredElementLimit)
	}},
	{"## 8. Contexte de Travail (Work Context)", func(p onet.Profile) string {
		return report.WorkContext(p.Get(onet.SectionWorkContext), report.WorkContextLimit)
	}},
	{"## 9. Styles de Travail (Work Styles)", func(p onet.Profile) string {
		return report.ScoredElements(p.Get(onet.SectionWorkStyles), report.ScoredElementLimit)
	}},
	{"## 10. Intérêts & Valeurs (RIASEC)", func(p onet.Profile) string {
		return report.Interests(p.Get(onet.SectionInterests))
	}},
	{"## 11. Éducation & Diplômes", func(p onet.Profile) string {
		return report.Education(p.Get(onet.SectionEducation))
	}},
}

// OccupationDetails fetches the full profile for code and renders the report.
// When the summary itself cannot be fetched the report is replaced by an
// error block.
func OccupationDetails(ctx context.Context, catalog Catalog, code string) string {
	code = CleanCode(code)
	profile := catalog.FetchProfile(ctx, code)

	summary := profile.Get(onet.SectionSummary)
	if reason, failed := fragmentError(summary); failed {
		return fmt.Sprintf("ERREUR API O*NET pour le code '%s'\nDétail : %s\n", code, reason)
	}
	return renderDetails(code, summary.Body, profile)
}

func renderDetails(code string, summary gjson.Result, profile onet.Profile) string {
	socCode := summary.Get("code").String()
	if socCode == "" {
		socCode = code
	}

	var titles []string
	for _, t := range summary.Get("sample_of_reported_titles").Array() {
		if s := t.String(); s != "" {
			titles = append(titles, s)
		}
	}
	reported := noReportedTitle
	if len(titles) > 0 {
		reported = strings.Join(titles, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n# FICHE MÉTIER : %s **Code SOC** : %s\n", summary.Get("title").String(), socCode)
	fmt.Fprintf(&b, "\n## 📝 Description\n%s\n", summary.Get("description").String())
	fmt.Fprintf(&b, "\n## 📌 Titres Similaires (Reported Titles)\n%s\n", reported)
	for _, s := range detailSections {
		fmt.Fprintf(&b, "\n%s\n%s\n", s.heading, s.render(profile))
	}
	return b.String()
}

// fragmentError reports whether frag is an error, either a fetch failure or
// a body carrying an "error" member, and the best description of it.
func fragmentError(frag onet.Fragment) (string, bool) {
	if frag.Failure != nil {
		return frag.Failure.Reason(), true
	}
	if !frag.OK() {
		return "Connection Error", true
	}
	if e := frag.Body.Get("error"); e.Exists() {
		if d := frag.Body.Get("detail"); d.Exists() {
			return d.String(), true
		}
		return e.String(), true
	}
	return "", false
}
