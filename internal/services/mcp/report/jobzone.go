package report

import (
	"fmt"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

type jobZone struct {
	code       string
	title      string
	svpRange   string
	education  string
	experience string
	training   string
}

// JobZone renders the preparation level block. The record may be wrapped
// under "job_zone" and, rarely, inside a list.
func JobZone(f onet.Fragment) string {
	rec, ok := f.Record()
	if !ok {
		return "Info Job Zone non disponible."
	}
	target := rec
	if wrapped := rec.Get("job_zone"); wrapped.Exists() {
		target = wrapped
	}
	if target.IsArray() {
		if items := target.Array(); len(items) > 0 {
			target = items[0]
		}
	}

	z := jobZone{
		code:       text(target.Get("code"), "?"),
		title:      text(target.Get("title"), "Titre non spécifié"),
		svpRange:   text(target.Get("svp_range"), "Non spécifié"),
		education:  text(target.Get("education"), "Non spécifié"),
		experience: text(target.Get("related_experience"), "Non spécifié"),
		training:   text(target.Get("job_training"), "Non spécifié"),
	}
	return fmt.Sprintf("**Zone %s : %s** (SVP Range: %s)\n"+
		"- **Éducation** : %s\n"+
		"- **Expérience** : %s\n"+
		"- **Formation** : %s",
		z.code, z.title, z.svpRange, z.education, z.experience, z.training)
}
