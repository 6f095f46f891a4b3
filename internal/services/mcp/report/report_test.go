package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/louisbranch/onet-mcp/internal/services/mcp/onet"
)

var failed = onet.Failed(&onet.Failure{Kind: onet.FailureHTTP, Status: 500, Message: "HTTP 500"})

func jsonFragment(raw string) onet.Fragment {
	return onet.Succeeded(gjson.Parse(raw))
}

func TestUnavailableSentences(t *testing.T) {
	tests := []struct {
		name   string
		render func(onet.Fragment) string
		want   string
	}{
		{"tasks", func(f onet.Fragment) string { return Tasks(f, TaskLimit) }, "Données de tâches indisponibles."},
		{"technology", func(f onet.Fragment) string { return Technology(f, TechnologyPerCategory) }, "Données technologiques indisponibles."},
		{"scored", func(f onet.Fragment) string { return ScoredElements(f, ScoredElementLimit) }, "Données indisponibles."},
		{"education", Education, "Données d'éducation indisponibles."},
		{"activities", func(f onet.Fragment) string { return DetailedActivities(f, DetailedActivityLimit) }, "Données d'activités détaillées indisponibles."},
		{"job zone", JobZone, "Info Job Zone non disponible."},
		{"work context", func(f onet.Fragment) string { return WorkContext(f, WorkContextLimit) }, "Données de contexte indisponibles."},
		{"interests", Interests, "Données d'intérêts indisponibles."},
	}
	inputs := map[string]onet.Fragment{
		"failure":      failed,
		"empty object": jsonFragment(`{}`),
		"error member": jsonFragment(`{"error":"HTTP 404","detail":"missing"}`),
		"zero":         {},
	}
	for _, tt := range tests {
		for inputName, input := range inputs {
			t.Run(tt.name+"/"+inputName, func(t *testing.T) {
				assert.Equal(t, tt.want, tt.render(input))
			})
		}
	}
}

func TestEmptySentences(t *testing.T) {
	body := jsonFragment(`{"start":1,"end":20}`)

	assert.Equal(t, "Aucune tâche répertoriée.", Tasks(body, TaskLimit))
	assert.Equal(t, "Aucune technologie répertoriée.", Technology(body, TechnologyPerCategory))
	assert.Equal(t, "Aucune donnée répertoriée.", ScoredElements(body, ScoredElementLimit))
	assert.Equal(t, "Aucune donnée d'éducation.", Education(body))
	assert.Equal(t, "Aucune activité détaillée répertoriée.", DetailedActivities(body, DetailedActivityLimit))
	assert.Equal(t, "Aucun contexte répertorié.", WorkContext(body, WorkContextLimit))
	assert.Equal(t, "Aucun profil d'intérêt.", Interests(body))
}

func TestTasksSortedAndMarked(t *testing.T) {
	f := jsonFragment(`{"task":[
		{"title":"File records","category":"Supplemental","importance":61},
		{"title":"Assess patients","category":"Core","importance":92},
		{"category":"Core","importance":87.5}
	]}`)

	got := Tasks(f, 2)

	assert.Equal(t, "🔹 **Assess patients** (Imp: 92)\n🔹 **Titre non spécifié** (Imp: 87.5)", got)
}

func TestTechnologyRanksDemandAboveShare(t *testing.T) {
	f := jsonFragment(`{"category":[
		{"title":"Database software","example":[
			{"title":"A","in_demand":false,"hot_technology":false,"percentage":10}
		],"example_more":[
			{"title":"B","in_demand":true,"hot_technology":false,"percentage":0}
		]},
		{"title":"Empty","example":[]},
		{"example":[{"title":"Python","hot_technology":true,"in_demand":true,"percentage":33}]}
	]}`)

	got := Technology(f, TechnologyPerCategory)

	assert.Equal(t, "- **Database software**: B 📈, A (10%)\n- **Divers**: Python 🔥📈 (33%)", got)
	assert.Less(t, strings.Index(got, "B 📈"), strings.Index(got, "A (10%)"))
}

func TestTechnologyCapsPerCategory(t *testing.T) {
	f := jsonFragment(`{"category":[{"title":"Tools","example":[
		{"title":"t1","percentage":1},{"title":"t2","percentage":2},{"title":"t3","percentage":3}
	]}]}`)

	assert.Equal(t, "- **Tools**: t3 (3%), t2 (2%)", Technology(f, 2))
}

func TestScoredElements(t *testing.T) {
	f := jsonFragment(`{"element":[
		{"name":"Writing","importance":50,"description":" Communicating effectively. "},
		{"name":"Reading Comprehension","importance":72,"description":"Understanding written sentences."},
		{"importance":40}
	]}`)

	got := ScoredElements(f, ScoredElementLimit)

	assert.Equal(t, "- **Reading Comprehension** (72/100): Understanding written sentences.\n"+
		"- **Writing** (50/100): Communicating effectively.\n"+
		"- **Inconnu** (40/100): ", got)
}

func TestEducationDropsZeroShares(t *testing.T) {
	f := jsonFragment(`{"response":[
		{"title":"Bachelor's degree","percentage_of_respondents":0},
		{"title":"Master's degree","percentage":46}
	]}`)

	assert.Equal(t, "- **Master's degree** (46%)", Education(f))
}

func TestEducationFallsBackToLevelList(t *testing.T) {
	f := jsonFragment(`{"response":[],"level":[
		{"name":"High school diploma","percentage_of_respondents":12},
		{"title":"Associate's degree","percentage_of_respondents":30},
		{"percentage":5}
	]}`)

	assert.Equal(t, "- **Associate's degree** (30%)\n- **High school diploma** (12%)\n- **N/A** (5%)", Education(f))
}

func TestDetailedActivitiesKeepOrderAndSkipBlanks(t *testing.T) {
	f := jsonFragment(`{"activity":[
		{"title":"Monitor patient conditions."},
		{"title":"   "},
		{"title":" Administer medications. "},
		{"title":"Third"}
	]}`)

	assert.Equal(t, "- Monitor patient conditions.\n- Administer medications.", DetailedActivities(f, 3))
}

func TestJobZone(t *testing.T) {
	t.Run("wrapped list", func(t *testing.T) {
		f := jsonFragment(`{"job_zone":[{"code":4,"title":"Considerable Preparation Needed","svp_range":"(7.0 to < 8.0)","education":"Most require a four-year degree.","related_experience":"A minimum of two to four years.","job_training":"Several years of work-related experience."}]}`)

		assert.Equal(t, "**Zone 4 : Considerable Preparation Needed** (SVP Range: (7.0 to < 8.0))\n"+
			"- **Éducation** : Most require a four-year degree.\n"+
			"- **Expérience** : A minimum of two to four years.\n"+
			"- **Formation** : Several years of work-related experience.", JobZone(f))
	})

	t.Run("root record with defaults", func(t *testing.T) {
		f := jsonFragment(`{"code":2}`)

		assert.Equal(t, "**Zone 2 : Titre non spécifié** (SVP Range: Non spécifié)\n"+
			"- **Éducation** : Non spécifié\n"+
			"- **Expérience** : Non spécifié\n"+
			"- **Formation** : Non spécifié", JobZone(f))
	})
}

func TestWorkContextPicksTopResponse(t *testing.T) {
	f := jsonFragment(`{"element":[
		{"name":"Face-to-Face Discussions","context":91,"response":[
			{"description":"Once a week","percentage_of_respondents":8},
			{"description":"Every day","percentage_of_respondents":92}
		]},
		{"name":"E-Mail","context":95,"response":[
			{"description":"Every day","percentage_of_respondents":70},
			{"description":"Once a month","percentage_of_respondents":70}
		]},
		{"name":"Exposed to Noise","context":40}
	]}`)

	got := WorkContext(f, WorkContextLimit)

	assert.Equal(t, "- **E-Mail**: Every day (70%)\n"+
		"- **Face-to-Face Discussions**: Every day (92%)\n"+
		"- **Exposed to Noise**", got)
}

func TestInterestsHollandCode(t *testing.T) {
	f := jsonFragment(`{"element":[
		{"name":"Realistic","occupational_interest":20,"description":"Hands-on."},
		{"name":"social","occupational_interest":88,"description":"Helping people."},
		{"name":"Investigative","occupational_interest":75,"description":"Ideas."}
	]}`)

	got := Interests(f)

	assert.Equal(t, "**Code Holland (RIASEC)** : SI\n"+
		"- **social** (Score: 88): Helping people.\n"+
		"- **Investigative** (Score: 75): Ideas.\n"+
		"- **Realistic** (Score: 20): Hands-on.", got)
}

func TestInterestsTiesKeepCatalogOrder(t *testing.T) {
	f := jsonFragment(`{"element":[
		{"name":"Conventional","occupational_interest":50},
		{"name":"Artistic","occupational_interest":50},
		{"name":"Enterprising","occupational_interest":50}
	]}`)

	assert.True(t, strings.HasPrefix(Interests(f), "**Code Holland (RIASEC)** : CA\n"))
}
