package onet

import (
	"net/url"
	"strconv"
)

// Section names one slice of an occupation profile.
type Section string

const (
	SectionSummary                Section = "summary"
	SectionTasks                  Section = "tasks"
	SectionTechnologySkills       Section = "technology_skills"
	SectionSkills                 Section = "skills"
	SectionKnowledge              Section = "knowledge"
	SectionWorkActivities         Section = "work_activities"
	SectionEducation              Section = "education"
	SectionDetailedWorkActivities Section = "detailed_work_activities"
	SectionJobZone                Section = "job_zone"
	SectionWorkContext            Section = "work_context"
	SectionAbilities              Section = "abilities"
	SectionInterests              Section = "interests"
	SectionWorkStyles             Section = "work_styles"
)

// sectionSearch labels keyword searches in traces and metrics.
const sectionSearch Section = "search"

type sectionRequest struct {
	section Section
	suffix  string
	end     int // zero means the endpoint is fetched unpaged
}

// profileRequests is the fixed set of fetches behind one occupation profile.
var profileRequests = []sectionRequest{
	{section: SectionSummary},
	{section: SectionTasks, suffix: "/details/tasks", end: 20},
	{section: SectionTechnologySkills, suffix: "/details/technology_skills", end: 20},
	{section: SectionSkills, suffix: "/details/skills", end: 20},
	{section: SectionKnowledge, suffix: "/details/knowledge", end: 20},
	{section: SectionWorkActivities, suffix: "/details/work_activities", end: 20},
	{section: SectionEducation, suffix: "/details/education"},
	{section: SectionDetailedWorkActivities, suffix: "/details/detailed_work_activities", end: 35},
	{section: SectionJobZone, suffix: "/details/job_zone"},
	{section: SectionWorkContext, suffix: "/details/work_context", end: 20},
	{section: SectionAbilities, suffix: "/details/abilities", end: 20},
	{section: SectionInterests, suffix: "/details/interests"},
	{section: SectionWorkStyles, suffix: "/details/work_styles"},
}

func (r sectionRequest) query() url.Values {
	if r.end == 0 {
		return nil
	}
	return url.Values{
		"start": []string{"1"},
		"end":   []string{strconv.Itoa(r.end)},
	}
}

// Profile is the request-scoped set of fragments for one occupation.
type Profile map[Section]Fragment

// Get returns the fragment for s. Absent sections are reported as a
// connection failure so formatters treat them as unavailable.
func (p Profile) Get(s Section) Fragment {
	if f, ok := p[s]; ok {
		return f
	}
	return Failed(&Failure{Kind: FailureConnection, Message: "Connection Error", Detail: "section not fetched"})
}
