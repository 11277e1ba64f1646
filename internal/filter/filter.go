// Package filter narrows a posting snapshot down to the subset matching a
// FilterCriteria. Every predicate is optional; an omitted predicate keeps
// everything, so the criteria act as a conjunction of independent passes.
package filter

import (
	"strings"

	"joblens-engine/internal/domain"
)

// Apply returns the postings satisfying every present predicate, joined with
// their companies, in the snapshot's (insertion) order. Inputs are never
// mutated; inactive postings are dropped unconditionally before anything else.
func Apply(jobs []domain.JobPosting, companies map[int64]*domain.Company, c domain.FilterCriteria) []domain.JobWithCompany {
	out := make([]domain.JobWithCompany, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsActive {
			continue
		}
		co := companies[j.CompanyID]
		if co == nil {
			// inserts reject dangling company ids, so this is a snapshot
			// taken mid-hydrate at worst; drop the posting
			continue
		}
		if !matchesSalary(j, c) {
			continue
		}
		if !matchesExperience(j, c.ExperienceLevel) {
			continue
		}
		if c.EmploymentType != "" && j.EmploymentType != c.EmploymentType {
			continue
		}
		if c.IsRemote != nil && j.IsRemote != *c.IsRemote {
			continue
		}
		if !matchesIndustry(co, c.Industries) {
			continue
		}
		if !matchesLocation(co, c.Locations) {
			continue
		}
		if len(c.Skills) > 0 && !matchesSkills(j, c.Skills, c.SkillOperator) {
			continue
		}
		if c.Query != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(c.Query)) {
			continue
		}
		out = append(out, domain.JobWithCompany{JobPosting: j, Company: co})
	}
	return out
}

// matchesSalary is an overlap test, not containment: a posting's band passes
// when it intersects the queried range at all. A posting missing the bound a
// side of the query needs is excluded once that side is queried.
func matchesSalary(j domain.JobPosting, c domain.FilterCriteria) bool {
	if c.SalaryMin != nil {
		if j.SalaryMax == nil || *j.SalaryMax < *c.SalaryMin {
			return false
		}
	}
	if c.SalaryMax != nil {
		if j.SalaryMin == nil || *j.SalaryMin > *c.SalaryMax {
			return false
		}
	}
	return true
}

// The "all" wildcard is bidirectional: a posting marked "all" matches every
// queried level, and querying "all" disables the filter entirely.
func matchesExperience(j domain.JobPosting, level string) bool {
	if level == "" || level == domain.ExperienceAll {
		return true
	}
	return j.ExperienceLevel == level || j.ExperienceLevel == domain.ExperienceAll
}

func matchesIndustry(co *domain.Company, industries []string) bool {
	if len(industries) == 0 {
		return true
	}
	for _, ind := range industries {
		if co.Industry == ind {
			return true
		}
	}
	return false
}

// Location tokens match by substring containment, so "서울" hits a company
// located at "서울 강남".
func matchesLocation(co *domain.Company, locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	for _, loc := range locations {
		if strings.Contains(co.Location, loc) {
			return true
		}
	}
	return false
}

// matchesSkills folds the posting's required+preferred skills into one
// case-insensitive universe and matches each query skill fuzzily: either
// string containing the other counts, so "React" hits "React.js" and the
// reverse. AND needs every query skill to land, OR needs one.
func matchesSkills(j domain.JobPosting, skills []string, op domain.SkillOperator) bool {
	universe := make([]string, 0, len(j.Requirements)+len(j.PreferredSkills))
	for _, s := range j.Requirements {
		universe = append(universe, strings.ToLower(s))
	}
	for _, s := range j.PreferredSkills {
		universe = append(universe, strings.ToLower(s))
	}

	hit := func(query string) bool {
		q := strings.ToLower(query)
		for _, s := range universe {
			if strings.Contains(s, q) || strings.Contains(q, s) {
				return true
			}
		}
		return false
	}

	if op == domain.SkillAnd {
		for _, q := range skills {
			if !hit(q) {
				return false
			}
		}
		return true
	}
	// OR is the default
	for _, q := range skills {
		if hit(q) {
			return true
		}
	}
	return false
}
