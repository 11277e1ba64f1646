package filter_test

import (
	"testing"
	"time"

	"joblens-engine/internal/domain"
	"joblens-engine/internal/filter"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

// two companies, three postings — the fixture from the discovery scenarios
func fixture() ([]domain.JobPosting, map[int64]*domain.Company) {
	companies := map[int64]*domain.Company{
		1: {ID: 1, Name: "A", Industry: "Fintech", Location: "Seoul"},
		2: {ID: 2, Name: "B", Industry: "Tech", Location: "Pangyo"},
	}
	now := time.Now()
	jobs := []domain.JobPosting{
		{
			ID: 1, CompanyID: 1, Title: "Backend Engineer",
			Requirements: []string{"Java"},
			SalaryMin:    intp(4000), SalaryMax: intp(6000),
			ExperienceLevel: "junior", EmploymentType: "full-time",
			PostedAt: now, IsActive: true,
		},
		{
			ID: 2, CompanyID: 1, Title: "Platform Engineer",
			Requirements: []string{"Java", "Kafka"},
			SalaryMin:    intp(5000), SalaryMax: intp(8000),
			ExperienceLevel: "mid", EmploymentType: "full-time",
			PostedAt: now, IsActive: true,
		},
		{
			ID: 3, CompanyID: 2, Title: "Frontend Engineer",
			Requirements: []string{"React"},
			SalaryMin:    intp(3000), SalaryMax: intp(4000),
			ExperienceLevel: "junior", EmploymentType: "contract", IsRemote: true,
			PostedAt: now, IsActive: true,
		},
	}
	return jobs, companies
}

func ids(res []domain.JobWithCompany) []int64 {
	out := make([]int64, 0, len(res))
	for _, j := range res {
		out = append(out, j.ID)
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── active flag ────────────────────────────────────────────────────────────

func TestApply_ExcludesInactive(t *testing.T) {
	jobs, companies := fixture()
	jobs[1].IsActive = false

	res := filter.Apply(jobs, companies, domain.FilterCriteria{})
	if got := ids(res); !equalIDs(got, 1, 3) {
		t.Errorf("Apply({}) = %v, want [1 3] (inactive postings excluded)", got)
	}
}

func TestApply_EmptyCriteriaKeepsAllActive(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{})
	if got := ids(res); !equalIDs(got, 1, 2, 3) {
		t.Errorf("Apply({}) = %v, want all active postings in order", got)
	}
}

// ── salary overlap ─────────────────────────────────────────────────────────

func TestApply_SalaryOverlap(t *testing.T) {
	jobs, companies := fixture()

	cases := []struct {
		name string
		crit domain.FilterCriteria
		want []int64
	}{
		// posting 1 spans 4000-6000: overlaps both one-sided queries
		{"min 5000", domain.FilterCriteria{SalaryMin: intp(5000)}, []int64{1, 2}},
		{"max 5000", domain.FilterCriteria{SalaryMax: intp(5000)}, []int64{1, 2, 3}},
		{"min 7000", domain.FilterCriteria{SalaryMin: intp(7000)}, []int64{2}},
		{"band 4500-4600 overlaps wide postings", domain.FilterCriteria{SalaryMin: intp(4500), SalaryMax: intp(4600)}, []int64{1}},
	}
	for _, c := range cases {
		res := filter.Apply(jobs, companies, c.crit)
		if got := ids(res); !equalIDs(got, c.want...) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestApply_SalaryExcludesUnlistedBound(t *testing.T) {
	jobs, companies := fixture()
	jobs[0].SalaryMax = nil // posting 1 loses its upper bound

	res := filter.Apply(jobs, companies, domain.FilterCriteria{SalaryMin: intp(5000)})
	if got := ids(res); !equalIDs(got, 2) {
		t.Errorf("salaryMin query must drop postings without salaryMax, got %v", got)
	}
}

// ── experience wildcard ────────────────────────────────────────────────────

func TestApply_ExperienceWildcard(t *testing.T) {
	jobs, companies := fixture()
	jobs[2].ExperienceLevel = domain.ExperienceAll

	// posting marked "all" matches every specific query
	res := filter.Apply(jobs, companies, domain.FilterCriteria{ExperienceLevel: "mid"})
	if got := ids(res); !equalIDs(got, 2, 3) {
		t.Errorf("experienceLevel=mid: got %v, want [2 3]", got)
	}

	// querying "all" applies no filter
	res = filter.Apply(jobs, companies, domain.FilterCriteria{ExperienceLevel: domain.ExperienceAll})
	if got := ids(res); !equalIDs(got, 1, 2, 3) {
		t.Errorf("experienceLevel=all: got %v, want all postings", got)
	}
}

// ── employment type and remote flag ────────────────────────────────────────

func TestApply_EmploymentType(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{EmploymentType: "contract"})
	if got := ids(res); !equalIDs(got, 3) {
		t.Errorf("employmentType=contract: got %v, want [3]", got)
	}
}

func TestApply_RemoteExplicitFalse(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{IsRemote: boolp(false)})
	if got := ids(res); !equalIDs(got, 1, 2) {
		t.Errorf("isRemote=false must filter, not no-op: got %v, want [1 2]", got)
	}
}

// ── company-side predicates ────────────────────────────────────────────────

func TestApply_IndustryScenario(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{Industries: []string{"Fintech"}})
	if got := ids(res); !equalIDs(got, 1, 2) {
		t.Errorf("industries=[Fintech]: got %v, want [1 2]", got)
	}
}

func TestApply_LocationSubstring(t *testing.T) {
	companies := map[int64]*domain.Company{
		1: {ID: 1, Industry: "핀테크", Location: "서울 강남"},
	}
	jobs := []domain.JobPosting{{ID: 1, CompanyID: 1, Title: "개발자", IsActive: true}}

	res := filter.Apply(jobs, companies, domain.FilterCriteria{Locations: []string{"서울"}})
	if len(res) != 1 {
		t.Errorf("location token 서울 should match company at 서울 강남")
	}

	res = filter.Apply(jobs, companies, domain.FilterCriteria{Locations: []string{"판교"}})
	if len(res) != 0 {
		t.Errorf("location token 판교 should not match 서울 강남")
	}
}

// ── skills ─────────────────────────────────────────────────────────────────

func TestApply_SkillAndVsOr(t *testing.T) {
	companies := map[int64]*domain.Company{1: {ID: 1}}
	jobs := []domain.JobPosting{{
		ID: 1, CompanyID: 1, Title: "FE",
		Requirements: []string{"React", "TypeScript"},
		IsActive:     true,
	}}

	and := domain.FilterCriteria{Skills: []string{"React", "Vue"}, SkillOperator: domain.SkillAnd}
	if res := filter.Apply(jobs, companies, and); len(res) != 0 {
		t.Errorf("AND with an unmatched skill must exclude the posting")
	}

	or := domain.FilterCriteria{Skills: []string{"React", "Vue"}, SkillOperator: domain.SkillOr}
	if res := filter.Apply(jobs, companies, or); len(res) != 1 {
		t.Errorf("OR with one matched skill must include the posting")
	}
}

func TestApply_SkillFuzzyBothDirections(t *testing.T) {
	companies := map[int64]*domain.Company{1: {ID: 1}}
	jobs := []domain.JobPosting{{
		ID: 1, CompanyID: 1, Title: "FE",
		Requirements: []string{"TypeScript"},
		IsActive:     true,
	}}

	// query skill contained in posting skill
	if res := filter.Apply(jobs, companies, domain.FilterCriteria{Skills: []string{"Script"}}); len(res) != 1 {
		t.Errorf("\"Script\" should fuzzy-match \"TypeScript\"")
	}
	// posting skill contained in query skill
	if res := filter.Apply(jobs, companies, domain.FilterCriteria{Skills: []string{"TypeScript 5"}}); len(res) != 1 {
		t.Errorf("\"TypeScript 5\" should fuzzy-match \"TypeScript\"")
	}
}

func TestApply_SkillCaseInsensitive(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{Skills: []string{"java"}, SkillOperator: domain.SkillOr})
	if got := ids(res); !equalIDs(got, 1, 2) {
		t.Errorf("skills=[java] (lowercase): got %v, want [1 2]", got)
	}
}

func TestApply_SkillUniverseIncludesPreferred(t *testing.T) {
	companies := map[int64]*domain.Company{1: {ID: 1}}
	jobs := []domain.JobPosting{{
		ID: 1, CompanyID: 1, Title: "BE",
		Requirements:    []string{"Java"},
		PreferredSkills: []string{"Kafka"},
		IsActive:        true,
	}}
	if res := filter.Apply(jobs, companies, domain.FilterCriteria{Skills: []string{"Kafka"}}); len(res) != 1 {
		t.Errorf("preferred skills belong to the matching universe")
	}
}

// ── title query ────────────────────────────────────────────────────────────

func TestApply_TitleQuery(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{Query: "backend"})
	if got := ids(res); !equalIDs(got, 1) {
		t.Errorf("q=backend: got %v, want [1]", got)
	}
}

// ── purity and stability ───────────────────────────────────────────────────

func TestApply_Idempotent(t *testing.T) {
	jobs, companies := fixture()
	crit := domain.FilterCriteria{Industries: []string{"Fintech"}, SalaryMin: intp(4000)}

	first := ids(filter.Apply(jobs, companies, crit))
	second := ids(filter.Apply(jobs, companies, crit))
	if !equalIDs(first, second...) {
		t.Errorf("identical criteria over an unchanged snapshot: %v vs %v", first, second)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	jobs, companies := fixture()
	res := filter.Apply(jobs, companies, domain.FilterCriteria{})

	res[0].Title = "mutated"
	if jobs[0].Title == "mutated" {
		t.Errorf("result elements must be copies, not views into the input")
	}
	if len(jobs) != 3 {
		t.Errorf("input slice length changed")
	}
}
