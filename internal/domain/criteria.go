package domain

type SkillOperator string

const (
	SkillAnd SkillOperator = "AND"
	SkillOr  SkillOperator = "OR"
)

// FilterCriteria is one query's set of optional predicates. A zero field means
// "unconstrained": nil pointers and empty slices/strings are no-ops, so the
// zero value matches every active posting.
type FilterCriteria struct {
	Industries      []string      `json:"industries,omitempty"`      // OR, exact match on company industry
	Locations       []string      `json:"locations,omitempty"`       // OR, substring match on company location
	SalaryMin       *int          `json:"salaryMin,omitempty"`       // range overlap, not containment
	SalaryMax       *int          `json:"salaryMax,omitempty"`
	ExperienceLevel string        `json:"experienceLevel,omitempty"` // "" or "all" mean no filter
	EmploymentType  string        `json:"employmentType,omitempty"`  // exact match
	IsRemote        *bool         `json:"isRemote,omitempty"`        // exact match, including explicit false
	Skills          []string      `json:"skills,omitempty"`
	SkillOperator   SkillOperator `json:"skillOperator,omitempty"` // defaults to OR
	Query           string        `json:"q,omitempty"`             // substring match on posting title
}
