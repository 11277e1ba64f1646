package domain

type SkillStat struct {
	Skill      string `json:"skill"`
	Percentage int    `json:"percentage"` // of postings in the filtered set
}

type SalaryBucket struct {
	Range string `json:"range"` // e.g. "3000-5000", "10000+"
	Count int    `json:"count"`
}

type LocationStat struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// JobStatistics is a derived snapshot over one filtered result set. It is
// recomputed per query and never stored.
type JobStatistics struct {
	TotalJobs          int            `json:"totalJobs"`
	AvgSalary          int            `json:"avgSalary"` // rounded midpoint average, 0 when no posting lists both bounds
	NewJobs            int            `json:"newJobs"`   // posted inside the trailing window
	Companies          int            `json:"companies"` // distinct hiring companies
	TopRequirements    []SkillStat    `json:"topRequirements"`
	TopPreferredSkills []SkillStat    `json:"topPreferredSkills"`
	SalaryDistribution []SalaryBucket `json:"salaryDistribution"`
	LocationStats      []LocationStat `json:"locationStats"`
}
