package domain

import "time"

// ExperienceAll is the wildcard experience level. A posting marked "all"
// matches every query level, and a query for "all" applies no level filter.
const ExperienceAll = "all"

type JobPosting struct {
	ID              int64      `json:"id"`
	CompanyID       int64      `json:"companyId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    []string   `json:"requirements"`
	PreferredSkills []string   `json:"preferredSkills"`
	SalaryMin       *int       `json:"salaryMin"` // 만원/year; nil when unlisted
	SalaryMax       *int       `json:"salaryMax"`
	ExperienceLevel string     `json:"experienceLevel"` // all/entry/junior/mid/senior
	EmploymentType  string     `json:"employmentType"`  // full-time/contract/...
	IsRemote        bool       `json:"isRemote"`
	PostedAt        time.Time  `json:"postedAt"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	IsActive        bool       `json:"isActive"`
	ViewCount       int64      `json:"viewCount"`
}

// MidSalary is the midpoint of the salary band, used as the representative
// salary for averaging and histogram bucketing. ok is false when either bound
// is unlisted; such postings never contribute to salary statistics.
func (j JobPosting) MidSalary() (mid float64, ok bool) {
	if j.SalaryMin == nil || j.SalaryMax == nil {
		return 0, false
	}
	return float64(*j.SalaryMin+*j.SalaryMax) / 2, true
}

// JobWithCompany is the read-only composite a query returns: the posting plus
// a shared reference to its company.
type JobWithCompany struct {
	JobPosting
	Company *Company `json:"company"`
}
