package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"joblens-engine/internal/domain"
)

// ParseCriteria maps query parameters onto FilterCriteria. Repeated keys
// become set-valued predicates; an absent key leaves its predicate off. The
// engine itself never validates, so malformed values are rejected here.
func ParseCriteria(q url.Values) (domain.FilterCriteria, error) {
	var c domain.FilterCriteria

	c.Industries = nonEmpty(q["industries"])
	c.Locations = nonEmpty(q["locations"])
	c.Skills = nonEmpty(q["skills"])

	if v := q.Get("salaryMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("salaryMin must be an integer")
		}
		c.SalaryMin = &n
	}
	if v := q.Get("salaryMax"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("salaryMax must be an integer")
		}
		c.SalaryMax = &n
	}
	if c.SalaryMin != nil && c.SalaryMax != nil && *c.SalaryMin > *c.SalaryMax {
		return c, fmt.Errorf("salaryMin must not exceed salaryMax")
	}

	c.ExperienceLevel = q.Get("experienceLevel")
	c.EmploymentType = q.Get("employmentType")

	if v := q.Get("isRemote"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("isRemote must be a boolean")
		}
		c.IsRemote = &b
	}

	// anything but an explicit AND falls back to OR
	if strings.EqualFold(q.Get("skillOperator"), string(domain.SkillAnd)) {
		c.SkillOperator = domain.SkillAnd
	} else {
		c.SkillOperator = domain.SkillOr
	}

	c.Query = strings.TrimSpace(q.Get("q"))

	return c, nil
}

func nonEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
