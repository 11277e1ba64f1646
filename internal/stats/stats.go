// Package stats computes the aggregate summary for one filtered result set.
// Compute is a pure function: it does no I/O, holds no lock and leaves the
// input untouched, so callers hand it a snapshot and an evaluation time.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"joblens-engine/internal/domain"
)

type Options struct {
	TopN             int           // size of the skill ranking tables
	NewWindow        time.Duration // trailing window for the newJobs count
	BucketBoundaries []int         // ascending lower bounds; last bucket is open-ended
}

func DefaultOptions() Options {
	return Options{
		TopN:             10,
		NewWindow:        7 * 24 * time.Hour,
		BucketBoundaries: []int{0, 3000, 5000, 8000, 10000},
	}
}

// Compute summarizes jobs as of now. Every figure is derived from the same
// snapshot, so the counts are mutually consistent even though they are
// computed independently.
func Compute(jobs []domain.JobWithCompany, now time.Time, opts Options) domain.JobStatistics {
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	if opts.NewWindow <= 0 {
		opts.NewWindow = 7 * 24 * time.Hour
	}
	if len(opts.BucketBoundaries) == 0 {
		opts.BucketBoundaries = DefaultOptions().BucketBoundaries
	}

	total := len(jobs)

	// average of midpoint salaries over the postings that list both bounds;
	// 0 when none do, never NaN
	var salarySum float64
	var salaryN int
	for _, j := range jobs {
		if mid, ok := j.MidSalary(); ok {
			salarySum += mid
			salaryN++
		}
	}
	avgSalary := 0
	if salaryN > 0 {
		avgSalary = int(math.Round(salarySum / float64(salaryN)))
	}

	cutoff := now.Add(-opts.NewWindow)
	newJobs := 0
	for _, j := range jobs {
		if !j.PostedAt.Before(cutoff) {
			newJobs++
		}
	}

	companySet := make(map[int64]struct{}, len(jobs))
	for _, j := range jobs {
		companySet[j.CompanyID] = struct{}{}
	}

	var reqs, prefs counter
	for _, j := range jobs {
		for _, s := range j.Requirements {
			reqs.add(s)
		}
		for _, s := range j.PreferredSkills {
			prefs.add(s)
		}
	}

	var locs counter
	for _, j := range jobs {
		locs.add(j.Company.Location)
	}
	locationStats := make([]domain.LocationStat, 0, len(locs.order))
	for _, loc := range locs.ranked() {
		locationStats = append(locationStats, domain.LocationStat{Location: loc.key, Count: loc.n})
	}

	return domain.JobStatistics{
		TotalJobs:          total,
		AvgSalary:          avgSalary,
		NewJobs:            newJobs,
		Companies:          len(companySet),
		TopRequirements:    topSkills(reqs, total, opts.TopN),
		TopPreferredSkills: topSkills(prefs, total, opts.TopN),
		SalaryDistribution: salaryHistogram(jobs, opts.BucketBoundaries),
		LocationStats:      locationStats,
	}
}

// counter tallies exact strings and remembers first-encounter order so that
// equal counts rank deterministically. The filter stage matches skills
// fuzzily; ranking deliberately does not — exact strings keep the tables
// stable.
type counter struct {
	counts map[string]int
	order  []string
}

func (c *counter) add(s string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if c.counts[s] == 0 {
		c.order = append(c.order, s)
	}
	c.counts[s]++
}

type ranked struct {
	key string
	n   int
}

func (c *counter) ranked() []ranked {
	out := make([]ranked, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, ranked{key: k, n: c.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].n > out[j].n })
	return out
}

// Percentages are per-skill shares of the whole filtered set, computed
// independently; they are not normalized against each other.
func topSkills(c counter, total, n int) []domain.SkillStat {
	all := c.ranked()
	if len(all) > n {
		all = all[:n]
	}
	out := make([]domain.SkillStat, 0, len(all))
	for _, r := range all {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(r.n) / float64(total) * 100))
		}
		out = append(out, domain.SkillStat{Skill: r.key, Percentage: pct})
	}
	return out
}

// salaryHistogram buckets postings by midpoint salary over half-open ranges
// [lo, hi); the last bucket is open-ended. Postings lacking either bound are
// left out of every bucket — they still count toward totalJobs, so the bucket
// counts need not sum to the total.
func salaryHistogram(jobs []domain.JobWithCompany, bounds []int) []domain.SalaryBucket {
	out := make([]domain.SalaryBucket, len(bounds))
	for i, lo := range bounds {
		if i+1 < len(bounds) {
			out[i].Range = fmt.Sprintf("%d-%d", lo, bounds[i+1])
		} else {
			out[i].Range = fmt.Sprintf("%d+", lo)
		}
	}
	for _, j := range jobs {
		mid, ok := j.MidSalary()
		if !ok {
			continue
		}
		for i := len(bounds) - 1; i >= 0; i-- {
			if mid >= float64(bounds[i]) {
				out[i].Count++
				break
			}
		}
	}
	return out
}
