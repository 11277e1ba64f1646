// Package ingest turns a saved careers-page HTML export into postings for one
// company. Pages differ wildly, so parsing is heuristic: take what the markup
// gives and leave the rest unset.
package ingest

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"joblens-engine/internal/domain"
)

var salaryRe = regexp.MustCompile(`([\d,]+)\s*[-~–]\s*([\d,]+)`)

// ParseCareersHTML extracts postings from r. Cards are matched loosely
// (.job-posting, .job, li.opening); a card without a recognizable title is
// skipped. Every parsed posting gets companyID, the current timestamp and an
// active flag — insertion into the store validates the company reference.
func ParseCareersHTML(r io.Reader, companyID int64) ([]domain.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse careers html: %w", err)
	}

	now := time.Now().UTC()
	var out []domain.JobPosting

	doc.Find(".job-posting, .job, li.opening").Each(func(_ int, card *goquery.Selection) {
		title := cleanText(card.Find(".title, h2, h3").First().Text())
		if title == "" {
			// some exports wrap the whole card in an anchor
			title = cleanText(card.Find("a").First().Text())
		}
		if title == "" {
			return
		}

		j := domain.JobPosting{
			CompanyID:   companyID,
			Title:       title,
			Description: cleanText(card.Find(".description, p").First().Text()),
			IsActive:    true,
			PostedAt:    now,
		}

		j.Requirements = splitList(card.Find(".requirements, .skills").First().Text())
		j.PreferredSkills = splitList(card.Find(".preferred").First().Text())

		if min, max, ok := parseSalaryRange(card.Find(".salary").First().Text()); ok {
			j.SalaryMin = &min
			j.SalaryMax = &max
		}

		if v, ok := card.Attr("data-experience"); ok {
			j.ExperienceLevel = strings.TrimSpace(v)
		}
		if v, ok := card.Attr("data-employment"); ok {
			j.EmploymentType = strings.TrimSpace(v)
		}
		if v, ok := card.Attr("data-remote"); ok {
			j.IsRemote = v == "true" || v == "1"
		} else {
			// fall back to the same keyword sniff boards themselves use
			low := strings.ToLower(title + " " + j.Description)
			j.IsRemote = strings.Contains(low, "remote") || strings.Contains(low, "재택")
		}

		out = append(out, j)
	})

	return out, nil
}

func parseSalaryRange(s string) (min, max int, ok bool) {
	m := salaryRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	min, err1 := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	max, err2 := strconv.Atoi(strings.ReplaceAll(m[2], ",", ""))
	if err1 != nil || err2 != nil || min > max {
		return 0, 0, false
	}
	return min, max, true
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := cleanText(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
