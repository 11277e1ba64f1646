// Package seed loads the demo catalog shipped with the engine. The store is
// constructed empty and seeded explicitly at process start; nothing happens
// at package-load time, so tests get a fresh store each.
package seed

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"joblens-engine/internal/domain"
	"joblens-engine/internal/store"
)

type File struct {
	Companies []Company `yaml:"companies"`
	Jobs      []Job     `yaml:"jobs"`
}

type Company struct {
	Name        string   `yaml:"name"`
	Industry    string   `yaml:"industry"`
	Location    string   `yaml:"location"`
	Address     string   `yaml:"address"`
	Latitude    string   `yaml:"latitude"`
	Longitude   string   `yaml:"longitude"`
	Description string   `yaml:"description"`
	Website     string   `yaml:"website"`
	Size        string   `yaml:"size"`
	Culture     []string `yaml:"culture"`
}

type Job struct {
	Company         string   `yaml:"company"` // references a company by name
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Requirements    []string `yaml:"requirements"`
	PreferredSkills []string `yaml:"preferred_skills"`
	SalaryMin       *int     `yaml:"salary_min"`
	SalaryMax       *int     `yaml:"salary_max"`
	ExperienceLevel string   `yaml:"experience_level"`
	EmploymentType  string   `yaml:"employment_type"`
	Remote          bool     `yaml:"remote"`
	Deadline        string   `yaml:"deadline"` // YYYY-MM-DD, optional
}

// Apply reads the yaml catalog at path and inserts it into the store.
// Postings are stamped with the current time so the demo data always shows up
// in the new-postings window.
func Apply(st *store.Store, path string) (companies, jobs int, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return 0, 0, fmt.Errorf("seed catalog %s: %w", path, err)
	}

	idByName := make(map[string]int64, len(f.Companies))
	for _, sc := range f.Companies {
		co, err := st.InsertCompany(domain.Company{
			Name:        sc.Name,
			Industry:    sc.Industry,
			Location:    sc.Location,
			Address:     sc.Address,
			Latitude:    sc.Latitude,
			Longitude:   sc.Longitude,
			Description: sc.Description,
			Website:     sc.Website,
			Size:        sc.Size,
			Culture:     sc.Culture,
		})
		if err != nil {
			return companies, jobs, err
		}
		idByName[co.Name] = co.ID
		companies++
	}

	now := time.Now().UTC()
	for _, sj := range f.Jobs {
		companyID, ok := idByName[sj.Company]
		if !ok {
			return companies, jobs, fmt.Errorf("seed job %q: unknown company %q", sj.Title, sj.Company)
		}

		var deadline *time.Time
		if sj.Deadline != "" {
			t, err := time.Parse("2006-01-02", sj.Deadline)
			if err != nil {
				return companies, jobs, fmt.Errorf("seed job %q: deadline: %w", sj.Title, err)
			}
			deadline = &t
		}

		if _, err := st.InsertJob(domain.JobPosting{
			CompanyID:       companyID,
			Title:           sj.Title,
			Description:     sj.Description,
			Requirements:    sj.Requirements,
			PreferredSkills: sj.PreferredSkills,
			SalaryMin:       sj.SalaryMin,
			SalaryMax:       sj.SalaryMax,
			ExperienceLevel: sj.ExperienceLevel,
			EmploymentType:  sj.EmploymentType,
			IsRemote:        sj.Remote,
			PostedAt:        now,
			Deadline:        deadline,
			IsActive:        true,
		}); err != nil {
			return companies, jobs, err
		}
		jobs++
	}
	return companies, jobs, nil
}
