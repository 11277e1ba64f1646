package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"joblens-engine/internal/domain"
	"joblens-engine/internal/store"
)

func intp(v int) *int { return &v }

func openCatalog(t *testing.T, dir string) *store.Catalog {
	t.Helper()
	cat, err := store.OpenCatalog(filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("OpenCatalog: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func TestCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cat := openCatalog(t, dir)

	s := store.New(cat)
	c, err := s.InsertCompany(domain.Company{
		Name: "페이코프", Industry: "핀테크", Location: "판교",
		Culture: []string{"수평문화"},
	})
	if err != nil {
		t.Fatalf("InsertCompany: %v", err)
	}

	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	j, err := s.InsertJob(domain.JobPosting{
		CompanyID:    c.ID,
		Title:        "백엔드 개발자",
		Requirements: []string{"Java", "Spring"},
		SalaryMin:    intp(4000), SalaryMax: intp(6000),
		ExperienceLevel: "junior", EmploymentType: "full-time",
		Deadline: &deadline, IsActive: true,
	})
	if err != nil {
		t.Fatalf("InsertJob: %v", err)
	}
	if err := s.SetActive(j.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, err := s.IncrementViews(j.ID); err != nil {
		t.Fatalf("IncrementViews: %v", err)
	}
	_ = cat.Close()

	// a fresh open sees everything the first process wrote
	cat2 := openCatalog(t, dir)
	companies, jobs, err := cat2.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(companies) != 1 || len(jobs) != 1 {
		t.Fatalf("loaded %d companies / %d jobs, want 1/1", len(companies), len(jobs))
	}

	gc := companies[0]
	if gc.ID != c.ID || gc.Name != "페이코프" || len(gc.Culture) != 1 {
		t.Errorf("company round trip = %+v", gc)
	}

	gj := jobs[0]
	if gj.ID != j.ID || gj.Title != "백엔드 개발자" {
		t.Errorf("job round trip = %+v", gj)
	}
	if len(gj.Requirements) != 2 || gj.Requirements[1] != "Spring" {
		t.Errorf("requirements = %v", gj.Requirements)
	}
	if gj.SalaryMin == nil || *gj.SalaryMin != 4000 {
		t.Errorf("salaryMin = %v", gj.SalaryMin)
	}
	if gj.IsActive {
		t.Errorf("active flag update not persisted")
	}
	if gj.ViewCount != 1 {
		t.Errorf("viewCount = %d, want 1", gj.ViewCount)
	}
	if gj.Deadline == nil || !gj.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", gj.Deadline, deadline)
	}

	// and a memory store hydrates from it cleanly
	s2 := store.New(nil)
	if err := s2.Hydrate(companies, jobs); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	got, err := s2.Job(j.ID)
	if err != nil {
		t.Fatalf("Job after hydrate: %v", err)
	}
	if got.Company.Name != "페이코프" {
		t.Errorf("hydrated store lost the company join")
	}
}

func TestCatalogNullSalary(t *testing.T) {
	dir := t.TempDir()
	cat := openCatalog(t, dir)

	s := store.New(cat)
	c, _ := s.InsertCompany(domain.Company{Name: "A", Industry: "IT", Location: "서울"})
	if _, err := s.InsertJob(domain.JobPosting{CompanyID: c.ID, Title: "x", IsActive: true}); err != nil {
		t.Fatalf("InsertJob: %v", err)
	}

	_, jobs, err := cat.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if jobs[0].SalaryMin != nil || jobs[0].SalaryMax != nil || jobs[0].Deadline != nil {
		t.Errorf("unlisted fields must load back as nil: %+v", jobs[0])
	}
}

// corrupt rewrites one column of the single seeded row behind the catalog's
// back.
func corrupt(t *testing.T, dir, stmt string) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(dir, "catalog.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(stmt); err != nil {
		t.Fatalf("corrupt row: %v", err)
	}
}

func TestCatalogLoadRejectsCorruptColumns(t *testing.T) {
	cases := []struct {
		name string
		stmt string
		want string
	}{
		{"culture", `UPDATE companies SET culture = 'not json'`, "culture column"},
		{"requirements", `UPDATE jobs SET requirements = '{'`, "requirements column"},
		{"preferred skills", `UPDATE jobs SET preferred_skills = 'x'`, "preferred_skills column"},
		{"posted at", `UPDATE jobs SET posted_at = 'yesterday'`, "posted_at column"},
		{"deadline", `UPDATE jobs SET deadline = '31-12-2025'`, "deadline column"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			cat := openCatalog(t, dir)
			s := store.New(cat)
			c, _ := s.InsertCompany(domain.Company{Name: "A", Industry: "IT", Location: "서울"})
			if _, err := s.InsertJob(domain.JobPosting{CompanyID: c.ID, Title: "x", IsActive: true}); err != nil {
				t.Fatalf("InsertJob: %v", err)
			}
			_ = cat.Close()

			corrupt(t, dir, tc.stmt)

			cat2 := openCatalog(t, dir)
			_, _, err := cat2.LoadAll(context.Background())
			if err == nil {
				t.Fatalf("LoadAll accepted a corrupt %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not name the bad column %q", err, tc.want)
			}
		})
	}
}

func TestCatalogMigrateIdempotent(t *testing.T) {
	dir := t.TempDir()
	cat := openCatalog(t, dir)
	_ = cat.Close()

	// reopening runs migrate again against user_version=1
	cat2 := openCatalog(t, dir)
	if _, _, err := cat2.LoadAll(context.Background()); err != nil {
		t.Errorf("LoadAll after reopen: %v", err)
	}
}
