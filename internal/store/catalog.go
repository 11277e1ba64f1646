package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"joblens-engine/internal/domain"
)

// Catalog is the sqlite write-through layer behind the memory store. It only
// loads at boot and mirrors mutations; queries never touch it.
type Catalog struct {
	db *sql.DB
}

func OpenCatalog(path string) (*Catalog, error) {
	// modernc sqlite DSN; busy_timeout covers the rare concurrent open
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // single writer, which is all sqlite wants
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("catalog migrate: %w", err)
	}
	return c, nil
}

func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Catalog) migrate() error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS companies (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  industry TEXT NOT NULL,
  location TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  latitude TEXT NOT NULL DEFAULT '',
  longitude TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  website TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  culture TEXT NOT NULL DEFAULT '[]'
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY,
  company_id INTEGER NOT NULL REFERENCES companies(id),
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  requirements TEXT NOT NULL DEFAULT '[]',
  preferred_skills TEXT NOT NULL DEFAULT '[]',
  salary_min INTEGER,
  salary_max INTEGER,
  experience_level TEXT NOT NULL DEFAULT '',
  employment_type TEXT NOT NULL DEFAULT '',
  is_remote INTEGER NOT NULL DEFAULT 0,
  posted_at TEXT NOT NULL,
  deadline TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  view_count INTEGER NOT NULL DEFAULT 0
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs(posted_at);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadAll reads the persisted catalog for hydrating a fresh memory store.
func (c *Catalog) LoadAll(ctx context.Context) ([]domain.Company, []domain.JobPosting, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, name, industry, location, address, latitude, longitude, description, website, size, culture
FROM companies ORDER BY id;`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var co domain.Company
		var cultureJSON string
		if err := rows.Scan(
			&co.ID, &co.Name, &co.Industry, &co.Location, &co.Address,
			&co.Latitude, &co.Longitude, &co.Description, &co.Website, &co.Size,
			&cultureJSON,
		); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(cultureJSON), &co.Culture); err != nil {
			return nil, nil, fmt.Errorf("company %d: culture column: %w", co.ID, err)
		}
		companies = append(companies, co)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	jrows, err := c.db.QueryContext(ctx, `
SELECT id, company_id, title, description, requirements, preferred_skills,
       salary_min, salary_max, experience_level, employment_type, is_remote,
       posted_at, deadline, is_active, view_count
FROM jobs ORDER BY id;`)
	if err != nil {
		return nil, nil, err
	}
	defer jrows.Close()

	var jobs []domain.JobPosting
	for jrows.Next() {
		var j domain.JobPosting
		var reqJSON, prefJSON, postedStr string
		var salaryMin, salaryMax sql.NullInt64
		var deadline sql.NullString
		var remote, active int
		if err := jrows.Scan(
			&j.ID, &j.CompanyID, &j.Title, &j.Description, &reqJSON, &prefJSON,
			&salaryMin, &salaryMax, &j.ExperienceLevel, &j.EmploymentType, &remote,
			&postedStr, &deadline, &active, &j.ViewCount,
		); err != nil {
			return nil, nil, err
		}
		if err := json.Unmarshal([]byte(reqJSON), &j.Requirements); err != nil {
			return nil, nil, fmt.Errorf("job %d: requirements column: %w", j.ID, err)
		}
		if err := json.Unmarshal([]byte(prefJSON), &j.PreferredSkills); err != nil {
			return nil, nil, fmt.Errorf("job %d: preferred_skills column: %w", j.ID, err)
		}
		if salaryMin.Valid {
			v := int(salaryMin.Int64)
			j.SalaryMin = &v
		}
		if salaryMax.Valid {
			v := int(salaryMax.Int64)
			j.SalaryMax = &v
		}
		j.IsRemote = remote != 0
		j.IsActive = active != 0
		if j.PostedAt, err = time.Parse(time.RFC3339, postedStr); err != nil {
			return nil, nil, fmt.Errorf("job %d: posted_at column: %w", j.ID, err)
		}
		if deadline.Valid && deadline.String != "" {
			t, err := time.Parse(time.RFC3339, deadline.String)
			if err != nil {
				return nil, nil, fmt.Errorf("job %d: deadline column: %w", j.ID, err)
			}
			j.Deadline = &t
		}
		jobs = append(jobs, j)
	}
	if err := jrows.Err(); err != nil {
		return nil, nil, err
	}
	return companies, jobs, nil
}

func (c *Catalog) SaveCompany(co domain.Company) error {
	cultureB, _ := json.Marshal(co.Culture)
	_, err := c.db.Exec(`
INSERT INTO companies(id, name, industry, location, address, latitude, longitude, description, website, size, culture)
VALUES(?,?,?,?,?,?,?,?,?,?,?);`,
		co.ID, co.Name, co.Industry, co.Location, co.Address,
		co.Latitude, co.Longitude, co.Description, co.Website, co.Size,
		string(cultureB))
	return err
}

func (c *Catalog) SaveJob(j domain.JobPosting) error {
	reqB, _ := json.Marshal(j.Requirements)
	prefB, _ := json.Marshal(j.PreferredSkills)

	var salaryMin, salaryMax any
	if j.SalaryMin != nil {
		salaryMin = *j.SalaryMin
	}
	if j.SalaryMax != nil {
		salaryMax = *j.SalaryMax
	}
	var deadline any
	if j.Deadline != nil {
		deadline = j.Deadline.UTC().Format(time.RFC3339)
	}

	_, err := c.db.Exec(`
INSERT INTO jobs(id, company_id, title, description, requirements, preferred_skills,
                 salary_min, salary_max, experience_level, employment_type, is_remote,
                 posted_at, deadline, is_active, view_count)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		j.ID, j.CompanyID, j.Title, j.Description, string(reqB), string(prefB),
		salaryMin, salaryMax, j.ExperienceLevel, j.EmploymentType, boolToInt(j.IsRemote),
		j.PostedAt.UTC().Format(time.RFC3339), deadline, boolToInt(j.IsActive), j.ViewCount)
	return err
}

func (c *Catalog) SetJobActive(id int64, active bool) error {
	_, err := c.db.Exec(`UPDATE jobs SET is_active = ? WHERE id = ?;`, boolToInt(active), id)
	return err
}

func (c *Catalog) SetJobViews(id int64, views int64) error {
	_, err := c.db.Exec(`UPDATE jobs SET view_count = ? WHERE id = ?;`, views, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
