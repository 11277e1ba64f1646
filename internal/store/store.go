package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"joblens-engine/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrUnknownCompany rejects postings whose companyId does not resolve.
	// Dangling references are a data-integrity violation caught at insert
	// time, never at query time.
	ErrUnknownCompany = errors.New("unknown company")
)

// Persister receives write-through copies of catalog mutations. The memory
// store stays the authoritative query path; a nil Persister is valid and
// keeps the store purely in-memory (tests run that way).
type Persister interface {
	SaveCompany(domain.Company) error
	SaveJob(domain.JobPosting) error
	SetJobActive(id int64, active bool) error
	SetJobViews(id int64, views int64) error
}

// Store owns the Company and JobPosting records. All access goes through the
// RWMutex: mutations take the write lock, queries copy what they need under
// the read lock and work on the copies afterwards.
type Store struct {
	mu        sync.RWMutex
	companies map[int64]domain.Company
	jobs      map[int64]domain.JobPosting

	// insertion order, so listings and filter results are order-stable
	companyOrder []int64
	jobOrder     []int64

	nextCompanyID int64
	nextJobID     int64

	persist Persister
}

func New(p Persister) *Store {
	return &Store{
		companies:     make(map[int64]domain.Company),
		jobs:          make(map[int64]domain.JobPosting),
		nextCompanyID: 1,
		nextJobID:     1,
		persist:       p,
	}
}

func (s *Store) InsertCompany(c domain.Company) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// persist first: a failed insert must leave the store untouched,
	// including the id counter
	c.ID = s.nextCompanyID
	if s.persist != nil {
		if err := s.persist.SaveCompany(c); err != nil {
			return domain.Company{}, fmt.Errorf("persist company: %w", err)
		}
	}

	s.nextCompanyID++
	s.companies[c.ID] = c
	s.companyOrder = append(s.companyOrder, c.ID)
	return c, nil
}

func (s *Store) InsertJob(j domain.JobPosting) (domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[j.CompanyID]; !ok {
		return domain.JobPosting{}, fmt.Errorf("insert job %q: company %d: %w", j.Title, j.CompanyID, ErrUnknownCompany)
	}

	j.ID = s.nextJobID
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}
	j.ViewCount = 0
	if s.persist != nil {
		if err := s.persist.SaveJob(j); err != nil {
			return domain.JobPosting{}, fmt.Errorf("persist job: %w", err)
		}
	}

	s.nextJobID++
	s.jobs[j.ID] = j
	s.jobOrder = append(s.jobOrder, j.ID)
	return j, nil
}

func (s *Store) Company(id int64) (domain.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return domain.Company{}, ErrNotFound
	}
	return c, nil
}

func (s *Store) Companies() []domain.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Company, 0, len(s.companyOrder))
	for _, id := range s.companyOrder {
		out = append(out, s.companies[id])
	}
	return out
}

func (s *Store) Job(id int64) (domain.JobWithCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return domain.JobWithCompany{}, ErrNotFound
	}
	c, ok := s.companies[j.CompanyID]
	if !ok {
		// cannot happen after the insert-time check; treat like a miss
		return domain.JobWithCompany{}, ErrNotFound
	}
	return domain.JobWithCompany{JobPosting: j, Company: &c}, nil
}

// Snapshot returns the full unfiltered posting list in insertion order plus a
// company lookup map. Both are copies, so the filter engine and aggregator
// run on them without holding any lock.
func (s *Store) Snapshot() ([]domain.JobPosting, map[int64]*domain.Company) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]domain.JobPosting, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		jobs = append(jobs, s.jobs[id])
	}
	companies := make(map[int64]*domain.Company, len(s.companies))
	for id, c := range s.companies {
		cc := c
		companies[id] = &cc
	}
	return jobs, companies
}

// SetActive toggles the soft-delete flag. Inactive postings stay in the store
// but are excluded from every filter result.
func (s *Store) SetActive(id int64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	if s.persist != nil {
		if err := s.persist.SetJobActive(id, active); err != nil {
			return fmt.Errorf("persist active flag: %w", err)
		}
	}
	j.IsActive = active
	s.jobs[id] = j
	return nil
}

// IncrementViews bumps the detail-view counter and returns the new value.
func (s *Store) IncrementViews(id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return 0, ErrNotFound
	}
	if s.persist != nil {
		if err := s.persist.SetJobViews(id, j.ViewCount+1); err != nil {
			return 0, fmt.Errorf("persist view count: %w", err)
		}
	}
	j.ViewCount++
	s.jobs[id] = j
	return j.ViewCount, nil
}

// Hydrate loads previously persisted records, keeping their ids, and advances
// the id counters past them. It does not write back through the Persister.
func (s *Store) Hydrate(companies []domain.Company, jobs []domain.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range companies {
		if _, dup := s.companies[c.ID]; dup {
			return fmt.Errorf("hydrate: duplicate company id %d", c.ID)
		}
		s.companies[c.ID] = c
		s.companyOrder = append(s.companyOrder, c.ID)
		if c.ID >= s.nextCompanyID {
			s.nextCompanyID = c.ID + 1
		}
	}
	for _, j := range jobs {
		if _, ok := s.companies[j.CompanyID]; !ok {
			return fmt.Errorf("hydrate: job %d: company %d: %w", j.ID, j.CompanyID, ErrUnknownCompany)
		}
		if _, dup := s.jobs[j.ID]; dup {
			return fmt.Errorf("hydrate: duplicate job id %d", j.ID)
		}
		s.jobs[j.ID] = j
		s.jobOrder = append(s.jobOrder, j.ID)
		if j.ID >= s.nextJobID {
			s.nextJobID = j.ID + 1
		}
	}
	return nil
}

func (s *Store) Counts() (companies, jobs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.companies), len(s.jobs)
}
