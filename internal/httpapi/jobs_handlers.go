package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"joblens-engine/internal/domain"
	"joblens-engine/internal/filter"
	"joblens-engine/internal/store"
)

type JobsHandler struct {
	Deps
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_criteria", err.Error())
		return
	}

	jobs, companies := h.Store.Snapshot()
	start := time.Now()
	res := filter.Apply(jobs, companies, crit)
	observeFilter(time.Since(start))

	WriteJSON(w, http.StatusOK, res)
}

// GetByPath serves /api/jobs/{id} and counts the detail view.
func (h JobsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid job id")
		return
	}

	job, err := h.Store.Job(id)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "job posting not found")
		return
	}

	views, err := h.Store.IncrementViews(id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	job.ViewCount = views
	jobViews.Inc()

	WriteJSON(w, http.StatusOK, job)
}

// DeleteByPath soft-deletes: the posting stays in the store but stops
// matching every query.
func (h JobsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid job id")
		return
	}

	if err := h.Store.SetActive(id, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "job posting not found")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
}

type createJobRequest struct {
	CompanyID       int64      `json:"companyId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Requirements    []string   `json:"requirements"`
	PreferredSkills []string   `json:"preferredSkills"`
	SalaryMin       *int       `json:"salaryMin"`
	SalaryMax       *int       `json:"salaryMax"`
	ExperienceLevel string     `json:"experienceLevel"`
	EmploymentType  string     `json:"employmentType"`
	IsRemote        bool       `json:"isRemote"`
	Deadline        *time.Time `json:"deadline"`
	IsActive        *bool      `json:"isActive"` // defaults to true
}

func (h JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "malformed json body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "title is required")
		return
	}
	if req.CompanyID <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "companyId is required")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	job, err := h.Store.InsertJob(domain.JobPosting{
		CompanyID:       req.CompanyID,
		Title:           req.Title,
		Description:     req.Description,
		Requirements:    req.Requirements,
		PreferredSkills: req.PreferredSkills,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		ExperienceLevel: req.ExperienceLevel,
		EmploymentType:  req.EmploymentType,
		IsRemote:        req.IsRemote,
		Deadline:        req.Deadline,
		IsActive:        active,
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownCompany) {
			WriteError(w, r, http.StatusBadRequest, "unknown_company", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	jobsCreated.Inc()

	WriteJSON(w, http.StatusCreated, job)
}

// CategoriesSearch backs the title autocomplete: distinct active posting
// titles containing q, capped at 10.
func (h JobsHandler) CategoriesSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_query", "query parameter 'q' is required")
		return
	}
	qLow := strings.ToLower(q)

	jobs, _ := h.Store.Snapshot()
	seen := make(map[string]bool)
	out := make([]string, 0, 10)
	for _, j := range jobs {
		if !j.IsActive || seen[j.Title] {
			continue
		}
		if strings.Contains(strings.ToLower(j.Title), qLow) {
			seen[j.Title] = true
			out = append(out, j.Title)
			if len(out) == 10 {
				break
			}
		}
	}
	WriteJSON(w, http.StatusOK, out)
}
