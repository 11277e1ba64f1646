package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"joblens-engine/internal/ingest"
)

type CompaniesHandler struct {
	Deps
}

func (h CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Store.Companies())
}

func (h CompaniesHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, rest, err := companyPath(r.URL.Path)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid company id")
		return
	}
	if rest != "" {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown path")
		return
	}

	co, err := h.Store.Company(id)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "company not found")
		return
	}
	WriteJSON(w, http.StatusOK, co)
}

// Import parses a saved careers-page HTML export posted as the request body
// and inserts the postings it finds under /api/companies/{id}/import.
func (h CompaniesHandler) Import(w http.ResponseWriter, r *http.Request) {
	id, rest, err := companyPath(r.URL.Path)
	if err != nil || rest != "import" {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown path")
		return
	}

	if _, err := h.Store.Company(id); err != nil {
		WriteError(w, r, http.StatusNotFound, "not_found", "company not found")
		return
	}

	postings, err := ingest.ParseCareersHTML(http.MaxBytesReader(w, r.Body, 4<<20), id)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	imported := 0
	for _, p := range postings {
		if _, err := h.Store.InsertJob(p); err != nil {
			WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		imported++
		jobsCreated.Inc()
	}
	WriteJSON(w, http.StatusOK, map[string]any{"imported": imported})
}

// companyPath splits /api/companies/{id}[/rest...] into id and the remainder.
func companyPath(path string) (int64, string, error) {
	tail := strings.TrimPrefix(path, "/api/companies/")
	idStr, rest, _ := strings.Cut(tail, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", strconv.ErrSyntax
	}
	return id, rest, nil
}
