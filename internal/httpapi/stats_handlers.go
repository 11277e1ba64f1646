package httpapi

import (
	"net/http"
	"time"

	"joblens-engine/internal/filter"
	"joblens-engine/internal/stats"
)

type StatsHandler struct {
	Deps
}

// Get filters with the same criteria parsing as the jobs listing, then
// aggregates, so a UI calling both endpoints sees consistent numbers.
func (h StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	crit, err := ParseCriteria(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_criteria", err.Error())
		return
	}

	cfg := h.config()
	opts := stats.Options{
		TopN:             cfg.Stats.TopN,
		NewWindow:        time.Duration(cfg.Stats.NewWindowDays) * 24 * time.Hour,
		BucketBoundaries: cfg.Stats.SalaryBuckets,
	}

	jobs, companies := h.Store.Snapshot()
	start := time.Now()
	res := filter.Apply(jobs, companies, crit)
	summary := stats.Compute(res, h.now(), opts)
	observeFilter(time.Since(start))

	WriteJSON(w, http.StatusOK, summary)
}
