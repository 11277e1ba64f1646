package httpapi

import "net/http"

type HealthHandler struct {
	Deps
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	companies, jobs := h.Store.Counts()
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"companies": companies,
		"jobs":      jobs,
	})
}
