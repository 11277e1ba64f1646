package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	jh := JobsHandler{Deps: d}
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	// registered before the /api/jobs/ subtree so it wins the match
	mux.HandleFunc("/api/jobs/categories/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.CategoriesSearch,
	}))
	mux.HandleFunc("/api/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    jh.GetByPath,
		http.MethodDelete: jh.DeleteByPath,
	}))

	ch := CompaniesHandler{Deps: d}
	mux.HandleFunc("/api/companies", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.List,
	}))
	mux.HandleFunc("/api/companies/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ch.GetByPath,
		http.MethodPost: ch.Import, // /api/companies/{id}/import
	}))

	sh := StatsHandler{Deps: d}
	mux.HandleFunc("/api/statistics", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))

	cfgh := ConfigHandler{Deps: d}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Get,
		http.MethodPut: cfgh.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgh.Path,
	}))

	hh := HealthHandler{Deps: d}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
