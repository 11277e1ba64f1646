package httpapi

import (
	"encoding/json"
	"net/http"

	"joblens-engine/internal/config"
)

type ConfigHandler struct {
	Deps
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.config())
}

// Put validates the submitted config, persists it atomically and swaps the
// live value; in-flight requests keep the snapshot they loaded.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&cfg); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_body", "malformed json body")
		return
	}

	if err := config.SaveAtomic(h.UserCfgPath, cfg); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}
	h.CfgVal.Store(cfg)

	WriteJSON(w, http.StatusOK, cfg)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"path": h.UserCfgPath})
}
