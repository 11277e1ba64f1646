package httpapi_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"joblens-engine/internal/config"
	"joblens-engine/internal/httpapi"
	"joblens-engine/internal/store"
)

func newConfigMux(t *testing.T) (*http.ServeMux, string, *atomic.Value) {
	t.Helper()

	var cfg config.Config
	cfg.App.Port = 38520
	cfg.API.RatePerSec = 20
	cfg.API.Burst = 40
	cfg.Stats.TopN = 10
	cfg.Stats.NewWindowDays = 7
	cfg.Stats.SalaryBuckets = []int{0, 3000, 5000, 8000, 10000}

	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	path := filepath.Join(t.TempDir(), "config.yml")
	mux := httpapi.NewMux(httpapi.Deps{
		Store:       store.New(nil),
		CfgVal:      &cfgVal,
		UserCfgPath: path,
	})
	return mux, path, &cfgVal
}

func TestConfigGet(t *testing.T) {
	mux, _, _ := newConfigMux(t)

	var cfg config.Config
	rec := doJSON(t, mux, http.MethodGet, "/config", "", &cfg)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /config: status %d", rec.Code)
	}
	if cfg.App.Port != 38520 || cfg.Stats.TopN != 10 {
		t.Errorf("GET /config returned %+v", cfg)
	}
}

func TestConfigPutPersistsAndSwaps(t *testing.T) {
	mux, path, cfgVal := newConfigMux(t)

	body := `{"App":{"Port":40000,"DataDir":""},
	          "API":{"RatePerSec":10,"Burst":20},
	          "Stats":{"TopN":5,"NewWindowDays":3,"SalaryBuckets":[0,4000,8000]},
	          "Catalog":{"SeedPath":""}}`
	rec := doJSON(t, mux, http.MethodPut, "/config", body, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /config: status %d, body %s", rec.Code, rec.Body.String())
	}

	// live value swapped
	live := cfgVal.Load().(config.Config)
	if live.App.Port != 40000 || live.Stats.TopN != 5 {
		t.Errorf("live config not swapped: %+v", live)
	}

	// and the file was written
	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load saved config: %v", err)
	}
	if saved.App.Port != 40000 {
		t.Errorf("saved config = %+v", saved.App)
	}
}

func TestConfigPutRejectsInvalid(t *testing.T) {
	mux, path, cfgVal := newConfigMux(t)

	body := `{"App":{"Port":0},"API":{"RatePerSec":0,"Burst":0},
	          "Stats":{"TopN":0,"NewWindowDays":0,"SalaryBuckets":[]}}`
	rec := doJSON(t, mux, http.MethodPut, "/config", body, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid PUT /config: status %d, want 400", rec.Code)
	}
	var e httpapi.APIError
	_ = json.Unmarshal(rec.Body.Bytes(), &e)
	if e.Error.Code != "invalid_config" {
		t.Errorf("error code = %q, want invalid_config", e.Error.Code)
	}

	// neither the file nor the live value changed
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("rejected config was written to disk")
	}
	live := cfgVal.Load().(config.Config)
	if live.App.Port != 38520 {
		t.Errorf("live config changed after rejected PUT: %+v", live)
	}
}

func TestConfigPath(t *testing.T) {
	mux, path, _ := newConfigMux(t)

	var out map[string]string
	rec := doJSON(t, mux, http.MethodGet, "/config/path", "", &out)
	if rec.Code != http.StatusOK || out["path"] != path {
		t.Errorf("GET /config/path = %d %v, want %s", rec.Code, out, path)
	}
}
