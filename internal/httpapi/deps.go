package httpapi

import (
	"sync/atomic"
	"time"

	"joblens-engine/internal/config"
	"joblens-engine/internal/store"
)

type Deps struct {
	Store *store.Store

	// Atomic store for the live config (PUT /config swaps it)
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Evaluation clock; injected so the statistics window is testable
	Now func() time.Time
}

func (d Deps) config() config.Config {
	if d.CfgVal != nil {
		if cfg, ok := d.CfgVal.Load().(config.Config); ok {
			return cfg
		}
	}
	return config.Config{}
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
