package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"joblens-engine/internal/config"
	"joblens-engine/internal/httpapi"
	"joblens-engine/internal/seed"
	"joblens-engine/internal/store"
)

func main() {
	// Engine data dir: env if provided, else local folder.
	dataDir := os.Getenv("JOBLENS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// one engine per data dir; protects the sqlite file
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	catalog, err := store.OpenCatalog(filepath.Join(dataDir, "joblens.db"))
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	defer catalog.Close()

	st := store.New(catalog)
	companies, jobs, err := catalog.LoadAll(context.Background())
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	if err := st.Hydrate(companies, jobs); err != nil {
		log.Fatalf("hydrate store: %v", err)
	}

	if nc, nj := st.Counts(); nc == 0 && nj == 0 && cfg.Catalog.SeedPath != "" {
		sc, sj, err := seed.Apply(st, cfg.Catalog.SeedPath)
		if err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		log.Printf("level=info msg=\"seeded catalog\" companies=%d jobs=%d", sc, sj)
	}

	deps := httpapi.Deps{
		Store:       st,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Now:         time.Now,
	}

	limiter := httpapi.NewClientLimiter(cfg.API.RatePerSec, cfg.API.Burst)
	handler := httpapi.Chain(httpapi.NewMux(deps),
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.Metrics,
		httpapi.AccessLog,
		httpapi.RateLimit(limiter),
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("level=info msg=\"engine listening\" addr=http://%s data_dir=%s", addr, dataDir)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("level=info msg=\"engine stopped\"")
}
