package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/api"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/auth"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/batch"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/cache"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/config"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/db"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle/translate"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.ExportPath, 0755)

	// Refuse to start a second instance against the same data directory
	lock := flock.New(filepath.Join(cfg.DataPath, "tool-ai-sub.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("Failed to acquire instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("Another instance is already using %s", cfg.DataPath)
	}
	defer lock.Unlock()

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Load settings, falling back to the database mirror
	store, err := settings.NewStore(cfg.SettingsPath, database)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Subtitle workspace and read-only media library
	workspace, err := storage.NewWorkspace(cfg.WorkspacePath)
	if err != nil {
		log.Fatalf("Failed to open workspace: %v", err)
	}
	library, err := storage.NewWorkspace(cfg.MediaPath)
	if err != nil {
		log.Fatalf("Failed to open media library: %v", err)
	}

	// Analysis cache shared by the API and batch runs
	var resultCache *cache.Cache
	if pc := store.Current().Performance.Cache; pc.Enabled {
		resultCache = cache.New(pc.MaxEntries, store.Current().CacheTTL())
	}

	// Job queue with batch and translation workers
	queue := job.NewQueue(database.DB())
	defer queue.Stop()

	batchService := &batch.JobService{
		Store:     store,
		Workspace: workspace,
		Cache:     resultCache,
		OutputDir: cfg.ExportPath,
	}
	queue.RegisterHandler(job.TypeBatch, batchService.HandleJob)
	queue.RegisterHandler(job.TypeTranslate, translate.NewService(store, workspace).HandleJob)

	// Watch mode: subtitles dropped into the watch directory are pulled
	// into the workspace and queued as batch jobs
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfg.WatchPath != "" {
		ingest := func(ctx context.Context, path string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			stored, err := workspace.StoreUpload(filepath.Base(path), data)
			if err != nil {
				return err
			}
			_, err = queue.Enqueue(job.TypeBatch, stored, job.BatchParams{
				Inputs: []string{stored},
				Format: store.Current().Export.DefaultFormat,
			})
			return err
		}
		watcher, err := batch.NewWatcher(cfg.WatchPath, ingest, 2)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", cfg.WatchPath, err)
		}
		go func() {
			if err := watcher.Start(watchCtx); err != nil && watchCtx.Err() == nil {
				log.Printf("[watch] stopped: %v", err)
			}
		}()
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Create router
	router := api.NewRouter(cfg, database, jwtService, store, queue, workspace, library, resultCache)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Workspace: %s", cfg.WorkspacePath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		stopWatch()
		queue.Stop()
		database.Close()
		lock.Unlock()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
