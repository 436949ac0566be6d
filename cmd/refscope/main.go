package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/refscope/refscope/internal/config"
	"github.com/refscope/refscope/internal/logging"
	"github.com/refscope/refscope/internal/server"
)

func main() {
	var (
		configPath     = flag.String("config", "", "Path to a YAML config file")
		workspaceRoot  = flag.String("workspace-root", "", "Root directory of the workspace")
		logLevel       = flag.String("log-level", "", "Log level (debug, info, warn, error)")
		logFormat      = flag.String("log-format", "", "Log format (text, json)")
		forceReparse   = flag.Bool("force-reparse", true, "Reparse the translation unit on every search to pick up unsaved edits")
		watchWorkspace = flag.Bool("watch", true, "Invalidate cached translation units when files change on disk")
	)
	flag.Parse()

	// .env values feed the REFSCOPE_* overrides applied by config.Load
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// explicit flags win over the config file and the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workspace-root":
			cfg.WorkspaceRoot = *workspaceRoot
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "force-reparse":
			cfg.ForceReparse = *forceReparse
		case "watch":
			cfg.WatchWorkspace = *watchWorkspace
		}
	})

	logging.Init(cfg.LogLevel, cfg.LogFormat)

	if stat, err := os.Stat(cfg.WorkspaceRoot); err != nil || !stat.IsDir() {
		log.Fatalf("Invalid workspace root: %s", cfg.WorkspaceRoot)
	}
	if absPath, err := filepath.Abs(cfg.WorkspaceRoot); err == nil {
		cfg.WorkspaceRoot = absPath
	}

	srv, err := server.NewRefscopeServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx := context.Background()
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
