package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rsift/app/api"
	"rsift/app/cfg"
	"rsift/app/config"
	"rsift/app/feed"
	"rsift/app/watcher"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if appCfg.ShowVersion {
		fmt.Printf("rsift %s\n", appCfg.Version)
		return
	}

	inputPath := appCfg.InputPath
	outputPath := appCfg.OutputPath
	category := appCfg.Category

	if appCfg.Profile != "" {
		profile, err := config.NewLoader(appCfg.Profile).Load()
		if err != nil {
			slog.Error("Failed to load job profile", "profile", appCfg.Profile, "error", err)
			os.Exit(1)
		}
		inputPath = profile.Feed.Input
		outputPath = profile.Feed.Output
		category = profile.Filter.Category
		slog.Info("Job profile loaded", "profile", appCfg.Profile)
	}

	processor := feed.NewProcessor(feed.NewParser(), feed.NewFilterer(category),
		feed.NewGenerator(), inputPath, outputPath)

	if err := processor.Run(); err != nil {
		slog.Error("Filtering failed", "error", err)
		os.Exit(1)
	}

	if !appCfg.Watch && !appCfg.Serve {
		return
	}

	if appCfg.Watch {
		fileWatcher, err := watcher.NewWatcher(processor)
		if err != nil {
			slog.Error("Failed to start watcher", "error", err)
			os.Exit(1)
		}
		fileWatcher.Start()
		defer fileWatcher.Stop()
	}

	var httpServer *http.Server
	serverErrChan := make(chan error, 1)

	if appCfg.Serve {
		handler := api.NewHandler(processor)
		server := api.NewServer(handler)

		httpServer = &http.Server{
			Addr:         ":" + appCfg.Port,
			Handler:      server,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			slog.Info("Starting HTTP server", "port", appCfg.Port)
			slog.Info("Preview endpoints available",
				"feed", fmt.Sprintf("http://localhost:%s/feed", appCfg.Port),
				"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
			}
		}()
	}

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	// Watcher is stopped via defer
	slog.Info("Shutdown complete")
}
