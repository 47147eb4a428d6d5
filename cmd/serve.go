package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/balqony-sitraalu/studio/internal/contact"
	"github.com/balqony-sitraalu/studio/internal/content"
	"github.com/balqony-sitraalu/studio/internal/handlers"
	"github.com/balqony-sitraalu/studio/internal/media"
	"github.com/balqony-sitraalu/studio/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the studio website",
		Long: `Starts the studio website on the configured port.

Pages are rendered from the content file given by content.path, or from the
bundled content when none is set. With content.watch enabled, edits to the
file are picked up without a restart.`,
		Example: `  # Start server on default port 8888
  studio serve

  # Start server on custom port with a content file
  STUDIO_CONTENT_PATH=./site.yaml studio serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			store, err := content.NewStore(cfg.Content.Path)
			if err != nil {
				return fmt.Errorf("failed to load content: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			if cfg.Content.Watch && store.Path() != "" {
				go func() {
					if err := store.Watch(ctx); err != nil {
						slog.Error("Content watcher stopped", "err", err)
					}
				}()
			}

			submitter := contact.NewHTTPSubmitter(cfg.Contact.Endpoint, cfg.Contact.Timeout)
			if !submitter.Configured() {
				slog.Warn("Contact endpoint not configured; the form will ask visitors to email instead")
			}
			visitors := storage.New(cfg.Reveal.Threshold, func() *contact.Form {
				return contact.NewForm(submitter, cfg.Contact.ResetAfter)
			})
			go sweepVisitors(ctx, visitors, cfg.Server.VisitorTTL)

			thumbnails := media.NewThumbnailer(cfg.Server.PublicDir, cfg.Server.CacheDir)
			if err := thumbnails.EnsureCacheDir(); err != nil {
				return err
			}

			handler := handlers.New(handlers.Options{
				Content:         store,
				Visitors:        visitors,
				Thumbnails:      thumbnails,
				PublicDir:       cfg.Server.PublicDir,
				VisitorTTL:      cfg.Server.VisitorTTL,
				HeroSeed:        cfg.Hero.Seed,
				HeroHold:        cfg.Hero.Hold,
				ResetAfter:      cfg.Contact.ResetAfter,
				RevealThreshold: cfg.Reveal.Threshold,
			})

			addr := ":" + cfg.Server.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Studio site available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				for id := range visitors.GetAll() {
					visitors.Delete(id)
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}

// sweepVisitors drops idle visitors until ctx is done.
func sweepVisitors(ctx context.Context, visitors *storage.VisitorStore, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := visitors.Sweep(ttl); n > 0 {
				slog.Debug("Swept idle visitors", "count", n)
			}
		}
	}
}
