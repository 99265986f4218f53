package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyp0633/libvcard/contact"
	"github.com/cyp0633/libvcard/server"
	authmemory "github.com/cyp0633/libvcard/server/auth/memory"
	"github.com/cyp0633/libvcard/server/storage/memory"
	"github.com/cyp0633/libvcard/vcard"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func (a *app) serveCmd() *cobra.Command {
	var (
		addr    string
		seedDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve cards over HTTP",
		Long: `Serve cards from an in-memory store. Contacts in the --seed directory
are loaded at startup, named after their file. Writes require one of the
users listed in the config when any are listed.

Example:
  vcardgen serve --addr :8080 --seed contacts/
  curl -A "Mozilla/5.0 (iPhone; CPU iPhone OS 6_0 like Mac OS X)" localhost:8080/cards/jane`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("seed") {
				a.cfg.Server.SeedDir = seedDir
			}

			h, err := a.newHandler(cmd.Context())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.listen(ctx, h)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "l", "", "override listen address")
	cmd.Flags().StringVar(&seedDir, "seed", "", "directory of contact files to load at startup")
	return cmd
}

// newHandler sets up the store, the user list and the card handler.
func (a *app) newHandler(ctx context.Context) (*server.Handler, error) {
	store := memory.New(memory.WithLogger(a.logger))
	if dir := a.cfg.Server.SeedDir; dir != "" {
		contacts, err := contact.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed contacts: %w", err)
		}
		for _, c := range contacts {
			if _, err := store.PutContact(ctx, c); err != nil {
				return nil, fmt.Errorf("failed to store contact %s: %w", c.ID, err)
			}
		}
		a.logger.Info("seed contacts loaded", "dir", dir, "count", len(contacts))
	}

	opts := []server.Option{
		server.WithLogger(a.logger),
		server.WithMediaResolver(a.resolver()),
		server.WithBuilderOptions(vcard.WithCharset(a.cfg.Card.Charset)),
		server.WithQRSize(a.cfg.Server.QRSize),
		server.WithMaxBodySize(a.cfg.Server.MaxBodySize),
	}
	if len(a.cfg.Server.Users) > 0 {
		users := authmemory.New(authmemory.WithLogger(a.logger))
		for _, u := range a.cfg.Server.Users {
			if err := users.AddUser(u.Username, u.Password); err != nil {
				return nil, err
			}
		}
		opts = append(opts, server.WithAuthenticator(users, a.cfg.Server.Realm))
		a.logger.Info("writes require authentication", "users", users.Users())
	} else {
		opts = append(opts, server.WithReadOnly())
		a.logger.Warn("no users configured, serving read-only")
	}

	return server.NewHandler(a.cfg.Server.Prefix, store, opts...), nil
}

// listen serves h until ctx is cancelled, then shuts down gracefully.
func (a *app) listen(ctx context.Context, h *server.Handler) error {
	mux := http.NewServeMux()
	mux.Handle(h.Prefix, h)

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting card server",
			"addr", srv.Addr,
			"prefix", h.Prefix)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down card server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
