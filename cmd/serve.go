package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/internal/httpapi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may take after a stop signal.
const shutdownTimeout = 10 * time.Second

// serveCmd runs the HTTP services.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dogs and defects HTTP services",
	Long: `Start both REST services and block until SIGINT or SIGTERM.

Dogs service (default :3000):
  GET    /       list dogs (?name=, ?sort=, ?order=asc|desc)
  GET    /{id}   get one dog
  POST   /       create a dog
  PATCH  /{id}   partially update a dog
  DELETE /{id}   delete a dog

Defects service (default :3001):
  GET    /data   per-company aggregation

Set an address to an empty string to disable that service.

Examples:
  # Both services on the default ports, dogs stored in SQLite
  workbench serve --dogs-backend sqlite

  # Only the defects report
  workbench serve --dogs-addr ""`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg)
	},
}

// runServe starts the enabled services and shuts them down once ctx is done.
func runServe(ctx context.Context, cfg *contract.Config) error {
	if cfg.DogsAddr == "" && cfg.DefectsAddr == "" {
		return errors.New("both services are disabled, set --dogs-addr or --defects-addr")
	}

	var servers []*httpapi.Server
	if cfg.DogsAddr != "" {
		svc, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()
		h := httpapi.Wrap("dogs", httpapi.NewDogsHandler(svc), cfg.CORS)
		servers = append(servers, httpapi.NewServer("dogs", cfg.DogsAddr, h))
	}
	if cfg.DefectsAddr != "" {
		svc, closeSource, err := openDefectService(cfg.Watch)
		if err != nil {
			return err
		}
		defer closeSource()
		h := httpapi.Wrap("defects", httpapi.NewDefectsHandler(svc), cfg.CORS)
		servers = append(servers, httpapi.NewServer("defects", cfg.DefectsAddr, h))
	}

	// Bind everything first so a port conflict fails before anything serves
	for i, s := range servers {
		if err := s.Listen(); err != nil {
			for _, bound := range servers[:i] {
				_ = bound.Shutdown(context.Background())
			}
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(s.Serve)
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}
