package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/api"
	"github.com/getmockd/mockmaster/pkg/auth"
	"github.com/getmockd/mockmaster/pkg/config"
	"github.com/getmockd/mockmaster/pkg/store"
	"github.com/getmockd/mockmaster/pkg/store/file"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

var (
	serveAddr    string
	serveSchema  string
	servePersist string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema editor and generator over HTTP",
	Long: `Start the HTTP API. The schema being edited starts from --schema (or the
configured schema file, or the default schema) and lives in memory.

CSV export requires "Authorization: Bearer <token>" with a token signed by
jwtSecret; without a secret every request is anonymous.`,
	Example: `  mockmaster serve --addr :4380
  curl -X POST localhost:4380/api/generate -d '{"count": 3}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr = serveAddr
			cfg.Sources["addr"] = config.SourceFlag
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, cfg, serveSchema, servePersist)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultAddr, "Listen address")
	serveCmd.Flags().StringVarP(&serveSchema, "schema", "s", "", "Initial schema file")
	serveCmd.Flags().StringVar(&servePersist, "persist", "", "Keep the edited schema in this JSON file across restarts")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, c *config.Config, schemaPath, persistPath string) error {
	initial, err := resolveSchema(schemaPath, c)
	if err != nil {
		return err
	}
	st := store.NewSchemaStore(initial)

	if persistPath != "" {
		fs := file.New(persistPath, file.WithLogger(logger))
		defer func() { _ = fs.Close() }()
		if err := fs.Attach(st); err != nil {
			return fmt.Errorf("loading persisted schema: %w", err)
		}
		logger.Info("persisting schema", "path", fs.Path())
	}

	opts := []api.Option{
		api.WithStore(st),
		api.WithLogger(logger),
	}
	if c.JWTSecret != "" {
		opts = append(opts, api.WithVerifier(auth.NewVerifier(c.JWTSecret)))
	} else {
		logger.Warn("no jwtSecret configured; CSV export is disabled")
	}

	srv := api.New(c, opts...)
	addr, err := srv.Start(c.Addr)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	fmt.Printf("mockmaster listening on http://%s\n", addr)

	<-ctx.Done()
	fmt.Println("\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
