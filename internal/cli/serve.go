package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP service",
	Long: `Serve the responder over HTTP.

Endpoints:
  POST /v1/respond   {"message": "..."} -> reply, winning rule and score
  POST /v1/score     {"message": "..."} -> full score table
  GET  /v1/rules     active rules in scoring order
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics (when server.metrics is enabled)

Examples:
  replybot serve
  replybot serve --port 9000
  curl -s localhost:8643/v1/respond -d '{"message":"hello"}'`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	srv := server.New(c, server.Options{
		Metrics: cfg.Server.Metrics,
		Version: version,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, cfg.Server.Addr())
}
