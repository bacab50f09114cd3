package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/hybrid-travel/pkg/ratelimit"
	"github.com/theapemachine/hybrid-travel/pkg/service"
	"github.com/theapemachine/hybrid-travel/pkg/stores"
)

var (
	portFlag int
	hostFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the travel assistant web service",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cmd.Flags().Changed("port") {
				viper.Set("server.port", portFlag)
			}

			if cmd.Flags().Changed("host") {
				viper.Set("server.host", hostFlag)
			}

			deps, err := newComponents(ctx)
			if err != nil {
				return err
			}
			defer deps.Close(context.Background())

			conversations := stores.NewInMemoryConversationStore(
				stores.WithTTL(deps.cfg.Session.TTL),
			)
			go conversations.Run(ctx)

			options := []service.ChatServerOption{
				service.WithConversationStore(conversations),
				service.WithMetrics(deps.metrics),
				service.WithAddr(deps.cfg.Server.Host, deps.cfg.Server.Port),
			}

			if deps.cfg.Server.RateLimit > 0 {
				limiter := ratelimit.NewLimiter(int64(deps.cfg.Server.RateLimit), time.Minute)
				go limiter.Run(ctx)

				options = append(options, service.WithRateLimiter(limiter))
			}

			srv := service.NewChatServer(deps.assistant, options...)

			errs := make(chan error, 1)

			go func() {
				errs <- srv.Start()
			}()

			select {
			case err := <-errs:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 5000, "Port to serve on")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
}

var longServe = `
Serve the travel assistant over HTTP.

Endpoints:
  POST /api/chat          ask a question: {"message": "..."}
  GET  /api/conversation  the current session's history
  POST /api/clear         forget the current session
  GET  /api/health        probe vector search, graph search and the chat model
  GET  /api/stats         conversation counts
  GET  /metrics           Prometheus metrics

Examples:
  hybrid-travel serve
  hybrid-travel serve --port 8080
`
