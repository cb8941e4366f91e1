package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fenwick-games/parley"
	"github.com/fenwick-games/parley/internal/cli"
	"github.com/fenwick-games/parley/internal/metrics"
	"github.com/fenwick-games/parley/pkg/adapters/httpapi"
	"github.com/fenwick-games/parley/pkg/adapters/memory"
	"github.com/fenwick-games/parley/pkg/adapters/yamlfile"
	"github.com/fenwick-games/parley/pkg/ports"
	"github.com/fenwick-games/parley/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dialog session server",
	Long:  `Exposes conversations over a JSON API with a websocket event stream, plus Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		logger := loggerFromFlags(cmd)

		var provider ports.ContentProvider
		speaker := "sample"
		if dir != "" {
			loader := yamlfile.NewLoader(dir, yamlfile.WithLogger(logger))
			names, err := loader.ListTrees()
			if err != nil || len(names) == 0 {
				fmt.Printf("Error listing trees in %s: %v\n", dir, err)
				os.Exit(1)
			}
			provider = yamlfile.NewProvider(loader, names[0], yamlfile.WithProviderLogger(logger))
			speaker = names[0]
		} else {
			provider = memory.NewProvider(cli.SampleTree(logger), memory.WithLogger(logger))
		}

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		sessions := session.NewManager(
			session.WithLogger(logger),
			session.WithNavigatorOptions(parley.WithLogger(logger), parley.WithMetrics(m)),
		)
		api := httpapi.NewServer(
			map[string]ports.ContentProvider{speaker: provider},
			httpapi.WithLogger(logger),
			httpapi.WithSessionManager(sessions),
		)

		mux := http.NewServeMux()
		mux.Handle("/v1/", api)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Parley Server on %s\n", srv.Addr)
			fmt.Printf("Serving speaker %q\n", speaker)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Parley Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
