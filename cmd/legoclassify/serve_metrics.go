package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/tsawler/legoclassify/metrics"
)

var metricsAddr string

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Serve the /metrics Prometheus endpoint (for scraping alongside a long-running classify batch)",
	RunE: func(cmd *cobra.Command, args []string) error {
		metrics.Init()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		fmt.Printf("serving /metrics on %s\n", metricsAddr)
		return http.ListenAndServe(metricsAddr, mux)
	},
}

func init() {
	serveMetricsCmd.Flags().StringVar(&metricsAddr, "addr", ":9090", "address to serve /metrics on")
}
