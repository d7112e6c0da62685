package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthResponse is served on /health.
type healthResponse struct {
	Status string `json:"status"`
	Height int64  `json:"height"`
}

// StartPrometheusServer serves /metrics and /health on the given port in a
// background goroutine. The returned function shuts the server down.
func StartPrometheusServer(logger log.Logger, port int, height func() int64) func(context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Height: height()})
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// Errors after startup (like port in use) are logged but not fatal
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("prometheus server error", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", server.Addr)

	return server.Shutdown
}
