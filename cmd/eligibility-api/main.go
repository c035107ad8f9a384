// cmd/eligibility-api/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pathway-workers/internal/common/config"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/observability"
	"pathway-workers/internal/eligibility"
	"pathway-workers/internal/models"
)

// checkRequest is the synchronous counterpart of the check-eligibility
// worker input: an inline profile scored against an inline catalog.
type checkRequest struct {
	Profile       *models.ApplicantProfile   `json:"profile"`
	Opportunities []models.OpportunityRecord `json:"opportunities"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting eligibility API...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("eligibility-api")
	defer obs.Shutdown()

	engine := eligibility.NewEngine(log)

	mux := http.NewServeMux()
	mux.HandleFunc("/eligibility/check", handleCheck(engine, obs, zapLog))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	port := cfg.HTTP.Port
	if port == 0 {
		port = 8081
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("Eligibility API listening", zap.Int("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}

	zapLog.Info("Eligibility API stopped gracefully")
}

func handleCheck(engine *eligibility.Engine, obs *observability.Observability, zapLog *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST is supported")
			return
		}

		var req checkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "MALFORMED_REQUEST", "request body is not valid JSON")
			return
		}

		if req.Profile == nil || req.Profile.AcademicLevel == "" || req.Profile.FieldOfStudy == "" {
			writeError(w, http.StatusBadRequest, "INVALID_PROFILE", "profile requires academicLevel and fieldOfStudy")
			return
		}

		start := time.Now()
		report := engine.CheckProfile(req.Profile, req.Opportunities)

		obs.RecordJobProcessed(r.Context(), "completed")
		obs.RecordJobDuration(r.Context(), time.Since(start), "completed")
		obs.RecordOpportunitiesScored(r.Context(), len(report.Results))

		zapLog.Info("eligibility check completed",
			zap.String("applicantId", req.Profile.ID),
			zap.Int("catalogSize", len(req.Opportunities)),
			zap.Int("results", len(report.Results)),
			zap.Duration("duration", time.Since(start)),
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(report)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Code: code})
}
