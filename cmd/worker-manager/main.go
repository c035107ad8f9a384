// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pathway-workers/internal/common/camunda"
	"pathway-workers/internal/common/config"
	"pathway-workers/internal/common/database"
	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/observability"
	"pathway-workers/internal/common/pathways"

	// Eligibility Workers (3)
	ce "pathway-workers/internal/workers/eligibility/check-eligibility"
	gin "pathway-workers/internal/workers/eligibility/generate-improvement-narrative"
	rr "pathway-workers/internal/workers/eligibility/rank-results"

	// Profile Workers (2)
	spr "pathway-workers/internal/workers/profile/save-profile-record"
	vpd "pathway-workers/internal/workers/profile/validate-profile-data"

	// Catalog Workers (3)
	qo "pathway-workers/internal/workers/catalog/query-opportunities"
	so "pathway-workers/internal/workers/catalog/search-opportunities"
	spp "pathway-workers/internal/workers/catalog/sync-pathway-programs"

	// Notification Workers (1)
	sea "pathway-workers/internal/workers/notification/send-eligibility-alert"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	pathwaysClient := pathways.NewClient(
		cfg.Integrations.Pathways.BaseURL,
		cfg.Integrations.Pathways.APIKey,
		cfg.Integrations.Pathways.AuthToken,
		time.Duration(cfg.Integrations.Pathways.Timeout)*time.Millisecond,
	)

	zapLog.Info("All external service clients initialized")

	// --- START: Register ALL 9 Workers ---
	var jobWorkers []*camunda.Worker

	// --- 1. Eligibility Workers (3) ---
	if cfg.Workers[ce.TaskType].Enabled {
		handler := ce.NewHandler(
			&ce.Config{
				ProfileCacheTTL: time.Duration(cfg.Eligibility.ProfileCacheTTL) * time.Second,
				CatalogLimit:    cfg.Eligibility.CatalogQueryLimit,
				Timeout:         time.Duration(cfg.Workers[ce.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, ce.TaskType, cfg.Workers[ce.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[rr.TaskType].Enabled {
		handler := rr.NewHandler(
			&rr.Config{
				MaxItems: cfg.Eligibility.MaxRankedResults,
				Timeout:  time.Duration(cfg.Workers[rr.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, rr.TaskType, cfg.Workers[rr.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[gin.TaskType].Enabled {
		ginCfg := gin.LoadConfig()
		ginCfg.GenAIBaseURL = cfg.APIs.GenAI.BaseURL
		ginCfg.Timeout = time.Duration(cfg.APIs.GenAI.Timeout) * time.Millisecond
		handler := gin.NewHandler(ginCfg, log)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, gin.TaskType, cfg.Workers[gin.TaskType], handler.Handle, zapLog))
	}

	// --- 2. Profile Workers (2) ---
	if cfg.Workers[vpd.TaskType].Enabled {
		handler := vpd.NewHandler(
			&vpd.Config{
				Timeout: time.Duration(cfg.Workers[vpd.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, vpd.TaskType, cfg.Workers[vpd.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[spr.TaskType].Enabled {
		handler := spr.NewHandler(
			&spr.Config{
				Timeout: time.Duration(cfg.Workers[spr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, spr.TaskType, cfg.Workers[spr.TaskType], handler.Handle, zapLog))
	}

	// --- 3. Catalog Workers (3) ---
	if cfg.Workers[qo.TaskType].Enabled {
		handler := qo.NewHandler(
			&qo.Config{
				Timeout: time.Duration(cfg.Workers[qo.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, qo.TaskType, cfg.Workers[qo.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[so.TaskType].Enabled {
		handler := so.NewHandler(
			&so.Config{
				Timeout: time.Duration(cfg.Workers[so.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, so.TaskType, cfg.Workers[so.TaskType], handler.Handle, zapLog))
	}

	if cfg.Workers[spp.TaskType].Enabled {
		sppCfg := spp.LoadConfig()
		if cfg.Workers[spp.TaskType].Timeout > 0 {
			sppCfg.Timeout = time.Duration(cfg.Workers[spp.TaskType].Timeout) * time.Millisecond
		}
		handler := spp.NewHandler(sppCfg, pg.DB, pathwaysClient, log)
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, spp.TaskType, cfg.Workers[spp.TaskType], handler.Handle, zapLog))
	}

	// --- 4. Notification Workers (1) ---
	if cfg.Workers[sea.TaskType].Enabled {
		handler, err := sea.NewHandler(
			&sea.Config{
				EmailEnabled:       cfg.Notifications.Email.Enabled,
				SMSEnabled:         cfg.Notifications.SMS.Enabled,
				FromEmail:          cfg.Notifications.Email.FromEmail,
				AWSRegion:          cfg.Notifications.AWS.Region,
				HighValueThreshold: cfg.Eligibility.HighValueThreshold,
				Timeout:            time.Duration(cfg.Workers[sea.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-eligibility-alert handler", zap.Error(err))
		}
		jobWorkers = append(jobWorkers, camunda.StartWorker(zeebeClient, sea.TaskType, cfg.Workers[sea.TaskType], handler.Handle, zapLog))
	}

	zapLog.Info("All 9 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range jobWorkers {
		if w != nil {
			w.Close()
		}
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
