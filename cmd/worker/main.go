package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-shelter-server/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-shelter-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shelter-server/internal/platform/postgres"
	adoptionactivities "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/go-gin-shelter-server/internal/platform/temporal/workflows/adoptions"
)

func main() {
	ctx := context.Background()
	const serviceName = "shelter-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db == nil {
		logger.Warn("worker running on in-memory repositories, decisions will not reach the API's data")
	}
	services := api.NewServices(cfg, instruments, db, nil)
	decisionActivities := adoptionactivities.NewActivities(services.Adoptions)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptionworkflows.DecisionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptionworkflows.DecisionWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.DecisionWorkflowName})
	w.RegisterActivityWithOptions(decisionActivities.ApplyDecision, activity.RegisterOptions{Name: adoptionactivities.ApplyDecisionActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptionworkflows.DecisionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
