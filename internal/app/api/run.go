package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	shelterserver "github.com/Apurer/go-gin-shelter-server/go"

	dispatchclient "github.com/Apurer/go-gin-shelter-server/internal/clients/http/dispatch"
	adoptionworkflows "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/workflows"
	adoptionports "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	petdispatch "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/external/dispatch"
	petports "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
	platformobservability "github.com/Apurer/go-gin-shelter-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-shelter-server/internal/platform/postgres"
)

const serviceName = "shelter-api"

// Run boots the shelter HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
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

	dispatcher, cleanupDispatcher := buildDispatcher(ctx, cfg, logger)
	defer cleanupDispatcher()

	services := NewServices(cfg, instruments, db, dispatcher)

	var decisions adoptionports.DecisionOrchestrator = adoptionworkflows.NewInlineDecisions(services.Adoptions)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, applying adoption decisions inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		decisions = adoptionworkflows.NewTemporalDecisions(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := shelterserver.ApiHandleFunctions{
		PetAPI:      shelterserver.NewPetAPI(services.Pets),
		AdoptionAPI: shelterserver.NewAdoptionAPI(services.Adoptions, decisions),
		ShelterAPI:  shelterserver.NewShelterAPI(services.Shelters),
		UserAPI:     shelterserver.NewUserAPI(services.Users),
		Sessions:    services.Users,
	}

	router := NewEngine(handlers)
	addr := cfg.Addr()
	logger.Info("shelter API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shelter API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// NewEngine builds the gin engine with request tracing installed ahead of the routes.
// Gin fixes a route's middleware chain at registration, so Use must come first.
func NewEngine(handlers shelterserver.ApiHandleFunctions, opts ...otelgin.Option) *gin.Engine {
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName, opts...))
	return shelterserver.NewRouterWithGinEngine(engine, handlers)
}

// buildDispatcher returns the HTTP dispatcher, cached in Redis when REDIS_ADDR is reachable.
func buildDispatcher(ctx context.Context, cfg Config, logger *slog.Logger) (petports.Dispatcher, func()) {
	if cfg.DispatchBaseURL == "" {
		logger.Warn("DISPATCH_BASE_URL not set, edit forms use stored descriptions")
		return petports.NoopDispatcher{}, func() {}
	}
	httpClient := &http.Client{
		Timeout:   cfg.DispatchTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	c, err := dispatchclient.NewClient(cfg.DispatchBaseURL, httpClient)
	if err != nil {
		logger.Warn("invalid dispatch endpoint, edit forms use stored descriptions", slog.String("error", err.Error()))
		return petports.NoopDispatcher{}, func() {}
	}
	var dispatcher petports.Dispatcher = petdispatch.NewHTTPDispatcher(c)
	if cfg.RedisAddr == "" {
		return dispatcher, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, dispatch values are not cached", slog.String("error", err.Error()))
		_ = rdb.Close()
		return dispatcher, func() {}
	}
	logger.Info("dispatch cache configured with redis", slog.String("addr", cfg.RedisAddr))
	cached := petdispatch.NewCachedDispatcher(dispatcher, rdb,
		petdispatch.WithTTL(cfg.DispatchCacheTTL),
		petdispatch.WithLogger(logger),
	)
	return cached, func() { _ = rdb.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
