package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/soleverett/focusroom/internal/infrastructure/configs"
	"github.com/soleverett/focusroom/internal/infrastructure/events"
	"github.com/soleverett/focusroom/internal/infrastructure/logging"
	"github.com/soleverett/focusroom/internal/infrastructure/messaging"
	"github.com/soleverett/focusroom/internal/infrastructure/ratelimiter"
	"github.com/soleverett/focusroom/internal/infrastructure/tracing"
	"github.com/soleverett/focusroom/internal/infrastructure/ws"
	"github.com/soleverett/focusroom/internal/presentation/api"
	"github.com/soleverett/focusroom/internal/presentation/handler/health"
	"github.com/soleverett/focusroom/internal/presentation/handler/rooms"
)

const serviceName = "focusroom"

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	var publisher ws.Publisher
	if cfg.Messaging.Enabled {
		rabbitmq, err := messaging.NewRabbitMQ(cfg.Messaging.URI)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitmq.Close()

		publisher = events.NewTimerPublisher(rabbitmq)
		logger.Info(logging.RabbitMQ, logging.Startup, "RabbitMQ connected", nil)
	}

	registry := ws.NewRegistry()
	hub := ws.NewHub(registry, clockwork.NewRealClock(), logger, ws.Options{
		ClientBuffer:   cfg.Hub.ClientBuffer,
		CommandBuffer:  cfg.Hub.CommandBuffer,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Publisher:      publisher,
	})
	go hub.Run()

	roomHandler := rooms.NewHandler(hub, registry)
	healthHandler := health.NewHandler()

	rateLimiter := ratelimiter.NewFixedWindowRateLimiter(cfg.RateLimiter.RequestsPerTimeFrame, cfg.RateLimiter.TimeFrame)
	defer rateLimiter.Close()

	app := api.NewApplication(*cfg, *roomHandler, *healthHandler, logger, rateLimiter)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
