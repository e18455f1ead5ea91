// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	persistence "profile-service/core/profile/adapters/persistence/pg"
	"profile-service/core/profile/adapters/rest"
	"profile-service/modules/api/openapi"
	"profile-service/modules/appconfig"
	"profile-service/modules/clock"
	"profile-service/modules/db/postgres"
	"profile-service/modules/db/redis"
	"profile-service/modules/db/redis/counter"
	"profile-service/modules/middleware"
	"profile-service/modules/middleware/ratelimit"
	rl "profile-service/modules/ratelimit"
	"profile-service/modules/server"
	"profile-service/modules/services"
	"profile-service/modules/telemetry"
)

const serviceName = "profile-service"

func main() {
	os.Exit(run())
}

// run wires every dependency by hand; there is no need for a DI framework
// at this size.
func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	// --- application config ----
	appConfig, err := appconfig.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", slog.Any("error", err))
		return 1
	}
	slog.SetDefault(appConfig.Log.NewLogger(os.Stdout))

	// cleanup runs after ctx is cancelled, so it gets its own deadline
	cleanupCtx := func() (context.Context, context.CancelFunc) {
		return context.WithTimeout(context.WithoutCancel(ctx), appConfig.HTTP.ShutdownTimeout)
	}

	otelShutdown, err := telemetry.Init(ctx, appConfig.Otel)
	if err != nil {
		slog.ErrorContext(ctx, "telemetry not properly configured", slog.Any("error", err))
		return 1
	}
	defer func() {
		sctx, scancel := cleanupCtx()
		defer scancel()
		if err := otelShutdown(sctx); err != nil {
			slog.ErrorContext(sctx, "telemetry shutdown error", slog.Any("error", err))
		}
	}()

	// --- infrastructure ---

	connectionPool, err := postgres.New(
		ctx,
		&appConfig.Postgres,
		postgres.PostgresOptions{
			WriterOptions: []postgres.PgxConfigOption{
				postgres.WithMaxConnLifetime(time.Hour),
			},
			// replicas sit behind PgBouncer in transaction mode; the primary
			// is reached directly so its statements can be prepared
			ReaderOptions: []postgres.PgxConfigOption{
				postgres.WithPgBouncerSimpleProtocol(),
			},
		},
	)
	if err != nil {
		slog.ErrorContext(ctx, "database error", slog.Any("error", err))
		return 1
	}
	defer func() {
		sctx, scancel := cleanupCtx()
		defer scancel()
		if err := connectionPool.Shutdown(sctx); err != nil {
			slog.ErrorContext(sctx, "database shutdown error", slog.Any("error", err))
		}
	}()

	if err := connectionPool.HealthCheck(ctx); err != nil {
		slog.ErrorContext(ctx, "database health check failed", slog.Any("error", err))
		return 1
	}

	if appConfig.Postgres.AutoMigrate {
		if err := connectionPool.MigrateUp(ctx); err != nil {
			slog.ErrorContext(ctx, "database migration failed", slog.Any("error", err))
			return 1
		}
	}

	// reads may go to replicas, writes are prepared once on the primary
	reader := persistence.NewPostgresProfileReader(connectionPool, persistence.DefaultTable)
	writer, err := persistence.NewPostgresProfileWriter(ctx, connectionPool.Primary(), persistence.DefaultTable)
	if err != nil {
		slog.ErrorContext(ctx, "profile writer initialization error", slog.Any("error", err))
		return 1
	}

	// --- rate limiting ---

	clk := clock.RealClockProvider()
	limiterFactory := rl.LocalFactory(clk)
	if appConfig.Redis.Enabled() {
		redisClient, err := redis.NewRueidisClient(ctx, appConfig.Redis)
		if err != nil {
			slog.ErrorContext(ctx, "redis not properly setup", slog.Any("error", err))
			return 1
		}
		defer redisClient.Close()

		redisCounter := counter.NewRedisCounterStore(redisClient, serviceName)
		limiterFactory = rl.SlidingWindowFactory(clk, redisCounter, "ratelimit")
	} else {
		slog.InfoContext(ctx, "REDIS_URL not set, rate limits are per instance")
	}

	var rateLimitMiddleware func(http.Handler) http.Handler
	if appConfig.RateLimit.Enabled {
		rateLimitMiddleware = ratelimit.Middleware(
			limiterFactory(appConfig.RateLimit.Limit, appConfig.RateLimit.Window),
			ratelimit.KeyFuncFor(appConfig.RateLimit),
			appConfig.RateLimit.SkipPaths...,
		)
	}

	// --- application layer ---

	apiDoc, err := openapi.Load()
	if err != nil {
		slog.ErrorContext(ctx, "openapi document invalid", slog.Any("error", err))
		return 1
	}

	httpMetrics, err := telemetry.NewHTTPMetrics(nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to initialize HTTP metrics, continuing without metrics", slog.Any("error", err))
		httpMetrics = nil
	}

	srv, err := server.New(
		appConfig.Host, appConfig.Port,
		server.WithReadTimeout(appConfig.HTTP.ReadTimeout),
		server.WithWriteTimeout(appConfig.HTTP.WriteTimeout),
		server.WithIdleTimeout(appConfig.HTTP.IdleTimeout),
		server.WithShutdownTimeout(appConfig.HTTP.ShutdownTimeout),
		server.WithServices(
			services.NewFrontService(serviceName, connectionPool),
			services.NewProfileAPIService(rest.NewProfileAPI(reader, writer), apiDoc),
		),
		server.WithGlobalMiddlewares(
			middleware.Telemetry(httpMetrics),
			middleware.Recovery(middleware.ProblemPanicHandler),
			middleware.CORS(appConfig.CORS.AllowedOrigins),
			rateLimitMiddleware,
		),
	)
	if err != nil {
		slog.ErrorContext(ctx, "init server error", slog.Any("error", err))
		return 1
	}

	if err := srv.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "running server error", slog.Any("error", err))
		return 1
	}
	return 0
}
