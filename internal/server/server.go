package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/balance-forecast/internal/auth"
	"example.com/balance-forecast/internal/config"
	"example.com/balance-forecast/internal/forecast"
	"example.com/balance-forecast/internal/handlers"
	"example.com/balance-forecast/internal/oracle"
	"example.com/balance-forecast/internal/repository"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	ledgerRepo := repository.NewLedgerRepository(db)
	oracleLogRepo := repository.NewOracleLogRepository(db)

	llmClient := oracle.NewClient(cfg.AI.Provider, oracle.ClientConfig{
		APIKey:    cfg.AI.APIKey,
		BaseURL:   cfg.AI.BaseURL,
		Model:     cfg.AI.Model,
		Timeout:   cfg.AI.Timeout,
		MaxTokens: cfg.AI.MaxOutputTokens,
	})
	forecastOracle := oracle.New(llmClient, oracle.Options{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
		Recorder: oracleLogRepo,
		Logger:   logger,
	})
	forecastService := forecast.NewService(ledgerRepo, forecastOracle, forecast.Options{
		LookbackMonths: cfg.Forecast.LookbackMonths,
		BlendWeight:    cfg.Forecast.BlendWeight,
		Currency:       cfg.Forecast.Currency,
		Logger:         logger,
	})
	forecastHandler := handlers.NewForecastHandler(forecastService, logger)

	registerRoutes(
		e,
		forecastHandler,
		db,
		auth.JWTMiddleware(tokenManager),
		forecastRateLimiter(cfg.AI),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}

			if userID, ok := auth.UserIDFromContext(c); ok {
				attrs = append(attrs, slog.String("user_id", userID.String()))
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

// forecastRateLimiter ограничивает частоту запросов к LLM по пользователю, а не по IP.
func forecastRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if userID, ok := auth.UserIDFromContext(c); ok {
				return userID.String(), nil
			}
			return c.RealIP(), nil
		},
	})
}
