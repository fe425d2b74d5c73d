package server

import (
	"github.com/labstack/echo/v4"

	"example.com/balance-forecast/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	forecastHandler *handlers.ForecastHandler,
	db handlers.Pinger,
	authMiddleware echo.MiddlewareFunc,
	forecastRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)
	e.GET("/health/ready", handlers.Ready(db))

	api := e.Group("/api/v1", authMiddleware)

	forecastGroup := api.Group("/forecast")
	forecastGroup.POST("", forecastHandler.Generate, forecastRateLimiter)
	forecastGroup.GET("/summary", forecastHandler.Summary)
}
