package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/balance-forecast/internal/auth"
	"example.com/balance-forecast/internal/forecast"
	"example.com/balance-forecast/internal/repository"
)

// ForecastService is the part of forecast.Service the HTTP layer depends on.
type ForecastService interface {
	Generate(ctx context.Context, userID uuid.UUID, period string) (forecast.Result, error)
	Summary(ctx context.Context, userID uuid.UUID) (forecast.Summary, error)
}

type ForecastHandler struct {
	Service ForecastService
	Logger  *slog.Logger
}

// NewForecastHandler создает обработчик запросов прогноза баланса.
func NewForecastHandler(service ForecastService, logger *slog.Logger) *ForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ForecastHandler{
		Service: service,
		Logger:  logger,
	}
}

type ForecastRequest struct {
	Period string `json:"period" validate:"required"`
}

// Generate строит прогноз баланса на неделю или месяц для текущего пользователя.
func (h *ForecastHandler) Generate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ForecastRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	req.Period = strings.ToLower(strings.TrimSpace(req.Period))
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.Service.Generate(c.Request().Context(), userID, req.Period)
	if err != nil {
		return h.respondError(c, userID, err)
	}

	return c.JSON(http.StatusOK, result)
}

// Summary возвращает статистику операций и цикл дохода без внешнего прогноза.
func (h *ForecastHandler) Summary(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	summary, err := h.Service.Summary(c.Request().Context(), userID)
	if err != nil {
		return h.respondError(c, userID, err)
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *ForecastHandler) respondError(c echo.Context, userID uuid.UUID, err error) error {
	var inputErr *forecast.InputError
	var upstreamErr *forecast.UpstreamError
	var oracleErr *forecast.OracleError

	switch {
	case errors.As(err, &inputErr):
		return badRequest(c, inputErr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return notFound(c, "account not found")
	case errors.As(err, &upstreamErr):
		h.Logger.Error("ledger unavailable",
			slog.String("user_id", userID.String()),
			slog.String("op", upstreamErr.Op),
			slog.String("error", upstreamErr.Err.Error()),
		)
		return badGateway(c, "ledger unavailable")
	case errors.As(err, &oracleErr):
		h.Logger.Warn("forecast oracle failed",
			slog.String("user_id", userID.String()),
			slog.String("error", oracleErr.Error()),
		)
		return serviceUnavailable(c, "forecast temporarily unavailable")
	default:
		h.Logger.Error("forecast failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return serverError(c)
	}
}
