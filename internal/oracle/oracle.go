package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"example.com/balance-forecast/internal/forecast"
)

const systemPrompt = "You are a personal finance forecasting assistant. Respond with JSON only, without extra text."

// Exchange is one prompt/response round trip with the LLM provider.
type Exchange struct {
	UserID          uuid.UUID
	Provider        string
	Model           string
	Prompt          string
	RequestPayload  []byte
	ResponsePayload []byte
	RawResponse     []byte
	Err             error
}

// Recorder persists oracle exchanges for auditing.
type Recorder interface {
	Record(ctx context.Context, exchange Exchange) error
}

type Options struct {
	Provider string
	Model    string
	Recorder Recorder
	Logger   *slog.Logger
}

// Oracle adapts a chat LLM into the forecast.Oracle contract.
type Oracle struct {
	client   Client
	provider string
	model    string
	recorder Recorder
	logger   *slog.Logger
}

type predictionPayload struct {
	ForecastBalance []json.RawMessage `json:"forecast_balance"`
	Advice          []json.RawMessage `json:"advice"`
	Accuracy        json.RawMessage   `json:"accuracy"`
}

type normalizedPrediction struct {
	ForecastBalance []float64 `json:"forecast_balance"`
	Advice          []string  `json:"advice"`
	Accuracy        float64   `json:"accuracy"`
}

// New создает адаптер прогнозного оракула поверх LLM-клиента.
func New(client Client, opts Options) *Oracle {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Oracle{
		client:   client,
		provider: opts.Provider,
		model:    opts.Model,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
}

// Predict запрашивает у LLM сырой прогноз баланса, черновые советы и оценку точности.
func (o *Oracle) Predict(ctx context.Context, request forecast.OracleRequest) (forecast.OraclePrediction, error) {
	requestPayload, err := json.Marshal(request)
	if err != nil {
		return forecast.OraclePrediction{}, err
	}

	prompt := buildPredictPrompt(request, requestPayload)
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}

	exchange := Exchange{
		UserID:         request.UserID,
		Provider:       o.provider,
		Model:          o.model,
		Prompt:         prompt,
		RequestPayload: requestPayload,
	}

	content, raw, err := o.client.Chat(ctx, messages)
	exchange.RawResponse = raw
	if err != nil {
		exchange.Err = err
		o.record(ctx, exchange)
		return forecast.OraclePrediction{}, err
	}

	prediction, err := parsePrediction(content)
	if err != nil {
		exchange.Err = err
		o.record(ctx, exchange)
		return forecast.OraclePrediction{}, err
	}

	responsePayload, err := encodeResponsePayload(prediction)
	if err != nil {
		o.logger.Warn("oracle response not serialized", slog.String("user_id", request.UserID.String()), slog.String("error", err.Error()))
	}
	exchange.ResponsePayload = responsePayload
	o.record(ctx, exchange)

	return prediction, nil
}

func (o *Oracle) record(ctx context.Context, exchange Exchange) {
	if o.recorder == nil {
		return
	}

	if err := o.recorder.Record(ctx, exchange); err != nil {
		o.logger.Warn("oracle exchange not recorded", slog.String("user_id", exchange.UserID.String()), slog.String("error", err.Error()))
	}
}

func encodeResponsePayload(prediction forecast.OraclePrediction) ([]byte, error) {
	payload, err := json.Marshal(normalizedPrediction{
		ForecastBalance: prediction.RawBalance,
		Advice:          prediction.DraftAdvice,
		Accuracy:        prediction.DraftAccuracy,
	})
	if err != nil {
		return nil, fmt.Errorf("encode oracle response: %w", err)
	}
	return payload, nil
}

func buildPredictPrompt(request forecast.OracleRequest, payload []byte) string {
	currency := request.Currency
	if currency == "" {
		currency = "the account currency"
	}

	return fmt.Sprintf(`Forecast the end-of-day account balance for the next %d days and give short advice as JSON.

Requirements:
- Output JSON only, no code fences, no extra text.
- Schema:
{
  "forecast_balance": [number],
  "advice": [string],
  "accuracy": number
}
- forecast_balance must contain exactly %d numbers, one per day starting at start_date.
- Account for income_cycle, the daily statistics and every upcoming bill on its due date.
- Provide 3-5 advices; each must mention a concrete amount in %s, a percentage or a date.
- accuracy is your confidence from 0 to 100.

Input:
%s`, request.ForecastDays, request.ForecastDays, currency, string(payload))
}

func parsePrediction(content string) (forecast.OraclePrediction, error) {
	object := extractJSON(content)
	if object == "" {
		return forecast.OraclePrediction{}, errors.New("oracle response does not contain json")
	}

	var payload predictionPayload
	if err := json.Unmarshal([]byte(object), &payload); err != nil {
		return forecast.OraclePrediction{}, fmt.Errorf("decode oracle response: %w", err)
	}

	balances := make([]float64, 0, len(payload.ForecastBalance))
	for i, value := range payload.ForecastBalance {
		number, err := parseNumber(value)
		if err != nil {
			return forecast.OraclePrediction{}, fmt.Errorf("forecast_balance[%d]: %w", i, err)
		}
		balances = append(balances, number)
	}

	advice := make([]string, 0, len(payload.Advice))
	for _, value := range payload.Advice {
		if text, ok := adviceText(value); ok {
			advice = append(advice, text)
		}
	}

	var accuracy float64
	if len(payload.Accuracy) > 0 {
		if parsed, err := parseNumber(payload.Accuracy); err == nil {
			accuracy = parsed
		}
	}

	return forecast.OraclePrediction{
		RawBalance:    balances,
		DraftAdvice:   advice,
		DraftAccuracy: accuracy,
	}, nil
}

// parseNumber accepts only JSON number literals; quoted numbers and null are rejected.
func parseNumber(value json.RawMessage) (float64, error) {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "" || strings.HasPrefix(trimmed, `"`) || trimmed == "null" {
		return 0, fmt.Errorf("%s is not a number", trimmed)
	}

	number, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number", trimmed)
	}

	return number, nil
}

// adviceText takes either a plain string or an object with a "content" field.
func adviceText(value json.RawMessage) (string, bool) {
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		text = strings.TrimSpace(text)
		return text, text != ""
	}

	var note struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(value, &note); err == nil {
		content := strings.TrimSpace(note.Content)
		return content, content != ""
	}

	return "", false
}

func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}
