package forecast

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"example.com/balance-forecast/internal/models"
)

//go:generate mockgen -source=service.go -destination=mock_service_test.go -package=forecast

const (
	defaultLookbackMonths = 6
	defaultCurrency       = "RUB"
)

// LedgerStore is the read side of the user's transactions, balance and bills.
type LedgerStore interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Transaction, error)
	GetCurrentBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	ListUpcomingBills(ctx context.Context, userID uuid.UUID) ([]models.Bill, error)
}

// Oracle returns an external, not necessarily reliable, balance prediction.
type Oracle interface {
	Predict(ctx context.Context, request OracleRequest) (OraclePrediction, error)
}

type OracleBill struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
}

type OracleRequest struct {
	UserID         uuid.UUID     `json:"-"`
	Period         models.Period `json:"period"`
	ForecastDays   int           `json:"forecast_days"`
	StartDate      string        `json:"start_date"`
	Currency       string        `json:"currency"`
	CurrentBalance float64       `json:"current_balance"`
	IncomeCycle    IncomeCycle   `json:"income_cycle"`
	Stats          Stats         `json:"stats"`
	Bills          []OracleBill  `json:"upcoming_bills"`
}

type OraclePrediction struct {
	RawBalance    []float64
	DraftAdvice   []string
	DraftAccuracy float64
}

type Metadata struct {
	Period             models.Period `json:"period"`
	CurrentBalance     float64       `json:"currentBalance"`
	AvgMonthlyIncome   float64       `json:"avgMonthlyIncome"`
	AvgMonthlyExpense  float64       `json:"avgMonthlyExpense"`
	UpcomingBillsTotal float64       `json:"upcomingBillsTotal"`
	ForecastDays       int           `json:"forecastDays"`
}

type Result struct {
	ForecastBalance []float64 `json:"forecastBalance"`
	Advice          []string  `json:"advice"`
	Accuracy        int       `json:"accuracy"`
	Metadata        Metadata  `json:"metadata"`
}

type Summary struct {
	Stats              Stats       `json:"stats"`
	IncomeCycle        IncomeCycle `json:"income_cycle"`
	CurrentBalance     float64     `json:"current_balance"`
	UpcomingBillsCount int         `json:"upcoming_bills_count"`
	UpcomingBillsTotal float64     `json:"upcoming_bills_total"`
	ObservedSince      string      `json:"observed_since"`
}

type Options struct {
	LookbackMonths int
	BlendWeight    float64
	Currency       string
	Now            func() time.Time
	Logger         *slog.Logger
}

type Service struct {
	ledger         LedgerStore
	oracle         Oracle
	lookbackMonths int
	blendWeight    float64
	currency       string
	now            func() time.Time
	logger         *slog.Logger
}

type ledgerSnapshot struct {
	transactions []models.Transaction
	balance      decimal.Decimal
	bills        []models.Bill
}

// NewService создает сервис прогноза баланса.
func NewService(ledger LedgerStore, oracle Oracle, opts Options) *Service {
	if opts.LookbackMonths <= 0 {
		opts.LookbackMonths = defaultLookbackMonths
	}
	if opts.BlendWeight <= 0 {
		opts.BlendWeight = DefaultBlendWeight
	}
	if opts.Currency == "" {
		opts.Currency = defaultCurrency
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Service{
		ledger:         ledger,
		oracle:         oracle,
		lookbackMonths: opts.LookbackMonths,
		blendWeight:    opts.BlendWeight,
		currency:       opts.Currency,
		now:            opts.Now,
		logger:         opts.Logger,
	}
}

// Generate строит прогноз баланса и советы для пользователя на выбранный период.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, period string) (Result, error) {
	forecastPeriod := models.Period(period)
	forecastDays, ok := forecastPeriod.Days()
	if !ok {
		return Result{}, &InputError{Field: "period", Value: period}
	}

	now := s.now()
	snapshot, err := s.loadLedger(ctx, userID, now)
	if err != nil {
		s.logger.Warn("ledger read failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return Result{}, err
	}

	stats := ComputeStats(snapshot.transactions)
	cycle := DetectIncomeCycle(snapshot.transactions)
	bills := pendingBills(snapshot.bills)
	overlay := BuildBillOverlay(bills, now, forecastDays)
	currentBalance := snapshot.balance.InexactFloat64()

	prediction, err := s.oracle.Predict(ctx, OracleRequest{
		UserID:         userID,
		Period:         forecastPeriod,
		ForecastDays:   forecastDays,
		StartDate:      formatDate(civilDay(now).AddDate(0, 0, 1)),
		Currency:       s.currency,
		CurrentBalance: currentBalance,
		IncomeCycle:    cycle,
		Stats:          stats,
		Bills:          toOracleBills(bills),
	})
	if err != nil {
		s.logger.Warn("forecast oracle failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return Result{}, &OracleError{Err: err}
	}

	baseline := ProjectBaseline(BaselineInput{
		CurrentBalance: currentBalance,
		Stats:          stats,
		Cycle:          cycle,
		Bills:          overlay,
		ForecastDays:   forecastDays,
		Now:            now,
	})

	series, err := BlendForecast(prediction.RawBalance, baseline, currentBalance, s.blendWeight)
	if err != nil {
		s.logger.Warn("forecast oracle payload rejected", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return Result{}, &OracleError{Err: err}
	}

	advice := GenerateInsights(InsightInput{
		Stats:          stats,
		RawForecast:    series.Raw,
		PublicForecast: series.Public,
		Bills:          bills,
		CurrentBalance: currentBalance,
		DraftAdvice:    prediction.DraftAdvice,
		Now:            now,
		Currency:       s.currency,
	})

	accuracy := ScoreAccuracy(stats.TotalObservedDays, stats.IncomeStdDev, stats.MonthlyIncome(), len(bills) > 0)

	s.logger.Info("forecast generated",
		slog.String("user_id", userID.String()),
		slog.String("period", period),
		slog.String("income_cycle", string(cycle)),
		slog.Int("accuracy", accuracy),
		slog.Float64("draft_accuracy", prediction.DraftAccuracy),
		slog.Int("advice_count", len(advice)),
	)

	return Result{
		ForecastBalance: series.Public,
		Advice:          advice,
		Accuracy:        accuracy,
		Metadata: Metadata{
			Period:             forecastPeriod,
			CurrentBalance:     currentBalance,
			AvgMonthlyIncome:   math.Round(stats.MonthlyIncome()),
			AvgMonthlyExpense:  math.Round(stats.MonthlyExpense()),
			UpcomingBillsTotal: billsTotal(bills),
			ForecastDays:       forecastDays,
		},
	}, nil
}

// Summary возвращает статистику и цикл дохода без обращения к внешнему прогнозу.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	now := s.now()
	snapshot, err := s.loadLedger(ctx, userID, now)
	if err != nil {
		return Summary{}, err
	}

	bills := pendingBills(snapshot.bills)
	return Summary{
		Stats:              ComputeStats(snapshot.transactions),
		IncomeCycle:        DetectIncomeCycle(snapshot.transactions),
		CurrentBalance:     snapshot.balance.InexactFloat64(),
		UpcomingBillsCount: len(bills),
		UpcomingBillsTotal: billsTotal(bills),
		ObservedSince:      formatDate(s.since(now)),
	}, nil
}

func (s *Service) since(now time.Time) time.Time {
	return now.AddDate(0, -s.lookbackMonths, 0)
}

// loadLedger reads transactions, balance and bills concurrently; any failure discards all three.
func (s *Service) loadLedger(ctx context.Context, userID uuid.UUID, now time.Time) (ledgerSnapshot, error) {
	var snapshot ledgerSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		transactions, err := s.ledger.ListTransactions(gctx, userID, s.since(now))
		if err != nil {
			return &UpstreamError{Op: "list transactions", Err: err}
		}
		snapshot.transactions = transactions
		return nil
	})

	g.Go(func() error {
		balance, err := s.ledger.GetCurrentBalance(gctx, userID)
		if err != nil {
			return &UpstreamError{Op: "get current balance", Err: err}
		}
		snapshot.balance = balance
		return nil
	})

	g.Go(func() error {
		bills, err := s.ledger.ListUpcomingBills(gctx, userID)
		if err != nil {
			return &UpstreamError{Op: "list upcoming bills", Err: err}
		}
		snapshot.bills = bills
		return nil
	})

	if err := g.Wait(); err != nil {
		return ledgerSnapshot{}, err
	}

	return snapshot, nil
}

func toOracleBills(bills []models.Bill) []OracleBill {
	out := make([]OracleBill, 0, len(bills))
	for _, bill := range bills {
		out = append(out, OracleBill{
			Name:    bill.Name,
			Amount:  bill.Amount.InexactFloat64(),
			DueDate: formatDate(bill.DueDate),
		})
	}
	return out
}
