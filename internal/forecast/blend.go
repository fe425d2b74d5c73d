package forecast

import (
	"errors"
	"fmt"
	"math"
)

// DefaultBlendWeight is the share of the oracle prediction kept in the blended series.
const DefaultBlendWeight = 0.75

// maxPlausibleBalance bounds oracle values; anything larger is treated as a broken payload.
const maxPlausibleBalance = 1e15

var smoothingKernel = [3]float64{0.2, 0.6, 0.2}

type BlendedSeries struct {
	// Raw is the blended series before clamping; it may hold negative balances.
	Raw []float64
	// Public is clamped to zero and smoothed.
	Public []float64
}

// RepairLength приводит внешний прогноз к нужной длине.
// A short series is padded with its last value, or with fallback when empty.
func RepairLength(raw []float64, length int, fallback float64) ([]float64, error) {
	if length < 0 {
		return nil, errors.New("negative forecast length")
	}

	for i, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("balance at index %d is not a finite number", i)
		}
		if math.Abs(v) > maxPlausibleBalance {
			return nil, fmt.Errorf("balance at index %d is out of range: %g", i, v)
		}
	}

	out := make([]float64, length)
	pad := fallback
	if len(raw) > 0 {
		pad = raw[len(raw)-1]
	}

	for i := range out {
		if i < len(raw) {
			out[i] = raw[i]
			continue
		}
		out[i] = pad
	}

	return out, nil
}

// Blend сдвигает внешний прогноз к базовой линии: round(weight*raw + (1-weight)*baseline).
// Both series must have the same length.
func Blend(raw, baseline []float64, weight float64) ([]float64, error) {
	if len(raw) != len(baseline) {
		return nil, fmt.Errorf("series length mismatch: %d != %d", len(raw), len(baseline))
	}
	if weight < 0 || weight > 1 || math.IsNaN(weight) {
		return nil, fmt.Errorf("blend weight %v is outside [0, 1]", weight)
	}

	out := make([]float64, len(raw))
	for i := range raw {
		out[i] = math.Round(weight*raw[i] + (1-weight)*baseline[i])
	}

	return out, nil
}

// ClampNonNegative returns a copy with negative values replaced by zero.
func ClampNonNegative(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Max(0, v)
	}
	return out
}

// Smooth применяет взвешенное скользящее среднее (0.2, 0.6, 0.2) к внутренним точкам.
// The first and last values are returned unchanged.
func Smooth(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	for i := 1; i < len(values)-1; i++ {
		out[i] = math.Round(smoothingKernel[0]*values[i-1] + smoothingKernel[1]*values[i] + smoothingKernel[2]*values[i+1])
	}

	return out
}

// BlendForecast выполняет полный цикл: выравнивание длины, смешивание, обрезку и сглаживание.
func BlendForecast(raw, baseline []float64, currentBalance, weight float64) (BlendedSeries, error) {
	repaired, err := RepairLength(raw, len(baseline), currentBalance)
	if err != nil {
		return BlendedSeries{}, err
	}

	blended, err := Blend(repaired, baseline, weight)
	if err != nil {
		return BlendedSeries{}, err
	}

	return BlendedSeries{
		Raw:    blended,
		Public: Smooth(ClampNonNegative(blended)),
	}, nil
}
