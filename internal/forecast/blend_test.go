package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepairLength проверяет дополнение и усечение внешнего прогноза.
func TestRepairLength(t *testing.T) {
	padded, err := RepairLength([]float64{1, 2}, 4, 99)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2, 2}, padded)

	empty, err := RepairLength(nil, 3, 99)
	require.NoError(t, err)
	assert.Equal(t, []float64{99, 99, 99}, empty)

	truncated, err := RepairLength([]float64{1, 2, 3, 4, 5}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, truncated)

	_, err = RepairLength([]float64{1, math.NaN()}, 2, 0)
	assert.Error(t, err)

	_, err = RepairLength([]float64{math.Inf(1)}, 2, 0)
	assert.Error(t, err)
}

// TestBlendIdentity проверяет, что совпадающие ряды дают округленный исходный ряд.
func TestBlendIdentity(t *testing.T) {
	series := []float64{100.4, 200.6, 300, 1000000}

	blended, err := Blend(series, series, DefaultBlendWeight)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 201, 300, 1000000}, blended)
}

// TestBlendWeight проверяет смешивание с произвольным весом.
func TestBlendWeight(t *testing.T) {
	blended, err := Blend([]float64{1000, 0}, []float64{0, 1000}, 0.75)
	require.NoError(t, err)
	assert.Equal(t, []float64{750, 250}, blended)

	blended, err = Blend([]float64{1000}, []float64{0}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{500}, blended)

	_, err = Blend([]float64{1}, []float64{1, 2}, 0.75)
	assert.Error(t, err)

	_, err = Blend([]float64{1}, []float64{1}, 1.5)
	assert.Error(t, err)
}

// TestSmooth проверяет сглаживание внутренних точек и неизменность крайних.
func TestSmooth(t *testing.T) {
	assert.Equal(t, []float64{0, 60, 40, 100}, Smooth([]float64{0, 100, 0, 100}))
	assert.Equal(t, []float64{5}, Smooth([]float64{5}))
	assert.Equal(t, []float64{5, 7}, Smooth([]float64{5, 7}))
	assert.Empty(t, Smooth(nil))
}

// TestBlendForecastKeepsDeficit проверяет, что отрицательные значения сохраняются до обрезки.
func TestBlendForecastKeepsDeficit(t *testing.T) {
	baseline := []float64{100, -100, -300, -500}

	series, err := BlendForecast(baseline[:2], baseline, 100, DefaultBlendWeight)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, -100, -150, -200}, series.Raw)
	require.Len(t, series.Public, len(baseline))
	for _, v := range series.Public {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Equal(t, 100.0, series.Public[0])
	assert.Equal(t, 0.0, series.Public[3])
}

// TestBlendForecastEdgesUnchanged проверяет, что сглаживание не меняет первый и последний день.
func TestBlendForecastEdgesUnchanged(t *testing.T) {
	raw := []float64{500, 0, 900, 100, 700}

	series, err := BlendForecast(raw, raw, 0, DefaultBlendWeight)
	require.NoError(t, err)

	assert.Equal(t, raw[0], series.Public[0])
	assert.Equal(t, raw[len(raw)-1], series.Public[len(raw)-1])
	assert.Equal(t, raw, series.Raw)
}

// TestRepairLengthRejectsImplausible проверяет отказ от значений за пределами правдоподобного баланса.
func TestRepairLengthRejectsImplausible(t *testing.T) {
	_, err := RepairLength(repeat(1e300, 7), 7, 1000)
	assert.Error(t, err)

	_, err = RepairLength([]float64{1000, -2e15}, 2, 0)
	assert.Error(t, err)

	edge, err := RepairLength([]float64{1e15, -1e15}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1e15, -1e15}, edge)

	_, err = BlendForecast(repeat(1e300, 7), repeat(1000, 7), 1000, DefaultBlendWeight)
	assert.Error(t, err)
}
