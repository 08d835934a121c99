// Package indicator provides technical analysis primitives over OHLCV
// series. Every function returns a series aligned 1:1 with its input;
// entries inside the warm-up window are NaN and must be checked with
// IsDefined before use.
package indicator

import "math"

// WarmupBars is the minimum series length that guarantees a fully defined
// latest row across the whole indicator set. RSI(14) is the widest: one bar
// consumed by the close-to-close delta plus a 14-bar rolling window.
const WarmupBars = 15

func IsDefined(value float64) bool {
	return !math.IsNaN(value)
}

func undefinedSeries(length int) []float64 {
	values := make([]float64, length)
	for i := range values {
		values[i] = math.NaN()
	}

	return values
}

// SMA is the simple moving average over the trailing `period` entries.
func SMA(values []float64, period int) []float64 {
	result := undefinedSeries(len(values))

	sum := 0.00
	for i, value := range values {
		sum += value
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			result[i] = sum / float64(period)
		}
	}

	return result
}

// EMA uses alpha = 2/(span+1), seeded with the first value, no bias
// adjustment.
func EMA(values []float64, span int) []float64 {
	result := undefinedSeries(len(values))
	if len(values) == 0 {
		return result
	}

	alpha := 2.00 / float64(span+1)
	ema := values[0]
	result[0] = ema

	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1.00-alpha)*ema
		result[i] = ema
	}

	return result
}

// RSI uses rolling means of gains and losses over `period` close-to-close
// deltas. A zero-loss window yields 100, a zero-gain window yields 0; the
// division-by-zero case is handled explicitly, never NaN.
func RSI(closes []float64, period int) []float64 {
	result := undefinedSeries(len(closes))

	gains := undefinedSeries(len(closes))
	losses := undefinedSeries(len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains[i] = math.Max(delta, 0.00)
		losses[i] = math.Max(-delta, 0.00)
	}

	for i := period; i < len(closes); i++ {
		avgGain := 0.00
		avgLoss := 0.00
		for j := i - period + 1; j <= i; j++ {
			avgGain += gains[j]
			avgLoss += losses[j]
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)

		if avgLoss == 0.00 {
			result[i] = 100.00
			continue
		}

		rs := avgGain / avgLoss
		result[i] = 100.00 - (100.00 / (1.00 + rs))
	}

	return result
}

// MACD is EMA(fast) - EMA(slow) of closes. The signal line is a separate
// EMA of the returned series.
func MACD(closes []float64, fastSpan int, slowSpan int) []float64 {
	fast := EMA(closes, fastSpan)
	slow := EMA(closes, slowSpan)

	result := undefinedSeries(len(closes))
	for i := range closes {
		result[i] = fast[i] - slow[i]
	}

	return result
}

// VolumeSpikePercent is (volume - SMA(volume)) / SMA(volume) * 100,
// undefined when the moving average is zero.
func VolumeSpikePercent(volumes []float64, period int) []float64 {
	result := undefinedSeries(len(volumes))
	sma := SMA(volumes, period)

	for i := range volumes {
		if !IsDefined(sma[i]) || sma[i] == 0.00 {
			continue
		}

		result[i] = (volumes[i] - sma[i]) / sma[i] * 100.00
	}

	return result
}

// ATR is the rolling mean of the high-low range.
func ATR(highs []float64, lows []float64, period int) []float64 {
	ranges := make([]float64, len(highs))
	for i := range highs {
		ranges[i] = highs[i] - lows[i]
	}

	return SMA(ranges, period)
}

// Momentum is close - close `period` bars ago.
func Momentum(closes []float64, period int) []float64 {
	result := undefinedSeries(len(closes))
	for i := period; i < len(closes); i++ {
		result[i] = closes[i] - closes[i-period]
	}

	return result
}

// Volatility is the rolling sample standard deviation of closes.
func Volatility(closes []float64, period int) []float64 {
	result := undefinedSeries(len(closes))
	if period < 2 {
		return result
	}

	for i := period - 1; i < len(closes); i++ {
		mean := 0.00
		for j := i - period + 1; j <= i; j++ {
			mean += closes[j]
		}
		mean /= float64(period)

		variance := 0.00
		for j := i - period + 1; j <= i; j++ {
			variance += (closes[j] - mean) * (closes[j] - mean)
		}
		variance /= float64(period - 1)

		result[i] = math.Sqrt(variance)
	}

	return result
}

// NormalizedVolume is volume divided by its rolling mean.
func NormalizedVolume(volumes []float64, period int) []float64 {
	result := undefinedSeries(len(volumes))
	sma := SMA(volumes, period)

	for i := range volumes {
		if !IsDefined(sma[i]) || sma[i] == 0.00 {
			continue
		}

		result[i] = volumes[i] / sma[i]
	}

	return result
}

// PriceAboveEMA is a 1.0/0.0 flag for close > EMA(span).
func PriceAboveEMA(closes []float64, span int) []float64 {
	result := undefinedSeries(len(closes))
	ema := EMA(closes, span)

	for i := range closes {
		if closes[i] > ema[i] {
			result[i] = 1.00
		} else {
			result[i] = 0.00
		}
	}

	return result
}
