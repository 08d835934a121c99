package utils

import (
	"math"
	"strconv"
	"strings"
)

type Formatter struct {
}

// StepPrecision derives the decimal precision from an exchange-reported
// lot-size step, e.g. 0.001 -> 3. A zero step means whole units.
func (m *Formatter) StepPrecision(step float64) int {
	if step <= 0.00 {
		return 0
	}

	split := strings.Split(strconv.FormatFloat(step, 'f', -1, 64), ".")
	if len(split) < 2 {
		return 0
	}

	return len(strings.TrimRight(split[1], "0"))
}

// FloorByPrecision rounds a quantity down so it never exceeds what the
// balance or the notional budget covers.
func (m *Formatter) FloorByPrecision(value float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))

	return math.Floor(value*ratio+1e-9) / ratio
}

// OnePrecisionStep is the smallest representable quantity at the given
// precision, used as a safety margin on SELL rounding.
func (m *Formatter) OnePrecisionStep(precision int) float64 {
	return math.Pow(10, -float64(precision))
}

func (m *Formatter) Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func (m *Formatter) ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))

	return float64(m.Round(num*output)) / output
}
