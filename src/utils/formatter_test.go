package utils

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestStepPrecision(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(3, formatter.StepPrecision(0.001))
	assertion.Equal(5, formatter.StepPrecision(0.00001))
	assertion.Equal(0, formatter.StepPrecision(1.00))
	assertion.Equal(0, formatter.StepPrecision(0.00))
}

func TestFloorByPrecision(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(0.009, formatter.FloorByPrecision(0.00999, 3))
	assertion.Equal(0.00, formatter.FloorByPrecision(0.0009, 3))
	assertion.Equal(12.0, formatter.FloorByPrecision(12.73, 0))

	// binary representation noise must not eat a whole step
	assertion.Equal(0.29, formatter.FloorByPrecision(0.29, 2))
}

func TestOnePrecisionStep(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.InDelta(0.001, formatter.OnePrecisionStep(3), 0.0000001)
	assertion.InDelta(1.00, formatter.OnePrecisionStep(0), 0.0000001)
}

func TestToFixed(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	assertion.Equal(2212.93, formatter.ToFixed(2212.926, 2))
	assertion.Equal(2212.92, formatter.ToFixed(2212.924, 2))
}
