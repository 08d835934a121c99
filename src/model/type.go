package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Number accepts both quoted and bare numeric JSON values. Binance
// serializes prices and quantities as strings in most payloads, but not all.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		floatValue, _ := strconv.ParseFloat(strValue, 64)
		*n = Number(floatValue)
		return nil
	}

	var floatValue float64
	err = json.Unmarshal(b, &floatValue)

	if err == nil {
		*n = Number(floatValue)
		return nil
	}

	return errors.New(fmt.Sprintf("Number: unsupported data type given, %s", err.Error()))
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value())
}

func (n Number) Value() float64 {
	return float64(n)
}

type TimestampMilli int64

func (t *TimestampMilli) UnmarshalJSON(b []byte) error {
	var strValue string
	err := json.Unmarshal(b, &strValue)
	if err == nil {
		intValue, _ := strconv.ParseInt(strValue, 10, 64)
		*t = TimestampMilli(intValue)
		return nil
	}

	var intValue int64
	err = json.Unmarshal(b, &intValue)

	if err == nil {
		*t = TimestampMilli(intValue)
		return nil
	}

	return errors.New(fmt.Sprintf("TimestampMilli: unsupported data type given, %s", err.Error()))
}

func (t TimestampMilli) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(t))
}

func (t TimestampMilli) Value() int64 {
	return int64(t)
}

func (t TimestampMilli) Time() time.Time {
	return time.UnixMilli(int64(t))
}

func parseNumber(value string) Number {
	floatValue, _ := strconv.ParseFloat(value, 64)

	return Number(floatValue)
}

func unmarshalPositional(data []byte, dest []interface{}) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	for i := 0; i < len(items) && i < len(dest); i++ {
		if err := json.Unmarshal(items[i], dest[i]); err != nil {
			return err
		}
	}

	return nil
}

type Percent float64

func (p Percent) Value() float64 {
	return float64(p)
}

func (p Percent) Gte(percent Percent) bool {
	return p >= percent
}

func (p Percent) Lt(percent Percent) bool {
	return p < percent
}
