package model

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNumberUnmarshalsQuotedAndBareValues(t *testing.T) {
	assertion := assert.New(t)

	var quoted Number
	assertion.NoError(json.Unmarshal([]byte(`"2212.92"`), &quoted))
	assertion.Equal(2212.92, quoted.Value())

	var bare Number
	assertion.NoError(json.Unmarshal([]byte(`0.0089`), &bare))
	assertion.Equal(0.0089, bare.Value())
}

func TestTimestampMilliUnmarshalsQuotedAndBareValues(t *testing.T) {
	assertion := assert.New(t)

	var quoted TimestampMilli
	assertion.NoError(json.Unmarshal([]byte(`"1703764320000"`), &quoted))
	assertion.Equal(int64(1703764320000), quoted.Value())

	var bare TimestampMilli
	assertion.NoError(json.Unmarshal([]byte(`1703764320000`), &bare))
	assertion.Equal(quoted, bare)
}

func TestKLineHistoryPositionalUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	raw := `[1703764320000,"2212.92","2214.00","2210.10","2213.50","153.2",1703764379999,"339000.12",842,"77.1","170600.55","0"]`

	var history KLineHistory
	assertion.NoError(json.Unmarshal([]byte(raw), &history))

	kLine := history.ToKLine("ETHUSDT", "5m")
	assertion.Equal("ETHUSDT", kLine.Symbol)
	assertion.Equal("5m", kLine.Interval)
	assertion.Equal(2212.92, kLine.Open.Value())
	assertion.Equal(2213.50, kLine.Close.Value())
	assertion.Equal(153.20, kLine.Volume.Value())
	assertion.Equal(int64(1703764320000), kLine.OpenTime.Value())
}

func TestCandleSeriesIsOrdered(t *testing.T) {
	assertion := assert.New(t)

	ordered := CandleSeries{
		{OpenTime: 1000},
		{OpenTime: 2000},
		{OpenTime: 3000},
	}
	assertion.True(ordered.IsOrdered())

	duplicated := CandleSeries{
		{OpenTime: 1000},
		{OpenTime: 1000},
	}
	assertion.False(duplicated.IsOrdered())
}

func TestPercentComparison(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(Percent(75.00).Gte(Percent(75.00)))
	assertion.True(Percent(80.00).Gte(Percent(75.00)))
	assertion.True(Percent(74.99).Lt(Percent(75.00)))
}

func TestFeatureVectorMissingNames(t *testing.T) {
	assertion := assert.New(t)

	features := FeatureVector{"rsi_14_1h": 55.00, "news_sentiment": 0.00}

	missing := features.MissingNames([]string{"rsi_14_1h", "macd_1h", "news_sentiment"})
	assertion.Equal([]string{"macd_1h"}, missing)

	assertion.Empty(features.MissingNames([]string{"rsi_14_1h"}))
}
