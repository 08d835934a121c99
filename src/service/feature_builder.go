package service

import (
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/client"
	"gitlab.com/open-soft/go-signal-bot/src/indicator"
	"gitlab.com/open-soft/go-signal-bot/src/model"
)

type FeatureBuilderInterface interface {
	Build(symbol string) (model.FeatureVector, error)
}

// FeatureBuilder assembles the classifier input for one symbol: the latest
// fully defined indicator row per configured timeframe plus the news
// sentiment score. Insufficient history is a per-symbol DataError, never a
// cycle abort.
type FeatureBuilder struct {
	Binance    client.ExchangePriceAPIInterface
	Sentiment  SentimentProviderInterface
	Timeframes []string
	KlineLimit int64
}

func (b *FeatureBuilder) Build(symbol string) (model.FeatureVector, error) {
	features := make(model.FeatureVector)

	for _, timeframe := range b.Timeframes {
		series := b.Binance.GetKLinesCached(symbol, timeframe, b.KlineLimit)

		if len(series) < indicator.WarmupBars+1 {
			return nil, model.DataError{
				Symbol: symbol,
				Reason: fmt.Sprintf("insufficient %s history: %d bars", timeframe, len(series)),
			}
		}

		if !series.IsOrdered() {
			return nil, model.DataError{Symbol: symbol, Reason: fmt.Sprintf("%s series is out of order", timeframe)}
		}

		if err := b.appendTimeframe(features, symbol, timeframe, series); err != nil {
			return nil, err
		}
	}

	features["news_sentiment"] = b.Sentiment.GetSentimentScore(symbol)

	if !features.IsFinite() {
		return nil, model.DataError{Symbol: symbol, Reason: "non-finite feature value"}
	}

	return features, nil
}

func (b *FeatureBuilder) appendTimeframe(
	features model.FeatureVector,
	symbol string,
	timeframe string,
	series model.CandleSeries,
) error {
	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	macd := indicator.MACD(closes, 12, 26)

	row := map[string][]float64{
		"rsi_14":            indicator.RSI(closes, 14),
		"macd":              macd,
		"macd_signal":       indicator.EMA(macd, 9),
		"volume_spike_%":    indicator.VolumeSpikePercent(volumes, 8),
		"price_above_ema":   indicator.PriceAboveEMA(closes, 20),
		"atr":               indicator.ATR(highs, lows, 14),
		"momentum":          indicator.Momentum(closes, 5),
		"volatility":        indicator.Volatility(closes, 14),
		"normalized_volume": indicator.NormalizedVolume(volumes, 14),
	}

	last := len(series) - 1

	for name, values := range row {
		value := values[last]
		if !indicator.IsDefined(value) {
			return model.DataError{
				Symbol: symbol,
				Reason: fmt.Sprintf("%s undefined at latest %s bar", name, timeframe),
			}
		}

		features[fmt.Sprintf("%s_%s", name, timeframe)] = value
	}

	return nil
}
