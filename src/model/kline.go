package model

type KLine struct {
	Symbol    string         `json:"s"`
	Interval  string         `json:"i"`
	OpenTime  TimestampMilli `json:"t"`
	CloseTime TimestampMilli `json:"T"`
	Open      Number         `json:"o"`
	High      Number         `json:"h"`
	Low       Number         `json:"l"`
	Close     Number         `json:"c"`
	Volume    Number         `json:"v"`
}

func (k *KLine) IsPositive() bool {
	return k.Close > k.Open
}

func (k *KLine) IsNegative() bool {
	return k.Close < k.Open
}

// KLineHistory is one row of the positional kline array returned by the
// `klines` API method.
type KLineHistory struct {
	OpenTime                 TimestampMilli
	Open                     string
	High                     string
	Low                      string
	Close                    string
	Volume                   string
	CloseTime                TimestampMilli
	QuoteAssetVolume         string
	TradesNumber             int64
	TakerBuyBaseAssetVolume  string
	TakerBuyQuoteAssetVolume string
	UnusedField              string
}

func (k *KLineHistory) UnmarshalJSON(data []byte) error {
	dest := []interface{}{
		&k.OpenTime,
		&k.Open,
		&k.High,
		&k.Low,
		&k.Close,
		&k.Volume,
		&k.CloseTime,
		&k.QuoteAssetVolume,
		&k.TradesNumber,
		&k.TakerBuyBaseAssetVolume,
		&k.TakerBuyQuoteAssetVolume,
		&k.UnusedField,
	}

	return unmarshalPositional(data, dest)
}

func (k *KLineHistory) ToKLine(symbol string, interval string) KLine {
	return KLine{
		Symbol:    symbol,
		Interval:  interval,
		OpenTime:  k.OpenTime,
		CloseTime: k.CloseTime,
		Open:      parseNumber(k.Open),
		High:      parseNumber(k.High),
		Low:       parseNumber(k.Low),
		Close:     parseNumber(k.Close),
		Volume:    parseNumber(k.Volume),
	}
}

// CandleSeries is an ordered OHLCV sequence for one symbol and timeframe.
// IsOrdered reports whether open times are strictly increasing, which every
// indicator consumer relies on.
type CandleSeries []KLine

func (s CandleSeries) IsOrdered() bool {
	for i := 1; i < len(s); i++ {
		if s[i].OpenTime <= s[i-1].OpenTime {
			return false
		}
	}

	return true
}

func (s CandleSeries) Closes() []float64 {
	values := make([]float64, len(s))
	for i, kLine := range s {
		values[i] = kLine.Close.Value()
	}

	return values
}

func (s CandleSeries) Highs() []float64 {
	values := make([]float64, len(s))
	for i, kLine := range s {
		values[i] = kLine.High.Value()
	}

	return values
}

func (s CandleSeries) Lows() []float64 {
	values := make([]float64, len(s))
	for i, kLine := range s {
		values[i] = kLine.Low.Value()
	}

	return values
}

func (s CandleSeries) Volumes() []float64 {
	values := make([]float64, len(s))
	for i, kLine := range s {
		values[i] = kLine.Volume.Value()
	}

	return values
}
