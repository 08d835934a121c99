package model

// Ticker24 is one entry of the `ticker.24hr` response.
type Ticker24 struct {
	Symbol      string `json:"symbol"`
	LastPrice   Number `json:"lastPrice"`
	BidPrice    Number `json:"bidPrice"`
	AskPrice    Number `json:"askPrice"`
	Volume      Number `json:"volume"`
	QuoteVolume Number `json:"quoteVolume"`
}

func (t *Ticker24) HasQuoteAsset(quoteAsset string) bool {
	return len(t.Symbol) > len(quoteAsset) && t.Symbol[len(t.Symbol)-len(quoteAsset):] == quoteAsset
}

func (t *Ticker24) GetBaseAsset(quoteAsset string) string {
	if !t.HasQuoteAsset(quoteAsset) {
		return t.Symbol
	}

	return t.Symbol[:len(t.Symbol)-len(quoteAsset)]
}
