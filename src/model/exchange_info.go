package model

const BinanceExchangeFilterTypeLotSize = "LOT_SIZE"
const BinanceExchangeFilterTypePrice = "PRICE_FILTER"
const BinanceExchangeFilterTypeNotional = "NOTIONAL"

type ExchangeFilter struct {
	FilterType  string  `json:"filterType"`
	MinPrice    *Number `json:"minPrice,omitempty"`
	TickSize    *Number `json:"tickSize,omitempty"`
	MinQuantity *Number `json:"minQty,omitempty"`
	MaxQuantity *Number `json:"maxQty,omitempty"`
	StepSize    *Number `json:"stepSize,omitempty"`
	MinNotional *Number `json:"minNotional,omitempty"`
}

type ExchangeSymbol struct {
	Symbol     string           `json:"symbol"`
	Status     string           `json:"status"`
	BaseAsset  string           `json:"baseAsset"`
	QuoteAsset string           `json:"quoteAsset"`
	Filters    []ExchangeFilter `json:"filters"`
}

func (e *ExchangeSymbol) IsTrading() bool {
	return e.Status == "TRADING"
}

// GetLotSizeStep returns the LOT_SIZE step reported by the exchange, or
// zero when the filter is missing.
func (e *ExchangeSymbol) GetLotSizeStep() float64 {
	for _, filter := range e.Filters {
		if filter.FilterType == BinanceExchangeFilterTypeLotSize && filter.StepSize != nil {
			return filter.StepSize.Value()
		}
	}

	return 0.00
}

func (e *ExchangeSymbol) GetMinNotional() float64 {
	for _, filter := range e.Filters {
		if filter.FilterType == BinanceExchangeFilterTypeNotional && filter.MinNotional != nil {
			return filter.MinNotional.Value()
		}
	}

	return 0.00
}

type ExchangeInfo struct {
	Symbols []ExchangeSymbol `json:"symbols"`
}
