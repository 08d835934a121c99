package model

const OrderSideBuy = "BUY"
const OrderSideSell = "SELL"

const OrderStatusFilled = "FILLED"
const OrderStatusPartiallyFilled = "PARTIALLY_FILLED"
const OrderStatusExpired = "EXPIRED"

type Fill struct {
	Price           Number `json:"price"`
	Quantity        Number `json:"qty"`
	Commission      Number `json:"commission"`
	CommissionAsset string `json:"commissionAsset"`
}

type BinanceOrder struct {
	OrderId             int64  `json:"orderId"`
	Symbol              string `json:"symbol"`
	TransactTime        int64  `json:"transactTime"`
	OrigQty             Number `json:"origQty"`
	ExecutedQty         Number `json:"executedQty"`
	CummulativeQuoteQty Number `json:"cummulativeQuoteQty"`
	Status              string `json:"status"`
	Type                string `json:"type"`
	Side                string `json:"side"`
	Fills               []Fill `json:"fills"`
}

func (b *BinanceOrder) IsBuy() bool {
	return b.Side == OrderSideBuy
}

func (b *BinanceOrder) IsSell() bool {
	return b.Side == OrderSideSell
}

func (b *BinanceOrder) IsFilled() bool {
	return b.Status == OrderStatusFilled
}

func (b *BinanceOrder) HasExecutedQuantity() bool {
	return b.ExecutedQty.Value() > 0
}

func (b *BinanceOrder) GetExecutedQuantity() float64 {
	return b.ExecutedQty.Value()
}

// GetAvgPrice is the fill-weighted average execution price reported by the
// exchange. Falls back to cummulativeQuoteQty/executedQty when the fills
// list is absent from the confirmation.
func (b *BinanceOrder) GetAvgPrice() float64 {
	quoteSum := 0.00
	qtySum := 0.00

	for _, fill := range b.Fills {
		quoteSum += fill.Price.Value() * fill.Quantity.Value()
		qtySum += fill.Quantity.Value()
	}

	if qtySum > 0 {
		return quoteSum / qtySum
	}

	if b.ExecutedQty.Value() > 0 {
		return b.CummulativeQuoteQty.Value() / b.ExecutedQty.Value()
	}

	return 0.00
}

type Balance struct {
	Asset  string `json:"asset"`
	Free   Number `json:"free"`
	Locked Number `json:"locked"`
}

type AccountStatus struct {
	Balances []Balance `json:"balances"`
}
