package model

import (
	"fmt"
	"time"
)

const TradeTagCore = "core"

// TradeRecord is one immutable row of the append-only trade log. The log is
// the source of truth for realized P&L reconstruction.
type TradeRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Symbol     string    `json:"symbol"`
	Side       string    `json:"side"`
	Confidence Percent   `json:"confidence"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	Tag        string    `json:"tag"`
}

func (t TradeRecord) IsBuy() bool {
	return t.Side == OrderSideBuy
}

func (t TradeRecord) IsSell() bool {
	return t.Side == OrderSideSell
}

type DailyPnl struct {
	Date        string  `json:"date"`
	RealizedPnl float64 `json:"realizedPnl"`
}

func (d DailyPnl) String() string {
	return fmt.Sprintf("%s: %.2f USDT", d.Date, d.RealizedPnl)
}
