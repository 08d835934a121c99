package model

import "time"

// Position is the open long for one symbol. At most one exists per symbol
// at any time; the PositionStorage enforces it.
type Position struct {
	Symbol     string    `json:"symbol"`
	EntryPrice float64   `json:"entryPrice"`
	Quantity   float64   `json:"quantity"`
	OpenedAt   time.Time `json:"openedAt"`
}

func (p Position) IsValid() bool {
	return p.EntryPrice > 0.00 && p.Quantity > 0.00
}

func (p Position) GetNotional(price float64) float64 {
	return price * p.Quantity
}

func (p Position) GetProfit(sellPrice float64, quantity float64) float64 {
	return (sellPrice - p.EntryPrice) * quantity
}
