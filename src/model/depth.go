package model

type OrderBook struct {
	Symbol       string      `json:"symbol"`
	LastUpdateId int64       `json:"lastUpdateId"`
	Bids         [][2]Number `json:"bids"`
	Asks         [][2]Number `json:"asks"`
}

func (d *OrderBook) IsEmpty() bool {
	return len(d.Asks) == 0 && len(d.Bids) == 0
}

func (d *OrderBook) GetBestBid() float64 {
	if len(d.Bids) > 0 {
		return d.Bids[0][0].Value()
	}

	return 0.00
}

func (d *OrderBook) GetBestAsk() float64 {
	if len(d.Asks) > 0 {
		return d.Asks[0][0].Value()
	}

	return 0.00
}

// GetBidValueSum is the quote-currency value resting on the top `levels`
// bid levels. Used by the exit-liquidity gate.
func (d *OrderBook) GetBidValueSum(levels int) float64 {
	sum := 0.00
	for i, bid := range d.Bids {
		if i >= levels {
			break
		}

		sum += bid[0].Value() * bid[1].Value()
	}

	return sum
}

func (d *OrderBook) GetSpreadRatio() float64 {
	bestAsk := d.GetBestAsk()
	if bestAsk == 0.00 {
		return 0.00
	}

	return d.GetBestBid() / bestAsk
}
