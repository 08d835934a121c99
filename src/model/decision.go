package model

const OutcomeBuy = "BUY"
const OutcomeSell = "SELL"
const OutcomeHold = "HOLD"
const OutcomeSkip = "SKIP"

// Outcome summarizes what the signal engine did with one symbol in one
// cycle. Skips carry the reason for metrics and the cycle log.
type Outcome struct {
	Symbol         string  `json:"symbol"`
	Action         string  `json:"action"`
	Reason         string  `json:"reason"`
	BuyConfidence  Percent `json:"buyConfidence"`
	SellConfidence Percent `json:"sellConfidence"`
}

func (o Outcome) IsTrade() bool {
	return o.Action == OutcomeBuy || o.Action == OutcomeSell
}
