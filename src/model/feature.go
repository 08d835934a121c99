package model

import "math"

// FeatureVector maps model feature names to values for one symbol and one
// cycle. The ordering the classifier expects is owned by the classifier
// metadata, not by this type.
type FeatureVector map[string]float64

func (f FeatureVector) IsFinite() bool {
	for _, value := range f {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}

	return true
}

func (f FeatureVector) MissingNames(required []string) []string {
	missing := make([]string, 0)
	for _, name := range required {
		if _, ok := f[name]; !ok {
			missing = append(missing, name)
		}
	}

	return missing
}

const ClassSell = "SELL"
const ClassHold = "HOLD"
const ClassBuy = "BUY"

// Prediction holds classifier probabilities resolved by class label.
type Prediction struct {
	Symbol        string             `json:"symbol"`
	ModelVersion  string             `json:"modelVersion"`
	Probabilities map[string]float64 `json:"probabilities"`
}

func (p Prediction) confidence(class string) Percent {
	return Percent(p.Probabilities[class] * 100.00)
}

func (p Prediction) BuyConfidence() Percent {
	return p.confidence(ClassBuy)
}

func (p Prediction) SellConfidence() Percent {
	return p.confidence(ClassSell)
}

func (p Prediction) HoldConfidence() Percent {
	return p.confidence(ClassHold)
}
