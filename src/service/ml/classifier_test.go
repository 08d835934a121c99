package ml

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"net/http"
	"net/http/httptest"
	"testing"
)

func scoringServer(t *testing.T, metadata Metadata, probabilities []float64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/metadata":
			_ = json.NewEncoder(w).Encode(metadata)
		case "/predict":
			var request struct {
				Features []float64 `json:"features"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
			assert.Len(t, request.Features, len(metadata.FeatureNames))

			_ = json.NewEncoder(w).Encode(map[string]any{"probabilities": probabilities})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestInitializeLoadsMetadata(t *testing.T) {
	assertion := assert.New(t)

	server := scoringServer(t, Metadata{
		ModelVersion: "xgb-2024-01-10",
		FeatureNames: []string{"rsi_14_1h", "macd_1h", "news_sentiment"},
		Classes:      []string{"SELL", "HOLD", "BUY"},
	}, nil)
	defer server.Close()

	classifier := ClassifierClient{BaseURL: server.URL, HttpClient: server.Client()}

	assertion.NoError(classifier.Initialize())
	assertion.Equal("xgb-2024-01-10", classifier.GetModelVersion())
	assertion.Equal([]string{"rsi_14_1h", "macd_1h", "news_sentiment"}, classifier.GetRequiredFeatures())
}

func TestInitializeFailsOnMissingClass(t *testing.T) {
	assertion := assert.New(t)

	server := scoringServer(t, Metadata{
		ModelVersion: "xgb-2024-01-10",
		FeatureNames: []string{"rsi_14_1h"},
		Classes:      []string{"SELL", "BUY"},
	}, nil)
	defer server.Close()

	classifier := ClassifierClient{BaseURL: server.URL, HttpClient: server.Client()}

	assertion.Error(classifier.Initialize())
}

func TestInitializeFailsWhenServerIsDown(t *testing.T) {
	assertion := assert.New(t)

	classifier := ClassifierClient{BaseURL: "http://127.0.0.1:1", HttpClient: http.DefaultClient}

	assertion.Error(classifier.Initialize())
}

func TestPredictResolvesClassesByLabel(t *testing.T) {
	assertion := assert.New(t)

	// classes deliberately served in a non-standard order
	server := scoringServer(t, Metadata{
		ModelVersion: "xgb-2024-01-10",
		FeatureNames: []string{"rsi_14_1h", "macd_1h", "news_sentiment"},
		Classes:      []string{"BUY", "SELL", "HOLD"},
	}, []float64{0.81, 0.07, 0.12})
	defer server.Close()

	classifier := ClassifierClient{BaseURL: server.URL, HttpClient: server.Client()}
	assertion.NoError(classifier.Initialize())

	prediction, err := classifier.Predict("ETHUSDT", model.FeatureVector{
		"rsi_14_1h":      55.00,
		"macd_1h":        1.20,
		"news_sentiment": 0.25,
	})

	assertion.NoError(err)
	assertion.Equal("xgb-2024-01-10", prediction.ModelVersion)
	assertion.Equal(81.00, prediction.BuyConfidence().Value())
	assertion.Equal(7.00, prediction.SellConfidence().Value())
	assertion.Equal(12.00, prediction.HoldConfidence().Value())
}

func TestPredictFailsOnMissingFeature(t *testing.T) {
	assertion := assert.New(t)

	server := scoringServer(t, Metadata{
		ModelVersion: "xgb-2024-01-10",
		FeatureNames: []string{"rsi_14_1h", "macd_1h"},
		Classes:      []string{"SELL", "HOLD", "BUY"},
	}, []float64{0.10, 0.80, 0.10})
	defer server.Close()

	classifier := ClassifierClient{BaseURL: server.URL, HttpClient: server.Client()}
	assertion.NoError(classifier.Initialize())

	_, err := classifier.Predict("ETHUSDT", model.FeatureVector{"rsi_14_1h": 55.00})

	assertion.True(model.IsSchemaError(err))
}

func TestPredictFailsOnProbabilityCountMismatch(t *testing.T) {
	assertion := assert.New(t)

	server := scoringServer(t, Metadata{
		ModelVersion: "xgb-2024-01-10",
		FeatureNames: []string{"rsi_14_1h"},
		Classes:      []string{"SELL", "HOLD", "BUY"},
	}, []float64{0.50, 0.50})
	defer server.Close()

	classifier := ClassifierClient{BaseURL: server.URL, HttpClient: server.Client()}
	assertion.NoError(classifier.Initialize())

	_, err := classifier.Predict("ETHUSDT", model.FeatureVector{"rsi_14_1h": 55.00})

	assertion.True(model.IsSchemaError(err))
}
