package ml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"net/http"
	"slices"
)

type ClassifierInterface interface {
	Predict(symbol string, features model.FeatureVector) (model.Prediction, error)
	GetRequiredFeatures() []string
	GetModelVersion() string
}

// Metadata is the scoring server's self-description. Probabilities in a
// predict response are positional and aligned with Classes; the adapter
// resolves them by label so a retrained model may reorder its classes
// without breaking the engine.
type Metadata struct {
	ModelVersion string   `json:"model_version"`
	FeatureNames []string `json:"feature_names"`
	Classes      []string `json:"classes"`
}

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// ClassifierClient scores feature vectors against an externally trained and
// versioned model behind an HTTP sidecar. It performs no training and keeps
// no model state beyond the metadata loaded at startup.
type ClassifierClient struct {
	BaseURL    string
	HttpClient *http.Client

	metadata Metadata
}

// Initialize loads /metadata once. The caller treats failure as fatal: an
// engine that cannot learn the model's feature order must not trade.
func (c *ClassifierClient) Initialize() error {
	response, err := c.HttpClient.Get(fmt.Sprintf("%s/metadata", c.BaseURL))
	if err != nil {
		return fmt.Errorf("classifier metadata: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("classifier metadata: status %d", response.StatusCode)
	}

	var metadata Metadata
	if err = json.NewDecoder(response.Body).Decode(&metadata); err != nil {
		return fmt.Errorf("classifier metadata: %w", err)
	}

	if len(metadata.FeatureNames) == 0 {
		return fmt.Errorf("classifier metadata: empty feature name list")
	}

	for _, class := range []string{model.ClassSell, model.ClassHold, model.ClassBuy} {
		if !slices.Contains(metadata.Classes, class) {
			return fmt.Errorf("classifier metadata: class %s is not served", class)
		}
	}

	c.metadata = metadata
	log.Printf("Classifier model %s: %d features, classes %v", metadata.ModelVersion, len(metadata.FeatureNames), metadata.Classes)

	return nil
}

func (c *ClassifierClient) GetRequiredFeatures() []string {
	return c.metadata.FeatureNames
}

func (c *ClassifierClient) GetModelVersion() string {
	return c.metadata.ModelVersion
}

func (c *ClassifierClient) Predict(symbol string, features model.FeatureVector) (model.Prediction, error) {
	missing := features.MissingNames(c.metadata.FeatureNames)
	if len(missing) > 0 {
		return model.Prediction{}, model.SchemaError{Symbol: symbol, Missing: missing}
	}

	ordered := make([]float64, 0, len(c.metadata.FeatureNames))
	for _, name := range c.metadata.FeatureNames {
		ordered = append(ordered, features[name])
	}

	body, err := json.Marshal(predictRequest{Features: ordered})
	if err != nil {
		return model.Prediction{}, err
	}

	response, err := c.HttpClient.Post(fmt.Sprintf("%s/predict", c.BaseURL), "application/json", bytes.NewReader(body))
	if err != nil {
		return model.Prediction{}, model.DataError{Symbol: symbol, Reason: fmt.Sprintf("classifier unreachable: %s", err.Error())}
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return model.Prediction{}, model.DataError{Symbol: symbol, Reason: fmt.Sprintf("classifier status %d", response.StatusCode)}
	}

	var payload predictResponse
	if err = json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return model.Prediction{}, model.DataError{Symbol: symbol, Reason: fmt.Sprintf("classifier response: %s", err.Error())}
	}

	if len(payload.Probabilities) != len(c.metadata.Classes) {
		return model.Prediction{}, model.SchemaError{
			Symbol:  symbol,
			Missing: []string{fmt.Sprintf("expected %d probabilities, got %d", len(c.metadata.Classes), len(payload.Probabilities))},
		}
	}

	probabilities := make(map[string]float64, len(c.metadata.Classes))
	for i, class := range c.metadata.Classes {
		probabilities[class] = payload.Probabilities[i]
	}

	return model.Prediction{
		Symbol:        symbol,
		ModelVersion:  c.metadata.ModelVersion,
		Probabilities: probabilities,
	}, nil
}
