package service

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/config"
	"log"
	"net/http"
	"net/url"
	"strings"
)

type SentimentProviderInterface interface {
	GetSentimentScore(symbol string) float64
}

type cryptoPanicPost struct {
	Votes struct {
		Positive int `json:"positive"`
		Negative int `json:"negative"`
	} `json:"votes"`
}

type cryptoPanicResponse struct {
	Results []cryptoPanicPost `json:"results"`
}

// CryptoPanicSentiment scores recent news for a base asset in [-1, 1].
// Sentiment is an enrichment signal only: any provider failure degrades to
// a neutral 0 so a news outage never stalls the trading cycle.
type CryptoPanicSentiment struct {
	HttpClient *http.Client
	RDB        *redis.Client
	Ctx        *context.Context
	Config     config.SentimentConfig
	QuoteAsset string
}

func (s *CryptoPanicSentiment) GetSentimentScore(symbol string) float64 {
	if s.Config.ApiToken == "" {
		return 0.00
	}

	baseAsset := strings.TrimSuffix(symbol, s.QuoteAsset)

	cacheKey := fmt.Sprintf("news-sentiment-%s", baseAsset)
	res := s.RDB.Get(*s.Ctx, cacheKey).Val()
	if len(res) > 0 {
		var score float64
		if err := json.Unmarshal([]byte(res), &score); err == nil {
			return score
		}
	}

	score, err := s.fetchScore(baseAsset)
	if err != nil {
		log.Printf("[%s] Sentiment fetch failed, using neutral: %s", symbol, err.Error())

		return 0.00
	}

	if encoded, err := json.Marshal(score); err == nil {
		s.RDB.Set(*s.Ctx, cacheKey, string(encoded), s.Config.CacheTTL.Value())
	}

	return score
}

func (s *CryptoPanicSentiment) fetchScore(baseAsset string) (float64, error) {
	query := url.Values{}
	query.Set("auth_token", s.Config.ApiToken)
	query.Set("currencies", baseAsset)
	query.Set("public", "true")

	response, err := s.HttpClient.Get(fmt.Sprintf("%s/posts/?%s", s.Config.BaseURL, query.Encode()))
	if err != nil {
		return 0.00, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return 0.00, fmt.Errorf("cryptopanic status %d", response.StatusCode)
	}

	var payload cryptoPanicResponse
	if err = json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return 0.00, err
	}

	if len(payload.Results) == 0 {
		return 0.00, nil
	}

	positive := 0
	negative := 0
	for _, post := range payload.Results {
		positive += post.Votes.Positive
		negative += post.Votes.Negative
	}

	total := positive + negative
	if total == 0 {
		return 0.00, nil
	}

	return float64(positive-negative) / float64(total), nil
}
