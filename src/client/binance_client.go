package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	uuid2 "github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

type ExchangePriceAPIInterface interface {
	GetTickers24h() ([]model.Ticker24, error)
	GetKLines(symbol string, interval string, limit int64) []model.KLineHistory
	GetKLinesCached(symbol string, interval string, limit int64) model.CandleSeries
	GetDepth(symbol string, limit int64) (model.OrderBook, error)
	GetExchangeData(symbols []string) (*model.ExchangeInfo, error)
}

type ExchangeTradeAPIInterface interface {
	GetAccountStatus() (*model.AccountStatus, error)
	MarketOrder(symbol string, side string, quantity float64) (model.BinanceOrder, error)
}

type Binance struct {
	ApiKey    string
	ApiSecret string

	connection   *websocket.Conn
	Channel      chan []byte
	SocketWriter chan []byte
	RDB          *redis.Client
	Ctx          *context.Context

	WaitMode  bool
	Connected bool
	Lock      *sync.Mutex
}

func (b *Binance) IsWaitingMode() bool {
	b.Lock.Lock()
	isWaiting := b.WaitMode
	b.Lock.Unlock()

	return isWaiting
}

func (b *Binance) SetWaitingMode(isEnabled bool) {
	b.Lock.Lock()
	b.WaitMode = isEnabled
	b.Lock.Unlock()
}

func (b *Binance) CheckWait() {
	for {
		if !b.IsWaitingMode() {
			break
		}

		time.Sleep(time.Millisecond * 100)
	}
}

func (b *Binance) Connect(address string) {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		b.Connected = false
		log.Printf("Binance WS [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 10)
		b.Connect(address)
		return
	}

	// reader channel
	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Println("read: ", err)

				_ = connection.Close()
				b.Connected = false
				log.Printf("Binance WS, wait and reconnect...")
				time.Sleep(time.Second * 10)
				b.Connect(address)
				return
			}

			b.Channel <- message
		}
	}()

	// writer channel
	go func() {
		for {
			serialized := <-b.SocketWriter
			_ = b.connection.WriteMessage(websocket.TextMessage, serialized)
		}
	}()

	b.connection = connection
	b.Connected = true
	b.connection.SetPingHandler(nil)
}

func (b *Binance) socketRequest(req model.SocketRequest, channel chan []byte) {
	b.CheckWait()

	go func(req model.SocketRequest) {
		for {
			msg := <-b.Channel

			if strings.Contains(string(msg), "Too much request weight used") {
				b.SetWaitingMode(true)

				log.Printf(
					"[%s] Socket error [%s]: %s, wait 1 min and retry...",
					req.Method,
					req.Id,
					string(msg),
				)

				time.Sleep(time.Minute)
				serialized, _ := json.Marshal(req)
				b.SetWaitingMode(false)

				b.SocketWriter <- serialized
				log.Printf("[%s] retried...", req.Id)

				continue
			}

			if strings.Contains(string(msg), req.Id) {
				channel <- msg
				return
			}

			b.Channel <- msg
		}
	}(req)

	serialized, _ := json.Marshal(req)
	b.SocketWriter <- serialized
}

func (b *Binance) GetTickers24h() ([]model.Ticker24, error) {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "ticker.24hr",
		Params: make(map[string]any),
	}
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceTickersResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return nil, errors.New(response.Error.GetMessage())
	}

	return response.Result, nil
}

func (b *Binance) GetKLines(symbol string, interval string, limit int64) []model.KLineHistory {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "klines",
		Params: make(map[string]any),
	}

	socketRequest.Params["symbol"] = symbol
	socketRequest.Params["interval"] = interval
	socketRequest.Params["limit"] = limit
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceKLineResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Println(socketRequest)
		list := make([]model.KLineHistory, 0)
		return list
	}

	return response.Result
}

func (b *Binance) GetKLinesCached(symbol string, interval string, limit int64) model.CandleSeries {
	cacheKey := fmt.Sprintf("interval-kline-history-%s-%s-%d", symbol, interval, limit)
	res := b.RDB.Get(*b.Ctx, cacheKey).Val()
	if len(res) == 0 {
		historyKLines := b.GetKLines(symbol, interval, limit)
		kLines := make(model.CandleSeries, 0)
		for _, historyKLine := range historyKLines {
			kLines = append(kLines, historyKLine.ToKLine(symbol, interval))
		}

		encoded, err := json.Marshal(kLines)
		if err == nil {
			b.RDB.Set(*b.Ctx, cacheKey, string(encoded), time.Minute*1)
		}

		return kLines
	}

	var kLines model.CandleSeries
	err := json.Unmarshal([]byte(res), &kLines)
	if err != nil {
		log.Printf("[%s] kline[%s] history cache invalid: %s", symbol, interval, err.Error())
		b.RDB.Del(*b.Ctx, cacheKey)
		return b.GetKLinesCached(symbol, interval, limit)
	}

	return kLines
}

func (b *Binance) GetDepth(symbol string, limit int64) (model.OrderBook, error) {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "depth",
		Params: make(map[string]any),
	}
	socketRequest.Params["limit"] = limit
	socketRequest.Params["symbol"] = symbol
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.OrderBookResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		return model.OrderBook{}, errors.New(response.Error.GetMessage())
	}

	orderBook := response.Result
	orderBook.Symbol = symbol

	return orderBook, nil
}

func (b *Binance) GetExchangeData(symbols []string) (*model.ExchangeInfo, error) {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "exchangeInfo",
		Params: make(map[string]any),
	}
	if len(symbols) > 0 {
		socketRequest.Params["symbols"] = symbols
	}
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceExchangeInfoResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Println(socketRequest)
		return &model.ExchangeInfo{}, errors.New(response.Error.GetMessage())
	}

	return &response.Result, nil
}

func (b *Binance) GetAccountStatus() (*model.AccountStatus, error) {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "account.status",
		Params: make(map[string]any),
	}

	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.AccountStatusResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Println(socketRequest)

		return nil, errors.New(response.Error.GetMessage())
	}

	return &response.Result, nil
}

// MarketOrder places a MARKET order and returns the exchange confirmation,
// fills included. The caller persists only the confirmed price/quantity,
// never the pre-trade estimate.
func (b *Binance) MarketOrder(symbol string, side string, quantity float64) (model.BinanceOrder, error) {
	b.CheckWait()

	channel := make(chan []byte)
	defer close(channel)

	socketRequest := model.SocketRequest{
		Id:     uuid2.New().String(),
		Method: "order.place",
		Params: make(map[string]any),
	}
	socketRequest.Params["symbol"] = symbol
	socketRequest.Params["side"] = side
	socketRequest.Params["type"] = "MARKET"
	socketRequest.Params["quantity"] = strconv.FormatFloat(quantity, 'f', -1, 64)
	socketRequest.Params["newOrderRespType"] = "FULL"
	socketRequest.Params["apiKey"] = b.ApiKey
	socketRequest.Params["timestamp"] = time.Now().Unix() * 1000
	socketRequest.Params["signature"] = b.signature(socketRequest.Params)
	b.socketRequest(socketRequest, channel)
	message := <-channel

	var response model.BinanceOrderResponse
	json.Unmarshal(message, &response)

	if response.Error != nil {
		log.Printf("[%s] Market Order: %s", symbol, response.Error.GetMessage())

		return model.BinanceOrder{}, model.ExchangeError{
			Symbol:    symbol,
			Code:      response.Error.Code,
			Message:   response.Error.GetMessage(),
			Transient: response.Error.IsRateLimit(),
		}
	}

	return response.Result, nil
}

func (b *Binance) signature(params map[string]any) string {
	parts := make([]string, 0)

	keys := make([]string, 0, len(params))

	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, params[key]))
	}

	mac := hmac.New(sha256.New, []byte(b.ApiSecret))
	mac.Write([]byte(strings.Join(parts, "&")))
	signingKey := fmt.Sprintf("%x", mac.Sum(nil))

	return signingKey
}
