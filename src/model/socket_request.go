package model

import "strings"

type SocketRequest struct {
	Id     string         `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
}

type Error struct {
	Code    int64  `json:"code"`
	Message string `json:"msg"`
}

// @see https://binance-docs.github.io/apidocs/websocket_api/en/#error-codes
const BinanceErrorCodeRateLimit = -1003
const BinanceErrorCodeTooManyOrders = -1015
const BinanceErrorCodeInvalidQuantity = -1013
const BinanceErrorCodeNewOrderRejected = -2010

func (e *Error) GetMessage() string {
	return e.Message
}

func (e *Error) IsRateLimit() bool {
	return e.Code == BinanceErrorCodeRateLimit || e.Code == BinanceErrorCodeTooManyOrders
}

func (e *Error) IsInsufficientBalance() bool {
	return e.Code == BinanceErrorCodeNewOrderRejected && strings.Contains(e.Message, "insufficient balance")
}

func (e *Error) IsFilterFailure() bool {
	return e.Code == BinanceErrorCodeInvalidQuantity || strings.Contains(e.Message, "Filter failure")
}

type OrderBookResponse struct {
	Id     string    `json:"id"`
	Status int64     `json:"status"`
	Result OrderBook `json:"result"`
	Error  *Error    `json:"error"`
}

type BinanceKLineResponse struct {
	Id     string         `json:"id"`
	Status int64          `json:"status"`
	Result []KLineHistory `json:"result"`
	Error  *Error         `json:"error"`
}

type BinanceTickersResponse struct {
	Id     string     `json:"id"`
	Status int64      `json:"status"`
	Result []Ticker24 `json:"result"`
	Error  *Error     `json:"error"`
}

type BinanceOrderResponse struct {
	Id     string       `json:"id"`
	Status int64        `json:"status"`
	Result BinanceOrder `json:"result"`
	Error  *Error       `json:"error"`
}

type BinanceExchangeInfoResponse struct {
	Id     string       `json:"id"`
	Status int64        `json:"status"`
	Result ExchangeInfo `json:"result"`
	Error  *Error       `json:"error"`
}

type AccountStatusResponse struct {
	Id     string        `json:"id"`
	Status int64         `json:"status"`
	Result AccountStatus `json:"result"`
	Error  *Error        `json:"error"`
}
