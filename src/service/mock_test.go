package service

import (
	"github.com/stretchr/testify/mock"
	"gitlab.com/open-soft/go-signal-bot/src/model"
)

type ExchangePriceAPIMock struct {
	mock.Mock
}

func (m *ExchangePriceAPIMock) GetTickers24h() ([]model.Ticker24, error) {
	args := m.Called()
	return args.Get(0).([]model.Ticker24), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetKLines(symbol string, interval string, limit int64) []model.KLineHistory {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).([]model.KLineHistory)
}
func (m *ExchangePriceAPIMock) GetKLinesCached(symbol string, interval string, limit int64) model.CandleSeries {
	args := m.Called(symbol, interval, limit)
	return args.Get(0).(model.CandleSeries)
}
func (m *ExchangePriceAPIMock) GetDepth(symbol string, limit int64) (model.OrderBook, error) {
	args := m.Called(symbol, limit)
	return args.Get(0).(model.OrderBook), args.Error(1)
}
func (m *ExchangePriceAPIMock) GetExchangeData(symbols []string) (*model.ExchangeInfo, error) {
	args := m.Called(symbols)
	return args.Get(0).(*model.ExchangeInfo), args.Error(1)
}

type SentimentMock struct {
	mock.Mock
}

func (m *SentimentMock) GetSentimentScore(symbol string) float64 {
	args := m.Called(symbol)
	return args.Get(0).(float64)
}

type UniverseResolverMock struct {
	mock.Mock
}

func (m *UniverseResolverMock) Resolve() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type SymbolProcessorMock struct {
	mock.Mock
}

func (m *SymbolProcessorMock) ProcessSymbol(symbol string) model.Outcome {
	args := m.Called(symbol)
	return args.Get(0).(model.Outcome)
}

type AlertNotificatorMock struct {
	mock.Mock
}

func (m *AlertNotificatorMock) BuyAlert(symbol string, price float64, quantity float64, confidence model.Percent) {
	m.Called(symbol, price, quantity, confidence)
}
func (m *AlertNotificatorMock) SellAlert(symbol string, price float64, profit float64, confidence model.Percent) {
	m.Called(symbol, price, profit, confidence)
}
func (m *AlertNotificatorMock) NoTradesAlert() {
	m.Called()
}
func (m *AlertNotificatorMock) Info(message string) {
	m.Called(message)
}

type RecorderMock struct {
	mock.Mock
}

func (m *RecorderMock) RecordCycle(durationSeconds float64) {
	m.Called(durationSeconds)
}
func (m *RecorderMock) RecordTrade(side string, symbol string) {
	m.Called(side, symbol)
}
func (m *RecorderMock) RecordSkip(reason string) {
	m.Called(reason)
}
func (m *RecorderMock) SetOpenPositions(count int) {
	m.Called(count)
}
