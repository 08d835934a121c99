package repository

import (
	"encoding/csv"
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"
)

const tradeTimeLayout = "2006-01-02 15:04:05"

type TradeLogInterface interface {
	Append(record model.TradeRecord) error
	GetTrades() ([]model.TradeRecord, error)
	DailyPnl() ([]model.DailyPnl, error)
	WritePnlSummary(path string) error
}

// TradeRepository is the append-only trade log. Rows are never mutated or
// deleted; realized P&L is reconstructed by FIFO-matching BUY rows against
// the next SELL per symbol.
type TradeRepository struct {
	FilePath string

	mutex sync.Mutex
}

func (r *TradeRepository) Append(record model.TradeRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.FilePath), 0755); err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	_, statErr := os.Stat(r.FilePath)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(r.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if isNew {
		_ = writer.Write([]string{"Timestamp", "Symbol", "Side", "Confidence", "Price", "Quantity", "Tag"})
	}

	err = writer.Write([]string{
		record.Timestamp.Format(tradeTimeLayout),
		record.Symbol,
		record.Side,
		fmt.Sprintf("%.2f", record.Confidence.Value()),
		strconv.FormatFloat(record.Price, 'f', -1, 64),
		strconv.FormatFloat(record.Quantity, 'f', -1, 64),
		record.Tag,
	})
	if err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	writer.Flush()
	if err = writer.Error(); err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	return file.Sync()
}

func (r *TradeRepository) GetTrades() ([]model.TradeRecord, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	trades := make([]model.TradeRecord, 0)

	file, err := os.Open(r.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return trades, nil
		}

		return nil, model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	for i, row := range rows {
		if i == 0 || len(row) < 7 {
			continue
		}

		timestamp, err := time.Parse(tradeTimeLayout, row[0])
		if err != nil {
			continue
		}

		confidence, _ := strconv.ParseFloat(row[3], 64)
		price, _ := strconv.ParseFloat(row[4], 64)
		quantity, _ := strconv.ParseFloat(row[5], 64)

		trades = append(trades, model.TradeRecord{
			Timestamp:  timestamp,
			Symbol:     row[1],
			Side:       row[2],
			Confidence: model.Percent(confidence),
			Price:      price,
			Quantity:   quantity,
			Tag:        row[6],
		})
	}

	return trades, nil
}

// DailyPnl reconstructs realized P&L per day: each SELL is matched against
// the oldest unmatched BUY for the same symbol, P&L attributed to the sell
// date.
func (r *TradeRepository) DailyPnl() ([]model.DailyPnl, error) {
	trades, err := r.GetTrades()
	if err != nil {
		return nil, err
	}

	type lot struct {
		price    float64
		quantity float64
	}

	openLots := make(map[string][]lot)
	pnlByDate := make(map[string]float64)

	for _, trade := range trades {
		if trade.IsBuy() {
			openLots[trade.Symbol] = append(openLots[trade.Symbol], lot{price: trade.Price, quantity: trade.Quantity})
			continue
		}

		if !trade.IsSell() {
			continue
		}

		lots := openLots[trade.Symbol]
		if len(lots) == 0 {
			continue
		}

		buyLot := lots[0]
		openLots[trade.Symbol] = lots[1:]

		date := trade.Timestamp.Format("2006-01-02")
		pnlByDate[date] += (trade.Price - buyLot.price) * trade.Quantity
	}

	dates := make([]string, 0, len(pnlByDate))
	for date := range pnlByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	summary := make([]model.DailyPnl, 0, len(dates))
	for _, date := range dates {
		summary = append(summary, model.DailyPnl{Date: date, RealizedPnl: pnlByDate[date]})
	}

	return summary, nil
}

// WritePnlSummary rewrites the daily summary file from scratch. The trade
// log stays the source of truth; the summary is derived output.
func (r *TradeRepository) WritePnlSummary(path string) error {
	summary, err := r.DailyPnl()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return model.PersistenceError{Path: path, Reason: err.Error()}
	}

	file, err := os.Create(path)
	if err != nil {
		return model.PersistenceError{Path: path, Reason: err.Error()}
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	_ = writer.Write([]string{"Date", "Realized PnL (USD)"})

	for _, entry := range summary {
		_ = writer.Write([]string{entry.Date, fmt.Sprintf("%.2f", entry.RealizedPnl)})
	}

	writer.Flush()

	return writer.Error()
}
