package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"gitlab.com/open-soft/go-signal-bot/src/model"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type PositionStorageInterface interface {
	Get(symbol string) (model.Position, bool)
	Open(symbol string, position model.Position) error
	Close(symbol string) (model.Position, error)
	Snapshot() map[string]model.Position
	Persist() error
}

// PositionRepository owns every open position. All mutation goes through
// Open/Close so the at-most-one-position-per-symbol invariant holds even
// under concurrent symbol workers.
type PositionRepository struct {
	FilePath string

	mutex     sync.RWMutex
	positions map[string]model.Position
}

func (r *PositionRepository) Get(symbol string) (model.Position, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	position, ok := r.positions[symbol]

	return position, ok
}

func (r *PositionRepository) Open(symbol string, position model.Position) error {
	if !position.IsValid() {
		return errors.New(fmt.Sprintf("[%s] invalid position: price %f, quantity %f", symbol, position.EntryPrice, position.Quantity))
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.positions == nil {
		r.positions = make(map[string]model.Position)
	}

	if _, ok := r.positions[symbol]; ok {
		return errors.New(fmt.Sprintf("[%s] position is already open", symbol))
	}

	r.positions[symbol] = position

	return nil
}

func (r *PositionRepository) Close(symbol string) (model.Position, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	position, ok := r.positions[symbol]
	if !ok {
		return model.Position{}, errors.New(fmt.Sprintf("[%s] no open position", symbol))
	}

	delete(r.positions, symbol)

	return position, nil
}

func (r *PositionRepository) Snapshot() map[string]model.Position {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	snapshot := make(map[string]model.Position, len(r.positions))
	for symbol, position := range r.positions {
		snapshot[symbol] = position
	}

	return snapshot
}

// Persist writes the snapshot to a temporary file and atomically replaces
// the previous one. A crash mid-write leaves the old snapshot intact.
func (r *PositionRepository) Persist() error {
	snapshot := r.Snapshot()

	encoded, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	if err = os.MkdirAll(filepath.Dir(r.FilePath), 0755); err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	tmpPath := r.FilePath + ".tmp"
	if err = os.WriteFile(tmpPath, encoded, 0644); err != nil {
		return model.PersistenceError{Path: tmpPath, Reason: err.Error()}
	}

	if err = os.Rename(tmpPath, r.FilePath); err != nil {
		return model.PersistenceError{Path: r.FilePath, Reason: err.Error()}
	}

	return nil
}

// Load restores the last persisted snapshot. A missing or corrupt snapshot
// degrades to an empty store with a warning, never a startup failure.
func (r *PositionRepository) Load() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.positions = make(map[string]model.Position)

	content, err := os.ReadFile(r.FilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Position snapshot unreadable [%s]: %s, starting with no open positions", r.FilePath, err.Error())
		}

		return
	}

	restored := make(map[string]model.Position)
	if err = json.Unmarshal(content, &restored); err != nil {
		log.Printf("Position snapshot corrupt [%s]: %s, starting with no open positions", r.FilePath, err.Error())

		return
	}

	for symbol, position := range restored {
		if !position.IsValid() {
			log.Printf("[%s] invalid position in snapshot, dropped", symbol)
			continue
		}

		r.positions[symbol] = position
	}
}
