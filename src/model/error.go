package model

import (
	"errors"
	"fmt"
)

// DataError: the symbol has no usable candles or undefined indicators this
// cycle. Skipped without retry, the next cycle refetches.
type DataError struct {
	Symbol string
	Reason string
}

func (e DataError) Error() string {
	return fmt.Sprintf("[%s] data error: %s", e.Symbol, e.Reason)
}

// SchemaError: the assembled feature vector does not satisfy the classifier
// contract. Indicates a deployment mismatch between the served model and
// the feature builder.
type SchemaError struct {
	Symbol  string
	Missing []string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("[%s] feature schema mismatch, missing: %v", e.Symbol, e.Missing)
}

// ExchangeError wraps an exchange failure. Transient failures (network,
// rate limit) recover naturally next cycle; rejections (balance, lot size)
// are never retried within the cycle because the quoted price is stale by
// the next attempt.
type ExchangeError struct {
	Symbol    string
	Code      int64
	Message   string
	Transient bool
}

func (e ExchangeError) Error() string {
	return fmt.Sprintf("[%s] exchange error %d: %s", e.Symbol, e.Code, e.Message)
}

func NewTransientExchangeError(symbol string, err error) ExchangeError {
	return ExchangeError{Symbol: symbol, Message: err.Error(), Transient: true}
}

type PersistenceError struct {
	Path   string
	Reason string
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [%s]: %s", e.Path, e.Reason)
}

func IsDataError(err error) bool {
	var dataError DataError
	return errors.As(err, &dataError)
}

func IsSchemaError(err error) bool {
	var schemaError SchemaError
	return errors.As(err, &schemaError)
}

func IsExchangeRejection(err error) bool {
	var exchangeError ExchangeError
	return errors.As(err, &exchangeError) && !exchangeError.Transient
}

func IsExchangeTransient(err error) bool {
	var exchangeError ExchangeError
	return errors.As(err, &exchangeError) && exchangeError.Transient
}
