package domain

import "errors"

// ErrConfiguration marks invalid configuration or query parameters (bad
// cadence, inverted time range). Detected up front, never mid-query.
var ErrConfiguration = errors.New("invalid configuration")

// BatchStoreError wraps a query or connection failure against the batch
// store. The core never retries or swallows it; it aborts the whole query.
type BatchStoreError struct {
	Op  string
	Err error
}

func (e *BatchStoreError) Error() string {
	return "batch store: " + e.Op + ": " + e.Err.Error()
}

func (e *BatchStoreError) Unwrap() error { return e.Err }

// SpeedStoreError wraps a connection failure against the speed-layer store.
// A miss is not an error and is never represented by this type.
type SpeedStoreError struct {
	Op  string
	Err error
}

func (e *SpeedStoreError) Error() string {
	return "speed store: " + e.Op + ": " + e.Err.Error()
}

func (e *SpeedStoreError) Unwrap() error { return e.Err }

// IsBatchStoreError reports whether err originated in the batch store.
func IsBatchStoreError(err error) bool {
	var e *BatchStoreError
	return errors.As(err, &e)
}

// IsSpeedStoreError reports whether err originated in the speed store.
func IsSpeedStoreError(err error) bool {
	var e *SpeedStoreError
	return errors.As(err, &e)
}
