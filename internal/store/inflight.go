// Package store holds the client-side state containers that mirror the
// storefront API: auth, cart, products and orders.
//
// Stores are safe for concurrent use. Each action runs behind an in-flight
// guard keyed by operation and parameters, so duplicate concurrent calls
// share a single request and a single state update.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// inflight deduplicates concurrent actions and tracks whether any is running.
type inflight struct {
	group   singleflight.Group
	pending atomic.Int64
}

// busy reports whether any action is in flight.
func (f *inflight) busy() bool {
	return f.pending.Load() > 0
}

// do runs fn once per key among concurrent callers. Joining callers share
// the leader's result; fn runs with the leader's context.
func do[T any](f *inflight, key string, fn func() (T, error)) (T, error) {
	f.pending.Add(1)
	defer f.pending.Add(-1)

	v, err, _ := f.group.Do(key, func() (any, error) {
		return fn()
	})

	out, _ := v.(T)
	return out, err
}

// flightKey joins an operation name and its parameters.
func flightKey(op string, params ...string) string {
	if len(params) == 0 {
		return op
	}
	return op + ":" + strings.Join(params, ":")
}

// digest returns a SHA-256 hex digest of v's JSON encoding. It stands in for
// payloads that must be part of a key without appearing in it verbatim.
func digest(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Unencodable payloads never share a flight
		return "unkeyed:" + err.Error()
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
