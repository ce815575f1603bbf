// Package session persists the authenticated subset of client state.
//
// The stored blob is a versioned envelope:
//
//	{"state":{"user":{...},"token":"...","isAuthenticated":true},"version":1}
//
// Version 0 is the unversioned layout written by earlier clients and is
// migrated on read. Newer versions are rejected rather than guessed at.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-client/internal/model"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 1

// ErrUnsupportedVersion is returned when a stored session was written by a newer client.
var ErrUnsupportedVersion = errors.New("unsupported session version")

// State is the persisted subset of the auth store.
type State struct {
	User            *model.User `json:"user"`
	Token           string      `json:"token"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// Anonymous reports whether the state carries no credentials.
func (s State) Anonymous() bool {
	return !s.IsAuthenticated && s.Token == "" && s.User == nil
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Store defines the interface for persisted session storage.
type Store interface {
	// Load returns the stored state, or an anonymous state when nothing is stored.
	Load(ctx context.Context) (State, error)

	// Save replaces the stored state.
	Save(ctx context.Context, state State) error

	// Clear removes the stored state. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// Encode serialises a state into the current envelope format.
func Encode(state State) ([]byte, error) {
	data, err := json.Marshal(envelope{State: state, Version: CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return data, nil
}

// Decode parses a stored envelope, migrating older versions.
func Decode(data []byte) (State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("failed to decode session: %w", err)
	}

	switch {
	case env.Version > CurrentVersion:
		return State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	case env.Version == 0:
		return migrateV0(env.State), nil
	default:
		return env.State, nil
	}
}

// migrateV0 clears the authenticated flag of a version 0 blob that carries
// no token. A stored false flag is kept as is.
func migrateV0(state State) State {
	if state.Token == "" {
		state.IsAuthenticated = false
	}
	return state
}
