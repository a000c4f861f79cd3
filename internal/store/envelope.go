package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"clientdesk/internal/domain"
)

// EnvelopeVersion is written with every envelope. Readers accept any version
// as-is; there is no migration path yet.
const EnvelopeVersion = 0

// ErrMalformedEnvelope is returned when persisted bytes are not a valid
// {state, version} envelope.
var ErrMalformedEnvelope = errors.New("malformed envelope")

// Envelope is the wrapper persisted around store state.
type Envelope[S any] struct {
	State   S   `json:"state"`
	Version int `json:"version"`
}

// MarshalEnvelope encodes state inside a current-version envelope.
func MarshalEnvelope[S any](state S) ([]byte, error) {
	return json.Marshal(Envelope[S]{State: state, Version: EnvelopeVersion})
}

// UnmarshalEnvelope decodes data into the envelope state.
//
// Both "state" and "version" must be present and state must not be null.
func UnmarshalEnvelope[S any](data []byte) (S, int, error) {
	var zero S
	var raw struct {
		State   json.RawMessage `json:"state"`
		Version *int            `json:"version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return zero, 0, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(raw.State) == 0 || bytes.Equal(bytes.TrimSpace(raw.State), []byte("null")) {
		return zero, 0, fmt.Errorf("%w: missing state", ErrMalformedEnvelope)
	}
	if raw.Version == nil {
		return zero, 0, fmt.Errorf("%w: missing version", ErrMalformedEnvelope)
	}
	var state S
	if err := json.Unmarshal(raw.State, &state); err != nil {
		return zero, 0, fmt.Errorf("%w: state: %v", ErrMalformedEnvelope, err)
	}
	return state, *raw.Version, nil
}

// LoadEnvelope reads and decodes the envelope under key. A missing key
// reports ok=false with no error.
func LoadEnvelope[S any](kv domain.KeyValueStore, key string) (state S, version int, ok bool, err error) {
	b, found, err := kv.Get(key)
	if err != nil || !found {
		return state, 0, false, err
	}
	state, version, err = UnmarshalEnvelope[S](b)
	if err != nil {
		return state, 0, false, err
	}
	return state, version, true, nil
}

// SaveEnvelope encodes state and writes it under key.
func SaveEnvelope[S any](kv domain.KeyValueStore, key string, state S) error {
	b, err := MarshalEnvelope(state)
	if err != nil {
		return err
	}
	return kv.Set(key, b)
}
