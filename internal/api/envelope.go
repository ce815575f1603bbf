package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyResponse = errors.New("empty response body")

// decodeList decodes a list that the API returns either bare or wrapped
// under one of keys. A response with none of them decodes as an empty list.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	out := []T{}

	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return out, nil

	case raw[0] == '[':
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil

	case raw[0] == '{':
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			value := bytes.TrimSpace(fields[key])
			if len(value) == 0 || value[0] != '[' {
				continue
			}
			if err := json.Unmarshal(value, &out); err != nil {
				return nil, fmt.Errorf("decode list %q: %w", key, err)
			}
			return out, nil
		}
		return out, nil

	default:
		return nil, fmt.Errorf("decode list: unexpected payload %.32q", raw)
	}
}

// decodeObject decodes an object that the API returns either bare or wrapped
// under one of keys. The first key holding an object wins.
func decodeObject[T any](raw json.RawMessage, keys ...string) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errEmptyResponse
	}

	target := raw
	if raw[0] == '{' {
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			value := bytes.TrimSpace(fields[key])
			if len(value) > 0 && value[0] == '{' {
				target = value
				break
			}
		}
	}

	var out T
	if err := json.Unmarshal(target, &out); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	return &out, nil
}

func decodeFields(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return fields, nil
}
