// Package api holds the JSON data forms of the beacon node HTTP API:
// fork-versioned response envelopes, identifier types for state and
// block lookups, and the response objects themselves. Numbers travel as
// decimal strings on the wire.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// VersionedValue wraps an API response whose shape depends on the fork
// the data belongs to. Unmarshaling keeps any sibling fields of "data"
// (execution_optimistic, finalized, dependent_root and whatever future
// versions add) in Meta, and marshaling writes them back out, so the
// envelope round-trips fields it does not know about.
type VersionedValue[T any] struct {
	Version string
	Data    T
	Meta    map[string]any
}

func (v *VersionedValue[T]) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"version": v.Version,
		"data":    v.Data,
	}
	for k, val := range v.Meta {
		if k == "version" || k == "data" {
			continue
		}
		out[k] = val
	}
	return json.Marshal(out)
}

func (v *VersionedValue[T]) UnmarshalJSON(b []byte) error {
	var envelope struct {
		Version string          `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	if envelope.Version == "" {
		return fmt.Errorf("api: versioned response missing version tag")
	}
	if err := json.Unmarshal(envelope.Data, &v.Data); err != nil {
		return fmt.Errorf("api: %s data: %w", envelope.Version, err)
	}
	v.Version = envelope.Version

	var meta map[string]any
	if err := json.Unmarshal(b, &meta); err != nil {
		return err
	}
	delete(meta, "version")
	delete(meta, "data")
	if len(meta) > 0 {
		v.Meta = meta
	}
	return nil
}

// Uint64String is a uint64 that marshals as a decimal JSON string, the
// convention for all quantities in the beacon API.
type Uint64String uint64

func (u Uint64String) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(uint64(u), 10))), nil
}

func (u *Uint64String) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("api: quantity must be a quoted decimal: %w", err)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("api: quantity %q: %w", s, err)
	}
	*u = Uint64String(v)
	return nil
}
