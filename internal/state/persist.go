package state

import (
	"context"
	"encoding/json"
	"fmt"
)

// Key is the storage key the whole state document lives under.
const Key = "atmos_state"

// KV is durable key/value storage.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Load reads the stored document and overlays it on Default. A missing key
// yields defaults. A read or decode failure also yields defaults, alongside
// the error so the caller can log it.
func Load(ctx context.Context, kv KV) (State, error) {
	st := Default()
	raw, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return st, fmt.Errorf("read state: %w", err)
	}
	if !ok || len(raw) == 0 {
		return st, nil
	}
	decoded, err := Decode(raw)
	if err != nil {
		return Default(), err
	}
	return decoded, nil
}

// Decode parses a state document over Default.
func Decode(raw []byte) (State, error) {
	st := Default()
	if err := json.Unmarshal(raw, &st); err != nil {
		return Default(), fmt.Errorf("decode state: %w", err)
	}
	st.normalize()
	return st, nil
}

// Encode serializes st.
func Encode(st State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return raw, nil
}

// Save writes st under Key.
func Save(ctx context.Context, kv KV, st State) error {
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	if err := kv.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// MemoryKV is an in-process KV, used by tests and by read-only commands.
type MemoryKV struct {
	data map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put implements KV.
func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.data[key] = append([]byte(nil), value...)
	return nil
}
