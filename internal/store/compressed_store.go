package store

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"clientdesk/internal/domain"
)

var enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
var dec, _ = zstd.NewReader(nil)

// CompressedStore zstd-compresses values before handing them to the wrapped
// store.
type CompressedStore struct {
	inner domain.KeyValueStore
}

// NewCompressedStore wraps inner with zstd compression.
func NewCompressedStore(inner domain.KeyValueStore) *CompressedStore {
	return &CompressedStore{inner: inner}
}

func (s *CompressedStore) Get(key string) ([]byte, bool, error) {
	b, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	out, err := dec.DecodeAll(b, nil)
	if err != nil {
		return nil, false, fmt.Errorf("decompress %q: %w", key, err)
	}
	return out, true, nil
}

func (s *CompressedStore) Set(key string, value []byte) error {
	return s.inner.Set(key, enc.EncodeAll(value, make([]byte, 0, len(value))))
}

func (s *CompressedStore) Delete(key string) error { return s.inner.Delete(key) }

var _ domain.KeyValueStore = (*CompressedStore)(nil)
