// Package store provides the key-value persistence backends for clientdesk's
// local state.
//
// Every backend implements domain.KeyValueStore and is safe for concurrent
// use. Values are opaque bytes; the stores in internal/services write JSON
// envelopes through MarshalEnvelope and read them back with LoadEnvelope.
//
// Backends:
//   - FileStore: one file per key under a directory, atomic temp+rename writes
//   - SQLiteStore: a single kv table in a SQLite database
//   - RedisStore: string keys under a configurable prefix
//   - DynamoStore: one item per key in a DynamoDB table
//   - MemoryStore: process-local map, used by tests
//
// Decorators wrap any backend:
//   - SealedStore: passphrase encryption (scrypt + ChaCha20-Poly1305)
//   - CompressedStore: zstd compression
package store
