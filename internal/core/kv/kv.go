// Package kv defines the durable key-value boundary that task state is
// persisted through.
package kv

import "context"

// KV is the interface for durable key-value storage. Values are opaque
// byte blobs; callers own serialization. Implementations make no
// atomicity or durability guarantees beyond best effort, and perform no
// retries.
type KV interface {
	// Read returns the value stored under key. ok is false when the key
	// has never been written.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Write stores value under key, overwriting any previous value.
	Write(ctx context.Context, key string, value []byte) error
}
