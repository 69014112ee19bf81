package storage

import (
	"time"

	"emojidb/internal/storage/interfaces"
)

// NowFunc defines a function that returns the current time.
type NowFunc func() time.Time

// Option defines a function that configures a Manager.
type Option func(*Manager)

// WithMemo replaces the process-wide memo, mainly so tests start empty.
func WithMemo(memo *Memo) Option {
	return func(m *Manager) {
		m.memo = memo
	}
}

// WithCodec sets the serialization of cache blobs. The codec name is part of
// the cache key, so switching codecs never reads a blob written by another.
func WithCodec(codec interfaces.CodecInterface) Option {
	return func(m *Manager) {
		m.codec = codec
	}
}

// WithRevision overrides ParserRevision in the fingerprint.
func WithRevision(revision string) Option {
	return func(m *Manager) {
		m.revision = revision
	}
}

// WithNowFunc sets the clock used to time rebuilds.
func WithNowFunc(nowFunc NowFunc) Option {
	return func(m *Manager) {
		m.nowFunc = nowFunc
	}
}
