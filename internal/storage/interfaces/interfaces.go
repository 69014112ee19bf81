package interfaces

import "emojidb/internal/models"

// SourceProviderInterface gives access to the raw emoji-test.txt content and
// to the short content token stored next to it.
type SourceProviderInterface interface {
	Text() (string, error)
	HashToken() (string, error)
}

// CacheStoreInterface is a blob store keyed by an opaque cache key.
type CacheStoreInterface interface {
	Get(key string) ([]byte, bool)
	Put(key string, blob []byte) error
}

type CompressorInterface interface {
	// Name is appended to cache keys; empty for the identity compressor.
	Name() string
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type CodecInterface interface {
	Name() string
	Encode(db *models.EmojiDatabase) ([]byte, error)
	Decode(data []byte) (*models.EmojiDatabase, error)
}
