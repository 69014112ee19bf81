package storage

import (
	"fmt"

	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"

	"github.com/klauspost/compress/zstd"
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Name() string {
	return "zst"
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// IdentityCompression stores blobs as-is.
type IdentityCompression struct{}

func (IdentityCompression) Name() string {
	return ""
}

func (IdentityCompression) Compress(val []byte) ([]byte, error) {
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (IdentityCompression) Decompress(val []byte) ([]byte, error) {
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (IdentityCompression) Close() {}

// NewCompressorFromConfig returns the zstd compressor, or the identity one
// when cache.compress is off.
func NewCompressorFromConfig(conf *structures.Config) (interfaces.CompressorInterface, error) {
	if !conf.Cache.Compress {
		return IdentityCompression{}, nil
	}
	return NewZstdCompressor()
}
