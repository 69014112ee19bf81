package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"emojidb/internal/models"
	"emojidb/internal/storage/interfaces"

	json "github.com/goccy/go-json"
)

// cacheSchema is the layout version of both codecs. Blobs carrying another
// value are discarded and rebuilt, never migrated.
const cacheSchema = 1

const (
	FormatJSON   = "json"
	FormatBinary = "binary"
)

var binaryMagic = [4]byte{'E', 'M', 'D', 'B'}

// ErrCacheCorrupt covers missing, truncated, undecodable and stale blobs.
var ErrCacheCorrupt = errors.New("cache blob corrupt")

func NewCodec(format string) (interfaces.CodecInterface, error) {
	switch format {
	case FormatJSON, "":
		return JSONCodec{}, nil
	case FormatBinary:
		return BinaryCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache format %q", format)
	}
}

type jsonEnvelope struct {
	Schema      int            `json:"schema"`
	Fingerprint string         `json:"fingerprint"`
	Version     string         `json:"version"`
	Date        string         `json:"date"`
	Emojis      []models.Emoji `json:"emojis"`
}

type JSONCodec struct{}

func (JSONCodec) Name() string {
	return FormatJSON
}

func (JSONCodec) Encode(db *models.EmojiDatabase) ([]byte, error) {
	return json.Marshal(jsonEnvelope{
		Schema:      cacheSchema,
		Fingerprint: db.Fingerprint(),
		Version:     db.Version(),
		Date:        db.Date(),
		Emojis:      db.Emojis(),
	})
}

func (JSONCodec) Decode(data []byte) (*models.EmojiDatabase, error) {
	var env jsonEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheCorrupt, err)
	}
	if env.Schema != cacheSchema {
		return nil, fmt.Errorf("%w: schema %d, expected %d", ErrCacheCorrupt, env.Schema, cacheSchema)
	}
	for i := range env.Emojis {
		e := &env.Emojis[i]
		if e.Char == "" {
			return nil, fmt.Errorf("%w: record %d has no character", ErrCacheCorrupt, i)
		}
		e.Status = models.StatusOrUnknown(string(e.Status))
		if len(e.Codes) == 0 {
			e.Codes = models.CodePointsOf(e.Char)
		}
	}
	return models.NewEmojiDatabase(env.Version, env.Date, env.Fingerprint, env.Emojis), nil
}

// BinaryCodec layout: magic "EMDB", schema(uint16), then the snapshot as
// written by EmojiDatabase.WriteBinary.
type BinaryCodec struct{}

func (BinaryCodec) Name() string {
	return FormatBinary
}

func (BinaryCodec) Encode(db *models.EmojiDatabase) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(binaryMagic[:])
	if err := binary.Write(&buf, binary.LittleEndian, uint16(cacheSchema)); err != nil {
		return nil, err
	}
	if err := db.WriteBinary(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (BinaryCodec) Decode(data []byte) (*models.EmojiDatabase, error) {
	if len(data) < len(binaryMagic)+2 || !bytes.Equal(data[:len(binaryMagic)], binaryMagic[:]) {
		return nil, fmt.Errorf("%w: bad binary header", ErrCacheCorrupt)
	}
	r := bytes.NewReader(data[len(binaryMagic):])

	var schema uint16
	if err := binary.Read(r, binary.LittleEndian, &schema); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheCorrupt, err)
	}
	if schema != cacheSchema {
		return nil, fmt.Errorf("%w: schema %d, expected %d", ErrCacheCorrupt, schema, cacheSchema)
	}

	db, err := models.ReadBinaryDatabase(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheCorrupt, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCacheCorrupt, r.Len())
	}
	return db, nil
}
