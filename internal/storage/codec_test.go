package storage

import (
	"testing"

	"emojidb/internal/models"
	"emojidb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecs_Roundtrip(t *testing.T) {
	db := testutil.SampleDatabase().WithFingerprint("abc@1")

	for _, codec := range []interface {
		Name() string
		Encode(*models.EmojiDatabase) ([]byte, error)
		Decode([]byte) (*models.EmojiDatabase, error)
	}{JSONCodec{}, BinaryCodec{}} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Encode(db)
			require.NoError(t, err)

			decoded, err := codec.Decode(data)
			require.NoError(t, err)
			assert.True(t, db.Equal(decoded))
		})
	}
}

func TestCodecs_EmptyDatabase(t *testing.T) {
	db := models.NewEmojiDatabase("", "", "abc@1", nil)

	for _, format := range []string{FormatJSON, FormatBinary} {
		codec, err := NewCodec(format)
		require.NoError(t, err)

		data, err := codec.Encode(db)
		require.NoError(t, err)
		decoded, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, 0, decoded.Len())
		assert.Equal(t, "abc@1", decoded.Fingerprint())
	}
}

func TestNewCodec(t *testing.T) {
	c, err := NewCodec("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, c.Name())

	c, err = NewCodec(FormatBinary)
	require.NoError(t, err)
	assert.Equal(t, FormatBinary, c.Name())

	_, err = NewCodec("xml")
	assert.Error(t, err)
}

func TestJSONCodec_MissingFieldsGetDefaults(t *testing.T) {
	data := []byte(`{"schema":1,"fingerprint":"abc@1","version":"15.1","date":"","emojis":[{"char":"👂🏻","description":"Ear: Light Skin Tone"}]}`)

	db, err := JSONCodec{}.Decode(data)
	require.NoError(t, err)

	e, ok := db.At(0)
	require.True(t, ok)
	assert.Equal(t, models.StatusUnknown, e.Status)
	assert.Equal(t, []string{"1F442", "1F3FB"}, e.Codes)
	assert.Equal(t, "", e.Version)
}

func TestJSONCodec_Corrupt(t *testing.T) {
	cases := map[string]string{
		"garbage":     `{not json`,
		"wrong type":  `[]`,
		"schema":      `{"schema":99,"emojis":[]}`,
		"no schema":   `{"emojis":[]}`,
		"empty char":  `{"schema":1,"emojis":[{"char":""}]}`,
		"truncated":   `{"schema":1,"emojis":[{"char":"😀"`,
		"bad emojis":  `{"schema":1,"emojis":"nope"}`,
		"empty input": ``,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := JSONCodec{}.Decode([]byte(input))
			assert.ErrorIs(t, err, ErrCacheCorrupt)
		})
	}
}

func TestBinaryCodec_Corrupt(t *testing.T) {
	valid, err := BinaryCodec{}.Encode(testutil.SampleDatabase())
	require.NoError(t, err)

	wrongSchema := append([]byte(nil), valid...)
	wrongSchema[4] = 9

	cases := map[string][]byte{
		"empty":     nil,
		"bad magic": append([]byte("XXXX"), valid[4:]...),
		"schema":    wrongSchema,
		"truncated": valid[:len(valid)-3],
		"trailing":  append(append([]byte(nil), valid...), 0x00),
		"json":      []byte(`{"schema":1}`),
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BinaryCodec{}.Decode(input)
			assert.ErrorIs(t, err, ErrCacheCorrupt)
		})
	}
}
