package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeString(&buf, "❤️‍🔥"))

	got, err := readString(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "❤️‍🔥", got)
}

func TestWriteString_TooLong(t *testing.T) {
	var buf bytes.Buffer
	err := writeString(&buf, strings.Repeat("x", 70_000))
	assert.Error(t, err)
}

func TestWriteReadEmoji(t *testing.T) {
	e := Emoji{
		Char:        "❤️",
		Codes:       []string{"2764", "FE0F"},
		Status:      StatusFullyQualified,
		Description: "Red Heart",
		Version:     "1.0",
	}

	var buf bytes.Buffer
	require.NoError(t, writeEmoji(&buf, e))

	got, err := readEmoji(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, e.Same(got))
}

func TestReadEmoji_FillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEmoji(&buf, Emoji{Char: "👂🏻"}))

	got, err := readEmoji(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"1F442", "1F3FB"}, got.Codes)
	assert.Equal(t, StatusUnknown, got.Status)
}

func TestBinaryDatabase_Roundtrip(t *testing.T) {
	db := NewEmojiDatabase("15.1", "2023-06-05, 21:39:54 GMT", "abc@1", []Emoji{
		{Char: "😀", Codes: []string{"1F600"}, Status: StatusFullyQualified, Description: "Grinning Face", Version: "1.0"},
		{Char: "☺", Codes: []string{"263A"}, Status: StatusUnqualified, Description: "Smiling Face", Version: "0.6"},
	})

	var buf bytes.Buffer
	require.NoError(t, db.WriteBinary(&buf))

	restored, err := ReadBinaryDatabase(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, db.Equal(restored))
}

func TestBinaryDatabase_Empty(t *testing.T) {
	db := NewEmojiDatabase("", "", "", nil)

	var buf bytes.Buffer
	require.NoError(t, db.WriteBinary(&buf))

	restored, err := ReadBinaryDatabase(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 0, restored.Len())
	assert.True(t, db.Equal(restored))
}

func TestReadBinaryDatabase_Truncated(t *testing.T) {
	db := NewEmojiDatabase("15.1", "", "fp", []Emoji{
		{Char: "😀", Codes: []string{"1F600"}, Status: StatusFullyQualified},
	})
	var buf bytes.Buffer
	require.NoError(t, db.WriteBinary(&buf))

	data := buf.Bytes()
	for _, n := range []int{0, 3, len(data) / 2, len(data) - 1} {
		_, err := ReadBinaryDatabase(bytes.NewReader(data[:n]))
		assert.Error(t, err, "truncated at %d", n)
	}
}
