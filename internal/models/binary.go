package models

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

var byteOrder = binary.LittleEndian

// maxBinaryRecords bounds the record count read from a blob so a corrupt
// header cannot trigger a huge allocation.
const maxBinaryRecords = 1 << 20

// writeString writes a uint16 length-prefixed UTF-8 string.
func writeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string too long for binary format: %d bytes", len(s))
	}
	if err := binary.Write(w, byteOrder, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// readString reads a uint16 length-prefixed UTF-8 string.
func readString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, byteOrder, &length); err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// writeEmoji writes one record.
// Format: char, count(uint16) + codes, status, description, version.
func writeEmoji(w io.Writer, e Emoji) error {
	if err := writeString(w, e.Char); err != nil {
		return err
	}
	if err := binary.Write(w, byteOrder, uint16(len(e.Codes))); err != nil {
		return err
	}
	for _, c := range e.Codes {
		if err := writeString(w, c); err != nil {
			return err
		}
	}
	if err := writeString(w, string(e.Status)); err != nil {
		return err
	}
	if err := writeString(w, e.Description); err != nil {
		return err
	}
	return writeString(w, e.Version)
}

// readEmoji reads one record, filling in the same defaults as the JSON
// decoder for a missing status or missing code points.
func readEmoji(r io.Reader) (Emoji, error) {
	var e Emoji
	var err error
	if e.Char, err = readString(r); err != nil {
		return e, err
	}
	var count uint16
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return e, err
	}
	for i := uint16(0); i < count; i++ {
		code, err := readString(r)
		if err != nil {
			return e, err
		}
		e.Codes = append(e.Codes, code)
	}
	status, err := readString(r)
	if err != nil {
		return e, err
	}
	e.Status = StatusOrUnknown(status)
	if e.Description, err = readString(r); err != nil {
		return e, err
	}
	if e.Version, err = readString(r); err != nil {
		return e, err
	}
	if len(e.Codes) == 0 {
		e.Codes = CodePointsOf(e.Char)
	}
	return e, nil
}

// WriteBinary writes the snapshot: version, date, fingerprint,
// count(uint32) and the records in order.
func (db *EmojiDatabase) WriteBinary(w io.Writer) error {
	for _, s := range []string{db.version, db.date, db.fingerprint} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	if err := binary.Write(w, byteOrder, uint32(len(db.emojis))); err != nil {
		return err
	}
	for _, e := range db.emojis {
		if err := writeEmoji(w, e); err != nil {
			return err
		}
	}
	return nil
}

// ReadBinaryDatabase reads a snapshot written by WriteBinary.
func ReadBinaryDatabase(r io.Reader) (*EmojiDatabase, error) {
	header := make([]string, 3)
	for i := range header {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		header[i] = s
	}

	var count uint32
	if err := binary.Read(r, byteOrder, &count); err != nil {
		return nil, err
	}
	if count > maxBinaryRecords {
		return nil, fmt.Errorf("record count %d exceeds limit", count)
	}

	emojis := make([]Emoji, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := readEmoji(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		emojis = append(emojis, e)
	}

	return &EmojiDatabase{
		version:     header[0],
		date:        header[1],
		fingerprint: header[2],
		emojis:      emojis,
	}, nil
}
