package models

import (
	"iter"
	"strings"
)

// EmojiDatabase is an immutable snapshot of one parsed emoji-test.txt.
// Records keep the order of the source file.
type EmojiDatabase struct {
	version     string
	date        string
	fingerprint string
	emojis      []Emoji
}

func NewEmojiDatabase(version, date, fingerprint string, emojis []Emoji) *EmojiDatabase {
	owned := make([]Emoji, len(emojis))
	for i, e := range emojis {
		owned[i] = e.Clone()
	}
	return &EmojiDatabase{
		version:     version,
		date:        date,
		fingerprint: fingerprint,
		emojis:      owned,
	}
}

// WithFingerprint returns a copy of the snapshot stamped with fp.
// The record slice is shared since neither copy can mutate it.
func (db *EmojiDatabase) WithFingerprint(fp string) *EmojiDatabase {
	return &EmojiDatabase{
		version:     db.version,
		date:        db.date,
		fingerprint: fp,
		emojis:      db.emojis,
	}
}

func (db *EmojiDatabase) Version() string {
	return db.version
}

func (db *EmojiDatabase) Date() string {
	return db.date
}

func (db *EmojiDatabase) Fingerprint() string {
	return db.fingerprint
}

func (db *EmojiDatabase) Len() int {
	return len(db.emojis)
}

func (db *EmojiDatabase) At(i int) (Emoji, bool) {
	if i < 0 || i >= len(db.emojis) {
		return Emoji{}, false
	}
	return db.emojis[i].Clone(), true
}

// All yields the records in stored order. The sequence can be ranged over
// any number of times.
func (db *EmojiDatabase) All() iter.Seq2[int, Emoji] {
	return func(yield func(int, Emoji) bool) {
		for i, e := range db.emojis {
			if !yield(i, e.Clone()) {
				return
			}
		}
	}
}

func (db *EmojiDatabase) Emojis() []Emoji {
	out := make([]Emoji, len(db.emojis))
	for i, e := range db.emojis {
		out[i] = e.Clone()
	}
	return out
}

// Equal compares header fields and every record in order.
func (db *EmojiDatabase) Equal(other *EmojiDatabase) bool {
	if db == nil || other == nil {
		return db == other
	}
	if db.version != other.version || db.date != other.date || db.fingerprint != other.fingerprint {
		return false
	}
	if len(db.emojis) != len(other.emojis) {
		return false
	}
	for i := range db.emojis {
		if !db.emojis[i].Same(other.emojis[i]) {
			return false
		}
	}
	return true
}

// String renders the snapshot in the emoji-test.txt layout, so the output
// can be fed back to the parser.
func (db *EmojiDatabase) String() string {
	var b strings.Builder
	b.WriteString("# Date: ")
	b.WriteString(db.date)
	b.WriteString("\n# Version: ")
	b.WriteString(db.version)
	b.WriteString("\n# Fingerprint: ")
	b.WriteString(db.fingerprint)
	b.WriteByte('\n')
	for _, e := range db.emojis {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	b.WriteString("# EOF\n")
	return b.String()
}
