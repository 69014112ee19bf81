package models

import (
	"fmt"
	"slices"
	"strings"
)

// Emoji is a single record of emoji-test.txt.
// Two emojis are considered the same when their Char matches.
type Emoji struct {
	Char        string      `json:"char"`
	Codes       []string    `json:"codes,omitempty"`
	Status      EmojiStatus `json:"status,omitempty"`
	Description string      `json:"description,omitempty"`
	Version     string      `json:"version,omitempty"`
}

// CodePointsOf formats every scalar value of s as upper-case hex,
// e.g. "👂🏻" gives ["1F442", "1F3FB"].
func CodePointsOf(s string) []string {
	codes := make([]string, 0, len(s))
	for _, r := range s {
		codes = append(codes, fmt.Sprintf("%X", r))
	}
	return codes
}

func (e Emoji) Equal(other Emoji) bool {
	return e.Char == other.Char
}

// Same compares every observable field, not only the character.
func (e Emoji) Same(other Emoji) bool {
	return e.Char == other.Char &&
		slices.Equal(e.Codes, other.Codes) &&
		e.Status == other.Status &&
		e.Description == other.Description &&
		e.Version == other.Version
}

func (e Emoji) Clone() Emoji {
	e.Codes = slices.Clone(e.Codes)
	return e
}

// String renders the canonical emoji-test.txt data line.
func (e Emoji) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(e.Codes, " "))
	b.WriteString(" ; ")
	b.WriteString(string(e.Status))
	b.WriteString(" # ")
	b.WriteString(e.Char)
	b.WriteString(" E")
	b.WriteString(e.Version)
	if e.Description != "" {
		b.WriteByte(' ')
		b.WriteString(e.Description)
	}
	return b.String()
}
