package parser

import (
	"errors"
	"iter"
	"strings"

	"emojidb/internal/models"
)

// Build parses lines in order into a snapshot. It performs no I/O and leaves
// the fingerprint empty. An unknown status aborts the build and no database
// is returned.
func Build(lines iter.Seq[string]) (*models.EmojiDatabase, error) {
	p := NewParser()

	var (
		version string
		date    string
		emojis  []models.Emoji
		n       int
	)
	for line := range lines {
		n++
		l, err := p.ParseLine(line)
		if err != nil {
			var use *UnknownStatusError
			if errors.As(err, &use) {
				use.Line = n
			}
			return nil, err
		}

		switch l.Kind {
		case LineEmoji:
			emojis = append(emojis, l.Emoji)
		case LineVersion:
			version = l.Value
		case LineDate:
			date = l.Value
		}
	}

	return models.NewEmojiDatabase(version, date, "", emojis), nil
}

func BuildFromText(text string) (*models.EmojiDatabase, error) {
	return Build(Lines(text))
}

// Lines splits text on '\n', dropping a trailing '\r' from each line.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			if !yield(strings.TrimRight(line, "\r\n")) {
				return
			}
		}
	}
}
