package services

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"emojidb/internal/models"
)

var ErrIndexOutOfRange = errors.New("emoji index out of range")

type EmojiServiceInterface interface {
	Count() int
	At(i int) (models.Emoji, error)
	All() iter.Seq[models.Emoji]
	Lookup(char string) (models.Emoji, bool)
	WithStatus(status models.EmojiStatus) iter.Seq[models.Emoji]
	Items() iter.Seq[PanelItem]
	Version() string
	Date() string
	Fingerprint() string
}

// PanelItem is how a record is offered in a picker: the character with its
// description, annotated with its code points.
type PanelItem struct {
	Trigger    string
	Annotation string
}

func NewPanelItem(e models.Emoji) PanelItem {
	return PanelItem{
		Trigger:    strings.TrimSpace(e.Char + " " + e.Description),
		Annotation: strings.Join(e.Codes, ", "),
	}
}

// EmojiService is a read-only view of a loaded database.
type EmojiService struct {
	db     *models.EmojiDatabase
	byChar map[string]int
}

func NewEmojiService(db *models.EmojiDatabase) *EmojiService {
	byChar := make(map[string]int, db.Len())
	for i, e := range db.All() {
		// later duplicates win
		byChar[e.Char] = i
	}
	return &EmojiService{db: db, byChar: byChar}
}

func (s *EmojiService) Count() int {
	return s.db.Len()
}

func (s *EmojiService) At(i int) (models.Emoji, error) {
	e, ok := s.db.At(i)
	if !ok {
		return models.Emoji{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, s.db.Len())
	}
	return e, nil
}

func (s *EmojiService) All() iter.Seq[models.Emoji] {
	return func(yield func(models.Emoji) bool) {
		for _, e := range s.db.All() {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *EmojiService) Lookup(char string) (models.Emoji, bool) {
	i, ok := s.byChar[char]
	if !ok {
		return models.Emoji{}, false
	}
	return s.db.At(i)
}

func (s *EmojiService) WithStatus(status models.EmojiStatus) iter.Seq[models.Emoji] {
	return func(yield func(models.Emoji) bool) {
		for e := range s.All() {
			if e.Status == status && !yield(e) {
				return
			}
		}
	}
}

func (s *EmojiService) Items() iter.Seq[PanelItem] {
	return func(yield func(PanelItem) bool) {
		for e := range s.All() {
			if !yield(NewPanelItem(e)) {
				return
			}
		}
	}
}

func (s *EmojiService) Version() string {
	return s.db.Version()
}

func (s *EmojiService) Date() string {
	return s.db.Date()
}

func (s *EmojiService) Fingerprint() string {
	return s.db.Fingerprint()
}
