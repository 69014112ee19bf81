package storage

import (
	"sync"

	"emojidb/internal/models"
)

// Memo holds loaded snapshots for the lifetime of the process, keyed by
// fingerprint. A new fingerprint simply adds an entry.
type Memo struct {
	mu      sync.RWMutex
	entries map[string]*models.EmojiDatabase
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[string]*models.EmojiDatabase)}
}

var processMemo = NewMemo()

// ProcessMemo is the memo shared by every Manager that is not given its own.
func ProcessMemo() *Memo {
	return processMemo
}

func (m *Memo) Get(fingerprint string) (*models.EmojiDatabase, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	db, ok := m.entries[fingerprint]
	return db, ok
}

func (m *Memo) Put(fingerprint string, db *models.EmojiDatabase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[fingerprint] = db
}

func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*models.EmojiDatabase)
}
