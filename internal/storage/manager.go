package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"emojidb/internal/models"
	"emojidb/internal/parser"
	"emojidb/internal/providers"
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"
)

var ErrCacheWriteFailed = errors.New("cache write failed")

// Manager loads the emoji database through the memo, the durable cache store
// and, when both miss, a rebuild from source.
type Manager struct {
	mu         sync.Mutex
	source     interfaces.SourceProviderInterface
	store      interfaces.CacheStoreInterface
	compressor interfaces.CompressorInterface
	codec      interfaces.CodecInterface
	memo       *Memo
	revision   string
	nowFunc    NowFunc
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewManager(source interfaces.SourceProviderInterface, store interfaces.CacheStoreInterface, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, options ...Option) *Manager {
	m := &Manager{
		source:     source,
		store:      store,
		compressor: compressor,
		codec:      JSONCodec{},
		memo:       ProcessMemo(),
		revision:   ParserRevision,
		nowFunc:    time.Now,
		logger:     logger,
		metrics:    metrics,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func NewManagerFromConfig(conf *structures.Config, source interfaces.SourceProviderInterface, store interfaces.CacheStoreInterface, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Manager, error) {
	codec, err := NewCodec(conf.Cache.Format)
	if err != nil {
		return nil, err
	}
	return NewManager(source, store, compressor, logger, metrics, WithCodec(codec)), nil
}

// Fingerprint returns the fingerprint of the current source content.
func (m *Manager) Fingerprint() (string, error) {
	token, err := m.hashToken()
	if err != nil {
		return "", err
	}
	return Fingerprint(token, m.revision), nil
}

// CacheKey returns the store key used for fingerprint with this manager's
// codec and compressor.
func (m *Manager) CacheKey(fingerprint string) string {
	return CacheKey(fingerprint, m.codec.Name(), m.compressor.Name())
}

// Load returns the snapshot for the current source content. Cache read and
// write problems are logged and recovered; parse and source errors are
// returned and nothing is memoised.
func (m *Manager) Load() (*models.EmojiDatabase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fp, err := m.Fingerprint()
	if err != nil {
		return nil, err
	}

	if db, ok := m.memo.Get(fp); ok {
		return db, nil
	}

	key := m.CacheKey(fp)
	db, err := m.fetch(key, fp)
	if err == nil {
		m.logger.Infof(providers.TypeCache, "Loaded database cache %s (%d emojis)", key, db.Len())
		m.remember(fp, db)
		return db, nil
	}
	if errors.Is(err, ErrCacheCorrupt) {
		m.logger.Warnf(providers.TypeCache, "Discarding database cache %s: %s", key, err)
		m.metrics.IncCacheCorrupt()
	}

	db, err = m.rebuild(fp)
	if err != nil {
		return nil, err
	}

	if err := m.persist(key, db); err != nil {
		m.logger.Errorf(providers.TypeCache, "Failed to persist database cache %s: %s", key, err)
		m.metrics.IncCacheWriteFailures()
	} else {
		m.logger.Infof(providers.TypeCache, "Created database cache %s", key)
	}

	m.remember(fp, db)
	return db, nil
}

var errCacheAbsent = errors.New("cache blob absent")

func (m *Manager) fetch(key, fp string) (*models.EmojiDatabase, error) {
	blob, ok := m.store.Get(key)
	if !ok {
		return nil, errCacheAbsent
	}
	data, err := m.compressor.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCacheCorrupt, err)
	}
	db, err := m.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if db.Fingerprint() != fp {
		return nil, fmt.Errorf("%w: fingerprint %q, expected %q", ErrCacheCorrupt, db.Fingerprint(), fp)
	}
	return db, nil
}

func (m *Manager) rebuild(fp string) (*models.EmojiDatabase, error) {
	start := m.nowFunc()
	text, err := m.source.Text()
	if err != nil {
		return nil, err
	}
	built, err := parser.BuildFromText(text)
	if err != nil {
		m.logger.Errorf(providers.TypeParser, "Failed to parse emoji data: %s", err)
		return nil, err
	}
	m.metrics.IncRebuilds()
	m.metrics.ObserveBuildDuration(m.nowFunc().Sub(start))
	m.logger.Debugf(providers.TypeParser, "Parsed %d emojis, version %q, date %q", built.Len(), built.Version(), built.Date())
	return built.WithFingerprint(fp), nil
}

func (m *Manager) persist(key string, db *models.EmojiDatabase) error {
	data, err := m.codec.Encode(db)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCacheWriteFailed, err)
	}
	blob, err := m.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCacheWriteFailed, err)
	}
	if err := m.store.Put(key, blob); err != nil {
		return fmt.Errorf("%w: %s", ErrCacheWriteFailed, err)
	}
	return nil
}

func (m *Manager) remember(fp string, db *models.EmojiDatabase) {
	m.memo.Put(fp, db)
	m.metrics.SetRecordsTotal(db.Len())
}

// hashToken reads the precomputed token. Without one the source text is
// hashed instead, which costs a full read on every new process.
func (m *Manager) hashToken() (string, error) {
	token, err := m.source.HashToken()
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, ErrSourceNotFound) {
		return "", err
	}
	m.logger.Warnf(providers.TypeCache, "No precomputed source hash (%s), hashing source text", err)
	text, err := m.source.Text()
	if err != nil {
		return "", err
	}
	return HashContentString(text)
}
