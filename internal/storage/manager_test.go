package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"emojidb/internal/parser"
	"emojidb/internal/providers"
	"emojidb/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type managerFixture struct {
	source  *testutil.MockSource
	store   *testutil.MockCacheStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
	memo    *Memo
}

func newManagerFixture() *managerFixture {
	return &managerFixture{
		source:  &testutil.MockSource{Content: testutil.SampleText, Token: "0123456789abcdef"},
		store:   testutil.NewMockCacheStore(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
		memo:    NewMemo(),
	}
}

func (f *managerFixture) manager(options ...Option) *Manager {
	options = append([]Option{WithMemo(f.memo)}, options...)
	return NewManager(f.source, f.store, &testutil.MockCompressor{}, f.logger, f.metrics, options...)
}

func TestManager_ColdLoadBuildsAndPersists(t *testing.T) {
	f := newManagerFixture()
	m := f.manager()

	db, err := m.Load()
	require.NoError(t, err)

	assert.True(t, testutil.SampleDatabase().WithFingerprint("0123456789abcdef@1").Equal(db))
	assert.Equal(t, 1, f.source.GetTextCalls())
	assert.Equal(t, 1, f.metrics.Rebuilds)
	assert.Len(t, f.metrics.BuildDurations, 1)
	assert.Equal(t, 5, f.metrics.RecordsTotal)

	key := m.CacheKey("0123456789abcdef@1")
	assert.Equal(t, "emojidb-0123456789abcdef_1.json", key)
	assert.Contains(t, f.store.Data, key)
	assert.Equal(t, 1, f.memo.Len())
}

func TestManager_CacheHitSkipsSourceText(t *testing.T) {
	f := newManagerFixture()
	first, err := f.manager().Load()
	require.NoError(t, err)

	f.memo.Reset()
	f.source.TextCalls = 0

	second, err := f.manager().Load()
	require.NoError(t, err)
	assert.Equal(t, 0, f.source.GetTextCalls())
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, f.metrics.Rebuilds)
}

func TestManager_MemoHitSkipsStore(t *testing.T) {
	f := newManagerFixture()
	m := f.manager()

	first, err := m.Load()
	require.NoError(t, err)
	gets := f.store.GetCalls

	second, err := m.Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, gets, f.store.GetCalls)
}

func TestManager_CorruptBlobIsRebuilt(t *testing.T) {
	f := newManagerFixture()
	m := f.manager()
	key := m.CacheKey("0123456789abcdef@1")
	f.store.Data[key] = []byte("{not json")

	db, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, db.Len())
	assert.Equal(t, 1, f.metrics.CacheCorrupt)
	assert.True(t, f.logger.Has("warn", "Discarding database cache"))

	// the corrupt blob was replaced by a valid one
	decoded, err := JSONCodec{}.Decode(f.store.Data[key])
	require.NoError(t, err)
	assert.True(t, db.Equal(decoded))
}

func TestManager_StaleFingerprintIsRebuilt(t *testing.T) {
	f := newManagerFixture()
	m := f.manager()
	key := m.CacheKey("0123456789abcdef@1")

	stale, err := JSONCodec{}.Encode(testutil.SampleDatabase().WithFingerprint("other@1"))
	require.NoError(t, err)
	f.store.Data[key] = stale

	db, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "0123456789abcdef@1", db.Fingerprint())
	assert.Equal(t, 1, f.source.GetTextCalls())
	assert.Equal(t, 1, f.metrics.CacheCorrupt)
}

func TestManager_DecompressFailureIsCorrupt(t *testing.T) {
	f := newManagerFixture()
	key := f.manager().CacheKey("0123456789abcdef@1")
	f.store.Data[key] = []byte("x")

	m := NewManager(f.source, f.store, &testutil.MockCompressor{DecompressErr: errors.New("bad frame")}, f.logger, f.metrics, WithMemo(f.memo))
	db, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, db.Len())
	assert.Equal(t, 1, f.metrics.CacheCorrupt)
}

func TestManager_WriteFailureStillReturnsDatabase(t *testing.T) {
	f := newManagerFixture()
	f.store.PutErr = errors.New("read-only file system")
	m := f.manager()

	db, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, db.Len())
	assert.Equal(t, 1, f.metrics.CacheWriteFailures)
	assert.True(t, f.logger.Has("error", "Failed to persist database cache"))
}

func TestManager_UnknownStatusPropagates(t *testing.T) {
	f := newManagerFixture()
	f.source.Content = "# Version: 15.1\n1F600 ; mostly-qualified # 😀 E1.0 grinning face\n"
	m := f.manager()

	db, err := m.Load()
	assert.Nil(t, db)
	assert.ErrorIs(t, err, parser.ErrUnknownStatus)
	assert.Equal(t, 0, f.memo.Len())
	assert.Empty(t, f.store.Data)
	assert.True(t, f.logger.Has("error", "Failed to parse emoji data"))
	for _, e := range f.logger.Logs {
		if e.Level == "error" {
			assert.Equal(t, providers.TypeParser, e.Type)
		}
	}
}

func TestManager_SourceErrorPropagates(t *testing.T) {
	f := newManagerFixture()
	f.source.TextErr = ErrSourceNotFound
	m := f.manager()

	_, err := m.Load()
	assert.ErrorIs(t, err, ErrSourceNotFound)
	assert.Equal(t, 0, f.memo.Len())
}

func TestManager_TokenErrorPropagates(t *testing.T) {
	f := newManagerFixture()
	f.source.TokenErr = errors.New("permission denied")

	_, err := f.manager().Load()
	assert.EqualError(t, err, "permission denied")
}

func TestManager_MissingTokenFallsBackToContentHash(t *testing.T) {
	f := newManagerFixture()
	f.source.TokenErr = ErrSourceNotFound
	m := f.manager()

	db, err := m.Load()
	require.NoError(t, err)

	token, err := HashContentString(testutil.SampleText)
	require.NoError(t, err)
	assert.Equal(t, Fingerprint(token, ParserRevision), db.Fingerprint())
	assert.True(t, f.logger.Has("warn", "No precomputed source hash"))
}

func TestManager_FingerprintSensitivity(t *testing.T) {
	f := newManagerFixture()

	a, err := f.manager().Fingerprint()
	require.NoError(t, err)

	b, err := f.manager(WithRevision("2")).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	f.source.Token = "fedcba9876543210"
	c, err := f.manager().Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestManager_RevisionBumpInvalidatesCache(t *testing.T) {
	f := newManagerFixture()
	_, err := f.manager().Load()
	require.NoError(t, err)

	_, err = f.manager(WithRevision("2")).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, f.source.GetTextCalls())
	assert.Len(t, f.store.Data, 2)
}

func TestManager_CodecsUseSeparateKeys(t *testing.T) {
	f := newManagerFixture()
	_, err := f.manager().Load()
	require.NoError(t, err)

	f.memo.Reset()
	db, err := f.manager(WithCodec(BinaryCodec{})).Load()
	require.NoError(t, err)
	assert.Equal(t, 5, db.Len())
	assert.Equal(t, 2, f.source.GetTextCalls())
	assert.ElementsMatch(t, []string{
		"emojidb-0123456789abcdef_1.json",
		"emojidb-0123456789abcdef_1.binary",
	}, f.store.Keys())
}

func TestManager_BuildDurationUsesNowFunc(t *testing.T) {
	f := newManagerFixture()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now := func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 250 * time.Millisecond)
	}

	_, err := f.manager(WithNowFunc(now)).Load()
	require.NoError(t, err)
	require.Len(t, f.metrics.BuildDurations, 1)
	assert.Equal(t, 250*time.Millisecond, f.metrics.BuildDurations[0])
}

func TestManager_ConcurrentLoad(t *testing.T) {
	f := newManagerFixture()
	m := f.manager()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := m.Load()
			assert.NoError(t, err)
			assert.Equal(t, 5, db.Len())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, f.metrics.Rebuilds)
}

func TestManager_WithZstdAndFileStore(t *testing.T) {
	f := newManagerFixture()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	defer compressor.Close()

	store := NewFileStore(newMemFs(), "/cache", f.logger)
	m := NewManager(f.source, store, compressor, f.logger, f.metrics, WithMemo(f.memo), WithCodec(BinaryCodec{}))

	first, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, "/cache/emojidb-0123456789abcdef_1.binary.zst", store.Path(m.CacheKey(first.Fingerprint())))

	f.memo.Reset()
	second, err := m.Load()
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, f.source.GetTextCalls())
}

func TestNewManagerFromConfig_UnknownFormat(t *testing.T) {
	f := newManagerFixture()
	conf := cacheConf("yaml", false)

	_, err := NewManagerFromConfig(conf, f.source, f.store, &testutil.MockCompressor{}, f.logger, f.metrics)
	assert.Error(t, err)
}
