package testutil

import (
	"emojidb/internal/models"
	"emojidb/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Has reports whether some entry at level has a format containing substr.
func (m *MockLogger) Has(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			return true
		}
	}
	return false
}

// MockSource implements interfaces.SourceProviderInterface.
type MockSource struct {
	mu        sync.Mutex
	Content   string
	Token     string
	TextErr   error
	TokenErr  error
	TextCalls int
}

func (m *MockSource) Text() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TextCalls++
	if m.TextErr != nil {
		return "", m.TextErr
	}
	return m.Content, nil
}

func (m *MockSource) HashToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	return m.Token, nil
}

func (m *MockSource) GetTextCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TextCalls
}

// MockCacheStore implements interfaces.CacheStoreInterface over a map.
type MockCacheStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	PutErr   error
	GetCalls int
	PutCalls int
}

func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{Data: make(map[string][]byte)}
}

func (m *MockCacheStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCacheStore) Put(key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Data[key] = append([]byte(nil), blob...)
	return nil
}

func (m *MockCacheStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.Data))
	for k := range m.Data {
		keys = append(keys, k)
	}
	return keys
}

// MockCompressor implements interfaces.CompressorInterface as a pass-through.
type MockCompressor struct {
	CompressErr   error
	DecompressErr error
	Closed        bool
}

func (m *MockCompressor) Name() string { return "" }

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressErr != nil {
		return nil, m.CompressErr
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressErr != nil {
		return nil, m.DecompressErr
	}
	return val, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                 sync.Mutex
	CacheHits          int
	CacheMisses        int
	CacheCorrupt       int
	CacheWriteFailures int
	Rebuilds           int
	BuildDurations     []time.Duration
	RecordsTotal       int
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncCacheCorrupt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheCorrupt++
}

func (m *MockMetrics) IncCacheWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheWriteFailures++
}

func (m *MockMetrics) IncRebuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rebuilds++
}

func (m *MockMetrics) ObserveBuildDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BuildDurations = append(m.BuildDurations, duration)
}

func (m *MockMetrics) SetRecordsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsTotal = count
}

// SampleText is a small emoji-test.txt excerpt used across package tests.
const SampleText = `# emoji-test.txt
# Date: 2023-06-05, 21:39:54 GMT
# Version: 15.1

# group: Smileys & Emotion
1F600 ; fully-qualified # 😀 E1.0 grinning face
263A FE0F ; fully-qualified # ☺️ E0.6 smiling face
263A ; unqualified # ☺ E0.6 smiling face
1F442 1F3FB ; fully-qualified # 👂🏻 E1.0 ear: light skin tone
1F3FB ; component # 🏻 E1.0 light skin tone
#EOF
`

// SampleDatabase is what SampleText builds to, without a fingerprint.
func SampleDatabase() *models.EmojiDatabase {
	return models.NewEmojiDatabase("15.1", "2023-06-05, 21:39:54 GMT", "", []models.Emoji{
		{Char: "😀", Codes: []string{"1F600"}, Status: models.StatusFullyQualified, Description: "Grinning Face", Version: "1.0"},
		{Char: "☺️", Codes: []string{"263A", "FE0F"}, Status: models.StatusFullyQualified, Description: "Smiling Face", Version: "0.6"},
		{Char: "☺", Codes: []string{"263A"}, Status: models.StatusUnqualified, Description: "Smiling Face", Version: "0.6"},
		{Char: "👂🏻", Codes: []string{"1F442", "1F3FB"}, Status: models.StatusFullyQualified, Description: "Ear: Light Skin Tone", Version: "1.0"},
		{Char: "🏻", Codes: []string{"1F3FB"}, Status: models.StatusComponent, Description: "Light Skin Tone", Version: "1.0"},
	})
}
