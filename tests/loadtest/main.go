package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"emojidb/internal/providers"
	"emojidb/internal/services"
	"emojidb/internal/storage"
	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"
)

const (
	numWorkers    = 8
	phaseDuration = 3 * time.Second
	numGroups     = 40
	numPerGroup   = 100
)

var statuses = []string{"fully-qualified", "minimally-qualified", "unqualified", "component"}

type result struct {
	op      string
	latency time.Duration
	err     bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type env struct {
	conf       *structures.Config
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	source     interfaces.SourceProviderInterface
	store      interfaces.CacheStoreInterface
	compressor interfaces.CompressorInterface
	codec      interfaces.CodecInterface
	revisions  atomic.Int64
}

func main() {
	dir, err := os.MkdirTemp("", "emojidb-loadtest")
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	defer os.RemoveAll(dir)

	dataFile := filepath.Join(dir, "emoji-test.txt")
	text := generateEmojiTest(rand.New(rand.NewSource(1)))
	if err := os.WriteFile(dataFile, []byte(text), 0o644); err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	if _, err := storage.WriteHashToken(storage.NewOsFs(), dataFile, ""); err != nil {
		fmt.Println("FAILED:", err)
		return
	}

	fmt.Println("=== EmojiDB Load Test ===")
	fmt.Printf("Workers: %d | Phase: %s\n", numWorkers, phaseDuration)
	fmt.Printf("Records: %d | Source: %d KB\n", numGroups*numPerGroup, len(text)/1024)

	for _, format := range []string{storage.FormatJSON, storage.FormatBinary} {
		for _, compress := range []bool{false, true} {
			e, err := newEnv(dir, dataFile, format, compress)
			if err != nil {
				fmt.Println("FAILED:", err)
				return
			}
			fmt.Printf("\n--- %s (compress=%t) ---\n", format, compress)
			runScenario(e)
			e.compressor.Close()
			e.logger.Close()
		}
	}
}

func newEnv(dir, dataFile, format string, compress bool) (*env, error) {
	conf := &structures.Config{
		Source: structures.SourceConfig{DataFile: dataFile},
		Cache: structures.CacheConfig{
			Enabled:  true,
			Dir:      filepath.Join(dir, "cache"),
			Format:   format,
			Compress: compress,
		},
		Logger: structures.LoggerConfig{Level: "error", Mode: 0o644},
	}
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, err
	}
	compressor, err := storage.NewCompressorFromConfig(conf)
	if err != nil {
		return nil, err
	}
	codec, err := storage.NewCodec(format)
	if err != nil {
		return nil, err
	}
	fs := storage.NewOsFs()
	metrics := providers.NewMetricsProvider(conf)
	return &env{
		conf:       conf,
		logger:     logger,
		metrics:    metrics,
		source:     storage.NewFsSourceFromConfig(conf, fs),
		store:      storage.NewCacheStore(conf, logger, metrics, storage.NewFileStoreFromConfig(conf, fs, logger)),
		compressor: compressor,
		codec:      codec,
	}, nil
}

func (e *env) manager(options ...storage.Option) *storage.Manager {
	options = append([]storage.Option{storage.WithCodec(e.codec)}, options...)
	return storage.NewManager(e.source, e.store, e.compressor, e.logger, e.metrics, options...)
}

func runScenario(e *env) {
	// a fresh revision per load forces a parse and a cache write
	runPhase("cold load", func(_ *rand.Rand) result {
		rev := fmt.Sprintf("load-%d", e.revisions.Add(1))
		return timed("cold load", func() error {
			_, err := e.manager(storage.WithMemo(storage.NewMemo()), storage.WithRevision(rev)).Load()
			return err
		})
	})

	if _, err := e.manager(storage.WithMemo(storage.NewMemo())).Load(); err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	runPhase("warm load", func(_ *rand.Rand) result {
		return timed("warm load", func() error {
			_, err := e.manager(storage.WithMemo(storage.NewMemo())).Load()
			return err
		})
	})

	shared := e.manager(storage.WithMemo(storage.NewMemo()))
	db, err := shared.Load()
	if err != nil {
		fmt.Println("FAILED:", err)
		return
	}
	svc := services.NewEmojiService(db)
	runPhase("memo + lookup", func(rng *rand.Rand) result {
		if rng.Float64() < 0.2 {
			return timed("memo load", func() error {
				_, err := shared.Load()
				return err
			})
		}
		return timed("lookup", func() error {
			emoji, err := svc.At(rng.Intn(svc.Count()))
			if err != nil {
				return err
			}
			if _, ok := svc.Lookup(emoji.Char); !ok {
				return fmt.Errorf("lookup miss for %q", emoji.Char)
			}
			return nil
		})
	})
}

func timed(op string, fn func() error) result {
	start := time.Now()
	err := fn()
	return result{op, time.Since(start), err != nil}
}

func runPhase(name string, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.op]
			if !ok {
				s = &stats{}
				allResults[r.op] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(phaseDuration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	fmt.Printf("\n  [%s]\n", name)
	printResults(allResults, phaseDuration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	ops := make([]string, 0, len(allResults))
	for op := range allResults {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	fmt.Printf("  %-16s %8s %6s %10s %10s %10s %10s\n",
		"Operation", "Ops", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, op := range ops {
		s := allResults[op]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-16s %8d %6d %10s %10s %10s %10s\n",
			op, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rate := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 76))
	fmt.Printf("  Total: %d ops | Errors: %d (%.1f%%) | OPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, rate)
}

// generateEmojiTest writes a synthetic file in the emoji-test.txt layout.
// Code points are drawn from the supplementary planes so every record is a
// distinct character.
func generateEmojiTest(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString("# emoji-test.txt\n")
	b.WriteString("# Date: 2024-01-01, 00:00:00 GMT\n")
	b.WriteString("# Version: 99.0\n\n")

	next := rune(0x1F000)
	for g := 0; g < numGroups; g++ {
		fmt.Fprintf(&b, "# group: Group %d\n\n", g)
		for i := 0; i < numPerGroup; i++ {
			r := next
			next++
			fmt.Fprintf(&b, "%X ; %s # %c E%d.%d synthetic emoji %d-%d\n",
				r, statuses[rng.Intn(len(statuses))], r, rng.Intn(16), rng.Intn(2), g, i)
		}
		b.WriteString("\n")
	}
	b.WriteString("#EOF\n")
	return b.String()
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
