//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var longPatterns = [][]string{
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"c", "co", "com", "comp", "compu", "comput", "computer"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat", "internati", "internatio", "internation", "internationa", "international"},
	{"d", "de", "dev", "deve", "devel", "develo", "develop", "developm", "developme", "developmen", "development"},
	{"th", "the w", "the wor", "hello wo", "intr", "develpo"},
}

func seededCompleter() *Completer {
	c := NewCompleter(DefaultOptions())
	var words []string
	for _, pattern := range longPatterns[:len(longPatterns)-1] {
		words = append(words, pattern[len(pattern)-1])
	}
	for i := 0; i < 50; i++ {
		c.AddText(strings.Join(words[i%len(words):], " "))
		c.AddText(fmt.Sprintf("the world of %s", words[i%len(words)]))
	}
	return c
}

func memDelta(baseline runtime.MemStats) int64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return int64(m.Alloc) - int64(baseline.Alloc)
}

func TestMemoryQueriesDoNotRetain(t *testing.T) {
	c := seededCompleter()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	ops := 0
	for i := 0; i < 200; i++ {
		for _, pattern := range longPatterns {
			for _, prefix := range pattern {
				c.Complete(prefix, i%2 == 0, 10)
				ops++
			}
		}
	}

	delta := memDelta(baseline)
	perOp := float64(delta) / float64(ops)
	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f", ops, delta, perOp)
	if perOp > 100 {
		t.Errorf("queries retained %.2f bytes per operation", perOp)
	}
}

func TestMemoryConcurrentQueries(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 200},
		{workers: 4, iterationsPerWorker: 50},
		{workers: 8, iterationsPerWorker: 25},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			c := seededCompleter()
			var mu sync.Mutex

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			var wg sync.WaitGroup
			for w := 0; w < config.workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < config.iterationsPerWorker; i++ {
						for _, pattern := range longPatterns {
							for _, prefix := range pattern {
								mu.Lock()
								c.Complete(prefix, true, 10)
								mu.Unlock()
							}
						}
					}
				}()
			}
			wg.Wait()

			delta := memDelta(baseline)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			t.Logf("mem_delta=%d bytes goroutine_delta=%d", delta, goroutineDelta)
			if delta > 1024*1024 {
				t.Errorf("queries retained %d bytes", delta)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryAddRemoveChurn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping churn test in short mode")
	}
	c := seededCompleter()
	c.AddText("ephemeral words come and go")

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	for i := 0; i < 5000; i++ {
		c.AddText("ephemeral words come and go")
		c.RemoveText("ephemeral words come and go")
	}

	delta := memDelta(baseline)
	t.Logf("churn mem_delta=%d bytes", delta)
	if delta > 256*1024 {
		t.Errorf("add/remove of known words grew memory by %d bytes", delta)
	}
}
