package services

import (
	"regexp"
	"sync"
	"testing"
	"time"
)

func TestOrderNumberFormat(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	}
	gen := NewOrderNumberGenerator("NB", clock)
	num, err := gen.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	pattern := regexp.MustCompile(`^NB-20250501-[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{5}$`)
	if !pattern.MatchString(num) {
		t.Fatalf("order number %q does not match %s", num, pattern)
	}
}

func TestOrderNumberDefaultsClock(t *testing.T) {
	gen := NewOrderNumberGenerator("NB", nil)
	if _, err := gen.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
}

func TestOrderNumberConcurrentGeneration(t *testing.T) {
	gen := NewOrderNumberGenerator("NB", nil)

	const workers = 20
	const perWorker = 50

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				num, err := gen.Next()
				if err != nil {
					t.Errorf("Next: %v", err)
					return
				}
				mu.Lock()
				seen[num] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// With a 31^5 suffix space a duplicate across 1000 draws would be
	// extraordinary; treat it as a generator bug.
	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d distinct numbers, got %d", workers*perWorker, len(seen))
	}
}
