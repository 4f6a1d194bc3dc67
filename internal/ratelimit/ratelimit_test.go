package ratelimit

import "testing"

func TestAllowUpToServiceCap(t *testing.T) {
	l := New(map[string]int{"deepl": 2}, 0)

	if !l.Allow("deepl") || !l.Allow("deepl") {
		t.Fatal("requests under the cap must be allowed")
	}
	if l.Allow("deepl") {
		t.Error("third request must be rejected at cap 2")
	}
}

func TestZeroCapMeansUnlimited(t *testing.T) {
	l := New(map[string]int{"google": 0}, 0)

	for i := 0; i < 100; i++ {
		if !l.Allow("google") {
			t.Fatalf("request %d rejected despite unlimited cap", i)
		}
	}
}

func TestTotalCapSpansServices(t *testing.T) {
	l := New(map[string]int{"deepl": 5, "openai": 5}, 3)

	allowed := 0
	for _, service := range []string{"deepl", "openai", "deepl", "openai"} {
		if l.Allow(service) {
			allowed++
		}
	}
	if allowed != 3 {
		t.Errorf("expected the total cap to stop at 3, got %d", allowed)
	}
}

func TestCacheHitRate(t *testing.T) {
	l := New(nil, 0)

	l.Allow("deepl")
	l.RecordCacheHit()

	if got := l.CacheHitRate(); got != 50 {
		t.Errorf("expected 50%% hit rate, got %.1f", got)
	}
}

func TestGetStatsIncludesServices(t *testing.T) {
	l := New(map[string]int{"deepl": 10}, 0)
	l.Allow("deepl")

	stats := l.GetStats()
	if stats["deepl_used"] != 1 {
		t.Errorf("expected deepl_used=1, got %v", stats["deepl_used"])
	}
	if stats["deepl_limit"] != 10 {
		t.Errorf("expected deepl_limit=10, got %v", stats["deepl_limit"])
	}
}
