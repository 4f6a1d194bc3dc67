package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"dualnews/internal/model"
)

func TestGetMissThenHit(t *testing.T) {
	c := New(0)

	if _, ok := c.Get("u1", model.LangJA); ok {
		t.Fatal("expected a miss on an empty cache")
	}

	want := model.TranslatedArticle{TitleJA: "タイトル", URL: "u1", Lang: model.LangJA}
	c.Set("u1", model.LangJA, want)

	got, ok := c.Get("u1", model.LangJA)
	if !ok {
		t.Fatal("expected a hit after Set")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestKeyIncludesTargetLanguage(t *testing.T) {
	c := New(0)
	c.Set("u1", model.LangJA, model.TranslatedArticle{Lang: model.LangJA})

	if _, ok := c.Get("u1", model.LangEN); ok {
		t.Error("a ja entry must not satisfy an en lookup")
	}
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("u1", model.LangJA, model.TranslatedArticle{Lang: model.LangJA})

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("u1", model.LangJA); ok {
		t.Error("expected the entry to expire")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New(0)
	c.Set("u1", model.LangJA, model.TranslatedArticle{Lang: model.LangJA})

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("u1", model.LangJA); !ok {
		t.Error("entries must not expire with ttl 0")
	}
}

func TestCleanupRemovesExpiredEntries(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("u1", model.LangJA, model.TranslatedArticle{})
	c.Set("u2", model.LangJA, model.TranslatedArticle{})

	time.Sleep(30 * time.Millisecond)
	c.cleanup()

	if got := c.Len(); got != 0 {
		t.Errorf("expected cleanup to drop expired entries, %d left", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("u%d", i%10)
			c.Set(url, model.LangJA, model.TranslatedArticle{URL: url})
			c.Get(url, model.LangJA)
		}(i)
	}
	wg.Wait()

	if got := c.Len(); got != 10 {
		t.Errorf("expected 10 distinct entries, got %d", got)
	}
}
