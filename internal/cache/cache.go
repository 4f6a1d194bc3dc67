package cache

import (
	"sync"
	"time"

	"dualnews/internal/model"
)

type entry struct {
	article   model.TranslatedArticle
	expiresAt time.Time
}

// Cache memoizes translation results keyed by (article URL, target
// language). It is the one piece of shared mutable state in the pipeline and
// is safe for concurrent use. A ttl of 0 disables expiry.
type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]entry
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:   ttl,
		items: make(map[string]entry),
	}

	if ttl > 0 {
		go c.cleanupLoop()
	}

	return c
}

func key(url, targetLang string) string {
	return url + "|" + targetLang
}

func (c *Cache) Get(url, targetLang string) (model.TranslatedArticle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key(url, targetLang)]
	if !exists {
		return model.TranslatedArticle{}, false
	}
	if c.ttl > 0 && time.Now().After(item.expiresAt) {
		return model.TranslatedArticle{}, false
	}
	return item.article, true
}

// Set stores the result for (url, targetLang). Two workers racing on the
// same key overwrite each other harmlessly; both wrote equal content.
func (c *Cache) Set(url, targetLang string, article model.TranslatedArticle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key(url, targetLang)] = entry{
		article:   article,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, k)
		}
	}
}
