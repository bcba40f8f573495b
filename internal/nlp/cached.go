package nlp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/reqsift/reqsift/internal/cache"
)

// CachedEngine wraps another engine with a byte cache keyed by input text.
// Remote providers pay a network round trip per sentence; descriptions are
// often re-run while tuning output, so hits are common. Cache failures fall
// back to the inner engine silently.
type CachedEngine struct {
	inner Engine
	store cache.Cache
	ttl   time.Duration
}

// NewCachedEngine wraps an engine with the given cache.
func NewCachedEngine(inner Engine, store cache.Cache, ttl time.Duration) *CachedEngine {
	return &CachedEngine{
		inner: inner,
		store: store,
		ttl:   ttl,
	}
}

// Segment splits text into sentences, consulting the cache first.
func (e *CachedEngine) Segment(ctx context.Context, text string) ([]string, error) {
	key := cache.Key("segment", text)
	if data, found := e.store.Get(key); found {
		var sentences []string
		if json.Unmarshal(data, &sentences) == nil {
			return sentences, nil
		}
	}

	sentences, err := e.inner.Segment(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sentences); err == nil {
		_ = e.store.Set(key, data, e.ttl)
	}
	return sentences, nil
}

// Parse analyzes a sentence, consulting the cache first.
func (e *CachedEngine) Parse(ctx context.Context, sentence string) (*Doc, error) {
	key := cache.Key("parse", sentence)
	if data, found := e.store.Get(key); found {
		var doc Doc
		if json.Unmarshal(data, &doc) == nil {
			return &doc, nil
		}
	}

	doc, err := e.inner.Parse(ctx, sentence)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = e.store.Set(key, data, e.ttl)
	}
	return doc, nil
}
