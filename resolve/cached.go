package resolve

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/signadot/yamlir/ir/tag"
)

var ErrUnknownSchema = errors.New("unknown schema")

// Cached memoizes another resolver's answers in a bounded LRU cache. Since
// resolvers are pure, caching never changes an answer. The cache is safe
// for concurrent use.
type Cached struct {
	inner Resolver
	cache *lru.Cache[string, tag.Name]
}

// NewCached wraps r with an LRU cache holding at most size entries.
func NewCached(r Resolver, size int) (*Cached, error) {
	c, err := lru.New[string, tag.Name](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: r, cache: c}, nil
}

func (c *Cached) ResolveScalar(text string) tag.Name {
	if name, ok := c.cache.Get(text); ok {
		return name
	}
	name := c.inner.ResolveScalar(text)
	c.cache.Add(text, name)
	return name
}

// Len reports the number of cached entries.
func (c *Cached) Len() int { return c.cache.Len() }
