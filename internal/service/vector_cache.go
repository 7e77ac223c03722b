package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type cachedVector struct {
	Vector []float32
	Source string
}

// VectorCache memoizes per-user hybrid query vectors. Writers to either
// taste vector must invalidate, otherwise recommendations serve a stale
// blend until the TTL expires.
type VectorCache struct {
	cache *cache.Cache
}

func NewVectorCache(ttl time.Duration) *VectorCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VectorCache{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (v *VectorCache) Get(userId uuid.UUID) ([]float32, string, bool) {
	if x, found := v.cache.Get(userId.String()); found {
		cached := x.(cachedVector)
		return cached.Vector, cached.Source, true
	}
	return nil, "", false
}

func (v *VectorCache) Set(userId uuid.UUID, vector []float32, source string) {
	v.cache.Set(userId.String(), cachedVector{Vector: vector, Source: source}, cache.DefaultExpiration)
}

func (v *VectorCache) Invalidate(userId uuid.UUID) {
	v.cache.Delete(userId.String())
}
