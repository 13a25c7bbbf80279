package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
)

// CacheKeyPrefix starts every cached response key. Keys continue with the
// request path so invalidation can match on it.
const CacheKeyPrefix = "http:cache:"

// cachedRoute is a public listing whose responses may be shared between
// callers. A path ending in "/" matches every path below it.
type cachedRoute struct {
	path       string
	ttlSeconds int
}

var cachedRoutes = []cachedRoute{
	{"/rooms/all", 180},
	{"/rooms/types", 600},
	{"/rooms/room-by-id/", 120},
	{"/reviews/approved", 300},
	{"/reviews/hotel", 300},
	{"/reviews/average-ratings", 300},
	{"/reviews/room/", 300},
}

// CacheMiddleware caches anonymous GET responses of the public listings
type CacheMiddleware struct {
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCacheMiddleware creates a new cache middleware. metrics may be nil.
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics) *CacheMiddleware {
	return &CacheMiddleware{cache: cache, metrics: metrics}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil || r.Header.Get("Authorization") != "" {
			next.ServeHTTP(w, r)
			return
		}

		ttl, ok := cacheTTL(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		cacheKey := GenerateCacheKey(r)

		if cached, err := m.cache.Get(ctx, cacheKey); err == nil {
			logger.Debug().Str("key", cacheKey).Msg("Cache HIT")
			if m.metrics != nil {
				observability.RecordCount(ctx, m.metrics.CacheHitCount, 1)
			}
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		logger.Debug().Str("key", cacheKey).Msg("Cache MISS")
		if m.metrics != nil {
			observability.RecordCount(ctx, m.metrics.CacheMissCount, 1)
		}
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(ctx, cacheKey, recorder.body.Bytes(), ttl); err != nil {
				logger.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache response")
			}
		}
	})
}

func cacheTTL(path string) (int, bool) {
	for _, route := range cachedRoutes {
		if path == route.path {
			return route.ttlSeconds, true
		}
		if strings.HasSuffix(route.path, "/") && len(path) > len(route.path) && strings.HasPrefix(path, route.path) {
			return route.ttlSeconds, true
		}
	}
	return 0, false
}

// GenerateCacheKey builds "http:cache:<path>" plus a digest of the query
func GenerateCacheKey(r *http.Request) string {
	key := CacheKeyPrefix + r.URL.Path
	if q := r.URL.Query().Encode(); q != "" {
		hash := sha256.Sum256([]byte(q))
		key += "?" + hex.EncodeToString(hash[:8])
	}
	return key
}

// responseRecorder captures the response for caching
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

// WriteHeader captures the status code
func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

// Write captures the response body and writes to the client
func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
