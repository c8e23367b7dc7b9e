package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// VersionKey is bumped on every successful write; cached entries are keyed by it.
const VersionKey = "cache:catalog:version"

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

func currentVersion(ctx context.Context, store Store) string {
	raw, err := store.Get(ctx, VersionKey)
	if err != nil || raw == nil {
		return "0"
	}
	return string(raw)
}

func keyFor(version string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("cache:v%s:%x", version, sum)
}

// Responses caches successful GET responses for ttl. A nil store disables caching.
func Responses(store Store, ttl time.Duration, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := keyFor(currentVersion(ctx, store), r)

			if raw, err := store.Get(ctx, key); err == nil && raw != nil {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.Status)
					_, _ = w.Write(cached.Body)
					return
				}
			} else if err != nil {
				log.Warn("Cache read failed", zap.Error(err), zap.String("key", key))
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status != http.StatusOK {
				return
			}

			payload, err := json.Marshal(cachedResponse{
				Status:      cw.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        cw.buf.Bytes(),
			})
			if err != nil {
				return
			}
			if err := store.Set(context.Background(), key, payload, ttl); err != nil {
				log.Warn("Cache write failed", zap.Error(err), zap.String("key", key))
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Invalidate bumps the cache version after any successful non-GET request.
func Invalidate(store Store, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sr, r)

			if sr.status >= 200 && sr.status < 300 {
				version, err := store.Incr(context.Background(), VersionKey)
				if err != nil {
					log.Warn("Cache invalidation failed", zap.Error(err))
					return
				}
				log.Debug("Cache invalidated", zap.String("version", strconv.FormatInt(version, 10)))
			}
		})
	}
}
