package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mahostav/api/internal/model"
)

// maxIdempotentBodyBytes matches the limit handlers apply when decoding
const maxIdempotentBodyBytes = 1 << 20

// IdempotencyStore keeps the responses of submissions made with an
// Idempotency-Key so a retried submit replays the first response instead of
// registering twice
type IdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	stopOnce sync.Once
	stopChan chan struct{}
}

type idempotencyEntry struct {
	status    int
	headers   http.Header
	body      []byte
	expiresAt time.Time
	done      chan struct{}
	stored    bool
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	TTL     time.Duration // How long to keep responses (default 24h)
	Cleanup time.Duration // Cleanup interval (default 1h)
}

// NewIdempotencyStore creates a store and starts its cleanup goroutine
func NewIdempotencyStore(cfg IdempotencyConfig) *IdempotencyStore {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	store := &IdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		stopChan: make(chan struct{}),
	}
	go store.cleanupLoop(cfg.Cleanup)
	return store
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (s *IdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *IdempotencyStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup(time.Now())
		case <-s.stopChan:
			return
		}
	}
}

func (s *IdempotencyStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if entry.stored && entry.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

// claim returns the entry for key and whether the caller owns it. A caller
// that does not own the entry must wait on done and replay it.
func (s *IdempotencyStore) claim(key string) (*idempotencyEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok && (!entry.stored || entry.expiresAt.After(time.Now())) {
		return entry, false
	}
	entry := &idempotencyEntry{done: make(chan struct{})}
	s.entries[key] = entry
	return entry, true
}

// finish stores a completed response. Server errors are dropped so the
// client can retry.
func (s *IdempotencyStore) finish(key string, entry *idempotencyEntry, rec *recordingWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.status >= http.StatusInternalServerError {
		delete(s.entries, key)
	} else {
		entry.status = rec.status
		entry.headers = rec.Header().Clone()
		entry.body = rec.body.Bytes()
		entry.expiresAt = time.Now().Add(s.ttl)
		entry.stored = true
	}
	close(entry.done)
}

// fingerprint ties the key to the caller and the exact request
func fingerprint(userID, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	for _, part := range []string{userID, idempotencyKey, method, path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// recordingWriter captures the response for replay
type recordingWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func replay(w http.ResponseWriter, entry *idempotencyEntry) {
	for k, v := range entry.headers {
		for _, val := range v {
			w.Header().Add(k, val)
		}
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(entry.status)
	_, _ = w.Write(entry.body)
}

// Idempotency returns middleware that honours the Idempotency-Key header on
// POST requests. It must run after Auth so keys are scoped per user.
func Idempotency(store *IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get("Idempotency-Key")
			if r.Method != http.MethodPost || idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID := GetUserID(r.Context())
			if userID == "" {
				userID = r.RemoteAddr
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBodyBytes))
			if err != nil {
				model.NewBadRequestError("invalid request body").WriteJSON(w)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := fingerprint(userID, idempotencyKey, r.Method, r.URL.Path, body)

			for {
				entry, owner := store.claim(key)
				if owner {
					rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
					completed := false
					defer func() {
						// A panic below must release waiters without storing anything
						if !completed {
							rec.status = http.StatusInternalServerError
							store.finish(key, entry, rec)
						}
					}()
					next.ServeHTTP(rec, r)
					completed = true
					store.finish(key, entry, rec)
					return
				}

				select {
				case <-entry.done:
				case <-r.Context().Done():
					return
				}

				store.mu.Lock()
				stored := entry.stored
				store.mu.Unlock()
				if stored {
					replay(w, entry)
					return
				}
				// The first attempt failed with a server error; try again
			}
		})
	}
}
