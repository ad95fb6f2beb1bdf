package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahostav/api/internal/model"
)

func newTestStore(t *testing.T) *IdempotencyStore {
	t.Helper()
	store := NewIdempotencyStore(IdempotencyConfig{TTL: time.Hour, Cleanup: time.Hour})
	t.Cleanup(store.Stop)
	return store
}

// countingHandler answers with a fresh body on each call
type countingHandler struct {
	calls  atomic.Int32
	status int
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := h.calls.Add(1)
	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(h.status)
	_, _ = fmt.Fprintf(w, `{"call":%d,"body":%q}`, n, body)
}

func postWithKey(userID, key, path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req.WithContext(WithClaims(req.Context(), &model.TokenClaims{UserID: userID}))
}

func TestIdempotency_ReplaysSameRequest(t *testing.T) {
	t.Parallel()
	next := &countingHandler{status: http.StatusCreated}
	handler := Idempotency(newTestStore(t))(next)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, postWithKey("user:1", "k1", "/v1/events/e1/registrations", "x"))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, postWithKey("user:1", "k1", "/v1/events/e1/registrations", "x"))

	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotency_DistinctRequestsRunSeparately(t *testing.T) {
	t.Parallel()
	next := &countingHandler{status: http.StatusCreated}
	handler := Idempotency(newTestStore(t))(next)

	requests := []*http.Request{
		postWithKey("user:1", "k1", "/v1/events/e1/registrations", "x"),
		postWithKey("user:2", "k1", "/v1/events/e1/registrations", "x"),
		postWithKey("user:1", "k1", "/v1/events/e2/registrations", "x"),
		postWithKey("user:1", "k1", "/v1/events/e1/registrations", "y"),
		postWithKey("user:1", "k2", "/v1/events/e1/registrations", "x"),
	}
	for _, req := range requests {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int32(len(requests)), next.calls.Load())
}

func TestIdempotency_Passthrough(t *testing.T) {
	t.Parallel()
	next := &countingHandler{status: http.StatusOK}
	handler := Idempotency(newTestStore(t))(next)

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), postWithKey("user:1", "", "/v1/events/e1/teams", "x"))
	}
	for range 2 {
		req := httptest.NewRequest(http.MethodDelete, "/v1/registrations/r1", nil)
		req.Header.Set("Idempotency-Key", "k1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int32(4), next.calls.Load())
}

func TestIdempotency_OversizedBodyRejected(t *testing.T) {
	t.Parallel()
	next := &countingHandler{status: http.StatusCreated}
	handler := Idempotency(newTestStore(t))(next)

	body := strings.Repeat("a", maxIdempotentBodyBytes+1)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postWithKey("user:1", "k1", "/v1/events/e1/teams", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(0), next.calls.Load())

	// A body at the limit still goes through
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, postWithKey("user:1", "k2", "/v1/events/e1/teams", body[:maxIdempotentBodyBytes]))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestIdempotency_ServerErrorsNotStored(t *testing.T) {
	t.Parallel()
	next := &countingHandler{status: http.StatusBadGateway}
	handler := Idempotency(newTestStore(t))(next)

	for range 2 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, postWithKey("user:1", "k1", "/v1/events/e1/teams", "x"))
		assert.Empty(t, rec.Header().Get("X-Idempotency-Replayed"))
	}

	assert.Equal(t, int32(2), next.calls.Load())
}

func TestIdempotency_ConcurrentRetriesRunOnce(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	var calls atomic.Int32
	handler := Idempotency(newTestStore(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.WriteHeader(http.StatusCreated)
	}))

	var wg sync.WaitGroup
	codes := make([]int, 5)
	for i := range codes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, postWithKey("user:1", "k1", "/v1/events/e1/teams", "x"))
			codes[i] = rec.Code
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, code := range codes {
		assert.Equal(t, http.StatusCreated, code)
	}
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	var calls atomic.Int32
	handler := Idempotency(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			panic("first attempt fails")
		}
		w.WriteHeader(http.StatusCreated)
	}))

	require.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), postWithKey("user:1", "k1", "/p", "x"))
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postWithKey("user:1", "k1", "/p", "x"))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyStore_Cleanup(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	entry, owner := store.claim("k")
	require.True(t, owner)
	store.finish("k", entry, &recordingWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusCreated})

	store.cleanup(time.Now())
	_, owner = store.claim("k")
	assert.False(t, owner, "entry still live")

	store.cleanup(time.Now().Add(2 * time.Hour))
	_, owner = store.claim("k")
	assert.True(t, owner, "expired entry evicted")
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	base := fingerprint("u", "k", "POST", "/p", []byte("b"))

	assert.Equal(t, base, fingerprint("u", "k", "POST", "/p", []byte("b")))
	assert.NotEqual(t, base, fingerprint("uk", "", "POST", "/p", []byte("b")))
	assert.NotEqual(t, base, fingerprint("u", "k", "POST", "/p", []byte("c")))
}
