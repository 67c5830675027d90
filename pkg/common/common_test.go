package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestQueueHandler_BatchesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	batches := make([][]int, 0)
	q := NewQueueHandler(ctx, func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, items)
	}, 10, 20*time.Millisecond)

	q.Add(1, 2)
	q.Add(3)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(batches) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []int{1, 2, 3}, batches[0])
	mu.Unlock()
	assert.Equal(t, 0, q.Len())
}

func TestQueueHandler_ChunkSize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	sizes := make([]int, 0)
	q := NewQueueHandler(ctx, func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		sizes = append(sizes, len(items))
	}, 2, 10*time.Millisecond)
	q.Add(1, 2, 3, 4, 5)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(sizes) == 3
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []int{2, 2, 1}, sizes)
	mu.Unlock()
}

func TestHandleSessionCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	id := HandleSessionCookie(w, r)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, id, cookies[0].Value)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	w = httptest.NewRecorder()
	assert.Equal(t, id, HandleSessionCookie(w, r))
	assert.Empty(t, w.Result().Cookies())

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "12345"})
	w = httptest.NewRecorder()
	assert.NotEqual(t, "12345", HandleSessionCookie(w, r))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "7")
	t.Setenv("WRITE_TIMEOUT", "nope")
	cfg := LoadTimeoutConfig(TimeoutConfig{Read: time.Second, Write: 2 * time.Second})
	assert.Equal(t, 7*time.Second, cfg.Read)
	assert.Equal(t, 2*time.Second, cfg.Write)
}
