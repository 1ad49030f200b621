package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/application/visitor"
	"github.com/shopfront/backend/internal/domain/shop"
)

type recordingStore struct {
	mu      sync.Mutex
	entries []shop.VisitEntry
}

func (s *recordingStore) Append(ctx context.Context, entry shop.VisitEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *recordingStore) Recent(ctx context.Context, n int) ([]shop.VisitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shop.VisitEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *recordingStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

func visitRouter(store *recordingStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	recorder := visitor.NewRecorder(store, nil, zap.NewNop())
	router := gin.New()
	router.Use(VisitLogger(recorder, []string{"/admin", "/health"}))
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/", handler)
	router.GET("/products", handler)
	router.GET("/health", handler)
	router.GET("/admin/visitors", handler)
	return router
}

func TestVisitLogger(t *testing.T) {
	t.Run("records storefront paths", func(t *testing.T) {
		store := &recordingStore{}
		router := visitRouter(store)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))
		require.Equal(t, http.StatusOK, w.Code)

		// Recording happens off the request path.
		assert.Eventually(t, func() bool {
			n, _ := store.Len(context.Background())
			return n == 1
		}, time.Second, 10*time.Millisecond)

		entries, err := store.Recent(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/products", entries[0].Path)
		assert.NotEmpty(t, entries[0].IP)
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run("skips admin and health paths", func(t *testing.T) {
		store := &recordingStore{}
		router := visitRouter(store)

		for _, path := range []string{"/health", "/admin/visitors"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		assert.Eventually(t, func() bool {
			n, _ := store.Len(context.Background())
			return n == 1
		}, time.Second, 10*time.Millisecond)

		entries, err := store.Recent(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/", entries[0].Path)
	})
}
