package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturador/internal/infrastructure/cache"
)

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0

	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.POST("/invoices", Idempotency(cache.NewIdempotencyStore(time.Hour)), func(c *gin.Context) {
		calls++
		if calls == 1 {
			panic("renderer exploded")
		}
		c.JSON(http.StatusCreated, gin.H{"id": calls})
	})

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"type":"A"}`))
		req.Header.Set(HeaderIdempotencyKey, "k-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusInternalServerError, post().Code)

	retry := post()
	require.Equal(t, http.StatusCreated, retry.Code, retry.Body.String())
	assert.JSONEq(t, `{"id":2}`, retry.Body.String())

	replay := post()
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(HeaderIdempotentReplay))
	assert.Equal(t, 2, calls)
}

func TestIdempotency_IgnoresRequestsWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0

	r := gin.New()
	r.POST("/invoices", Idempotency(cache.NewIdempotencyStore(time.Hour)), func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	assert.Equal(t, 2, calls)
}
