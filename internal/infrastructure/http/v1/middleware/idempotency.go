package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"facturador/internal/core/apperror"
	"facturador/internal/infrastructure/cache"
)

const HeaderIdempotencyKey = "X-Idempotency-Key"
const HeaderIdempotentReplay = "X-Idempotent-Replay"
const maxIdempotencyBodyBytes = 1 << 20 // 1 MiB

// Idempotency replays the first successful response of a POST carrying an
// X-Idempotency-Key, so a retried create does not issue a second invoice.
// Failed responses release the key.
func Idempotency(store *cache.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}

		limited := io.LimitReader(c.Request.Body, maxIdempotencyBodyBytes+1)
		body, err := io.ReadAll(limited)
		if err != nil {
			WriteError(c, apperror.NewInvalidInput("unreadable request body"))
			return
		}
		if len(body) > maxIdempotencyBodyBytes {
			WriteError(c, apperror.NewValidation("request body too large for idempotency").
				WithDetail("max_bytes", maxIdempotencyBodyBytes))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		// Key scope includes the route so one key cannot replay across endpoints
		scoped := c.FullPath() + "|" + key
		sum := sha256.Sum256(body)
		requestHash := hex.EncodeToString(sum[:])

		replay, err := store.Acquire(scoped, requestHash)
		switch {
		case errors.Is(err, cache.ErrKeyMismatch), errors.Is(err, cache.ErrKeyInFlight):
			WriteError(c, apperror.NewValidation(err.Error()).WithDetail("key", key))
			return
		case err != nil:
			WriteError(c, apperror.NewInternal(err))
			return
		}

		if replay != nil {
			if replay.Location != "" {
				c.Header("Location", replay.Location)
			}
			c.Header(HeaderIdempotentReplay, "true")
			c.Data(replay.StatusCode, replay.ContentType, replay.Body)
			c.Abort()
			return
		}

		// the key is released on every path that does not complete it, panics included
		completed := false
		defer func() {
			if !completed {
				store.Release(scoped)
			}
		}()

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		// handler errors are rendered later by ErrorHandler, so check them first
		status := rec.Status()
		if len(c.Errors) > 0 || !rec.Written() || status < 200 || status >= 300 {
			return
		}
		store.Complete(scoped, requestHash, cache.StoredResponse{
			StatusCode:  status,
			ContentType: rec.Header().Get("Content-Type"),
			Location:    rec.Header().Get("Location"),
			Body:        rec.body.Bytes(),
		})
		completed = true
	}
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
