package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const (
	idempCacheKey = "idemp:/payments/match:u-1:key-1"
	idempLockKey  = idempCacheKey + ":lock"
)

func newIdempotencyRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := contextutil.WithSession(c.Request.Context(), contextutil.Session{Token: "tkn", UserID: "u-1"})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.POST("/payments/match", Idempotency(rdb), handler)
	return r, mock
}

func postMatch(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/match", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	body := `{"ok":true,"data":{"id":"m-1"}}`

	t.Run("first request stores the response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, func(c *gin.Context) {
			calls++
			response.Success(c, http.StatusCreated, gin.H{"id": "m-1"}, nil)
		})

		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(body)})
		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectSet(idempCacheKey, payload, idempotencyResultTTL).SetVal("OK")
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postMatch(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, body, w.Body.String())
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat replays without calling the handler", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, func(c *gin.Context) { calls++ })

		payload, _ := json.Marshal(cachedResponse{Status: http.StatusCreated, Body: json.RawMessage(body)})
		mock.ExpectGet(idempCacheKey).SetVal(string(payload))

		w := postMatch(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get(IdempotencyReplayHeader))
		assert.JSONEq(t, body, w.Body.String())
		assert.Zero(t, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in flight duplicate is rejected", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t, func(c *gin.Context) {
			t.Fatal("handler must not run")
		})

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", idempotencyLockTTL).SetVal(false)

		w := postMatch(r, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed request is not stored", func(t *testing.T) {
		r, mock := newIdempotencyRouter(t, func(c *gin.Context) {
			response.Error(c, http.StatusUnprocessableEntity, "AMOUNT_MISMATCH", "mismatch", nil)
		})

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postMatch(r, "key-1")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no key passes through", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, func(c *gin.Context) {
			calls++
			c.Status(http.StatusNoContent)
		})

		w := postMatch(r, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
