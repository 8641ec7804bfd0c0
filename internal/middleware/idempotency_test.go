package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

const (
	idempTTL      = time.Hour
	idempCacheKey = "idemp:/add-employee:key-1"
	idempLockKey  = idempCacheKey + ":lock"
)

func setupIdempotencyRouter(t *testing.T, status int, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.POST("/add-employee", middleware.Idempotency(rdb, idempTTL), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"employeeId": 1})
	})
	return r, mock
}

func postWithKey(r http.Handler, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/add-employee", nil)
	if key != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func storedPayload(t *testing.T, status int, body string) string {
	t.Helper()
	payload, err := json.Marshal(struct {
		Status      int    `json:"status"`
		ContentType string `json:"content_type"`
		Body        string `json:"body"`
	}{status, "application/json; charset=utf-8", body})
	assert.NoError(t, err)
	return string(payload)
}

func TestIdempotency(t *testing.T) {
	t.Run("first request is stored", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusCreated, &calls)

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(idempCacheKey, storedPayload(t, http.StatusCreated, `{"employeeId":1}`), idempTTL).SetVal("OK")
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postWithKey(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat is replayed", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusCreated, &calls)

		mock.ExpectGet(idempCacheKey).SetVal(storedPayload(t, http.StatusCreated, `{"employeeId":1}`))

		w := postWithKey(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, `{"employeeId":1}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get(middleware.IdempotentReplayHeader))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in flight", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusCreated, &calls)

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(false)

		w := postWithKey(r, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("server errors are not stored", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusInternalServerError, &calls)

		mock.ExpectGet(idempCacheKey).RedisNil()
		mock.ExpectSetNX(idempLockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectDel(idempLockKey).SetVal(1)

		w := postWithKey(r, "key-1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis unavailable", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusCreated, &calls)

		mock.ExpectGet(idempCacheKey).SetErr(errors.New("dial tcp: connection refused"))

		w := postWithKey(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("no key", func(t *testing.T) {
		var calls int
		r, mock := setupIdempotencyRouter(t, http.StatusCreated, &calls)

		w := postWithKey(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
