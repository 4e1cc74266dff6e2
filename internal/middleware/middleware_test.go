package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go-ferreteria-api/pkg/jwt"
	"go-ferreteria-api/pkg/logger"
	pkgredis "go-ferreteria-api/pkg/redis"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", pkgredis.ErrMiss
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	str, _ := value.(string)
	f.data[key] = str
	return true, nil
}

func (f *fakeStore) IdempotencyKey(scope, id string) string {
	return "fake:" + scope + ":" + id
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeStore()
	var calls atomic.Int32

	app := fiber.New()
	app.Post("/webpay/iniciar", Idempotency(store, time.Hour, logger.Nop()), func(c *fiber.Ctx) error {
		n := calls.Add(1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"call": n})
	})

	send := func(key, body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/webpay/iniciar", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set(HeaderIdempotencyKey, key)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	first := send("k1", `{"monto":100}`)
	assert.Equal(t, fiber.StatusCreated, first.StatusCode)
	assert.Equal(t, `{"call":1}`, readBody(t, first))

	second := send("k1", `{"monto":100}`)
	assert.Equal(t, fiber.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get(HeaderIdempotencyHit))
	assert.Equal(t, `{"call":1}`, readBody(t, second))
	assert.Contains(t, second.Header.Get("Content-Type"), "application/json")

	conflict := send("k1", `{"monto":200}`)
	assert.Equal(t, fiber.StatusConflict, conflict.StatusCode)

	noKey := send("", `{"monto":100}`)
	assert.Equal(t, `{"call":2}`, readBody(t, noKey))
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencySkipsServerErrors(t *testing.T) {
	store := newFakeStore()
	app := fiber.New()
	app.Post("/x", Idempotency(store, time.Hour, logger.Nop()), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "boom"})
	})

	req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{}`))
	req.Header.Set(HeaderIdempotencyKey, "k")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Empty(t, store.data)
}

func TestIdempotencyWithoutStorePassesThrough(t *testing.T) {
	app := fiber.New()
	app.Post("/x", Idempotency(nil, time.Hour, logger.Nop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set(HeaderIdempotencyKey, "k")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRateLimitReturns429(t *testing.T) {
	limit, err := RateLimit("2-M", logger.Nop())
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/webpay/confirmar", limit, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/webpay/confirmar", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/webpay/confirmar", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
}

func TestRateLimitRejectsBadFormat(t *testing.T) {
	_, err := RateLimit("lots", logger.Nop())
	require.Error(t, err)
}

func TestRequireOperator(t *testing.T) {
	secret := []byte("s3cret")
	app := fiber.New()
	app.Post("/divisas/actualizar-tasas", RequireOperator(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"operator": c.Locals("operator")})
	})

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodPost, "/divisas/actualizar-tasas", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	token, err := jwt.GenerateToken(secret, "ops", time.Hour)
	require.NoError(t, err)
	other, err := jwt.GenerateToken([]byte("other"), "ops", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, call(""))
	assert.Equal(t, fiber.StatusUnauthorized, call("Token "+token))
	assert.Equal(t, fiber.StatusUnauthorized, call("Bearer "+other))
	assert.Equal(t, fiber.StatusOK, call("Bearer "+token))
}

func TestRequireOperatorDisabledWithoutSecret(t *testing.T) {
	app := fiber.New()
	app.Post("/x", RequireOperator(nil), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestLoggerHandsErrorsToErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: "debug", Format: "json", Output: &buf})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusTeapot).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Use(requestid.New(), RequestLogger(logg))
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	out := buf.String()
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"request_id":`)
	assert.Contains(t, out, `"path":"/boom"`)
}
