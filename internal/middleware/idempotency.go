package middleware

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-ferreteria-api/pkg/logger"
	pkgredis "go-ferreteria-api/pkg/redis"

	"github.com/gofiber/fiber/v2"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderIdempotencyHit = "X-Idempotency-Hit"
)

type idempotencyRecord struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ContentType string `json:"content_type,omitempty"`
	RequestHash string `json:"request_hash"`
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Requests without the header, or with no store configured, pass through.
// Server errors are not stored so a retry can succeed.
func Idempotency(store pkgredis.IdempotencyStore, ttl time.Duration, logg *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if store == nil || key == "" {
			return c.Next()
		}

		ctx := c.UserContext()
		requestHash := hashBody(c.Body())
		redisKey := store.IdempotencyKey(c.Method()+"|"+c.Path(), key)

		stored, err := store.Get(ctx, redisKey)
		switch {
		case err == nil:
			var record idempotencyRecord
			if err := json.Unmarshal([]byte(stored), &record); err != nil {
				logg.Error(ctx, "decode idempotency record", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Servicio de idempotencia no disponible"})
			}
			if record.RequestHash != requestHash {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Idempotency-Key reutilizada con un cuerpo distinto"})
			}
			return replay(c, record)
		case !errors.Is(err, pkgredis.ErrMiss):
			logg.Error(ctx, "check idempotency", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Servicio de idempotencia no disponible"})
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError {
			return nil
		}
		record := idempotencyRecord{
			Status:      status,
			Body:        base64.StdEncoding.EncodeToString(c.Response().Body()),
			ContentType: string(c.Response().Header.ContentType()),
			RequestHash: requestHash,
		}
		payload, err := json.Marshal(record)
		if err != nil {
			logg.Error(ctx, "marshal idempotency record", err)
			return nil
		}
		if _, err := store.SetNX(ctx, redisKey, string(payload), ttl); err != nil {
			logg.Error(ctx, "persist idempotency record", err)
		}
		return nil
	}
}

func replay(c *fiber.Ctx, record idempotencyRecord) error {
	body, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Servicio de idempotencia no disponible"})
	}
	c.Set(HeaderIdempotencyHit, "true")
	if record.ContentType != "" {
		c.Set(fiber.HeaderContentType, record.ContentType)
	}
	return c.Status(record.Status).Send(body)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}
