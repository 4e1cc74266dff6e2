package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestErrorIncludesContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "ferreteria-api", Version: "1.2.3", Level: "debug", Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	log.Error(ctx, "boom", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-123"`)
	assert.Contains(t, out, `"service":"ferreteria-api"`)
	assert.Contains(t, out, `"version":"1.2.3"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: "warn", Output: buf})

	log.Info(context.Background(), "quiet")
	assert.Zero(t, buf.Len(), buf.String())

	log.Warn(context.Background(), "loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestWithFieldsStacksOnNilContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	ctx := log.WithFields(nil, Fields{"pedido_id": 7})
	ctx = log.WithField(ctx, "estado", "aprobado")
	log.Info(ctx, "approved")

	assert.Contains(t, buf.String(), `"pedido_id":7`)
	assert.Contains(t, buf.String(), `"estado":"aprobado"`)
}

func TestNilLoggerDiscards(t *testing.T) {
	var log *Logger

	ctx := log.WithFields(context.Background(), Fields{"k": "v"})
	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() {
		log.Debug(ctx, "x")
		log.Info(ctx, "x")
		log.Warn(ctx, "x")
		log.Error(ctx, "x", errors.New("x"))
		log.Printf("%s", "x")
	})
}

func TestPrintfTagsGormLines(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	log.Printf("slow sql %dms\n", 250)

	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), `"message":"slow sql 250ms"`)
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
}
