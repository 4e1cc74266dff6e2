package gateway

import (
	"context"
	"testing"

	"go-ferreteria-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebpaySimulatorStart(t *testing.T) {
	sim := NewWebpaySimulator("")
	url, err := sim.Start(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "https://webpay-simulator.com/pay/abc-123", url)

	custom := NewWebpaySimulator("http://localhost:9000/")
	url, err = custom.Start(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/pay/t", url)

	_, err = sim.Start(context.Background(), "")
	require.Error(t, err)
}

func TestWebpaySimulatorConfirmEchoesOutcome(t *testing.T) {
	sim := NewWebpaySimulator("")
	got, err := sim.Confirm(context.Background(), "tok", model.PaymentRejected)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRejected, got)
}
