// Package gateway holds the external collaborators the services talk to: the
// payment gateway and the exchange-rate sources.
package gateway

import (
	"context"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/model"
)

const DefaultWebpayBaseURL = "https://webpay-simulator.com"

// PaymentGateway starts and settles payments with the card processor.
type PaymentGateway interface {
	// Start registers the payment and returns the URL the customer pays at.
	Start(ctx context.Context, token string) (string, error)
	// Confirm reports the final outcome the processor assigns.
	Confirm(ctx context.Context, token string, requested model.PaymentStatus) (model.PaymentStatus, error)
}

// WebpaySimulator stands in for Transbank WebPay. It never leaves the
// process: the payment URL is a template over the token and the outcome is
// whatever the caller asked for.
type WebpaySimulator struct {
	baseURL string
}

func NewWebpaySimulator(baseURL string) *WebpaySimulator {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = DefaultWebpayBaseURL
	}
	return &WebpaySimulator{baseURL: trimmed}
}

func (s *WebpaySimulator) Start(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("webpay: empty token")
	}
	return fmt.Sprintf("%s/pay/%s", s.baseURL, token), nil
}

func (s *WebpaySimulator) Confirm(_ context.Context, _ string, requested model.PaymentStatus) (model.PaymentStatus, error) {
	return requested, nil
}
