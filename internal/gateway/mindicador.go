package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-ferreteria-api/pkg/logger"
)

const (
	DefaultMindicadorURL = "https://mindicador.cl/api/dolar"
	bodyReadLimit        = 1024
)

var (
	usdToCLP = Pair{Source: "USD", Target: "CLP"}
	clpToUSD = Pair{Source: "CLP", Target: "USD"}
)

// MindicadorSource reads the daily observed dollar from mindicador.cl. Only
// USD→CLP and its inverse come from the API; every other pair, and any
// failure, is answered by the fallback.
type MindicadorSource struct {
	httpClient *http.Client
	url        string
	fallback   RateSource
	logg       *logger.Logger
}

type MindicadorOption func(*MindicadorSource)

func WithHTTPClient(client *http.Client) MindicadorOption {
	return func(s *MindicadorSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

func WithFallback(fallback RateSource) MindicadorOption {
	return func(s *MindicadorSource) {
		if fallback != nil {
			s.fallback = fallback
		}
	}
}

func WithLogger(logg *logger.Logger) MindicadorOption {
	return func(s *MindicadorSource) {
		s.logg = logg
	}
}

func NewMindicadorSource(url string, timeout time.Duration, opts ...MindicadorOption) *MindicadorSource {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		trimmed = DefaultMindicadorURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s := &MindicadorSource{
		httpClient: &http.Client{Timeout: timeout},
		url:        trimmed,
		fallback:   StaticSource{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MindicadorSource) Lookup(ctx context.Context, pair Pair) (float64, error) {
	if pair != usdToCLP && pair != clpToUSD {
		return s.fallback.Lookup(ctx, pair)
	}

	dollar, err := s.observedDollar(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithFields(ctx, logger.Fields{
			"pair":  pair.String(),
			"error": err.Error(),
		}), "mindicador lookup failed, using fallback rate")
		return s.fallback.Lookup(ctx, pair)
	}

	if pair == clpToUSD {
		return 1 / dollar, nil
	}
	return dollar, nil
}

func (s *MindicadorSource) observedDollar(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, bodyReadLimit))
		return 0, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload struct {
		Serie []struct {
			Fecha string  `json:"fecha"`
			Valor float64 `json:"valor"`
		} `json:"serie"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Serie) == 0 || payload.Serie[0].Valor <= 0 {
		return 0, fmt.Errorf("response has no usable serie value")
	}
	return payload.Serie[0].Valor, nil
}
