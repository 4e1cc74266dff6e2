package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go-ferreteria-api/internal/gateway"
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"
	"go-ferreteria-api/pkg/logger"
	"go-ferreteria-api/pkg/metrics"

	"github.com/shopspring/decimal"
)

// maxJitter bounds the simulated market movement applied on refresh.
const maxJitter = 0.05

type CurrencyService interface {
	GetRate(ctx context.Context, source, target string) (float64, error)
	Convert(ctx context.Context, amount decimal.Decimal, source, target string) (*model.ConversionResult, error)
	RefreshRates(ctx context.Context) (string, error)
	ListRates(ctx context.Context) ([]model.CurrencyRate, error)
}

type CurrencyOption func(*currencyService)

// WithJitter replaces the refresh variation. fn must return a value in
// [-0.05, 0.05].
func WithJitter(fn func() float64) CurrencyOption {
	return func(s *currencyService) {
		if fn != nil {
			s.jitter = fn
		}
	}
}

// WithEvents publishes a rates_refreshed event after each refresh.
func WithEvents(events EventPublisher) CurrencyOption {
	return func(s *currencyService) {
		s.events = publisherOrNoop(events)
	}
}

func WithClock(now func() time.Time) CurrencyOption {
	return func(s *currencyService) {
		if now != nil {
			s.now = now
		}
	}
}

type currencyService struct {
	rateRepo repository.RateRepository
	source   gateway.RateSource
	metrics  *metrics.Metrics
	logg     *logger.Logger
	events   EventPublisher
	jitter   func() float64
	now      func() time.Time
}

func NewCurrencyService(repo repository.RateRepository, source gateway.RateSource, m *metrics.Metrics, logg *logger.Logger, opts ...CurrencyOption) CurrencyService {
	if source == nil {
		source = gateway.NewStaticSource()
	}
	s := &currencyService{
		rateRepo: repo,
		source:   source,
		metrics:  m,
		logg:     logg,
		events:   noopPublisher{},
		jitter:   uniformJitter,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func uniformJitter() float64 {
	return rand.Float64()*2*maxJitter - maxJitter
}

// NormalizeCurrency upper-cases a code and checks it has three letters.
func NormalizeCurrency(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", pkgerrors.Validation(fmt.Sprintf("Código de moneda inválido: %s", code))
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", pkgerrors.Validation(fmt.Sprintf("Código de moneda inválido: %s", code))
		}
	}
	return normalized, nil
}

func (s *currencyService) GetRate(ctx context.Context, source, target string) (float64, error) {
	src, err := NormalizeCurrency(source)
	if err != nil {
		return 0, err
	}
	dst, err := NormalizeCurrency(target)
	if err != nil {
		return 0, err
	}
	if src == dst {
		return 1.0, nil
	}

	cached, err := s.rateRepo.FindActive(ctx, src, dst)
	if err != nil {
		return 0, fmt.Errorf("lookup cached rate: %w", err)
	}
	if cached != nil {
		return cached.Rate, nil
	}

	pair := gateway.Pair{Source: src, Target: dst}
	rate, err := s.source.Lookup(ctx, pair)
	if errors.Is(err, gateway.ErrPairUnsupported) {
		return 0, pkgerrors.Validation(fmt.Sprintf("Conversión no disponible para %s a %s", src, dst))
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate source lookup failed")
	}

	if err := s.rateRepo.CreateIfAbsent(ctx, src, dst, rate); err != nil {
		return 0, fmt.Errorf("cache rate: %w", err)
	}
	return rate, nil
}

func (s *currencyService) Convert(ctx context.Context, amount decimal.Decimal, source, target string) (*model.ConversionResult, error) {
	if !amount.IsPositive() {
		return nil, pkgerrors.Validation("El monto debe ser mayor a 0")
	}
	src, err := NormalizeCurrency(source)
	if err != nil {
		return nil, err
	}
	dst, err := NormalizeCurrency(target)
	if err != nil {
		return nil, err
	}

	pair := src + "_" + dst
	rate, err := s.GetRate(ctx, src, dst)
	if err != nil {
		s.metrics.IncConversion(pair, false)
		return nil, err
	}
	s.metrics.IncConversion(pair, true)

	return &model.ConversionResult{
		OriginalAmount:  amount,
		Source:          src,
		ConvertedAmount: ConvertAmount(amount, rate),
		Target:          dst,
		Rate:            rate,
		ConvertedAt:     s.now().UTC(),
	}, nil
}

// ConvertAmount multiplies and rounds to cents, half away from zero.
func ConvertAmount(amount decimal.Decimal, rate float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(rate)).Round(2)
}

// RefreshRates re-derives every known pair from the rate source with a
// random variation and writes it to the cache.
func (s *currencyService) RefreshRates(ctx context.Context) (string, error) {
	updated := 0
	for _, pair := range gateway.StaticPairs() {
		base, err := s.source.Lookup(ctx, pair)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate source lookup failed")
		}

		rate := decimal.NewFromFloat(base * (1 + s.jitter())).Round(6).InexactFloat64()
		if err := s.rateRepo.Upsert(ctx, pair.Source, pair.Target, rate); err != nil {
			return "", fmt.Errorf("upsert rate %s: %w", pair, err)
		}
		updated++
	}

	s.metrics.AddRatesRefreshed(updated)
	s.events.Publish(EventRates, "rates_refreshed", map[string]any{"actualizadas": updated})
	s.logg.Info(s.logg.WithField(ctx, "updated", updated), "currency rates refreshed")
	return fmt.Sprintf("Se actualizaron %d tasas de cambio", updated), nil
}

func (s *currencyService) ListRates(ctx context.Context) ([]model.CurrencyRate, error) {
	rates, err := s.rateRepo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return rates, nil
}
