package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/metrics"
	"github.com/barcodegenpro/barcodegen-backend/pkg/redis"
)

// QuoteResult is the full payload returned to clients for one pricing request.
type QuoteResult struct {
	BarcodeType string          `json:"barcode_type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Pricing     TaxBreakdown    `json:"pricing"`
	Currency    string          `json:"currency"`
}

type quoteCache interface {
	QuoteKey(standard string, quantity int, state string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service resolves catalog prices and evaluates the tax rule.
type Service interface {
	Quote(ctx context.Context, standardKey string, quantity int, buyerState string) (*QuoteResult, error)
}

type service struct {
	catalog   catalog.Service
	evaluator *Evaluator
	cache     quoteCache
	cacheTTL  time.Duration
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
}

// ServiceParams collects the pricing service dependencies. Cache and metrics
// are optional.
type ServiceParams struct {
	Catalog   catalog.Service
	Evaluator *Evaluator
	Cache     quoteCache
	CacheTTL  time.Duration
	Metrics   *metrics.OrderMetrics
	Logger    *logger.Logger
}

// NewService builds the pricing service.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Evaluator == nil {
		return nil, fmt.Errorf("evaluator required")
	}
	return &service{
		catalog:   params.Catalog,
		evaluator: params.Evaluator,
		cache:     params.Cache,
		cacheTTL:  params.CacheTTL,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// Quote validates inputs, consults the cache, and evaluates the price. The
// evaluator is pure, so cached entries never go stale for a given triple.
func (s *service) Quote(ctx context.Context, standardKey string, quantity int, buyerState string) (*QuoteResult, error) {
	standard, err := s.catalog.Get(standardKey)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than 0")
	}

	if cached := s.fromCache(ctx, standard.Key, quantity, buyerState); cached != nil {
		if s.metrics != nil {
			s.metrics.IncQuote("cache")
		}
		return cached, nil
	}

	result := &QuoteResult{
		BarcodeType: standard.Key,
		Quantity:    quantity,
		UnitPrice:   standard.UnitPrice,
		Pricing:     s.evaluator.Evaluate(standard.UnitPrice, quantity, buyerState),
		Currency:    s.catalog.Currency(),
	}

	s.toCache(ctx, standard.Key, quantity, buyerState, result)
	if s.metrics != nil {
		s.metrics.IncQuote("computed")
	}
	return result, nil
}

func (s *service) fromCache(ctx context.Context, key string, quantity int, state string) *QuoteResult {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.QuoteKey(key, quantity, state))
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) && s.logg != nil {
			s.logg.Warn(ctx, "quote cache read failed")
		}
		return nil
	}
	var result QuoteResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil
	}
	return &result
}

func (s *service) toCache(ctx context.Context, key string, quantity int, state string, result *QuoteResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.QuoteKey(key, quantity, state), payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "quote cache write failed")
	}
}
