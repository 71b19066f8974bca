package purchaseorder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billmate/billmate/internal/cache"
	"github.com/billmate/billmate/internal/config"
	"github.com/billmate/billmate/internal/entity"
	"github.com/billmate/billmate/internal/messaging"
	repo "github.com/billmate/billmate/internal/repository/purchaseorder"
	"github.com/billmate/billmate/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/billmate/billmate/service/purchaseorder")

const listCacheKey = "purchase-orders:list"

// Service encapsulates business logic around purchase orders: assembling the
// aggregate from submitted fields, stamping the order number, and persisting.
type Service struct {
	repo      *repo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// Create validates the submitted fields, assigns an order number, and inserts
// the aggregate. Numbering is an explicit count-then-insert pair, not an
// atomic repository operation; see formatOrderNumber.
func (s *Service) Create(ctx context.Context, form Form, bill *entity.Attachment) (*entity.PurchaseOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "PurchaseOrderService.Create")
	defer span.End()

	order, err := assemble(form)
	if err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}
	order.BillUpload = bill

	count, err := s.repo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to number purchase order", errorbank.WithCause(err))
	}

	now := time.Now().UTC()
	order.OrderNumber = formatOrderNumber(now, count+1)
	order.CreatedAt = now
	order.UpdatedAt = now

	span.SetAttributes(attribute.String("order.number", order.OrderNumber))

	if err := s.repo.Insert(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to create purchase order", errorbank.WithCause(err))
	}

	s.invalidateListCache(ctx)
	s.publishOrderCreated(ctx, order)

	return order, nil
}

// List returns all purchase orders newest first, consulting cache when
// available.
func (s *Service) List(ctx context.Context) ([]entity.PurchaseOrder, error) {
	ctx, span := serviceTracer.Start(ctx, "PurchaseOrderService.List")
	defer span.End()

	if orders, err := s.listFromCache(ctx); err == nil {
		return orders, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("purchase orders cache read failed", zap.Error(err))
		}
	}

	orders, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to list purchase orders", errorbank.WithCause(err))
	}

	if err := s.storeListInCache(ctx, orders); err != nil {
		if s.logger != nil {
			s.logger.Warn("purchase orders cache write failed", zap.Error(err))
		}
	}

	return orders, nil
}

func (s *Service) publishOrderCreated(ctx context.Context, order *entity.PurchaseOrder) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		BuyerName:   order.BuyerName,
		Platform:    order.Platform,
		GrandTotal:  order.GrandTotal,
		CreatedAt:   order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal purchase order created", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(order.OrderNumber), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish purchase order created", zap.Error(err))
		}
	}
}

func (s *Service) listFromCache(ctx context.Context) ([]entity.PurchaseOrder, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, listCacheKey)
	if err != nil {
		return nil, err
	}
	var orders []entity.PurchaseOrder
	if err := json.Unmarshal(bytes, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Service) storeListInCache(ctx context.Context, orders []entity.PurchaseOrder) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(orders)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, listCacheKey, bytes, s.cacheTTL)
}

func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		if s.logger != nil {
			s.logger.Warn("purchase orders cache invalidation failed", zap.Error(err))
		}
	}
}

// OrderCreatedEvent is emitted when a new purchase order is persisted.
type OrderCreatedEvent struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	BuyerName   string          `json:"buyerName"`
	Platform    string          `json:"platform"`
	GrandTotal  decimal.Decimal `json:"grandTotal"`
	CreatedAt   time.Time       `json:"createdAt"`
}
