package purchaseorder

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billmate/billmate/internal/config"
	"github.com/billmate/billmate/internal/messaging"
	purchasesvc "github.com/billmate/billmate/internal/service/purchaseorder"
	"github.com/billmate/billmate/internal/worker"
)

var workerTracer = otel.Tracer("github.com/billmate/billmate/worker/purchaseorder")

// Module registers purchase-order worker handlers.
var Module = fx.Module("worker_purchaseorder",
	fx.Provide(
		fx.Annotate(
			NewOrderCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderCreatedHandler sets up a worker handler that writes an audit line
// for every purchase order creation.
func NewOrderCreatedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.purchaseorders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event purchasesvc.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode purchase order created", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		logger.Info("purchase order created event processed",
			zap.Int64("id", event.ID),
			zap.String("orderNumber", event.OrderNumber),
			zap.String("buyer", event.BuyerName),
			zap.String("grandTotal", event.GrandTotal.String()),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
