package purchaseorder

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/billmate/billmate/internal/database"
	"github.com/billmate/billmate/internal/entity"
)

var repoTracer = otel.Tracer("github.com/billmate/billmate/repository/purchaseorder")

// Repository encapsulates read/write access for purchase orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Insert persists a new purchase order using the write connection.
func (r *Repository) Insert(ctx context.Context, order *entity.PurchaseOrder) error {
	if order == nil {
		return errors.New("nil purchase order")
	}
	ctx, span := repoTracer.Start(ctx, "PurchaseOrderRepository.Insert", trace.WithAttributes(attribute.String("order.number", order.OrderNumber)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(order).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Count reports the current total of persisted purchase orders. It feeds the
// order-numbering sequence and nothing else.
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := repoTracer.Start(ctx, "PurchaseOrderRepository.Count")
	defer span.End()

	count, err := r.reader.NewSelect().Model((*entity.PurchaseOrder)(nil)).Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		return 0, err
	}
	return count, nil
}

// ListNewestFirst returns every purchase order sorted by creation time
// descending.
func (r *Repository) ListNewestFirst(ctx context.Context) ([]entity.PurchaseOrder, error) {
	ctx, span := repoTracer.Start(ctx, "PurchaseOrderRepository.ListNewestFirst")
	defer span.End()

	var orders []entity.PurchaseOrder
	err := r.reader.NewSelect().Model(&orders).Order("created_at DESC").Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}
