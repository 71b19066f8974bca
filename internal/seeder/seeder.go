package seeder

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/billmate/billmate/internal/database"
	"github.com/billmate/billmate/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// PurchaseOrders seeds example purchase orders if they are missing.
func (s *Seeder) PurchaseOrders(ctx context.Context) error {
	now := time.Now().UTC()
	samples := []entity.PurchaseOrder{
		{
			OrderNumber:  "BM-1700000000000-0001",
			BuyerName:    "Ananya Rao",
			Email:        "ananya@example.com",
			PurchaseDate: now.AddDate(0, 0, -3),
			Platform:     "Amazon",
			GST:          "Yes",
			Products: []entity.ProductLine{
				{ProductName: "Thermal Printer", UnitPrice: decimal.NewFromInt(120), Quantity: 1, TotalPrice: decimal.NewFromInt(120)},
			},
			GrandTotal: decimal.NewFromInt(120),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			OrderNumber:  "BM-1700000000001-0002",
			BuyerName:    "Marcus Lim",
			Email:        "marcus@example.com",
			PurchaseDate: now.AddDate(0, 0, -1),
			Platform:     "Flipkart",
			GST:          "No",
			Products: []entity.ProductLine{
				{ProductName: "Label Roll", UnitPrice: decimal.NewFromInt(8), Quantity: 5, TotalPrice: decimal.NewFromInt(40)},
				{ProductName: "Ink Ribbon", UnitPrice: decimal.NewFromInt(12), Quantity: 2, TotalPrice: decimal.NewFromInt(24)},
			},
			GrandTotal: decimal.NewFromInt(64),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}

	for _, sample := range samples {
		order := sample
		_, err := s.db.NewInsert().Model(&order).
			On("CONFLICT (order_number) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded purchase orders", zap.Int("count", len(samples)))
	}
	return nil
}
