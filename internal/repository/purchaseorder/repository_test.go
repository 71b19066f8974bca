package purchaseorder

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/billmate/billmate/internal/database"
	"github.com/billmate/billmate/internal/entity"
)

const testSchema = `
CREATE TABLE purchase_orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number VARCHAR(64) NOT NULL UNIQUE,
    buyer_name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    purchase_date TIMESTAMP,
    platform VARCHAR(255) NOT NULL,
    gst VARCHAR(8) NOT NULL,
    invoice_number VARCHAR(255),
    notes TEXT,
    products JSONB NOT NULL,
    grand_total NUMERIC NOT NULL DEFAULT 0,
    bill_upload JSONB,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP
)`

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(context.Background(), testSchema)
	require.NoError(t, err)

	return NewRepository(&database.Connections{Writer: db, Reader: db})
}

func sampleOrder(number string, createdAt time.Time) *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		OrderNumber:  number,
		BuyerName:    "Ananya Rao",
		Email:        "ananya@example.com",
		PurchaseDate: createdAt.AddDate(0, 0, -1),
		Platform:     "Amazon",
		GST:          "Yes",
		Products: []entity.ProductLine{
			{ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 2, TotalPrice: decimal.NewFromInt(20)},
		},
		GrandTotal: decimal.NewFromInt(20),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestRepository_InsertAndCount(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	now := time.Now().UTC()
	require.NoError(t, repo.Insert(ctx, sampleOrder("BM-1-0001", now)))
	require.NoError(t, repo.Insert(ctx, sampleOrder("BM-2-0002", now.Add(time.Second))))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRepository_InsertRoundTripsEmbeddedDocuments(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	order := sampleOrder("BM-3-0001", time.Now().UTC())
	order.BillUpload = &entity.Attachment{
		Filename: "123-abc.jpg",
		Path:     "uploads/123-abc.jpg",
		Size:     2048,
		Mimetype: "image/jpeg",
	}
	require.NoError(t, repo.Insert(ctx, order))
	require.NotZero(t, order.ID)

	stored, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got := stored[0]
	require.Equal(t, "BM-3-0001", got.OrderNumber)
	require.Len(t, got.Products, 1)
	require.Equal(t, "Widget", got.Products[0].ProductName)
	require.True(t, got.Products[0].TotalPrice.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, got.BillUpload)
	require.Equal(t, "image/jpeg", got.BillUpload.Mimetype)
	require.Equal(t, int64(2048), got.BillUpload.Size)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Insert(ctx, sampleOrder("BM-10-0001", base)))
	require.NoError(t, repo.Insert(ctx, sampleOrder("BM-11-0002", base.Add(2*time.Second))))
	require.NoError(t, repo.Insert(ctx, sampleOrder("BM-12-0003", base.Add(time.Second))))

	orders, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, "BM-11-0002", orders[0].OrderNumber)
	require.Equal(t, "BM-12-0003", orders[1].OrderNumber)
	require.Equal(t, "BM-10-0001", orders[2].OrderNumber)
}

func TestRepository_InsertNil(t *testing.T) {
	repo := newTestRepository(t)
	require.Error(t, repo.Insert(context.Background(), nil))
}
