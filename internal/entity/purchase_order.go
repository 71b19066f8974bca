package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ProductLine is one purchased item embedded in its parent order. Lines are
// never persisted on their own.
type ProductLine struct {
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// Attachment references the uploaded bill image held in the blob store.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	Mimetype string `json:"mimetype"`
}

// PurchaseOrder is the aggregate root stored in the relational database.
// Product lines and the optional attachment are embedded as JSON columns and
// share the order's lifetime.
type PurchaseOrder struct {
	bun.BaseModel `bun:"table:purchase_orders"`

	ID            int64           `bun:",pk,autoincrement" json:"id"`
	OrderNumber   string          `bun:"order_number" json:"orderNumber"`
	BuyerName     string          `bun:"buyer_name" json:"buyerName"`
	Email         string          `bun:"email" json:"email"`
	PurchaseDate  time.Time       `bun:"purchase_date,nullzero" json:"purchaseDate"`
	Platform      string          `bun:"platform" json:"platform"`
	GST           string          `bun:"gst" json:"gst"`
	InvoiceNumber string          `bun:"invoice_number" json:"invoiceNumber"`
	Notes         string          `bun:"notes" json:"notes"`
	Products      []ProductLine   `bun:"products,type:jsonb" json:"products"`
	GrandTotal    decimal.Decimal `bun:"grand_total" json:"grandTotal"`
	BillUpload    *Attachment     `bun:"bill_upload,type:jsonb,nullzero" json:"billUpload,omitempty"`
	CreatedAt     time.Time       `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time       `bun:"updated_at,nullzero" json:"updatedAt"`
}
