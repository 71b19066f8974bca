package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billmate/billmate/internal/entity"
)

// PurchaseOrderResponse represents a purchase order as exposed via transport layers.
type PurchaseOrderResponse struct {
	ID            int64                `json:"id"`
	OrderNumber   string               `json:"orderNumber"`
	BuyerName     string               `json:"buyerName"`
	Email         string               `json:"email"`
	PurchaseDate  time.Time            `json:"purchaseDate"`
	Platform      string               `json:"platform"`
	GST           string               `json:"gst"`
	InvoiceNumber string               `json:"invoiceNumber"`
	Notes         string               `json:"notes"`
	Products      []entity.ProductLine `json:"products"`
	GrandTotal    decimal.Decimal      `json:"grandTotal"`
	BillUpload    *entity.Attachment   `json:"billUpload,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// FromEntity maps a stored purchase order onto the transport shape.
func FromEntity(order *entity.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		BuyerName:     order.BuyerName,
		Email:         order.Email,
		PurchaseDate:  order.PurchaseDate,
		Platform:      order.Platform,
		GST:           order.GST,
		InvoiceNumber: order.InvoiceNumber,
		Notes:         order.Notes,
		Products:      order.Products,
		GrandTotal:    order.GrandTotal,
		BillUpload:    order.BillUpload,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}
