package purchaseorder

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/billmate/billmate/internal/blob"
	"github.com/billmate/billmate/internal/dto"
	"github.com/billmate/billmate/internal/entity"
	"github.com/billmate/billmate/internal/presentation/http/response"
	service "github.com/billmate/billmate/internal/service/purchaseorder"
	"github.com/billmate/billmate/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/billmate/billmate/transport/http/purchaseorder")

// billUploadField is the multipart field carrying the optional bill image.
const billUploadField = "billUpload"

// Handler exposes purchase order endpoints over HTTP.
type Handler struct {
	svc   *service.Service
	blobs *blob.Store
}

// NewHandler constructs a purchase order Handler.
func NewHandler(svc *service.Service, blobs *blob.Store) *Handler {
	return &Handler{svc: svc, blobs: blobs}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/purchase")
	g.POST("", h.create)
	g.GET("", h.list)
}

// create handles the multipart submission: the file part goes to the blob
// store first, then the remaining fields run through assembly and persist.
func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "purchase.create")
	defer span.End()

	form, err := c.MultipartForm()
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid multipart form", errorbank.WithCause(err))).Build()
	}

	var bill *entity.Attachment
	if file, err := c.FormFile(billUploadField); err == nil && file != nil {
		bill, err = h.blobs.Save(ctx, file)
		if err != nil {
			// Attachment rejections (media type, size) are not given a
			// dedicated status; they surface as a generic failure.
			return b.WithError(errorbank.Internal("bill upload failed", errorbank.WithCause(err))).Build()
		}
	} else if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return b.WithError(errorbank.BadRequest("invalid bill upload", errorbank.WithCause(err))).Build()
	}

	order, err := h.svc.Create(ctx, service.FormFromValues(form.Value), bill)
	if err != nil {
		return b.WithError(err).Build()
	}

	span.SetAttributes(attribute.String("order.number", order.OrderNumber))

	return b.WithStatus(http.StatusCreated).
		WithMessage("Purchase order created successfully").
		WithField("orderNumber", order.OrderNumber).
		Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "purchase.list", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	data := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		data = append(data, dto.FromEntity(&orders[i]))
	}

	return b.WithField("count", len(data)).WithField("data", data).Build()
}
