package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/billmate/billmate/pkg/errorbank"
)

// Builder helps construct the flat {success, ...} JSON envelopes the API
// speaks.
type Builder struct {
	ctx    echo.Context
	status int
	fields map[string]any
	err    error
}

// New instantiates a Builder for the provided request context.
func New(ctx echo.Context) *Builder {
	return &Builder{ctx: ctx, status: http.StatusOK}
}

// WithStatus overrides the response status code.
func (b *Builder) WithStatus(status int) *Builder {
	if status > 0 {
		b.status = status
	}
	return b
}

// WithMessage attaches a human-readable message to a success payload.
func (b *Builder) WithMessage(message string) *Builder {
	return b.WithField("message", message)
}

// WithField adds a named top-level field to a success payload.
func (b *Builder) WithField(key string, value any) *Builder {
	if key == "" {
		return b
	}
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	b.fields[key] = value
	return b
}

// WithError records an error to be rendered.
func (b *Builder) WithError(err error) *Builder {
	b.err = err
	return b
}

// Build finalises and emits the HTTP response.
func (b *Builder) Build() error {
	if b.err != nil {
		return b.buildError()
	}
	return b.buildSuccess()
}

func (b *Builder) buildSuccess() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	payload := map[string]any{"success": true}
	for k, v := range b.fields {
		payload[k] = v
	}
	return b.ctx.JSON(b.status, payload)
}

// buildError passes the error text through verbatim, wrapped cause included.
// Repository messages therefore reach the client as-is; callers that care
// must sanitise before handing the error over.
func (b *Builder) buildError() error {
	appErr := errorbank.From(b.err)
	status := b.status
	if status < 400 {
		status = appErr.StatusCode()
	}
	payload := map[string]any{
		"success": false,
		"error":   appErr.Error(),
	}
	return b.ctx.JSON(status, payload)
}
