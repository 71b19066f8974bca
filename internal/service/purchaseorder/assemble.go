package purchaseorder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billmate/billmate/internal/entity"
	"github.com/billmate/billmate/pkg/errorbank"
)

// Form is the flat string-keyed view of a submission that assembly reads
// from. Multipart and url-encoded bodies both satisfy it via FormFromValues.
type Form interface {
	Value(name string) (string, bool)
}

type mapForm map[string][]string

func (m mapForm) Value(name string) (string, bool) {
	vals, ok := m[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// FormFromValues adapts a parsed form value map to the Form interface.
func FormFromValues(values map[string][]string) Form {
	return mapForm(values)
}

var requiredFields = []string{"buyerName", "email", "purchaseDate", "platform", "gst"}

// dateLayouts are tried in order when parsing purchaseDate.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// assemble transforms submitted fields into a validated purchase order. It is
// a pure transformation; nothing is persisted until the caller inserts the
// result.
func assemble(form Form) (*entity.PurchaseOrder, error) {
	for _, field := range requiredFields {
		v, ok := form.Value(field)
		if !ok || strings.TrimSpace(v) == "" {
			return nil, errorbank.BadRequest("Missing required fields")
		}
	}

	products := extractProducts(form)
	if len(products) == 0 {
		return nil, errorbank.BadRequest("At least one product is required")
	}

	buyerName, _ := form.Value("buyerName")
	email, _ := form.Value("email")
	rawDate, _ := form.Value("purchaseDate")
	platform, _ := form.Value("platform")
	gst, _ := form.Value("gst")
	invoiceNumber, _ := form.Value("invoiceNumber")
	notes, _ := form.Value("notes")

	order := &entity.PurchaseOrder{
		BuyerName:     strings.TrimSpace(buyerName),
		Email:         strings.TrimSpace(email),
		PurchaseDate:  parseDateOrZero(rawDate),
		Platform:      strings.TrimSpace(platform),
		GST:           strings.TrimSpace(gst),
		InvoiceNumber: strings.TrimSpace(invoiceNumber),
		Notes:         strings.TrimSpace(notes),
		Products:      products,
		GrandTotal:    grandTotal(form, products),
	}

	return order, nil
}

// extractProducts walks productName1, productName2, ... and stops at the
// first missing index. A gap terminates the scan even if later indices are
// present; callers rely on that contiguity rule. Candidates without a name or
// with a non-positive unit price are dropped silently.
func extractProducts(form Form) []entity.ProductLine {
	var lines []entity.ProductLine
	for i := 1; ; i++ {
		name, ok := form.Value(fmt.Sprintf("productName%d", i))
		if !ok {
			break
		}

		unitPrice := parseDecimalOrDefault(formValue(form, fmt.Sprintf("unitPrice%d", i)), decimal.Zero)
		quantity := parseIntOrDefault(formValue(form, fmt.Sprintf("quantity%d", i)), 1)
		lineTotal := parseDecimalOrDefault(
			formValue(form, fmt.Sprintf("totalPrice%d", i)),
			unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		)

		name = strings.TrimSpace(name)
		if name == "" || !unitPrice.GreaterThan(decimal.Zero) {
			continue
		}

		lines = append(lines, entity.ProductLine{
			ProductName: name,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
			TotalPrice:  lineTotal,
		})
	}
	return lines
}

// grandTotal uses the submitted value verbatim when it parses, otherwise the
// sum of the kept line totals.
func grandTotal(form Form, products []entity.ProductLine) decimal.Decimal {
	if raw, ok := form.Value("grandTotal"); ok {
		if d, err := decimal.NewFromString(strings.TrimSpace(raw)); err == nil {
			return d
		}
	}
	sum := decimal.Zero
	for _, line := range products {
		sum = sum.Add(line.TotalPrice)
	}
	return sum
}

func formValue(form Form, name string) string {
	v, _ := form.Value(name)
	return v
}

func parseDecimalOrDefault(raw string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return d
}

func parseIntOrDefault(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// parseDateOrZero returns the zero time for unparseable input instead of
// rejecting the submission. The stored column is nullzero, so an invalid date
// lands as NULL.
func parseDateOrZero(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
