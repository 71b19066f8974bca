package purchaseorder

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func validForm() map[string][]string {
	return map[string][]string{
		"buyerName":    {"Ananya Rao"},
		"email":        {"ananya@example.com"},
		"purchaseDate": {"2026-08-30"},
		"platform":     {"Amazon"},
		"gst":          {"Yes"},
		"productName1": {"Widget"},
		"unitPrice1":   {"10"},
		"quantity1":    {"2"},
	}
}

func TestAssemble_Valid(t *testing.T) {
	order, err := assemble(FormFromValues(validForm()))
	require.NoError(t, err)

	require.Equal(t, "Ananya Rao", order.BuyerName)
	require.Equal(t, "Yes", order.GST)
	require.Len(t, order.Products, 1)

	line := order.Products[0]
	require.Equal(t, "Widget", line.ProductName)
	require.Equal(t, 2, line.Quantity)
	require.True(t, line.UnitPrice.Equal(decimal.NewFromInt(10)))
	// totalPrice was not submitted, so it defaults to unitPrice * quantity.
	require.True(t, line.TotalPrice.Equal(decimal.NewFromInt(20)))
	require.True(t, order.GrandTotal.Equal(decimal.NewFromInt(20)))
	require.True(t, order.PurchaseDate.Equal(time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)))
}

func TestAssemble_MissingRequiredField(t *testing.T) {
	for _, field := range []string{"buyerName", "email", "purchaseDate", "platform", "gst"} {
		t.Run(field, func(t *testing.T) {
			form := validForm()
			delete(form, field)

			_, err := assemble(FormFromValues(form))
			require.Error(t, err)
			require.Equal(t, "Missing required fields", err.Error())
		})
	}
}

func TestAssemble_EmptyRequiredFieldRejected(t *testing.T) {
	form := validForm()
	form["platform"] = []string{"   "}

	_, err := assemble(FormFromValues(form))
	require.Error(t, err)
	require.Equal(t, "Missing required fields", err.Error())
}

func TestExtractProducts_GapHaltsScan(t *testing.T) {
	form := validForm()
	form["productName3"] = []string{"Orphan"}
	form["unitPrice3"] = []string{"99"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.Len(t, order.Products, 1)
	require.Equal(t, "Widget", order.Products[0].ProductName)
}

func TestExtractProducts_ZeroUnitPriceDropped(t *testing.T) {
	form := validForm()
	form["unitPrice1"] = []string{"0"}

	_, err := assemble(FormFromValues(form))
	require.Error(t, err)
	require.Equal(t, "At least one product is required", err.Error())
}

func TestExtractProducts_UnparseablePriceDefaultsToZero(t *testing.T) {
	form := validForm()
	form["unitPrice1"] = []string{"not-a-number"}

	_, err := assemble(FormFromValues(form))
	require.Error(t, err)
	require.Equal(t, "At least one product is required", err.Error())
}

func TestExtractProducts_MissingQuantityDefaultsToOne(t *testing.T) {
	form := validForm()
	delete(form, "quantity1")

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.Equal(t, 1, order.Products[0].Quantity)
	require.True(t, order.Products[0].TotalPrice.Equal(decimal.NewFromInt(10)))
}

func TestExtractProducts_ExplicitLineTotalWins(t *testing.T) {
	form := validForm()
	form["totalPrice1"] = []string{"17.50"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.True(t, order.Products[0].TotalPrice.Equal(decimal.RequireFromString("17.50")))
	require.True(t, order.GrandTotal.Equal(decimal.RequireFromString("17.50")))
}

func TestAssemble_ExplicitGrandTotalOverridesSum(t *testing.T) {
	form := validForm()
	form["grandTotal"] = []string{"999"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.True(t, order.GrandTotal.Equal(decimal.NewFromInt(999)))
}

func TestAssemble_UnparseableGrandTotalFallsBackToSum(t *testing.T) {
	form := validForm()
	form["grandTotal"] = []string{"lots"}
	form["productName2"] = []string{"Gadget"}
	form["unitPrice2"] = []string{"5"}
	form["quantity2"] = []string{"3"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.Len(t, order.Products, 2)
	require.True(t, order.GrandTotal.Equal(decimal.NewFromInt(35)))
}

func TestAssemble_GSTValuePassesThrough(t *testing.T) {
	// gst is only checked for presence; any non-empty value is stored as
	// submitted, not validated against the Yes/No vocabulary.
	form := validForm()
	form["gst"] = []string{"Maybe"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.Equal(t, "Maybe", order.GST)
}

func TestAssemble_UnparseableDatePassesThrough(t *testing.T) {
	form := validForm()
	form["purchaseDate"] = []string{"next tuesday"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.True(t, order.PurchaseDate.IsZero())
}

func TestAssemble_DroppedLineExcludedFromTotals(t *testing.T) {
	form := validForm()
	form["productName2"] = []string{"Freebie"}
	form["unitPrice2"] = []string{"0"}
	form["productName3"] = []string{"Gadget"}
	form["unitPrice3"] = []string{"5"}

	order, err := assemble(FormFromValues(form))
	require.NoError(t, err)
	require.Len(t, order.Products, 2)
	require.True(t, order.GrandTotal.Equal(decimal.NewFromInt(25)))
}
