package purchaseorder

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^BM-\d+-\d{4,}$`)

func TestFormatOrderNumber(t *testing.T) {
	now := time.UnixMilli(1756500000000)

	got := formatOrderNumber(now, 3)
	require.Equal(t, "BM-1756500000000-0003", got)
	require.Regexp(t, orderNumberPattern, got)
}

func TestFormatOrderNumber_SequenceGrowsPastFourDigits(t *testing.T) {
	now := time.UnixMilli(1756500000000)

	got := formatOrderNumber(now, 10001)
	require.Equal(t, "BM-1756500000000-10001", got)
}

func TestFormatOrderNumber_DistinctAcrossMilliseconds(t *testing.T) {
	// Sequential creations in distinct milliseconds always differ, even when
	// the sequence repeats.
	a := formatOrderNumber(time.UnixMilli(1000), 5)
	b := formatOrderNumber(time.UnixMilli(1001), 5)
	require.NotEqual(t, a, b)

	// Same millisecond with a repeated sequence collides; that is the
	// documented limit of the scheme.
	require.Equal(t,
		formatOrderNumber(time.UnixMilli(1000), 5),
		formatOrderNumber(time.UnixMilli(1000), 5),
	)
}

func TestFormatOrderNumber_PaddingWidths(t *testing.T) {
	now := time.UnixMilli(1)
	for seq, want := range map[int]string{
		1:     "0001",
		42:    "0042",
		999:   "0999",
		9999:  "9999",
		12345: "12345",
	} {
		require.Equal(t, fmt.Sprintf("BM-1-%s", want), formatOrderNumber(now, seq))
	}
}
