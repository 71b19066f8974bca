package purchaseorder

import (
	"fmt"
	"time"
)

// formatOrderNumber derives the display order number assigned exactly once at
// creation: BM-<millis>-<sequence>, where sequence is the persisted order
// count plus one, zero-padded to at least four digits and growing past 9999.
//
// The count read and the insert that follows are separate repository calls
// with no lock spanning them, so two concurrent creations can observe the
// same sequence. The millisecond component keeps a full collision unlikely;
// this is best-effort uniqueness, not a guarantee.
func formatOrderNumber(now time.Time, sequence int) string {
	return fmt.Sprintf("BM-%d-%04d", now.UnixMilli(), sequence)
}
