package domain

type StockStatus string

const (
	StatusNormal     StockStatus = "Normal"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusReserved   StockStatus = "Reserved"
	StatusDeprecated StockStatus = "Deprecated"
)

// Pinned reports whether s is a manually set status that the automatic
// quantity rules must not replace while stock is at or above the minimum.
func (s StockStatus) Pinned() bool {
	return s == StatusReserved || s == StatusDeprecated
}

// RecomputeStatus derives the stock-health status from quantity vs
// min_stock_level. It is called on every mutation path (direct edit,
// use-material, request approval) so status never drifts from quantity:
//
//	quantity <= 0                -> Out of Stock
//	quantity <  min_stock_level  -> Low Stock
//	otherwise                    -> Normal, unless the current status is
//	                                Reserved or Deprecated, which is kept
//
// Leaving Reserved/Deprecated while stock is healthy is an explicit manual
// transition, never inferred here.
func RecomputeStatus(m Material) StockStatus {
	switch {
	case m.Quantity <= 0:
		return StatusOutOfStock
	case m.Quantity < m.MinStockLevel:
		return StatusLowStock
	default:
		if m.Status.Pinned() {
			return m.Status
		}
		return StatusNormal
	}
}
