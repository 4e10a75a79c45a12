package orderlimit

import "github.com/kasikotas/order/internal/service/models/apperr"

// Scope selects what the cap counts.
type Scope string

const (
	// ScopeTotalOrders caps the total number of orders ever placed.
	ScopeTotalOrders Scope = "total_orders"
	// ScopeUnitsPerDay caps the number of units ordered in the current
	// calendar day.
	ScopeUnitsPerDay Scope = "units_per_day"
)

// ParseScope converts a wire string into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeTotalOrders, ScopeUnitsPerDay:
		return Scope(s), nil
	default:
		return "", apperr.New(apperr.KindValidation, "scope must be total_orders or units_per_day")
	}
}

// OrderLimit is the single global admission cap. A limit of 0 means the shop
// is closed and every new order is refused.
type OrderLimit struct {
	ID         int64 `json:"id"`
	LimitValue int   `json:"limit"`
	Scope      Scope `json:"scope"`
}

// Admit decides whether an order of requestedUnits may be accepted given the
// current totals. totalOrders is consulted for the total_orders scope,
// todaysUnits for units_per_day.
func (l *OrderLimit) Admit(totalOrders int64, todaysUnits int64, requestedUnits int) error {
	if l.LimitValue == 0 {
		return apperr.New(apperr.KindAdmissionDenied, "ordering is closed")
	}

	switch l.Scope {
	case ScopeUnitsPerDay:
		if todaysUnits+int64(requestedUnits) > int64(l.LimitValue) {
			remaining := int64(l.LimitValue) - todaysUnits
			if remaining < 0 {
				remaining = 0
			}
			return apperr.Newf(apperr.KindAdmissionDenied,
				"order limit reached: only %d unit(s) left for today", remaining)
		}
	default:
		if totalOrders >= int64(l.LimitValue) {
			return apperr.New(apperr.KindAdmissionDenied, "order limit reached")
		}
	}

	return nil
}
