package services

import (
	"fmt"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"
)

// InventoryTrigger selects the transition(s) on which stock is moved.
type InventoryTrigger int

const (
	// TriggerOnComplete moves stock once, when the order reaches Completed.
	TriggerOnComplete InventoryTrigger = iota
	// TriggerOnDeliver moves stock once, when the order starts Delivering.
	TriggerOnDeliver
	// TriggerOnBoth moves stock on Delivering and again on Completed, so a
	// delivered and completed order is counted twice.
	TriggerOnBoth
)

// ParseInventoryTrigger maps "complete" (default), "deliver" and "both".
func ParseInventoryTrigger(s string) (InventoryTrigger, error) {
	switch s {
	case "", "complete":
		return TriggerOnComplete, nil
	case "deliver":
		return TriggerOnDeliver, nil
	case "both":
		return TriggerOnBoth, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("inventory trigger is invalid", fmt.Errorf("%q is not supported", s))
	}
}

func (t InventoryTrigger) String() string {
	switch t {
	case TriggerOnDeliver:
		return "deliver"
	case TriggerOnBoth:
		return "both"
	default:
		return "complete"
	}
}

// InventoryAdjuster decides the stock movements a status transition causes.
// It does not touch storage; the caller applies the adjustments through
// ProductRepository.AdjustStock inside the same unit of work as the transition.
type InventoryAdjuster struct {
	trigger InventoryTrigger
}

func NewInventoryAdjuster(trigger InventoryTrigger) InventoryAdjuster {
	return InventoryAdjuster{trigger: trigger}
}

func (a InventoryAdjuster) Trigger() InventoryTrigger {
	return a.trigger
}

// Adjustments returns one adjustment per order line when reached is a status
// the trigger moves stock on, and nil otherwise.
func (a InventoryAdjuster) Adjustments(o *order.Order, reached order.Status) []product.Adjustment {
	if !a.movesOn(reached) {
		return nil
	}

	lines := o.Lines()
	adjustments := make([]product.Adjustment, 0, len(lines))
	for _, l := range lines {
		adjustments = append(adjustments, product.Adjustment{ProductID: l.ProductID(), Units: l.Quantity()})
	}
	return adjustments
}

func (a InventoryAdjuster) movesOn(reached order.Status) bool {
	switch reached {
	case order.Completed:
		return a.trigger == TriggerOnComplete || a.trigger == TriggerOnBoth
	case order.Delivering:
		return a.trigger == TriggerOnDeliver || a.trigger == TriggerOnBoth
	default:
		return false
	}
}
