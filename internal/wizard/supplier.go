package wizard

import "github.com/bestchance/orderdesk/internal/domain/model"

// Decision is the outcome of a supplier check. ConflictingSupplier is the supplier
// the selection is locked to when the candidate is rejected.
type Decision struct {
	Allowed             bool
	ConflictingSupplier string
}

// CanAdd reports whether candidate may join the selection. A selection only holds
// materials of one supplier; the lock is released once the selection is empty.
func CanAdd(sel *MaterialSelection, candidate model.MaterialItem) Decision {
	current, locked := sel.Supplier()
	if !locked || current == candidate.SupplierName {
		return Decision{Allowed: true}
	}
	return Decision{ConflictingSupplier: current}
}
