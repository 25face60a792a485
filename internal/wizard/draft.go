package wizard

import (
	"strings"

	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
)

// OrderDraft accumulates wizard input until it is submitted or discarded.
type OrderDraft struct {
	ProjectID        string
	Flow             model.Flow
	Step             Step
	Materials        MaterialSelection
	Fleet            FleetSelection
	StartingLocation string
	DeliveryDate     string
}

// DraftPatch lists field updates. Nil fields are left untouched.
type DraftPatch struct {
	StartingLocation *string `json:"starting_location,omitempty"`
	DeliveryDate     *string `json:"delivery_date,omitempty"`
}

// NewDraft starts an empty draft at the first step of flow.
func NewDraft(projectID string, flow model.Flow) (*OrderDraft, error) {
	if !flow.Valid() {
		return nil, domainErrors.ErrInvalidFlow
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return &OrderDraft{ProjectID: projectID, Flow: flow, Step: StepMaterials}, nil
}

// ToggleMaterial selects or deselects item. Inserts are gated by the supplier lock.
func (d *OrderDraft) ToggleMaterial(item model.MaterialItem) Decision {
	if !d.Materials.Contains(item) {
		if dec := CanAdd(&d.Materials, item); !dec.Allowed {
			return dec
		}
	}
	d.Materials.Toggle(item)
	return Decision{Allowed: true}
}

// SetMaterialQuantity applies a quantity input. An insert through a positive quantity
// is gated by the supplier lock like a toggle.
func (d *OrderDraft) SetMaterialQuantity(item model.MaterialItem, value string) Decision {
	if !d.Materials.Contains(item) && ParseQuantity(value) > 0 {
		if dec := CanAdd(&d.Materials, item); !dec.Allowed {
			return dec
		}
	}
	d.Materials.SetQuantity(item, value)
	return Decision{Allowed: true}
}

// ToggleFleet selects or deselects a fleet. Material-only drafts have no fleet.
func (d *OrderDraft) ToggleFleet(item model.FleetItem) (bool, error) {
	if d.Flow != model.FlowCombined {
		return false, ErrNoFleetStep
	}
	return d.Fleet.Toggle(item), nil
}

// SetFleetPrice edits the selected fleet price and reports whether the input was accepted.
func (d *OrderDraft) SetFleetPrice(value string) bool {
	if d.Flow != model.FlowCombined {
		return false
	}
	return d.Fleet.SetPrice(value)
}

// Merge overwrites the fields present in patch.
func (d *OrderDraft) Merge(patch DraftPatch) {
	if patch.StartingLocation != nil {
		d.StartingLocation = *patch.StartingLocation
	}
	if patch.DeliveryDate != nil {
		d.DeliveryDate = *patch.DeliveryDate
	}
}

// Clone returns a deep copy of d.
func (d *OrderDraft) Clone() *OrderDraft {
	c := *d
	c.Materials = d.Materials.clone()
	c.Fleet = d.Fleet.clone()
	return &c
}
