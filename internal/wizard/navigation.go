package wizard

import (
	domainErrors "github.com/bestchance/orderdesk/internal/domain/errors"
	"github.com/bestchance/orderdesk/internal/domain/model"
)

// Step is a wizard screen.
type Step string

const (
	StepMaterials Step = "materials"
	StepFleet     Step = "fleet"
	StepConfirm   Step = "confirm"
)

var flowSteps = map[model.Flow][]Step{
	model.FlowCombined: {StepMaterials, StepFleet, StepConfirm},
	model.FlowMaterial: {StepMaterials, StepConfirm},
}

// Steps lists the screens of flow in order.
func Steps(flow model.Flow) []Step {
	steps := flowSteps[flow]
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func stepIndex(flow model.Flow, step Step) int {
	for i, s := range flowSteps[flow] {
		if s == step {
			return i
		}
	}
	return -1
}

// Advance moves to the next step. Leaving the material step needs a material,
// leaving the fleet step needs a fleet.
func (d *OrderDraft) Advance() error {
	steps := flowSteps[d.Flow]
	i := stepIndex(d.Flow, d.Step)
	if i < 0 {
		return ErrInvalidStep
	}
	if i == len(steps)-1 {
		return ErrNoNextStep
	}
	switch d.Step {
	case StepMaterials:
		if d.Materials.IsEmpty() {
			return domainErrors.ErrStepIncomplete
		}
	case StepFleet:
		if d.Fleet.IsEmpty() {
			return domainErrors.ErrStepIncomplete
		}
	}
	d.Step = steps[i+1]
	return nil
}

// Retreat moves to the previous step keeping every selection intact.
func (d *OrderDraft) Retreat() error {
	i := stepIndex(d.Flow, d.Step)
	if i < 0 {
		return ErrInvalidStep
	}
	if i == 0 {
		return ErrNoPreviousStep
	}
	d.Step = flowSteps[d.Flow][i-1]
	return nil
}

// SelectedMaterial is a material as carried between screens.
type SelectedMaterial struct {
	model.MaterialItem
	Quantity int `json:"quantity"`
}

// SelectedFleet is a fleet as carried between screens. UnitPrice stays the catalog
// price, EditedPrice is the user's override.
type SelectedFleet struct {
	model.FleetItem
	EditedPrice string `json:"edited_price"`
}

// NavigationState is the portable form of a draft passed between screens.
type NavigationState struct {
	Step              Step               `json:"step,omitempty"`
	SelectedMaterials []SelectedMaterial `json:"selectedMaterials"`
	Quantities        map[string]int     `json:"quantities"`
	SelectedFleet     *SelectedFleet     `json:"selectedFleet,omitempty"`
	StartingLocation  string             `json:"startingLocation"`
	DeliveryDate      string             `json:"deliveryDate"`
}

// Snapshot captures d so that Restore rebuilds an identical draft.
func (d *OrderDraft) Snapshot() NavigationState {
	entries := d.Materials.Entries()
	state := NavigationState{
		Step:              d.Step,
		SelectedMaterials: make([]SelectedMaterial, 0, len(entries)),
		Quantities:        make(map[string]int, len(entries)),
		StartingLocation:  d.StartingLocation,
		DeliveryDate:      d.DeliveryDate,
	}
	for _, e := range entries {
		state.SelectedMaterials = append(state.SelectedMaterials, SelectedMaterial{MaterialItem: e.Item, Quantity: e.Quantity})
		state.Quantities[e.Item.MaterialName] = e.Quantity
	}
	if fleet, ok := d.Fleet.Selected(); ok {
		state.SelectedFleet = &SelectedFleet{FleetItem: fleet.Item, EditedPrice: fleet.Price}
	}
	return state
}

// Restore rebuilds a draft from navigation state. A material quantity falls back to
// the quantities map; materials without a positive quantity are dropped.
func Restore(projectID string, flow model.Flow, state NavigationState) (*OrderDraft, error) {
	d, err := NewDraft(projectID, flow)
	if err != nil {
		return nil, err
	}
	if state.Step != "" {
		if stepIndex(flow, state.Step) < 0 {
			return nil, ErrInvalidStep
		}
		d.Step = state.Step
	}
	for _, m := range state.SelectedMaterials {
		qty := m.Quantity
		if qty <= 0 {
			qty = state.Quantities[m.MaterialName]
		}
		if qty <= 0 || d.Materials.Contains(m.MaterialItem) {
			continue
		}
		if dec := CanAdd(&d.Materials, m.MaterialItem); !dec.Allowed {
			return nil, &SupplierConflictError{Current: dec.ConflictingSupplier, Attempted: m.SupplierName}
		}
		d.Materials.entries = append(d.Materials.entries, MaterialEntry{Item: m.MaterialItem, Quantity: qty})
	}
	if state.SelectedFleet != nil {
		if flow != model.FlowCombined {
			return nil, ErrNoFleetStep
		}
		price := state.SelectedFleet.EditedPrice
		if !priceInput.MatchString(price) {
			price = ""
		}
		d.Fleet.entry = &FleetEntry{Item: state.SelectedFleet.FleetItem, Price: price}
	}
	d.StartingLocation = state.StartingLocation
	d.DeliveryDate = state.DeliveryDate
	return d, nil
}
