package dto

import (
	"github.com/bestchance/orderdesk/internal/domain/model"
	"github.com/bestchance/orderdesk/internal/usecase"
	"github.com/bestchance/orderdesk/internal/wizard"
)

// StartDraftRequest opens a wizard. State resumes a previous screen.
type StartDraftRequest struct {
	Flow  model.Flow              `json:"flow"`
	State *wizard.NavigationState `json:"state,omitempty"`
}

// DraftResponse is the current view of a wizard draft.
type DraftResponse struct {
	ID               string                 `json:"id"`
	ProjectID        string                 `json:"project_id"`
	Flow             model.Flow             `json:"flow"`
	Step             wizard.Step            `json:"step"`
	Steps            []wizard.Step          `json:"steps"`
	Supplier         string                 `json:"supplier,omitempty"`
	Materials        []wizard.MaterialEntry `json:"materials"`
	Fleet            *wizard.FleetEntry     `json:"fleet,omitempty"`
	FleetPrice       string                 `json:"fleet_price,omitempty"`
	StartingLocation string                 `json:"starting_location"`
	DeliveryDate     string                 `json:"delivery_date"`
	State            wizard.NavigationState `json:"state"`
}

// QuantityRequest sets the quantity of a material.
type QuantityRequest struct {
	Item  model.MaterialItem `json:"item"`
	Value string             `json:"value"`
}

// FleetPriceRequest edits the agreed fleet price.
type FleetPriceRequest struct {
	Value string `json:"value"`
}

// PriceEditResponse reports whether the price input was kept.
type PriceEditResponse struct {
	Accepted bool          `json:"accepted"`
	Draft    DraftResponse `json:"draft"`
}

// SubmitResponse acknowledges a placed order.
type SubmitResponse struct {
	OrderID  string         `json:"order_id,omitempty"`
	Redirect string         `json:"redirect"`
	Notice   usecase.Notice `json:"notice"`
}
