package model

import "time"

// Flow names a wizard variant.
type Flow string

const (
	// FlowCombined orders materials together with a delivery fleet.
	FlowCombined Flow = "combined"
	// FlowMaterial orders materials only.
	FlowMaterial Flow = "material"
)

// Valid reports whether f is a known flow.
func (f Flow) Valid() bool {
	return f == FlowCombined || f == FlowMaterial
}

// OrderedMaterial is a material line inside a combined order.
type OrderedMaterial struct {
	MaterialName string `json:"material_name"`
	MaterialQty  string `json:"material_qty"`
}

// CombinedOrderRequest is the body posted for a materials plus fleet order.
type CombinedOrderRequest struct {
	StartingLocation string            `json:"starting_location"`
	DriverName       string            `json:"driver_name"`
	SupplierName     string            `json:"supplier_name"`
	Materials        []OrderedMaterial `json:"materials"`
	DeliveryDate     string            `json:"delivery_date"`
	FleetPrice       string            `json:"fleet_price"`
}

// MaterialOrderLine is a material line inside a material-only order.
type MaterialOrderLine struct {
	SupplierName string `json:"supplier_name"`
	MaterialName string `json:"material_name"`
	MaterialQty  string `json:"material_qty"`
	DeliveryDate string `json:"delivery_date"`
}

// MaterialOrderRequest is the body posted for a material-only order.
type MaterialOrderRequest struct {
	Materials []MaterialOrderLine `json:"materials"`
}

// OrderRequest is a submission ready to be sent. Exactly one of Combined or Material is set.
type OrderRequest struct {
	ProjectID string
	Flow      Flow
	Combined  *CombinedOrderRequest
	Material  *MaterialOrderRequest
}

// Body returns the payload matching the request flow.
func (r OrderRequest) Body() any {
	if r.Flow == FlowCombined {
		return r.Combined
	}
	return r.Material
}

// OrderReceipt acknowledges an accepted submission.
type OrderReceipt struct {
	ID       string
	Response string
}

// Submission is a ledger entry of one submission attempt.
type Submission struct {
	ID          string
	ProjectID   string
	Flow        Flow
	Username    string
	Payload     []byte
	Succeeded   bool
	Response    string
	SubmittedAt time.Time
}

// SubmissionSummary aggregates the submission attempts of one project.
type SubmissionSummary struct {
	ProjectID       string
	Attempts        int
	Successes       int
	LastSubmittedAt time.Time
}
