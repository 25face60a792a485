package model

// MaterialItem is a catalog material offered by a single supplier.
type MaterialItem struct {
	MaterialName string `json:"material_name"`
	SupplierName string `json:"supplier_name"`
	Unit         string `json:"unit"`
	UnitPrice    string `json:"unit_price"`
}

// Key identifies the material in a selection. Material names are unique per supplier only.
func (m MaterialItem) Key() string {
	return m.SupplierName + "|" + m.MaterialName
}

// FleetItem is a driver/vehicle that can be booked for delivery.
type FleetItem struct {
	DrivingPlate string `json:"driving_plate"`
	Name         string `json:"name"`
	Company      string `json:"company,omitempty"`
	Mobile       string `json:"mobile"`
	UnitPrice    string `json:"unit_price"`
}

// Project is an entry point for the order wizard.
type Project struct {
	ProjectNo       string `json:"project_no"`
	ProjectLocation string `json:"project_location"`
	Contact         string `json:"contact"`
	StartDate       string `json:"start_date"`
}
