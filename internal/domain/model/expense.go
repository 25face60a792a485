package model

// ExpenseType classifies project expense records.
type ExpenseType string

const (
	ExpenseTypeMaterial  ExpenseType = "material"
	ExpenseTypeFleet     ExpenseType = "fleet"
	ExpenseTypeOperation ExpenseType = "operation"
)

// Label returns the display label used in reports.
func (t ExpenseType) Label() string {
	switch t {
	case ExpenseTypeMaterial:
		return "材料"
	case ExpenseTypeFleet:
		return "車手"
	case ExpenseTypeOperation:
		return "營運"
	default:
		return string(t)
	}
}

// Rank orders expense groups: material, fleet, operation, then anything else.
func (t ExpenseType) Rank() int {
	switch t {
	case ExpenseTypeMaterial:
		return 0
	case ExpenseTypeFleet:
		return 1
	case ExpenseTypeOperation:
		return 2
	default:
		return 3
	}
}

// ExpenseRecord is a single read-only expense line.
type ExpenseRecord struct {
	ID               string `json:"each_expense_id"`
	ExpenseName      string `json:"expense_name"`
	StartingLocation string `json:"starting_location,omitempty"`
	Destination      string `json:"destination,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	Qty              string `json:"qty"`
	Unit             string `json:"unit,omitempty"`
	UnitPrice        string `json:"unit_price"`
	TotalPrice       string `json:"total_price"`
}

// SupplierExpenses groups records of one supplier.
type SupplierExpenses struct {
	Supplier string          `json:"expense_supplier"`
	Records  []ExpenseRecord `json:"records"`
}

// ExpenseGroup groups supplier expenses of one type.
type ExpenseGroup struct {
	Type      ExpenseType        `json:"expense_type"`
	Suppliers []SupplierExpenses `json:"data"`
}

// OperationalFee is a manually entered operation expense.
type OperationalFee struct {
	ExpenseName string `json:"expense_name"`
	UnitPrice   string `json:"unit_price"`
}

// ExpensePriceUpdate corrects the name and unit price of a recorded expense line.
type ExpensePriceUpdate struct {
	ExpenseID   string `json:"each_expense_id"`
	ExpenseName string `json:"expense_name"`
	UnitPrice   string `json:"unit_price"`
}

// MonthlyReport links to the generated cost report of one month.
type MonthlyReport struct {
	Month     string `json:"expense_month"`
	ReportURL string `json:"monthly_report_url"`
	TotalCost string `json:"total_cost,omitempty"`
}
