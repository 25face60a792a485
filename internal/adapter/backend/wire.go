package backend

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/bestchance/orderdesk/internal/domain/model"
)

// flexString accepts JSON strings, numbers and null. The backend is not consistent
// about quoting prices and quantities.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type materialDTO struct {
	MaterialName flexString `json:"material_name"`
	SupplierName flexString `json:"supplier_name"`
	Unit         flexString `json:"unit"`
	UnitPrice    flexString `json:"unit_price"`
}

type materialsResponse struct {
	AllMaterial []materialDTO `json:"all_material"`
}

type fleetDTO struct {
	DrivingPlate flexString `json:"driving_plate"`
	Name         flexString `json:"name"`
	Company      flexString `json:"company"`
	Mobile       flexString `json:"mobile"`
	UnitPrice    flexString `json:"unit_price"`
}

type fleetsResponse struct {
	AllFleet []fleetDTO `json:"all_fleet"`
}

type projectDTO struct {
	ProjectNo       flexString `json:"project_no"`
	ProjectLocation flexString `json:"project_location"`
	Contact         flexString `json:"contact"`
	StartDate       flexString `json:"start_date"`
}

type projectsResponse struct {
	AllProjects []projectDTO `json:"all_projects"`
}

type expenseRecordDTO struct {
	ID               flexString `json:"each_expense_id"`
	ExpenseName      flexString `json:"expense_name"`
	StartingLocation flexString `json:"starting_location"`
	Destination      flexString `json:"destination"`
	DeliveryDate     flexString `json:"delivery_date"`
	Qty              flexString `json:"qty"`
	Unit             flexString `json:"unit"`
	UnitPrice        flexString `json:"unit_price"`
	TotalPrice       flexString `json:"total_price"`
}

type supplierExpensesDTO struct {
	Supplier flexString         `json:"expense_supplier"`
	Records  []expenseRecordDTO `json:"records"`
}

type expenseGroupDTO struct {
	Type flexString            `json:"expense_type"`
	Data []supplierExpensesDTO `json:"data"`
}

type expensesResponse struct {
	GroupedExpenses []expenseGroupDTO `json:"grouped_expenses"`
}

type monthlyReportDTO struct {
	Month     flexString `json:"expense_month"`
	ReportURL flexString `json:"monthly_report_url"`
	TotalCost flexString `json:"total_cost"`
}

type monthlyReportsResponse struct {
	MonthlyReports []monthlyReportDTO `json:"monthly_reports"`
}

type expensePriceRequest struct {
	ExpenseID    any    `json:"each_expense_id"`
	ExpenseName  string `json:"expense_name"`
	NewUnitPrice string `json:"new_unit_price"`
}

// newExpensePriceRequest sends numeric expense ids as JSON numbers, the way the
// backend hands them out.
func newExpensePriceRequest(u model.ExpensePriceUpdate) expensePriceRequest {
	var id any = u.ExpenseID
	if _, err := strconv.ParseInt(u.ExpenseID, 10, 64); err == nil {
		id = json.Number(u.ExpenseID)
	}
	return expensePriceRequest{ExpenseID: id, ExpenseName: u.ExpenseName, NewUnitPrice: u.UnitPrice}
}

func (d monthlyReportDTO) toModel() model.MonthlyReport {
	return model.MonthlyReport{
		Month:     string(d.Month),
		ReportURL: string(d.ReportURL),
		TotalCost: string(d.TotalCost),
	}
}

type orderResponse struct {
	ID      flexString `json:"id"`
	OrderID flexString `json:"order_id"`
}

// orderID extracts the backend's order identifier. Bodies without one, or that are
// not JSON objects, yield "".
func orderID(body []byte) string {
	var resp orderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if resp.ID != "" {
		return string(resp.ID)
	}
	return string(resp.OrderID)
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (d materialDTO) toModel() model.MaterialItem {
	return model.MaterialItem{
		MaterialName: string(d.MaterialName),
		SupplierName: string(d.SupplierName),
		Unit:         string(d.Unit),
		UnitPrice:    string(d.UnitPrice),
	}
}

func (d fleetDTO) toModel() model.FleetItem {
	return model.FleetItem{
		DrivingPlate: string(d.DrivingPlate),
		Name:         string(d.Name),
		Company:      string(d.Company),
		Mobile:       string(d.Mobile),
		UnitPrice:    string(d.UnitPrice),
	}
}

func (d projectDTO) toModel() model.Project {
	return model.Project{
		ProjectNo:       string(d.ProjectNo),
		ProjectLocation: string(d.ProjectLocation),
		Contact:         string(d.Contact),
		StartDate:       string(d.StartDate),
	}
}

func (d expenseGroupDTO) toModel() model.ExpenseGroup {
	g := model.ExpenseGroup{Type: model.ExpenseType(d.Type), Suppliers: make([]model.SupplierExpenses, 0, len(d.Data))}
	for _, s := range d.Data {
		se := model.SupplierExpenses{Supplier: string(s.Supplier), Records: make([]model.ExpenseRecord, 0, len(s.Records))}
		for _, r := range s.Records {
			se.Records = append(se.Records, model.ExpenseRecord{
				ID:               string(r.ID),
				ExpenseName:      string(r.ExpenseName),
				StartingLocation: string(r.StartingLocation),
				Destination:      string(r.Destination),
				DeliveryDate:     string(r.DeliveryDate),
				Qty:              string(r.Qty),
				Unit:             string(r.Unit),
				UnitPrice:        string(r.UnitPrice),
				TotalPrice:       string(r.TotalPrice),
			})
		}
		g.Suppliers = append(g.Suppliers, se)
	}
	return g
}

// compareProjectNo orders project numbers numerically when both are integers.
func compareProjectNo(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
