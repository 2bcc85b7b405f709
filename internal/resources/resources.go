// Package resources declares the entity kinds the console works with and
// their collection paths. The controller itself is generic; everything
// kind-specific (fields, statuses, table columns) lives here.
package resources

// Collection paths. The bare /vehicles endpoint predates the pagination
// envelope and still answers with a plain JSON array.
const (
	PathContracts     = "/crm/contracts"
	PathAccounts      = "/crm/accounts"
	PathDrivers       = "/tms/drivers"
	PathVehiclesOld   = "/vehicles"
	PathTasks         = "/pm/tasks"
	PathDispatchBoard = "/tms/dispatch/dashboard"
)

// Contract statuses (CRM).
const (
	ContractActive     = "ACTIVE"
	ContractDraft      = "DRAFT"
	ContractExpired    = "EXPIRED"
	ContractTerminated = "TERMINATED"
)

// Task statuses double as the kanban columns, in board order.
var TaskColumns = []string{"TODO", "IN_PROGRESS", "REVIEW", "DONE"}

// Driver statuses (TMS).
const (
	DriverAvailable = "AVAILABLE"
	DriverOnTrip    = "ON_TRIP"
	DriverOffDuty   = "OFF_DUTY"
)

type Contract struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AccountID  string `json:"account_id"`
	Status     string `json:"status"`
	TotalValue int64  `json:"total_value"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Driver struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	LicenseNo   string `json:"license_no,omitempty"`
	Status      string `json:"status"`
	VehicleCode string `json:"vehicle_code,omitempty"`
}

type Vehicle struct {
	ID          string `json:"id"`
	VehicleCode string `json:"vehicleCode"`
	PlateNumber string `json:"plateNumber"`
	Color       string `json:"color,omitempty"`
	Kilometers  *int   `json:"kilometers,omitempty"`
	LastService string `json:"lastService,omitempty"`
}

type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Assignee string `json:"assignee,omitempty"`
	Project  string `json:"project,omitempty"`
}
