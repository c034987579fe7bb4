package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID     string
	Code   string // "EMP0001", sequential, unique
	UserID *string

	// Personal info
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	DateOfBirth       time.Time
	Gender            Gender
	AddressStreet     string
	AddressCity       string
	AddressState      string
	AddressZipCode    string
	AddressCountry    string
	EmergencyName     string
	EmergencyRelation string
	EmergencyPhone    string

	// Professional info
	Department         Department
	Position           string
	EmploymentType     EmploymentType
	WorkLocation       WorkLocation
	StartDate          time.Time
	EndDate            *time.Time
	ReportingManagerID *string

	// Salary structure
	BasicSalary    decimal.Decimal
	Allowances     decimal.Decimal
	SalaryCurrency string

	// Document references
	ProfilePictureURL *string
	ResumeURL         *string
	IDProofURL        *string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	ManagerName *string
	ManagerCode *string
	UserEmail   *string
}

// FullName returns the display name
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// TotalSalary is basic plus fixed allowances
func (e *Employee) TotalSalary() decimal.Decimal {
	return e.BasicSalary.Add(e.Allowances)
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentEngineering Department = "Engineering"
	DepartmentMarketing   Department = "Marketing"
	DepartmentSales       Department = "Sales"
	DepartmentFinance     Department = "Finance"
	DepartmentOperations  Department = "Operations"
	DepartmentLegal       Department = "Legal"
	DepartmentIT          Department = "IT"
)

// Departments lists all valid department values.
var Departments = []string{
	string(DepartmentHR), string(DepartmentEngineering), string(DepartmentMarketing),
	string(DepartmentSales), string(DepartmentFinance), string(DepartmentOperations),
	string(DepartmentLegal), string(DepartmentIT),
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "intern"
)

var EmploymentTypes = []string{
	string(EmploymentFullTime), string(EmploymentPartTime),
	string(EmploymentContract), string(EmploymentIntern),
}

type WorkLocation string

const (
	WorkLocationOffice WorkLocation = "office"
	WorkLocationRemote WorkLocation = "remote"
	WorkLocationHybrid WorkLocation = "hybrid"
)

var WorkLocations = []string{
	string(WorkLocationOffice), string(WorkLocationRemote), string(WorkLocationHybrid),
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
	StatusOnLeave    Status = "on-leave"
)

var Statuses = []string{
	string(StatusActive), string(StatusInactive),
	string(StatusTerminated), string(StatusOnLeave),
}
