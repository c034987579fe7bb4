package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrstack/hrms-backend-go/internal/pkg/validator"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type PersonalInfo struct {
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	DateOfBirth      string           `json:"dateOfBirth"` // YYYY-MM-DD
	Gender           string           `json:"gender"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

type Salary struct {
	Basic      decimal.Decimal `json:"basic"`
	Allowances decimal.Decimal `json:"allowances"`
	Currency   string          `json:"currency"`
}

type ProfessionalInfo struct {
	Department         string  `json:"department"`
	Position           string  `json:"position"`
	EmploymentType     string  `json:"employmentType"`
	WorkLocation       string  `json:"workLocation"`
	StartDate          string  `json:"startDate"` // YYYY-MM-DD
	EndDate            *string `json:"endDate,omitempty"`
	ReportingManagerID *string `json:"reportingManager,omitempty"`
	Salary             Salary  `json:"salary"`
}

type CreateEmployeeRequest struct {
	PersonalInfo      PersonalInfo     `json:"personalInfo"`
	ProfessionalInfo  ProfessionalInfo `json:"professionalInfo"`
	CreateUserAccount *bool            `json:"createUserAccount,omitempty"` // defaults to true
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	p := r.PersonalInfo
	if validator.IsEmpty(p.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.firstName", Message: "is required"})
	}
	if validator.IsEmpty(p.LastName) {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.lastName", Message: "is required"})
	}
	if !validator.IsValidEmail(p.Email) {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.email", Message: "must be a valid email address"})
	}
	if !validator.IsValidPhoneNumber(p.Phone) {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.phone", Message: "must be a valid phone number"})
	}
	if _, ok := validator.IsValidDate(p.DateOfBirth); !ok {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.dateOfBirth", Message: "must be a date in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(p.Gender, []string{string(GenderMale), string(GenderFemale), string(GenderOther)}) {
		errs = append(errs, validator.ValidationError{Field: "personalInfo.gender", Message: "must be one of male, female, other"})
	}

	pr := r.ProfessionalInfo
	if !validator.IsInSlice(pr.Department, Departments) {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.department", Message: "is not a valid department"})
	}
	if validator.IsEmpty(pr.Position) {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.position", Message: "is required"})
	}
	if !validator.IsInSlice(pr.EmploymentType, EmploymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.employmentType", Message: "must be one of full-time, part-time, contract, intern"})
	}
	if pr.WorkLocation != "" && !validator.IsInSlice(pr.WorkLocation, WorkLocations) {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.workLocation", Message: "must be one of office, remote, hybrid"})
	}
	if _, ok := validator.IsValidDate(pr.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.startDate", Message: "must be a date in YYYY-MM-DD format"})
	}
	if pr.EndDate != nil {
		if _, ok := validator.IsValidDate(*pr.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "professionalInfo.endDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if pr.Salary.Basic.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.salary.basic", Message: "must be non-negative"})
	}
	if pr.Salary.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professionalInfo.salary.allowances", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID string `json:"-"`

	FirstName          *string           `json:"firstName,omitempty"`
	LastName           *string           `json:"lastName,omitempty"`
	Email              *string           `json:"email,omitempty"`
	Phone              *string           `json:"phone,omitempty"`
	Address            *Address          `json:"address,omitempty"`
	EmergencyContact   *EmergencyContact `json:"emergencyContact,omitempty"`
	Department         *string           `json:"department,omitempty"`
	Position           *string           `json:"position,omitempty"`
	EmploymentType     *string           `json:"employmentType,omitempty"`
	WorkLocation       *string           `json:"workLocation,omitempty"`
	EndDate            *string           `json:"endDate,omitempty"`
	ReportingManagerID *string           `json:"reportingManager,omitempty"`
	BasicSalary        *decimal.Decimal  `json:"basicSalary,omitempty"`
	Allowances         *decimal.Decimal  `json:"allowances,omitempty"`
	Status             *string           `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "must be a valid phone number"})
	}
	if r.Department != nil && !validator.IsInSlice(*r.Department, Departments) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "is not a valid department"})
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, EmploymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "employmentType", Message: "must be one of full-time, part-time, contract, intern"})
	}
	if r.WorkLocation != nil && !validator.IsInSlice(*r.WorkLocation, WorkLocations) {
		errs = append(errs, validator.ValidationError{Field: "workLocation", Message: "must be one of office, remote, hybrid"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "endDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "basicSalary", Message: "must be non-negative"})
	}
	if r.Allowances != nil && r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of active, inactive, terminated, on-leave"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Department *string
	Status     *string
	Search     *string
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	Code             string           `json:"employeeId"`
	UserID           *string          `json:"userId,omitempty"`
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	ProfessionalInfo ProfessionalInfo `json:"professionalInfo"`
	ManagerName      *string          `json:"reportingManagerName,omitempty"`
	Status           string           `json:"status"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"-"`
	Page       int                `json:"-"`
	Limit      int                `json:"-"`
}

// ToResponse maps an entity to its API shape.
func ToResponse(e Employee) EmployeeResponse {
	var endDate *string
	if e.EndDate != nil {
		s := e.EndDate.Format("2006-01-02")
		endDate = &s
	}

	return EmployeeResponse{
		ID:     e.ID,
		Code:   e.Code,
		UserID: e.UserID,
		PersonalInfo: PersonalInfo{
			FirstName:   e.FirstName,
			LastName:    e.LastName,
			Email:       e.Email,
			Phone:       e.Phone,
			DateOfBirth: e.DateOfBirth.Format("2006-01-02"),
			Gender:      string(e.Gender),
			Address: Address{
				Street:  e.AddressStreet,
				City:    e.AddressCity,
				State:   e.AddressState,
				ZipCode: e.AddressZipCode,
				Country: e.AddressCountry,
			},
			EmergencyContact: EmergencyContact{
				Name:         e.EmergencyName,
				Relationship: e.EmergencyRelation,
				Phone:        e.EmergencyPhone,
			},
		},
		ProfessionalInfo: ProfessionalInfo{
			Department:         string(e.Department),
			Position:           e.Position,
			EmploymentType:     string(e.EmploymentType),
			WorkLocation:       string(e.WorkLocation),
			StartDate:          e.StartDate.Format("2006-01-02"),
			EndDate:            endDate,
			ReportingManagerID: e.ReportingManagerID,
			Salary: Salary{
				Basic:      e.BasicSalary,
				Allowances: e.Allowances,
				Currency:   e.SalaryCurrency,
			},
		},
		ManagerName: e.ManagerName,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

// ========== STATS ==========

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type EmploymentTypeCount struct {
	EmploymentType string `json:"employmentType"`
	Count          int64  `json:"count"`
}

type StatsOverviewResponse struct {
	Total               int64                 `json:"total"`
	Active              int64                 `json:"active"`
	Inactive            int64                 `json:"inactive"`
	Terminated          int64                 `json:"terminated"`
	OnLeave             int64                 `json:"onLeave"`
	DepartmentStats     []DepartmentCount     `json:"departmentStats"`
	EmploymentTypeStats []EmploymentTypeCount `json:"employmentTypeStats"`
}
