package employee

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/user"
	"github.com/hrstack/hrms-backend-go/internal/pkg/database"
	"github.com/hrstack/hrms-backend-go/internal/pkg/email"
	"github.com/hrstack/hrms-backend-go/internal/repository/postgresql"
)

type employeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository
	emailService email.EmailService
	loginURL     string
	logger       *slog.Logger
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	emailService email.EmailService,
	loginURL string,
	logger *slog.Logger,
) employee.EmployeeService {
	return &employeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		emailService: emailService,
		loginURL:     loginURL,
		logger:       logger,
	}
}

func (s *employeeServiceImpl) Create(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.CreateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	dateOfBirth, _ := time.Parse("2006-01-02", req.PersonalInfo.DateOfBirth)
	startDate, _ := time.Parse("2006-01-02", req.ProfessionalInfo.StartDate)
	var endDate *time.Time
	if req.ProfessionalInfo.EndDate != nil {
		d, _ := time.Parse("2006-01-02", *req.ProfessionalInfo.EndDate)
		endDate = &d
	}

	if req.ProfessionalInfo.ReportingManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ProfessionalInfo.ReportingManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, employee.ErrManagerNotFound
			}
			return nil, err
		}
	}

	workLocation := employee.WorkLocation(req.ProfessionalInfo.WorkLocation)
	if workLocation == "" {
		workLocation = employee.WorkLocationOffice
	}
	currency := req.ProfessionalInfo.Salary.Currency
	if currency == "" {
		currency = "USD"
	}

	createAccount := req.CreateUserAccount == nil || *req.CreateUserAccount

	var (
		e            *employee.Employee
		tempPassword string
	)

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		code, err := s.employeeRepo.NextCode(txCtx)
		if err != nil {
			return err
		}

		e = &employee.Employee{
			Code:               code,
			FirstName:          req.PersonalInfo.FirstName,
			LastName:           req.PersonalInfo.LastName,
			Email:              req.PersonalInfo.Email,
			Phone:              req.PersonalInfo.Phone,
			DateOfBirth:        dateOfBirth,
			Gender:             employee.Gender(req.PersonalInfo.Gender),
			AddressStreet:      req.PersonalInfo.Address.Street,
			AddressCity:        req.PersonalInfo.Address.City,
			AddressState:       req.PersonalInfo.Address.State,
			AddressZipCode:     req.PersonalInfo.Address.ZipCode,
			AddressCountry:     req.PersonalInfo.Address.Country,
			EmergencyName:      req.PersonalInfo.EmergencyContact.Name,
			EmergencyRelation:  req.PersonalInfo.EmergencyContact.Relationship,
			EmergencyPhone:     req.PersonalInfo.EmergencyContact.Phone,
			Department:         employee.Department(req.ProfessionalInfo.Department),
			Position:           req.ProfessionalInfo.Position,
			EmploymentType:     employee.EmploymentType(req.ProfessionalInfo.EmploymentType),
			WorkLocation:       workLocation,
			StartDate:          startDate,
			EndDate:            endDate,
			ReportingManagerID: req.ProfessionalInfo.ReportingManagerID,
			BasicSalary:        req.ProfessionalInfo.Salary.Basic,
			Allowances:         req.ProfessionalInfo.Salary.Allowances,
			SalaryCurrency:     currency,
			Status:             employee.StatusActive,
		}

		if createAccount {
			tempPassword, err = generateTempPassword()
			if err != nil {
				return err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			u := &user.User{
				Email:        req.PersonalInfo.Email,
				PasswordHash: string(hash),
				FirstName:    req.PersonalInfo.FirstName,
				LastName:     req.PersonalInfo.LastName,
				Role:         user.RoleEmployee,
				IsActive:     true,
			}
			if err := s.userRepo.Create(txCtx, u); err != nil {
				return err
			}
			e.UserID = &u.ID
		}

		return s.employeeRepo.Create(txCtx, e)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "employee created", "employee_id", e.ID, "code", e.Code)

	if createAccount {
		go func() {
			if err := s.emailService.SendWelcome(
				e.Email, e.FullName(), e.Code, tempPassword, s.loginURL,
			); err != nil {
				s.logger.Warn("failed to send welcome email", "employee_id", e.ID, "error", err)
			}
		}()
	}

	return &employee.CreateResult{Employee: e, TempPassword: tempPassword}, nil
}

func (s *employeeServiceImpl) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *employeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 10
	}
	return s.employeeRepo.List(ctx, filter)
}

func (s *employeeServiceImpl) Update(ctx context.Context, req *employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ReportingManagerID != nil && (e.ReportingManagerID == nil || *e.ReportingManagerID != *req.ReportingManagerID) {
		if err := s.checkManagerAssignment(ctx, e.ID, *req.ReportingManagerID); err != nil {
			return nil, err
		}
		e.ReportingManagerID = req.ReportingManagerID
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.Address != nil {
		e.AddressStreet = req.Address.Street
		e.AddressCity = req.Address.City
		e.AddressState = req.Address.State
		e.AddressZipCode = req.Address.ZipCode
		e.AddressCountry = req.Address.Country
	}
	if req.EmergencyContact != nil {
		e.EmergencyName = req.EmergencyContact.Name
		e.EmergencyRelation = req.EmergencyContact.Relationship
		e.EmergencyPhone = req.EmergencyContact.Phone
	}
	if req.Department != nil {
		e.Department = employee.Department(*req.Department)
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.EmploymentType != nil {
		e.EmploymentType = employee.EmploymentType(*req.EmploymentType)
	}
	if req.WorkLocation != nil {
		e.WorkLocation = employee.WorkLocation(*req.WorkLocation)
	}
	if req.EndDate != nil {
		d, _ := time.Parse("2006-01-02", *req.EndDate)
		e.EndDate = &d
	}
	if req.BasicSalary != nil {
		e.BasicSalary = *req.BasicSalary
	}
	if req.Allowances != nil {
		e.Allowances = *req.Allowances
	}
	if req.Status != nil {
		e.Status = employee.Status(*req.Status)
	}

	if err := s.employeeRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Deactivate soft-deletes: the employee becomes terminated and the linked
// user account, if any, can no longer log in. Records are never removed.
func (s *employeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.employeeRepo.SetStatus(txCtx, id, employee.StatusTerminated); err != nil {
			return err
		}
		if e.UserID != nil {
			if err := s.userRepo.SetActive(txCtx, *e.UserID, false); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *employeeServiceImpl) StatsOverview(ctx context.Context) (*employee.StatsOverviewResponse, error) {
	return s.employeeRepo.StatsOverview(ctx)
}

func (s *employeeServiceImpl) checkManagerAssignment(ctx context.Context, employeeID, managerID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrManagerNotFound
		}
		return err
	}

	assignments, err := s.employeeRepo.ManagerAssignments(ctx)
	if err != nil {
		return err
	}
	if employee.WouldCreateCycle(employeeID, managerID, assignments) {
		return employee.ErrManagerCycle
	}
	return nil
}

func generateTempPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
