package payroll

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hrstack/hrms-backend-go/internal/domain/attendance"
	"github.com/hrstack/hrms-backend-go/internal/domain/employee"
	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
	"github.com/hrstack/hrms-backend-go/internal/pkg/payslip"
	"github.com/hrstack/hrms-backend-go/internal/pkg/storage"
)

type payrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	payslips       *payslip.Generator
	files          storage.FileStorage
	logger         *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	payslips *payslip.Generator,
	files storage.FileStorage,
	logger *slog.Logger,
) payroll.PayrollService {
	return &payrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		payslips:       payslips,
		files:          files,
		logger:         logger,
	}
}

// Generate creates draft payroll records for the period, one employee at a
// time. A failure for one employee is collected and the rest continue; it
// never aborts the batch.
func (s *payrollServiceImpl) Generate(ctx context.Context, req *payroll.GenerateRequest) (*payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.targetEmployees(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &payroll.GenerateResult{
		Generated: make([]payroll.PayrollResponse, 0, len(employees)),
		Errors:    make([]payroll.GenerationError, 0),
	}

	for i := range employees {
		e := &employees[i]

		p, err := s.generateOne(ctx, e, req.Month, req.Year)
		if err != nil {
			result.Errors = append(result.Errors, payroll.GenerationError{
				EmployeeID:   e.ID,
				EmployeeName: e.FullName(),
				Reason:       err.Error(),
			})
			continue
		}
		result.Generated = append(result.Generated, payroll.ToResponse(*p))
	}

	s.logger.InfoContext(ctx, "payroll generation finished",
		"month", req.Month, "year", req.Year,
		"generated", len(result.Generated), "errors", len(result.Errors))

	return result, nil
}

func (s *payrollServiceImpl) targetEmployees(ctx context.Context, req *payroll.GenerateRequest) ([]employee.Employee, error) {
	if len(req.EmployeeIDs) > 0 {
		employees := make([]employee.Employee, 0, len(req.EmployeeIDs))
		for _, id := range req.EmployeeIDs {
			e, err := s.employeeRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			employees = append(employees, *e)
		}
		return employees, nil
	}

	status := string(employee.StatusActive)
	employees, _, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{
		Status: &status,
		Page:   1,
		Limit:  10000,
	})
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, payroll.ErrNoEligibleEmployees
	}
	return employees, nil
}

func (s *payrollServiceImpl) generateOne(ctx context.Context, e *employee.Employee, month, year int) (*payroll.Payroll, error) {
	// Pre-check is an optimization; the unique index on
	// (employee_id, month, year) is the real guard.
	if _, err := s.payrollRepo.GetByEmployeeAndPeriod(ctx, e.ID, month, year); err == nil {
		return nil, payroll.ErrPayrollExists
	} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return nil, err
	}

	summary, err := s.attendanceRepo.MonthlySummary(ctx, e.ID, month, year)
	if err != nil {
		return nil, err
	}

	workingDays := summary.PresentDays + summary.AbsentDays + summary.LateDays +
		summary.HalfDays + summary.LeaveDays + summary.HolidayDays
	presentDays := summary.PresentDays + summary.LateDays + summary.HalfDays

	overtimePay := payroll.OvertimePay(e.BasicSalary, summary.OvertimeHours)
	gross := e.BasicSalary.Add(e.Allowances).Add(overtimePay)

	start, end := payroll.PeriodBounds(month, year)

	p := &payroll.Payroll{
		EmployeeID:  e.ID,
		Month:       month,
		Year:        year,
		PeriodStart: start,
		PeriodEnd:   end,
		Earnings: payroll.Earnings{
			BasicSalary: e.BasicSalary,
			Allowances:  e.Allowances,
			Overtime:    overtimePay,
		},
		Deductions:    payroll.StandardDeductions(gross),
		WorkingDays:   workingDays,
		PresentDays:   presentDays,
		OvertimeHours: summary.OvertimeHours,
		PayslipNumber: payroll.PayslipNumber(year, month, e.ID),
		Status:        payroll.StatusDraft,
	}
	payroll.ApplyTotals(p, time.Now())

	if err := s.payrollRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *payrollServiceImpl) GetByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	return s.payrollRepo.GetByID(ctx, id)
}

func (s *payrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.payrollRepo.List(ctx, filter)
}

func (s *payrollServiceImpl) UpdateStatus(ctx context.Context, userID string, req *payroll.UpdateStatusRequest) (*payroll.Payroll, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.payrollRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	next := payroll.Status(req.Status)
	if !validTransition(p.Status, next) {
		return nil, payroll.ErrInvalidTransition
	}

	if req.Bonus != nil {
		p.Earnings.Bonus = *req.Bonus
	}
	if req.Other != nil {
		p.Deductions.Other = *req.Other
	}

	p.Status = next
	if next == payroll.StatusProcessed && p.ProcessedBy == nil {
		p.ProcessedBy = &userID
	}
	payroll.ApplyTotals(p, time.Now())

	if err := s.payrollRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	// A cancelled record must not keep serving its stored payslip.
	if next == payroll.StatusCancelled {
		if err := s.files.Delete(ctx, payslipKey(p)); err != nil {
			s.logger.WarnContext(ctx, "failed to drop stored payslip", "payroll_id", p.ID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "payroll status updated",
		"payroll_id", p.ID, "status", p.Status, "by", userID)
	return p, nil
}

// validTransition keeps the lifecycle moving forward: draft to processed
// to paid, with cancellation possible before payment. processedAt/paidAt
// stamps are one-way, so going backwards would leave stale audit fields.
func validTransition(from, to payroll.Status) bool {
	if from == to {
		return true
	}
	switch from {
	case payroll.StatusDraft:
		return to == payroll.StatusProcessed || to == payroll.StatusCancelled
	case payroll.StatusProcessed:
		return to == payroll.StatusPaid || to == payroll.StatusCancelled
	default:
		return false
	}
}

func (s *payrollServiceImpl) Payslip(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.Status == payroll.StatusCancelled {
		return nil, "", payroll.ErrPayslipNotAvailable
	}

	e, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return nil, "", err
	}

	fileName := fmt.Sprintf("%s.pdf", p.PayslipNumber)
	key := payslipKey(p)

	// Serve the stored copy when one exists so a paid payslip never
	// changes after the fact.
	if ok, err := s.files.Exists(ctx, key); err == nil && ok {
		rc, err := s.files.Download(ctx, key)
		if err == nil {
			defer rc.Close()
			if data, err := io.ReadAll(rc); err == nil {
				return data, fileName, nil
			}
		}
	}

	data, err := s.payslips.Render(p, e.SalaryCurrency)
	if err != nil {
		return nil, "", err
	}

	if _, err := s.files.Upload(ctx, bytes.NewReader(data), key, "application/pdf"); err != nil {
		s.logger.WarnContext(ctx, "failed to store payslip", "payroll_id", p.ID, "error", err)
	}

	return data, fileName, nil
}

func payslipKey(p *payroll.Payroll) string {
	return fmt.Sprintf("payslips/%d/%02d/%s.pdf", p.Year, p.Month, p.PayslipNumber)
}

func (s *payrollServiceImpl) SummaryStats(ctx context.Context, month, year int) (*payroll.SummaryStats, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.SummaryStats(ctx, month, year)
}
