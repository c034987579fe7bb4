// Package payslip renders payroll records as PDF documents.
package payslip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hrstack/hrms-backend-go/internal/domain/payroll"
)

// Generator renders payslips. The company name appears in the header.
type Generator struct {
	CompanyName string
}

func NewGenerator(companyName string) *Generator {
	return &Generator{CompanyName: companyName}
}

// Render produces the PDF bytes for one payroll record. The employee join
// fields must be populated.
func (g *Generator) Render(p *payroll.Payroll, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, g.CompanyName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Payslip %s", p.PayslipNumber))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	name := ""
	if p.EmployeeName != nil {
		name = *p.EmployeeName
	}
	code := ""
	if p.EmployeeCode != nil {
		code = *p.EmployeeCode
	}
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", name, code))
	pdf.Ln(6)
	if p.Department != nil && p.Position != nil {
		pdf.Cell(0, 7, fmt.Sprintf("%s, %s", *p.Position, *p.Department))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Pay period: %s to %s",
		p.PeriodStart.Format("2006-01-02"), p.PeriodEnd.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Days worked: %d of %d, overtime %.2f h",
		p.PresentDays, p.WorkingDays, p.OvertimeHours))
	pdf.Ln(10)

	g.section(pdf, "Earnings")
	g.line(pdf, "Basic salary", p.Earnings.BasicSalary.StringFixed(2), currency)
	g.line(pdf, "Allowances", p.Earnings.Allowances.StringFixed(2), currency)
	g.line(pdf, "Overtime", p.Earnings.Overtime.StringFixed(2), currency)
	g.line(pdf, "Bonus", p.Earnings.Bonus.StringFixed(2), currency)
	g.total(pdf, "Gross earnings", p.Earnings.Total.StringFixed(2), currency)
	pdf.Ln(4)

	g.section(pdf, "Deductions")
	g.line(pdf, "Tax", p.Deductions.Tax.StringFixed(2), currency)
	g.line(pdf, "Social security", p.Deductions.SocialSecurity.StringFixed(2), currency)
	g.line(pdf, "Health insurance", p.Deductions.HealthInsurance.StringFixed(2), currency)
	g.line(pdf, "Other", p.Deductions.Other.StringFixed(2), currency)
	g.total(pdf, "Total deductions", p.Deductions.Total.StringFixed(2), currency)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(120, 9, "Net salary")
	pdf.Cell(0, 9, fmt.Sprintf("%s %s", p.NetSalary.StringFixed(2), currency))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s. This document is for information only.",
		time.Now().Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func (g *Generator) line(pdf *gofpdf.Fpdf, label, amount, currency string) {
	pdf.Cell(120, 7, label)
	pdf.Cell(0, 7, fmt.Sprintf("%s %s", amount, currency))
	pdf.Ln(6)
}

func (g *Generator) total(pdf *gofpdf.Fpdf, label, amount, currency string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, label)
	pdf.Cell(0, 7, fmt.Sprintf("%s %s", amount, currency))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
}
