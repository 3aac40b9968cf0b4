package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// PayrollService generates and lists teacher salary slips.
type PayrollService struct {
	repos *repositories.Repositories
}

// NewPayrollService creates the payroll service.
func NewPayrollService(repos *repositories.Repositories) *PayrollService {
	return &PayrollService{repos: repos}
}

// SlipInput describes one month's payroll run for a teacher.
type SlipInput struct {
	TeacherID  string
	Month      string
	Year       int
	Allowances map[string]float64
	Deductions map[string]float64
}

// GenerateSlip creates a salary slip from the teacher's base salary plus
// allowances minus deductions. One slip per teacher per month/year.
func (s *PayrollService) GenerateSlip(in SlipInput) (*models.SalarySlip, error) {
	teacher, err := s.repos.Users.FindTeacherByID(in.TeacherID)
	if err != nil {
		return nil, err
	}
	if in.Month == "" || in.Year <= 0 {
		return nil, fmt.Errorf("%w: month and year are required", apperrors.ErrValidationFailed)
	}
	if teacher.HasSlipForPeriod(in.Month, in.Year) {
		return nil, fmt.Errorf("%w: slip for %s %d already exists",
			apperrors.ErrIdentifierTaken, in.Month, in.Year)
	}

	slip := models.SalarySlip{
		SlipID:        fmt.Sprintf("PAY-%s-%s", in.TeacherID, uuid.NewString()[:8]),
		TeacherID:     in.TeacherID,
		Month:         in.Month,
		Year:          in.Year,
		BasicSalary:   teacher.Salary,
		Allowances:    in.Allowances,
		Deductions:    in.Deductions,
		GeneratedDate: time.Now(),
	}
	slip.Recalculate()
	teacher.AddSalarySlip(slip)

	if err := s.repos.Persist(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().
		Str("teacher_id", in.TeacherID).
		Str("slip_id", slip.SlipID).
		Float64("net", slip.NetSalary).
		Msg("Salary slip generated")
	return &slip, nil
}

// Slips returns a teacher's slips in generation order.
func (s *PayrollService) Slips(teacherID string) ([]models.SalarySlip, error) {
	teacher, err := s.repos.Users.FindTeacherByID(teacherID)
	if err != nil {
		return nil, err
	}
	out := make([]models.SalarySlip, len(teacher.SalarySlips))
	copy(out, teacher.SalarySlips)
	return out, nil
}
