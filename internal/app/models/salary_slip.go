package models

import "time"

// SalarySlip is one month's payroll slip for a teacher.
type SalarySlip struct {
	SlipID        string             `json:"slip_id"`
	TeacherID     string             `json:"teacher_id"`
	Month         string             `json:"month"`
	Year          int                `json:"year"`
	BasicSalary   float64            `json:"basic_salary"`
	Allowances    map[string]float64 `json:"allowances,omitempty"`
	Deductions    map[string]float64 `json:"deductions,omitempty"`
	NetSalary     float64            `json:"net_salary"`
	GeneratedDate time.Time          `json:"generated_date"`
}

// NetAmount recomputes basic + allowances - deductions.
func (s *SalarySlip) NetAmount() float64 {
	net := s.BasicSalary
	for _, amount := range s.Allowances {
		net += amount
	}
	for _, amount := range s.Deductions {
		net -= amount
	}
	return net
}

// Recalculate refreshes the stored net salary.
func (s *SalarySlip) Recalculate() {
	s.NetSalary = s.NetAmount()
}
