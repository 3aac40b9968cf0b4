package models

// Teacher is the instructor account. ContactInfo may carry private keys
// (personal_phone) that must not appear in the public profile view.
type Teacher struct {
	User
	TeacherID     string            `json:"teacher_id"`
	Department    string            `json:"department"`
	Qualification string            `json:"qualification"`
	Salary        float64           `json:"salary"`
	ContactInfo   map[string]string `json:"contact_info,omitempty"`
	CoursesTaught []string          `json:"courses_taught,omitempty"`
	SalarySlips   []SalarySlip      `json:"salary_slips,omitempty"`
}

// RoleType implements Account.
func (t *Teacher) RoleType() RoleType { return RoleTeacher }

// AddTaughtCourse records a section key in the teacher's teaching load if
// absent and reports whether the load changed.
func (t *Teacher) AddTaughtCourse(key string) bool {
	for _, existing := range t.CoursesTaught {
		if existing == key {
			return false
		}
	}
	t.CoursesTaught = append(t.CoursesTaught, key)
	return true
}

// AddSalarySlip appends a payroll slip to the teacher's record.
func (t *Teacher) AddSalarySlip(slip SalarySlip) {
	t.SalarySlips = append(t.SalarySlips, slip)
}

// HasSlipForPeriod reports whether a slip already exists for month/year.
func (t *Teacher) HasSlipForPeriod(month string, year int) bool {
	for _, slip := range t.SalarySlips {
		if slip.Month == month && slip.Year == year {
			return true
		}
	}
	return false
}

// PublicContactInfo returns the contact details visible to students.
// Keys prefixed "personal_" are private to the teacher and admins.
func (t *Teacher) PublicContactInfo() map[string]string {
	public := make(map[string]string, len(t.ContactInfo))
	for key, value := range t.ContactInfo {
		if len(key) >= 9 && key[:9] == "personal_" {
			continue
		}
		public[key] = value
	}
	return public
}
