package services

import (
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/auth"
)

// Services bundles every application service over one repository set.
type Services struct {
	Auth       *AuthService
	Users      *UserService
	Courses    *CourseService
	Enrollment *EnrollmentService
	Records    *RecordsService
	Payroll    *PayrollService
	Reports    *ReportService
}

// New wires all services to the shared repositories.
func New(repos *repositories.Repositories, sessions *auth.SessionService, store repositories.Store) *Services {
	return &Services{
		Auth:       NewAuthService(repos, sessions, store),
		Users:      NewUserService(repos),
		Courses:    NewCourseService(repos),
		Enrollment: NewEnrollmentService(repos),
		Records:    NewRecordsService(repos),
		Payroll:    NewPayrollService(repos),
		Reports:    NewReportService(repos),
	}
}
