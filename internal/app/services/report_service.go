package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oguzk/eduportal/internal/app/repositories"
)

// ReportService produces system statistics and CSV exports.
type ReportService struct {
	repos *repositories.Repositories
}

// NewReportService creates the report service.
func NewReportService(repos *repositories.Repositories) *ReportService {
	return &ReportService{repos: repos}
}

// SystemStats is a point-in-time summary of the portal.
type SystemStats struct {
	TotalUsers       int       `json:"total_users"`
	TotalStudents    int       `json:"total_students"`
	TotalTeachers    int       `json:"total_teachers"`
	TotalAdmins      int       `json:"total_admins"`
	TotalSections    int       `json:"total_courses"`
	TotalEnrollments int       `json:"total_enrollments"`
	GeneratedAt      time.Time `json:"timestamp"`
}

// Stats computes the current system statistics.
func (s *ReportService) Stats() SystemStats {
	enrollments := 0
	for _, course := range s.repos.Courses.All() {
		enrollments += course.EnrollmentCount()
	}
	return SystemStats{
		TotalUsers:       s.repos.Users.Count(),
		TotalStudents:    len(s.repos.Users.Students()),
		TotalTeachers:    len(s.repos.Users.Teachers()),
		TotalAdmins:      len(s.repos.Users.Admins()),
		TotalSections:    s.repos.Courses.Count(),
		TotalEnrollments: enrollments,
		GeneratedAt:      time.Now(),
	}
}

// ExportUsersCSV writes one row per account. Password hashes are not
// exported.
func (s *ReportService) ExportUsersCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"user_id", "username", "name", "email", "user_type"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, account := range s.repos.Users.All() {
		base := account.Base()
		row := []string{base.UserID, base.Username, base.Name, base.Email, string(account.RoleType())}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCoursesCSV writes one row per course section, with the roster as a
// semicolon-joined list in enrollment order.
func (s *ReportService) ExportCoursesCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	header := []string{"course_id", "section", "course_name", "instructor", "capacity", "enrolled", "roster"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, course := range s.repos.Courses.All() {
		row := []string{
			course.CourseID,
			course.Section,
			course.CourseName,
			course.Instructor,
			strconv.Itoa(course.Capacity),
			strconv.Itoa(course.EnrollmentCount()),
			strings.Join(course.EnrolledStudents(), ";"),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
