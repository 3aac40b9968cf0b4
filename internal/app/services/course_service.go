package services

import (
	"fmt"
	"strings"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
	"github.com/oguzk/eduportal/internal/pkg/validation"
)

// CourseService handles course and section administration. Roster
// mutations stay with the enrollment coordinator; this service only
// creates sections and answers read queries.
type CourseService struct {
	repos *repositories.Repositories
}

// NewCourseService creates the course service.
func NewCourseService(repos *repositories.Repositories) *CourseService {
	return &CourseService{repos: repos}
}

// SectionInput carries the fields for a new course section.
type SectionInput struct {
	CourseID   string
	CourseName string
	Instructor string
	Capacity   int
	Section    string
}

// CreateSection adds a new (course_id, section) offering. Additional
// sections of an existing course may use any free section letter; the
// composite key must be unique.
func (s *CourseService) CreateSection(in SectionInput) (*models.Course, error) {
	courseID := strings.ToUpper(strings.TrimSpace(in.CourseID))
	if !validation.IsValidCourseID(courseID) {
		return nil, fmt.Errorf("%w: invalid course id %q", apperrors.ErrValidationFailed, in.CourseID)
	}
	section := strings.ToUpper(strings.TrimSpace(in.Section))
	if section != "" && !validation.IsValidSection(section) {
		return nil, fmt.Errorf("%w: invalid section %q", apperrors.ErrValidationFailed, in.Section)
	}
	if strings.TrimSpace(in.CourseName) == "" {
		return nil, fmt.Errorf("%w: course name cannot be empty", apperrors.ErrValidationFailed)
	}
	if in.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrValidationFailed)
	}

	course := models.NewCourse(courseID, strings.TrimSpace(in.CourseName), in.Instructor, in.Capacity, section)
	if err := s.repos.Courses.Add(course); err != nil {
		return nil, err
	}
	s.recordTaughtCourse(course)
	if err := s.repos.Persist(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().Str("key", course.Key()).Int("capacity", course.Capacity).Msg("Course section created")
	return course, nil
}

// recordTaughtCourse adds the section to the instructor's teaching load.
// The instructor field may name a teacher by username or teacher ID, or be
// free text for external staff, in which case there is nothing to record.
func (s *CourseService) recordTaughtCourse(course *models.Course) {
	if account, err := s.repos.Users.GetByUsername(course.Instructor); err == nil {
		if teacher, ok := account.(*models.Teacher); ok {
			teacher.AddTaughtCourse(course.Key())
		}
		return
	}
	if teacher, err := s.repos.Users.FindTeacherByID(course.Instructor); err == nil {
		teacher.AddTaughtCourse(course.Key())
	}
}

// AllCourses lists every section in load order.
func (s *CourseService) AllCourses() []*models.Course {
	return s.repos.Courses.All()
}

// AvailableCourses lists sections with open seats.
func (s *CourseService) AvailableCourses() []*models.Course {
	return s.repos.Courses.Available()
}

// Sections lists every section of a course in load order.
func (s *CourseService) Sections(courseID string) []*models.Course {
	return s.repos.Courses.AllSectionsByCourseID(courseID)
}

// FindSection resolves a single section by composite key.
func (s *CourseService) FindSection(courseID, section string) (*models.Course, error) {
	return s.repos.Courses.FindByIDAndSection(courseID, section)
}
