package repositories

import (
	"fmt"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// CourseRepository holds every course section. Sections are kept in an
// ordered slice so iteration always follows load/insertion order; the map
// only indexes the composite (course_id, section) key.
type CourseRepository struct {
	sections []*models.Course
	byKey    map[string]*models.Course
}

// NewCourseRepository creates an empty course repository.
func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		byKey: make(map[string]*models.Course),
	}
}

func (r *CourseRepository) load(store Store) error {
	var sections []*models.Course
	if err := store.Load(CoursesCollection, &sections); err != nil {
		return err
	}

	r.sections = r.sections[:0]
	r.byKey = make(map[string]*models.Course, len(sections))
	for _, section := range sections {
		if section.Section == "" {
			section.Section = models.DefaultSection
		}
		if err := r.Add(section); err != nil {
			logger.Warn().Err(err).Str("key", section.Key()).Msg("Skipping duplicate course section")
		}
	}
	return nil
}

// Add inserts a section, enforcing composite-key uniqueness.
func (r *CourseRepository) Add(course *models.Course) error {
	key := course.Key()
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrSectionAlreadyExists, key)
	}
	r.sections = append(r.sections, course)
	r.byKey[key] = course
	return nil
}

// FindByIDAndSection resolves a section by its composite key.
func (r *CourseRepository) FindByIDAndSection(courseID, section string) (*models.Course, error) {
	course, exists := r.byKey[courseID+"-"+section]
	if !exists {
		return nil, fmt.Errorf("%w: %s section %s", apperrors.ErrSectionNotFound, courseID, section)
	}
	return course, nil
}

// FindFirstByCourseID returns the first section of courseID in load order.
func (r *CourseRepository) FindFirstByCourseID(courseID string) (*models.Course, error) {
	for _, course := range r.sections {
		if course.CourseID == courseID {
			return course, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrCourseNotFound, courseID)
}

// AllSectionsByCourseID returns every section of courseID in load order.
// The result may be empty.
func (r *CourseRepository) AllSectionsByCourseID(courseID string) []*models.Course {
	var sections []*models.Course
	for _, course := range r.sections {
		if course.CourseID == courseID {
			sections = append(sections, course)
		}
	}
	return sections
}

// FindStudentEnrolledSection returns the section of courseID whose roster
// contains studentID. At most one should exist; when more than one does the
// collections are inconsistent, so the first match in iteration order wins
// and the condition is logged.
func (r *CourseRepository) FindStudentEnrolledSection(studentID, courseID string) (*models.Course, error) {
	var found *models.Course
	for _, course := range r.sections {
		if course.CourseID != courseID || !course.IsStudentEnrolled(studentID) {
			continue
		}
		if found != nil {
			logger.Warn().
				Str("student_id", studentID).
				Str("course_id", courseID).
				Str("kept_section", found.Section).
				Str("extra_section", course.Section).
				Msg("Student enrolled in multiple sections of one course; collections are inconsistent")
			continue
		}
		found = course
	}
	if found == nil {
		return nil, fmt.Errorf("%w: student %s in course %s", apperrors.ErrNotEnrolled, studentID, courseID)
	}
	return found, nil
}

// All returns every section in load order.
func (r *CourseRepository) All() []*models.Course {
	out := make([]*models.Course, len(r.sections))
	copy(out, r.sections)
	return out
}

// Available returns every section that still has open seats.
func (r *CourseRepository) Available() []*models.Course {
	var open []*models.Course
	for _, course := range r.sections {
		if !course.IsFull() {
			open = append(open, course)
		}
	}
	return open
}

// Count returns the number of sections.
func (r *CourseRepository) Count() int {
	return len(r.sections)
}
