package services

import (
	"fmt"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// EnrollmentService is the single authority for mutating the
// student↔course relationship. The relationship is stored twice: the
// authoritative roster inside each course section and the denormalized
// enrolled_courses list inside each student. Every mutation here applies
// both writes together or neither.
type EnrollmentService struct {
	repos *repositories.Repositories
}

// NewEnrollmentService creates the enrollment coordinator.
func NewEnrollmentService(repos *repositories.Repositories) *EnrollmentService {
	return &EnrollmentService{repos: repos}
}

// Placement identifies the section a student was enrolled into.
type Placement struct {
	CourseID string
	Section  string
}

// Enroll places a student into a section of courseID. An empty section
// auto-selects the first section with open seats in load order. A student
// may hold at most one section per course ID, so the duplicate check runs
// before any section is chosen.
//
// On a persistence failure the in-memory enrollment is kept and the
// returned error wraps apperrors.ErrPersistenceFailure; the placement is
// still returned so the caller can report what was applied.
func (s *EnrollmentService) Enroll(studentID, courseID, section string) (*Placement, error) {
	student, err := s.repos.Users.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repos.Courses.FindStudentEnrolledSection(studentID, courseID); err == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
			fmt.Sprintf("already enrolled in %s section %s", courseID, existing.Section)).
			WithDetails(map[string]interface{}{
				"course_id": courseID,
				"section":   existing.Section,
			})
	}

	target, err := s.selectSection(courseID, section)
	if err != nil {
		return nil, err
	}

	// Re-check at the chosen section; selectSection may have scanned stale
	// state in pathological call patterns.
	if target.IsFull() {
		return nil, sectionFullError(target)
	}

	if !target.AddStudent(studentID) {
		return nil, sectionFullError(target)
	}
	// Second half of the dual write. AddEnrollment is append-if-absent, so
	// it cannot fail once the student resolved; a panic between the two
	// writes is the only gap left, which the startup reconciliation pass
	// surfaces.
	student.AddEnrollment(courseID)

	placement := &Placement{CourseID: courseID, Section: target.Section}
	logger.Info().
		Str("student_id", studentID).
		Str("course_id", courseID).
		Str("section", target.Section).
		Msg("Student enrolled")

	if err := s.repos.Persist(); err != nil {
		logger.Error().Err(err).
			Str("student_id", studentID).
			Str("course_id", courseID).
			Msg("Enrollment applied in memory but save failed; disk state is stale")
		return placement, fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return placement, nil
}

// sectionFullError builds a capacity failure carrying the section context.
func sectionFullError(course *models.Course) error {
	return apperrors.NewCustomError(apperrors.ErrCourseFull,
		fmt.Sprintf("%s section %s is full", course.CourseID, course.Section)).
		WithDetails(map[string]interface{}{
			"course_id": course.CourseID,
			"section":   course.Section,
			"capacity":  course.Capacity,
		})
}

// selectSection resolves the target section for an enrollment. Auto-select
// distinguishes an unknown course from one whose sections are all full.
func (s *EnrollmentService) selectSection(courseID, section string) (*models.Course, error) {
	if section != "" {
		return s.repos.Courses.FindByIDAndSection(courseID, section)
	}
	if _, err := s.repos.Courses.FindFirstByCourseID(courseID); err != nil {
		return nil, err
	}
	for _, candidate := range s.repos.Courses.AllSectionsByCourseID(courseID) {
		if !candidate.IsFull() {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrNoAvailableSection, courseID)
}

// Unenroll removes a student from whichever section of courseID holds them.
// The vacated seat is immediately available to the next Enroll call.
func (s *EnrollmentService) Unenroll(studentID, courseID string) error {
	student, err := s.repos.Users.FindStudentByID(studentID)
	if err != nil {
		return err
	}

	enrolled, err := s.repos.Courses.FindStudentEnrolledSection(studentID, courseID)
	if err != nil {
		return err
	}

	if !enrolled.RemoveStudent(studentID) {
		return fmt.Errorf("%w: student %s in course %s", apperrors.ErrNotEnrolled, studentID, courseID)
	}
	student.RemoveEnrollment(courseID)

	logger.Info().
		Str("student_id", studentID).
		Str("course_id", courseID).
		Str("section", enrolled.Section).
		Msg("Student unenrolled")

	if err := s.repos.Persist(); err != nil {
		logger.Error().Err(err).
			Str("student_id", studentID).
			Str("course_id", courseID).
			Msg("Unenrollment applied in memory but save failed; disk state is stale")
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

// EnrolledSection reports which section of courseID holds the student.
func (s *EnrollmentService) EnrolledSection(studentID, courseID string) (*models.Course, error) {
	return s.repos.Courses.FindStudentEnrolledSection(studentID, courseID)
}

// SectionsFor lists the sections a student currently sits in, resolved
// from the student's enrollment set.
func (s *EnrollmentService) SectionsFor(student *models.Student) []*models.Course {
	var sections []*models.Course
	for _, courseID := range student.EnrolledCourses {
		if section, err := s.repos.Courses.FindStudentEnrolledSection(student.StudentID, courseID); err == nil {
			sections = append(sections, section)
		}
	}
	return sections
}

// Discrepancy describes one inconsistency between the two denormalized
// copies of the enrollment relationship.
type Discrepancy struct {
	StudentID string
	CourseID  string
	Section   string
	Problem   string
}

// Reconcile scans every section roster against every student's enrollment
// set and reports mismatches. It never repairs: neither copy is known to
// be authoritative once they disagree, so the discrepancies are logged and
// returned for an operator to resolve.
func (s *EnrollmentService) Reconcile() []Discrepancy {
	var found []Discrepancy
	report := func(d Discrepancy) {
		found = append(found, d)
		logger.Warn().
			Str("student_id", d.StudentID).
			Str("course_id", d.CourseID).
			Str("section", d.Section).
			Str("problem", d.Problem).
			Msg("Enrollment data inconsistency")
	}

	students := make(map[string]*models.Student)
	for _, student := range s.repos.Users.Students() {
		students[student.StudentID] = student
	}

	// Roster side: every roster entry must map to a known student whose
	// enrollment set names the course, and to only one section per course.
	seen := make(map[string]string) // studentID+courseID -> first section
	for _, course := range s.repos.Courses.All() {
		for _, studentID := range course.EnrolledStudents() {
			student, ok := students[studentID]
			if !ok {
				report(Discrepancy{studentID, course.CourseID, course.Section, "roster references unknown student"})
				continue
			}
			pairKey := studentID + "\x00" + course.CourseID
			if first, dup := seen[pairKey]; dup {
				report(Discrepancy{studentID, course.CourseID, course.Section,
					"student also on roster of section " + first})
			} else {
				seen[pairKey] = course.Section
			}
			if !student.IsEnrolledIn(course.CourseID) {
				report(Discrepancy{studentID, course.CourseID, course.Section,
					"on roster but course missing from student's enrollment set"})
			}
		}
	}

	// Student side: every enrollment-set entry must have a backing roster.
	for _, student := range s.repos.Users.Students() {
		for _, courseID := range student.EnrolledCourses {
			if _, ok := seen[student.StudentID+"\x00"+courseID]; !ok {
				report(Discrepancy{student.StudentID, courseID, "",
					"in student's enrollment set but on no section roster"})
			}
		}
	}

	if len(found) == 0 {
		logger.Debug().Msg("Enrollment collections consistent")
	} else {
		logger.Warn().Int("discrepancies", len(found)).Msg("Enrollment reconciliation found inconsistencies")
	}
	return found
}

// IsEnrollmentError reports whether err is one of the recoverable
// enrollment failures, as opposed to a persistence failure.
func IsEnrollmentError(err error) bool {
	return apperrors.Is(err, apperrors.ErrAlreadyEnrolled,
		apperrors.ErrSectionNotFound,
		apperrors.ErrNoAvailableSection,
		apperrors.ErrCourseFull,
		apperrors.ErrNotEnrolled,
		apperrors.ErrStudentNotFound,
		apperrors.ErrCourseNotFound)
}
