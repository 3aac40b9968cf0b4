package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
)

// memStore keeps collections in memory so service tests run without disk.
type memStore struct {
	docs map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string][]byte)}
}

func (m *memStore) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.docs[name] = data
	return nil
}

func (m *memStore) Load(name string, v interface{}) error {
	data, ok := m.docs[name]
	if !ok {
		return nil
	}
	return json.Unmarshal(data, v)
}

// failingStore rejects every save, standing in for a broken disk.
type failingStore struct{}

func (failingStore) Save(string, interface{}) error { return errors.New("disk full") }
func (failingStore) Load(string, interface{}) error { return nil }

func newStudent(t *testing.T, repos *repositories.Repositories, studentID string) *models.Student {
	t.Helper()
	student := &models.Student{
		User: models.User{
			Username: studentID,
			Name:     "Student " + studentID,
			Email:    studentID + "@portal.edu",
			UserID:   studentID,
			Role:     models.RoleStudent,
		},
		StudentID:       studentID,
		EnrolledCourses: []string{},
	}
	require.NoError(t, repos.Users.Add(student))
	return student
}

func newSection(t *testing.T, repos *repositories.Repositories, courseID, section string, capacity int) *models.Course {
	t.Helper()
	course := models.NewCourse(courseID, courseID+" Course", "teacher1", capacity, section)
	require.NoError(t, repos.Courses.Add(course))
	return course
}

func newFixture(store repositories.Store) (*repositories.Repositories, *EnrollmentService) {
	repos := repositories.New(store)
	return repos, NewEnrollmentService(repos)
}

func TestEnrollAutoSelectsFirstOpenSection(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	stu1 := newStudent(t, repos, "STU001")
	stu2 := newStudent(t, repos, "STU002")
	sectionA := newSection(t, repos, "CS101", "A", 1)
	sectionB := newSection(t, repos, "CS101", "B", 5)

	placement, err := svc.Enroll(stu1.StudentID, "CS101", "")
	require.NoError(t, err)
	assert.Equal(t, "A", placement.Section)
	assert.True(t, sectionA.IsFull())

	// Explicit request for the now-full section fails without mutation.
	_, err = svc.Enroll(stu2.StudentID, "CS101", "A")
	require.ErrorIs(t, err, apperrors.ErrCourseFull)
	assert.Empty(t, stu2.EnrolledCourses)

	// Auto-selection skips the full section and lands on B.
	placement, err = svc.Enroll(stu2.StudentID, "CS101", "")
	require.NoError(t, err)
	assert.Equal(t, "B", placement.Section)
	assert.True(t, sectionB.IsStudentEnrolled(stu2.StudentID))
}

func TestEnrollRejectsSecondSectionOfSameCourse(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	newSection(t, repos, "CS101", "A", 5)
	sectionB := newSection(t, repos, "CS101", "B", 5)

	_, err := svc.Enroll(student.StudentID, "CS101", "A")
	require.NoError(t, err)

	// Section B has space, but the duplicate check is per course ID.
	_, err = svc.Enroll(student.StudentID, "CS101", "B")
	require.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.False(t, sectionB.IsStudentEnrolled(student.StudentID))
	assert.Equal(t, []string{"CS101"}, student.EnrolledCourses)
}

func TestEnrollTwiceIsIdempotentFailure(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	section := newSection(t, repos, "CS101", "A", 5)

	_, err := svc.Enroll(student.StudentID, "CS101", "")
	require.NoError(t, err)

	rosterBefore := section.EnrolledStudents()
	coursesBefore := append([]string(nil), student.EnrolledCourses...)

	_, err = svc.Enroll(student.StudentID, "CS101", "")
	require.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.Equal(t, rosterBefore, section.EnrolledStudents())
	assert.Equal(t, coursesBefore, student.EnrolledCourses)
}

func TestEnrollSelectionFailures(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	filler := newStudent(t, repos, "STU099")
	full := newSection(t, repos, "CS101", "A", 1)
	require.True(t, full.AddStudent(filler.StudentID))
	filler.AddEnrollment("CS101")

	_, err := svc.Enroll(student.StudentID, "CS101", "Z")
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)

	_, err = svc.Enroll(student.StudentID, "CS101", "")
	assert.ErrorIs(t, err, apperrors.ErrNoAvailableSection)

	// An unknown course is reported as such, not as a capacity problem.
	_, err = svc.Enroll(student.StudentID, "NOPE101", "")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = svc.Enroll("STU404", "CS101", "")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	assert.Empty(t, student.EnrolledCourses)
}

func TestEnrollFailuresCarryStructuredContext(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	blocker := newStudent(t, repos, "STU002")
	newSection(t, repos, "CS101", "A", 1)

	_, err := svc.Enroll(blocker.StudentID, "CS101", "A")
	require.NoError(t, err)

	_, err = svc.Enroll(student.StudentID, "CS101", "A")
	require.ErrorIs(t, err, apperrors.ErrCourseFull)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "CS101", custom.Details["course_id"])
	assert.Equal(t, "A", custom.Details["section"])
	assert.Equal(t, 1, custom.Details["capacity"])

	_, err = svc.Enroll(blocker.StudentID, "CS101", "")
	require.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	custom = nil
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "A", custom.Details["section"])
	assert.True(t, IsEnrollmentError(err))
}

func TestUnenrollFreesSeatAndClearsBothSides(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	newSection(t, repos, "CS101", "A", 1)
	sectionB := newSection(t, repos, "CS101", "B", 1)

	// Occupy A so the student lands in B.
	blocker := newStudent(t, repos, "STU002")
	_, err := svc.Enroll(blocker.StudentID, "CS101", "A")
	require.NoError(t, err)
	_, err = svc.Enroll(student.StudentID, "CS101", "")
	require.NoError(t, err)
	require.True(t, sectionB.IsStudentEnrolled(student.StudentID))

	require.NoError(t, svc.Unenroll(student.StudentID, "CS101"))
	assert.False(t, sectionB.IsStudentEnrolled(student.StudentID))
	assert.Empty(t, student.EnrolledCourses)

	_, err = svc.EnrolledSection(student.StudentID, "CS101")
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)

	// The vacated seat is immediately reusable.
	third := newStudent(t, repos, "STU003")
	placement, err := svc.Enroll(third.StudentID, "CS101", "B")
	require.NoError(t, err)
	assert.Equal(t, "B", placement.Section)
}

func TestUnenrollWithoutEnrollment(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	section := newSection(t, repos, "CS101", "A", 5)

	err := svc.Unenroll(student.StudentID, "CS101")
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
	assert.Equal(t, 0, section.EnrollmentCount())
	assert.Empty(t, student.EnrolledCourses)
}

func TestEnrollUnenrollRoundTrip(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	section := newSection(t, repos, "CS101", "A", 5)
	require.True(t, section.AddStudent("STU000"))
	other := newStudent(t, repos, "STU000")
	other.AddEnrollment("CS101")

	rosterBefore := section.EnrolledStudents()
	coursesBefore := append([]string(nil), student.EnrolledCourses...)

	_, err := svc.Enroll(student.StudentID, "CS101", "")
	require.NoError(t, err)
	require.NoError(t, svc.Unenroll(student.StudentID, "CS101"))

	assert.Equal(t, rosterBefore, section.EnrolledStudents())
	assert.Equal(t, coursesBefore, student.EnrolledCourses)
}

func TestEnrollKeepsStateOnPersistFailure(t *testing.T) {
	repos, svc := newFixture(failingStore{})
	student := newStudent(t, repos, "STU001")
	section := newSection(t, repos, "CS101", "A", 5)

	placement, err := svc.Enroll(student.StudentID, "CS101", "")
	require.ErrorIs(t, err, apperrors.ErrPersistenceFailure)
	// The in-memory mutation is kept and the placement still reported.
	require.NotNil(t, placement)
	assert.Equal(t, "A", placement.Section)
	assert.True(t, section.IsStudentEnrolled(student.StudentID))
	assert.Equal(t, []string{"CS101"}, student.EnrolledCourses)
}

func TestBidirectionalConsistencyAfterMixedOperations(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	students := []*models.Student{
		newStudent(t, repos, "STU001"),
		newStudent(t, repos, "STU002"),
		newStudent(t, repos, "STU003"),
	}
	newSection(t, repos, "CS101", "A", 2)
	newSection(t, repos, "CS101", "B", 2)
	newSection(t, repos, "MATH101", "A", 3)

	for _, student := range students {
		_, err := svc.Enroll(student.StudentID, "CS101", "")
		require.NoError(t, err)
		_, err = svc.Enroll(student.StudentID, "MATH101", "")
		require.NoError(t, err)
	}
	require.NoError(t, svc.Unenroll(students[1].StudentID, "CS101"))

	assert.Empty(t, svc.Reconcile())
}

func TestReconcileFlagsMismatchesWithoutRepairing(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	section := newSection(t, repos, "CS101", "A", 5)

	// Roster entry with no matching enrollment-set entry.
	require.True(t, section.AddStudent(student.StudentID))
	// Enrollment-set entry with no backing roster.
	student.AddEnrollment("MATH101")

	discrepancies := svc.Reconcile()
	require.Len(t, discrepancies, 2)

	// Detection only: neither copy was touched.
	assert.True(t, section.IsStudentEnrolled(student.StudentID))
	assert.Equal(t, []string{"MATH101"}, student.EnrolledCourses)
}

func TestReconcileFlagsMultiSectionMembership(t *testing.T) {
	repos, svc := newFixture(newMemStore())
	student := newStudent(t, repos, "STU001")
	sectionA := newSection(t, repos, "CS101", "A", 5)
	sectionB := newSection(t, repos, "CS101", "B", 5)

	require.True(t, sectionA.AddStudent(student.StudentID))
	require.True(t, sectionB.AddStudent(student.StudentID))
	student.AddEnrollment("CS101")

	discrepancies := svc.Reconcile()
	require.NotEmpty(t, discrepancies)

	// The lookup stays deterministic: first section in load order wins.
	found, err := svc.EnrolledSection(student.StudentID, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "A", found.Section)
}
