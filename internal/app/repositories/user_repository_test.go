package repositories

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
)

// stubStore keeps collections as marshalled JSON, mirroring the on-disk
// layout without touching the filesystem.
type stubStore struct {
	docs map[string][]byte
}

func newStubStore() *stubStore {
	return &stubStore{docs: make(map[string][]byte)}
}

func (s *stubStore) Save(name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.docs[name] = data
	return nil
}

func (s *stubStore) Load(name string, v interface{}) error {
	data, exists := s.docs[name]
	if !exists {
		return nil
	}
	return json.Unmarshal(data, v)
}

func stubStudent(studentID string) *models.Student {
	return &models.Student{
		User: models.User{
			Username: studentID,
			Name:     "Student " + studentID,
			Email:    studentID + "@portal.edu",
			UserID:   studentID,
			Role:     models.RoleStudent,
		},
		StudentID: studentID,
	}
}

func stubTeacher(teacherID string) *models.Teacher {
	return &models.Teacher{
		User: models.User{
			Username: teacherID,
			Name:     "Teacher " + teacherID,
			Email:    teacherID + "@portal.edu",
			UserID:   teacherID,
			Role:     models.RoleTeacher,
		},
		TeacherID: teacherID,
	}
}

func TestUserRepositoryAddEnforcesUniqueUsername(t *testing.T) {
	repo := NewUserRepository()

	require.NoError(t, repo.Add(stubStudent("STU001")))
	err := repo.Add(stubStudent("STU001"))
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	assert.Equal(t, 1, repo.Count())
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Add(stubStudent("STU001")))
	require.NoError(t, repo.Add(stubTeacher("TCH001")))
	require.NoError(t, repo.Add(&models.Admin{
		User: models.User{
			Username: "admin",
			Name:     "Site Admin",
			UserID:   "ADM001",
			Role:     models.RoleAdmin,
		},
		AdminID: "ADM001",
	}))

	byName, err := repo.GetByUsername("TCH001")
	require.NoError(t, err)
	assert.Equal(t, "TCH001", byName.Base().Username)

	_, err = repo.GetByUsername("nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	byID, err := repo.GetByUserID("ADM001")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, byID.RoleType())

	student, err := repo.FindStudentByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, "STU001", student.StudentID)

	_, err = repo.FindStudentByID("TCH001")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	teacher, err := repo.FindTeacherByID("TCH001")
	require.NoError(t, err)
	assert.Equal(t, "TCH001", teacher.TeacherID)

	_, err = repo.FindTeacherByID("STU001")
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)

	assert.Len(t, repo.Students(), 1)
	assert.Len(t, repo.Teachers(), 1)
	assert.Len(t, repo.Admins(), 1)
	assert.Equal(t, 3, repo.Count())
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := NewUserRepository()
	require.NoError(t, repo.Add(stubStudent("STU001")))

	assert.True(t, repo.Delete("STU001"))
	assert.False(t, repo.Delete("STU001"))
	assert.Equal(t, 0, repo.Count())
	_, err := repo.GetByUsername("STU001")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserRepositoryAllPreservesInsertionOrder(t *testing.T) {
	repo := NewUserRepository()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Add(stubStudent(fmt.Sprintf("STU%03d", i))))
	}

	var usernames []string
	for _, account := range repo.All() {
		usernames = append(usernames, account.Base().Username)
	}
	assert.Equal(t, []string{"STU001", "STU002", "STU003", "STU004", "STU005"}, usernames)
}

func TestLoadDecodesAccountsByRole(t *testing.T) {
	store := newStubStore()
	store.docs[UsersCollection] = []byte(`[
		{"username":"STU001","name":"A","user_id":"STU001","user_type":"student","student_id":"STU001"},
		{"username":"TCH001","name":"B","user_id":"TCH001","user_type":"teacher","teacher_id":"TCH001","salary":50000},
		{"username":"admin","name":"C","user_id":"ADM001","user_type":"admin","admin_id":"ADM001"},
		{"username":"ghost","name":"D","user_id":"X","user_type":"alien"}
	]`)

	repos := New(store)
	require.NoError(t, repos.Load())

	// The unknown role is skipped, everything else decodes to its concrete type.
	assert.Equal(t, 3, repos.Users.Count())
	student, err := repos.Users.FindStudentByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, student.RoleType())
	teacher, err := repos.Users.FindTeacherByID("TCH001")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, teacher.Salary)
	assert.Len(t, repos.Users.Admins(), 1)
}

func TestPersistAndReloadRoundTrip(t *testing.T) {
	store := newStubStore()
	repos := New(store)

	student := stubStudent("STU001")
	student.EnrolledCourses = []string{"CS101"}
	require.NoError(t, repos.Users.Add(student))
	require.NoError(t, repos.Users.Add(stubTeacher("TCH001")))
	require.NoError(t, repos.Courses.Add(models.NewCourse("CS101", "Intro to CS", "TCH001", 2, "A")))
	require.NoError(t, repos.Persist())

	reloaded := New(store)
	require.NoError(t, reloaded.Load())

	assert.Equal(t, 2, reloaded.Users.Count())
	again, err := reloaded.Users.FindStudentByID("STU001")
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, again.EnrolledCourses)

	section, err := reloaded.Courses.FindByIDAndSection("CS101", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, section.Capacity)
}
