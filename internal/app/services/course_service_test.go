package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
)

func TestCreateSectionNormalizesAndPersists(t *testing.T) {
	repos := repositories.New(newMemStore())
	svc := NewCourseService(repos)

	course, err := svc.CreateSection(SectionInput{
		CourseID:   " cs101 ",
		CourseName: " Intro to CS ",
		Instructor: "TCH001",
		Capacity:   25,
		Section:    "b",
	})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.CourseID)
	assert.Equal(t, "B", course.Section)
	assert.Equal(t, "Intro to CS", course.CourseName)

	_, err = svc.CreateSection(SectionInput{
		CourseID:   "CS101",
		CourseName: "Intro to CS",
		Instructor: "TCH001",
		Section:    "B",
	})
	assert.ErrorIs(t, err, apperrors.ErrSectionAlreadyExists)
}

func TestCreateSectionRejectsBadInput(t *testing.T) {
	repos := repositories.New(newMemStore())
	svc := NewCourseService(repos)

	tests := []struct {
		name string
		in   SectionInput
	}{
		{"bad course id", SectionInput{CourseID: "notacourse", CourseName: "X"}},
		{"bad section", SectionInput{CourseID: "CS101", CourseName: "X", Section: "AA"}},
		{"empty name", SectionInput{CourseID: "CS101"}},
		{"negative capacity", SectionInput{CourseID: "CS101", CourseName: "X", Capacity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSection(tt.in)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestCreateSectionRecordsTeachingLoad(t *testing.T) {
	repos := repositories.New(newMemStore())
	svc := NewCourseService(repos)
	teacher := newTeacher(t, repos, "TCH001", 76000)

	// By teacher ID.
	_, err := svc.CreateSection(SectionInput{
		CourseID:   "CS101",
		CourseName: "Intro to CS",
		Instructor: "TCH001",
		Section:    "A",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101-A"}, teacher.CoursesTaught)

	// By username.
	_, err = svc.CreateSection(SectionInput{
		CourseID:   "CS101",
		CourseName: "Intro to CS",
		Instructor: teacher.Username,
		Section:    "B",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101-A", "CS101-B"}, teacher.CoursesTaught)

	// Free-text instructors with no matching account are simply not tracked.
	_, err = svc.CreateSection(SectionInput{
		CourseID:   "MA201",
		CourseName: "Calculus II",
		Instructor: "Visiting Lecturer",
		Section:    "A",
	})
	require.NoError(t, err)
	assert.Len(t, teacher.CoursesTaught, 2)
}
