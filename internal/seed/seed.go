package seed

import (
	"errors"
	"fmt"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/app/services"
	"github.com/oguzk/eduportal/internal/pkg/auth"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// CreateDefaultData populates an empty portal with a default admin,
// students, teachers, courses and a handful of sample enrollments. It is a
// no-op when any users already exist.
func CreateDefaultData(repos *repositories.Repositories, enrollment *services.EnrollmentService) error {
	if repos.Users.Count() > 0 {
		return nil
	}
	logger.Info().Msg("Empty data store, creating default data...")

	var finalErr error

	if err := createUsers(repos); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := createCourses(repos); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// Sample enrollments go through the coordinator so the roster and the
	// student enrollment sets start out consistent.
	sampleEnrollments := []struct {
		studentID string
		courses   []string
	}{
		{"STU001", []string{"CS101", "MATH101", "ENG101"}},
		{"STU002", []string{"CS101", "MATH101", "PHYS101"}},
		{"STU003", []string{"CS102", "MATH102", "BUS101"}},
		{"STU004", []string{"CS101", "ENG101", "BUS101"}},
		{"STU005", []string{"MATH101", "PHYS101", "ENG101"}},
	}
	for _, sample := range sampleEnrollments {
		for _, courseID := range sample.courses {
			if _, err := enrollment.Enroll(sample.studentID, courseID, ""); err != nil {
				logger.Error().Err(err).
					Str("student_id", sample.studentID).
					Str("course_id", courseID).
					Msg("Failed to seed enrollment")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if err := repos.Persist(); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if finalErr == nil {
		logger.Info().Msg("Default data created")
	}
	return finalErr
}

func createUsers(repos *repositories.Repositories) error {
	var finalErr error

	add := func(account models.Account, password string) {
		hash, err := auth.HashPassword(password)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			return
		}
		account.Base().PasswordHash = hash
		if err := repos.Users.Add(account); err != nil {
			logger.Error().Err(err).Str("username", account.Base().Username).Msg("Failed to seed user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	add(&models.Admin{
		User: models.User{
			Username: "admin",
			Name:     "System Administrator",
			Email:    "admin@portal.edu",
			UserID:   "ADM001",
			Role:     models.RoleAdmin,
		},
		AdminID:     "ADM001",
		AccessLevel: "full",
	}, "admin123")

	for i := 1; i <= 15; i++ {
		studentID := fmt.Sprintf("STU%03d", i)
		add(&models.Student{
			User: models.User{
				Username:   fmt.Sprintf("student%d", i),
				Name:       fmt.Sprintf("Student %d", i),
				Email:      fmt.Sprintf("student%d@portal.edu", i),
				UserID:     studentID,
				Role:       models.RoleStudent,
				FirstLogin: true,
			},
			StudentID:       studentID,
			EnrolledCourses: []string{},
		}, "pass123")
	}

	departments := []string{"Computer Science", "Mathematics", "Physics", "English", "Business"}
	buildings := []string{"Science Building", "Math Building", "Physics Lab", "Liberal Arts", "Business Center"}
	for i := 1; i <= 15; i++ {
		teacherID := fmt.Sprintf("TCH%03d", i)
		dept := (i - 1) % len(departments)
		add(&models.Teacher{
			User: models.User{
				Username:   fmt.Sprintf("teacher%d", i),
				Name:       fmt.Sprintf("Professor %d", i),
				Email:      fmt.Sprintf("teacher%d@portal.edu", i),
				UserID:     teacherID,
				Role:       models.RoleTeacher,
				FirstLogin: true,
			},
			TeacherID:     teacherID,
			Department:    departments[dept],
			Qualification: "PhD",
			Salary:        75000 + float64(i)*1000,
			ContactInfo: map[string]string{
				"office_room":     fmt.Sprintf("Room %d", 100+i),
				"office_building": buildings[dept],
				"office_hours":    "Mon-Wed 2-4 PM",
				"personal_phone":  fmt.Sprintf("555-%04d", 1000+i),
			},
		}, "teach123")
	}

	return finalErr
}

func createCourses(repos *repositories.Repositories) error {
	var finalErr error
	defaults := []struct {
		id         string
		name       string
		instructor string
		capacity   int
	}{
		{"CS101", "Introduction to Programming", "teacher1", 30},
		{"CS102", "Data Structures", "teacher1", 25},
		{"MATH101", "Calculus I", "teacher2", 40},
		{"MATH102", "Calculus II", "teacher2", 35},
		{"PHYS101", "Physics I", "teacher3", 30},
		{"ENG101", "English Composition", "teacher4", 25},
		{"BUS101", "Business Fundamentals", "teacher5", 35},
	}
	for _, c := range defaults {
		course := models.NewCourse(c.id, c.name, c.instructor, c.capacity, models.DefaultSection)
		if err := repos.Courses.Add(course); err != nil {
			logger.Error().Err(err).Str("key", course.Key()).Msg("Failed to seed course")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if account, err := repos.Users.GetByUsername(c.instructor); err == nil {
			if teacher, ok := account.(*models.Teacher); ok {
				teacher.AddTaughtCourse(course.Key())
			}
		}
	}
	return finalErr
}
