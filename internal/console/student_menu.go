package console

import (
	"errors"
	"strings"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
)

func (a *App) studentMenu(student *models.Student) error {
	for {
		a.prompt.Say("\n=== Student Menu - %s ===", student.Name)
		a.prompt.Say("1. Enroll in Course")
		a.prompt.Say("2. Unenroll from Course")
		a.prompt.Say("3. View Academic Records")
		a.prompt.Say("4. View Enrolled Courses")
		a.prompt.Say("5. View Available Courses")
		a.prompt.Say("6. View Teacher Profile")
		a.prompt.Say("7. Change Password")
		a.prompt.Say("8. Logout")

		choice, err := a.prompt.Line("Choice")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = a.enrollFlow(student)
		case "2":
			err = a.unenrollFlow(student)
		case "3":
			a.showRecords(student)
		case "4":
			a.showEnrolledCourses(student)
		case "5":
			a.showAvailableCourses()
		case "6":
			err = a.showTeacherProfile()
		case "7":
			err = a.changePasswordFlow(student)
		case "8":
			return nil
		default:
			a.prompt.Say("Unknown option.")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) enrollFlow(student *models.Student) error {
	courseID, err := a.prompt.Line("Course ID")
	if err != nil {
		return err
	}
	section, err := a.prompt.Line("Section (blank for first available)")
	if err != nil {
		return err
	}

	placement, enrollErr := a.svcs.Enrollment.Enroll(student.StudentID, courseID, section)
	if enrollErr != nil && !errors.Is(enrollErr, apperrors.ErrPersistenceFailure) {
		a.report(enrollErr)
		return nil
	}
	a.prompt.Say("Enrolled in %s section %s.", placement.CourseID, placement.Section)
	if enrollErr != nil {
		a.report(enrollErr)
	}
	return nil
}

func (a *App) unenrollFlow(student *models.Student) error {
	courseID, err := a.prompt.Line("Course ID")
	if err != nil {
		return err
	}
	confirmed, err := a.prompt.YesNo("Unenroll from " + courseID + "?")
	if err != nil {
		return err
	}
	if !confirmed {
		a.prompt.Say("Cancelled.")
		return nil
	}
	a.report(a.svcs.Enrollment.Unenroll(student.StudentID, courseID))
	return nil
}

func (a *App) showRecords(student *models.Student) {
	a.prompt.Say("\n=== Academic Records for %s ===", student.Name)
	a.prompt.Say("Student ID: %s", student.StudentID)
	if len(student.AcademicRecords) == 0 {
		a.prompt.Say("No academic records found.")
		return
	}
	for semester, record := range student.AcademicRecords {
		a.prompt.Say("\nSemester: %s (CGPA %.2f)", semester, record.CGPA)
		for course, grade := range record.CoursesGrades {
			a.prompt.Say("  %s: %s", course, grade)
		}
	}
	if history, err := a.svcs.Records.History(student.StudentID); err == nil && len(history) > 0 {
		a.prompt.Say("\nCGPA Trend:")
		for _, entry := range history {
			a.prompt.Say("  %s: %.2f", entry.Semester, entry.CGPA)
		}
	}
	a.prompt.Say("\nCurrent CGPA: %.2f", student.CurrentCGPA())
}

func (a *App) showEnrolledCourses(student *models.Student) {
	sections := a.svcs.Enrollment.SectionsFor(student)
	if len(sections) == 0 {
		a.prompt.Say("You are not enrolled in any courses.")
		return
	}
	for _, course := range sections {
		a.prompt.Say("%s - Instructor: %s", course, course.Instructor)
	}
}

func (a *App) showAvailableCourses() {
	courses := a.svcs.Courses.AvailableCourses()
	if len(courses) == 0 {
		a.prompt.Say("No courses with open seats.")
		return
	}
	for _, course := range courses {
		a.prompt.Say("%s - %d/%d enrolled, %d spots left",
			course, course.EnrollmentCount(), course.Capacity, course.AvailableSpots())
	}
}

func (a *App) showTeacherProfile() error {
	teacherID, err := a.prompt.Line("Teacher ID")
	if err != nil {
		return err
	}
	teacher, lookupErr := a.svcs.Users.FindTeacher(teacherID)
	if lookupErr != nil {
		a.report(lookupErr)
		return nil
	}
	a.prompt.Say("\n=== Teacher Profile ===")
	a.prompt.Say("Name: %s", teacher.Name)
	a.prompt.Say("Department: %s", teacher.Department)
	a.prompt.Say("Qualification: %s", teacher.Qualification)
	if len(teacher.CoursesTaught) > 0 {
		a.prompt.Say("Courses: %s", strings.Join(teacher.CoursesTaught, ", "))
	}
	for key, value := range teacher.PublicContactInfo() {
		a.prompt.Say("%s: %s", key, value)
	}
	return nil
}

func (a *App) changePasswordFlow(account models.Account) error {
	oldPassword, err := a.prompt.Line("Current password")
	if err != nil {
		return err
	}
	newPassword, err := a.prompt.Line("New password")
	if err != nil {
		return err
	}
	if changeErr := a.svcs.Auth.ChangePassword(account, oldPassword, newPassword); changeErr != nil {
		a.report(changeErr)
	} else {
		a.prompt.Say("Password changed successfully.")
	}
	return nil
}
