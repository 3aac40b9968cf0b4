package console

import (
	"github.com/oguzk/eduportal/internal/app/models"
)

func (a *App) teacherMenu(teacher *models.Teacher) error {
	for {
		a.prompt.Say("\n=== Teacher Menu - %s ===", teacher.Name)
		a.prompt.Say("1. View My Courses")
		a.prompt.Say("2. View Course Roster")
		a.prompt.Say("3. View Salary Slips")
		a.prompt.Say("4. Update Contact Info")
		a.prompt.Say("5. Change Password")
		a.prompt.Say("6. Logout")

		choice, err := a.prompt.Line("Choice")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			a.showTaughtCourses(teacher)
		case "2":
			err = a.showRoster()
		case "3":
			a.showSalarySlips(teacher)
		case "4":
			err = a.updateContactInfo(teacher)
		case "5":
			err = a.changePasswordFlow(teacher)
		case "6":
			return nil
		default:
			a.prompt.Say("Unknown option.")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) showTaughtCourses(teacher *models.Teacher) {
	found := false
	for _, course := range a.svcs.Courses.AllCourses() {
		if course.Instructor != teacher.Username && course.Instructor != teacher.TeacherID {
			continue
		}
		found = true
		a.prompt.Say("%s - %d/%d enrolled", course, course.EnrollmentCount(), course.Capacity)
	}
	if !found {
		a.prompt.Say("No courses assigned.")
	}
}

func (a *App) showRoster() error {
	courseID, err := a.prompt.Line("Course ID")
	if err != nil {
		return err
	}
	section, err := a.prompt.Line("Section")
	if err != nil {
		return err
	}
	course, lookupErr := a.svcs.Courses.FindSection(courseID, section)
	if lookupErr != nil {
		a.report(lookupErr)
		return nil
	}
	a.prompt.Say("\nRoster for %s (%d/%d):", course, course.EnrollmentCount(), course.Capacity)
	for i, studentID := range course.EnrolledStudents() {
		a.prompt.Say("%2d. %s", i+1, studentID)
	}
	return nil
}

func (a *App) showSalarySlips(teacher *models.Teacher) {
	slips, err := a.svcs.Payroll.Slips(teacher.TeacherID)
	if err != nil {
		a.report(err)
		return
	}
	a.prompt.Say("\n=== Salary Information for %s ===", teacher.Name)
	a.prompt.Say("Base Salary: $%.2f", teacher.Salary)
	if len(slips) == 0 {
		a.prompt.Say("No salary slips on record.")
		return
	}
	for _, slip := range slips {
		a.prompt.Say("%s - %s %d: net $%.2f (generated %s)",
			slip.SlipID, slip.Month, slip.Year, slip.NetSalary, formatTime(slip.GeneratedDate))
	}
}

func (a *App) updateContactInfo(teacher *models.Teacher) error {
	key, err := a.prompt.Line("Contact field (e.g. office_room)")
	if err != nil {
		return err
	}
	value, err := a.prompt.Line("Value")
	if err != nil {
		return err
	}
	if teacher.ContactInfo == nil {
		teacher.ContactInfo = make(map[string]string)
	}
	teacher.ContactInfo[key] = value
	if err := a.svcs.Users.UpdateProfile(teacher, "", ""); err != nil {
		a.report(err)
		return nil
	}
	a.prompt.Say("Contact info updated.")
	return nil
}
