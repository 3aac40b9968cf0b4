package console

import (
	"os"
	"path/filepath"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/services"
)

func (a *App) adminMenu(admin *models.Admin) error {
	for {
		a.prompt.Say("\n=== Admin Menu - %s ===", admin.Name)
		a.prompt.Say("1. Create Student")
		a.prompt.Say("2. Create Teacher")
		a.prompt.Say("3. Delete User")
		a.prompt.Say("4. Create Course Section")
		a.prompt.Say("5. Enroll Student")
		a.prompt.Say("6. Unenroll Student")
		a.prompt.Say("7. Add Semester Record")
		a.prompt.Say("8. Generate Salary Slip")
		a.prompt.Say("9. System Statistics")
		a.prompt.Say("10. Backup Data")
		a.prompt.Say("11. Export CSV")
		a.prompt.Say("12. Check Data Consistency")
		a.prompt.Say("13. Change Password")
		a.prompt.Say("14. Logout")

		choice, err := a.prompt.Line("Choice")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = a.createStudentFlow()
		case "2":
			err = a.createTeacherFlow()
		case "3":
			err = a.deleteUserFlow()
		case "4":
			err = a.createSectionFlow()
		case "5":
			err = a.adminEnrollFlow()
		case "6":
			err = a.adminUnenrollFlow()
		case "7":
			err = a.addRecordFlow()
		case "8":
			err = a.generateSlipFlow()
		case "9":
			a.showStats()
		case "10":
			a.report(a.store.BackupAll())
		case "11":
			err = a.exportCSVFlow()
		case "12":
			a.checkConsistency()
		case "13":
			err = a.changePasswordFlow(admin)
		case "14":
			return nil
		default:
			a.prompt.Say("Unknown option.")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) accountInput() (services.NewAccountInput, error) {
	var in services.NewAccountInput
	var err error
	if in.Username, err = a.prompt.Line("Username"); err != nil {
		return in, err
	}
	if in.Password, err = a.prompt.Line("Password"); err != nil {
		return in, err
	}
	if in.Name, err = a.prompt.Line("Full name"); err != nil {
		return in, err
	}
	if in.Email, err = a.prompt.Line("Email"); err != nil {
		return in, err
	}
	if in.UserID, err = a.prompt.Line("User ID (e.g. STU016)"); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) createStudentFlow() error {
	in, err := a.accountInput()
	if err != nil {
		return err
	}
	student, createErr := a.svcs.Users.CreateStudent(in)
	if createErr != nil {
		a.report(createErr)
		return nil
	}
	a.prompt.Say("Student %s created.", student.StudentID)
	return nil
}

func (a *App) createTeacherFlow() error {
	base, err := a.accountInput()
	if err != nil {
		return err
	}
	in := services.TeacherInput{NewAccountInput: base}
	if in.Department, err = a.prompt.Line("Department"); err != nil {
		return err
	}
	if in.Qualification, err = a.prompt.Line("Qualification"); err != nil {
		return err
	}
	if in.Salary, err = a.prompt.Float("Salary"); err != nil {
		return err
	}
	teacher, createErr := a.svcs.Users.CreateTeacher(in)
	if createErr != nil {
		a.report(createErr)
		return nil
	}
	a.prompt.Say("Teacher %s created.", teacher.TeacherID)
	return nil
}

func (a *App) deleteUserFlow() error {
	userID, err := a.prompt.Line("User ID to delete")
	if err != nil {
		return err
	}
	confirmed, err := a.prompt.YesNo("Delete " + userID + "? This removes all enrollments")
	if err != nil {
		return err
	}
	if !confirmed {
		a.prompt.Say("Cancelled.")
		return nil
	}
	a.report(a.svcs.Users.DeleteUser(userID))
	return nil
}

func (a *App) createSectionFlow() error {
	var in services.SectionInput
	var err error
	if in.CourseID, err = a.prompt.Line("Course ID"); err != nil {
		return err
	}
	if in.CourseName, err = a.prompt.Line("Course name"); err != nil {
		return err
	}
	if in.Instructor, err = a.prompt.Line("Instructor"); err != nil {
		return err
	}
	if in.Capacity, err = a.prompt.Int("Capacity"); err != nil {
		return err
	}
	if in.Section, err = a.prompt.Line("Section (blank for A)"); err != nil {
		return err
	}
	course, createErr := a.svcs.Courses.CreateSection(in)
	if createErr != nil {
		a.report(createErr)
		return nil
	}
	a.prompt.Say("Created %s with capacity %d.", course, course.Capacity)
	return nil
}

func (a *App) adminEnrollFlow() error {
	studentID, err := a.prompt.Line("Student ID")
	if err != nil {
		return err
	}
	courseID, err := a.prompt.Line("Course ID")
	if err != nil {
		return err
	}
	section, err := a.prompt.Line("Section (blank for first available)")
	if err != nil {
		return err
	}
	placement, enrollErr := a.svcs.Enrollment.Enroll(studentID, courseID, section)
	if placement != nil {
		a.prompt.Say("Enrolled %s in %s section %s.", studentID, placement.CourseID, placement.Section)
	}
	a.report(enrollErr)
	return nil
}

func (a *App) adminUnenrollFlow() error {
	studentID, err := a.prompt.Line("Student ID")
	if err != nil {
		return err
	}
	courseID, err := a.prompt.Line("Course ID")
	if err != nil {
		return err
	}
	a.report(a.svcs.Enrollment.Unenroll(studentID, courseID))
	return nil
}

func (a *App) addRecordFlow() error {
	studentID, err := a.prompt.Line("Student ID")
	if err != nil {
		return err
	}
	semester, err := a.prompt.Line("Semester (e.g. Fall 2025)")
	if err != nil {
		return err
	}
	grades := make(map[string]string)
	for {
		courseID, err := a.prompt.Line("Course ID (blank to finish)")
		if err != nil {
			return err
		}
		if courseID == "" {
			break
		}
		grade, err := a.prompt.Line("Grade")
		if err != nil {
			return err
		}
		grades[courseID] = grade
	}
	cgpa, err := a.prompt.Float("CGPA")
	if err != nil {
		return err
	}
	a.report(a.svcs.Records.AddSemesterRecord(studentID, semester, grades, cgpa))
	return nil
}

func (a *App) generateSlipFlow() error {
	var in services.SlipInput
	var err error
	if in.TeacherID, err = a.prompt.Line("Teacher ID"); err != nil {
		return err
	}
	if in.Month, err = a.prompt.Line("Month (e.g. January)"); err != nil {
		return err
	}
	if in.Year, err = a.prompt.Int("Year"); err != nil {
		return err
	}
	slip, genErr := a.svcs.Payroll.GenerateSlip(in)
	if genErr != nil {
		a.report(genErr)
		return nil
	}
	a.prompt.Say("Slip %s generated, net $%.2f.", slip.SlipID, slip.NetSalary)
	return nil
}

func (a *App) showStats() {
	stats := a.svcs.Reports.Stats()
	a.prompt.Say("\n=== System Statistics ===")
	a.prompt.Say("Users: %d (students %d, teachers %d, admins %d)",
		stats.TotalUsers, stats.TotalStudents, stats.TotalTeachers, stats.TotalAdmins)
	a.prompt.Say("Course sections: %d", stats.TotalSections)
	a.prompt.Say("Total enrollments: %d", stats.TotalEnrollments)
}

func (a *App) exportCSVFlow() error {
	dir, err := a.prompt.Line("Export directory")
	if err != nil {
		return err
	}
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		a.report(mkErr)
		return nil
	}
	usersFile, createErr := os.Create(filepath.Join(dir, "users.csv"))
	if createErr != nil {
		a.report(createErr)
		return nil
	}
	defer usersFile.Close()
	if exportErr := a.svcs.Reports.ExportUsersCSV(usersFile); exportErr != nil {
		a.report(exportErr)
		return nil
	}

	coursesFile, createErr := os.Create(filepath.Join(dir, "courses.csv"))
	if createErr != nil {
		a.report(createErr)
		return nil
	}
	defer coursesFile.Close()
	if exportErr := a.svcs.Reports.ExportCoursesCSV(coursesFile); exportErr != nil {
		a.report(exportErr)
		return nil
	}
	a.prompt.Say("Exported users.csv and courses.csv to %s.", dir)
	return nil
}

func (a *App) checkConsistency() {
	discrepancies := a.svcs.Enrollment.Reconcile()
	if len(discrepancies) == 0 {
		a.prompt.Say("Enrollment data is consistent.")
		return
	}
	a.prompt.Say("Found %d inconsistencies:", len(discrepancies))
	for _, d := range discrepancies {
		if d.Section != "" {
			a.prompt.Say("- student %s, course %s section %s: %s", d.StudentID, d.CourseID, d.Section, d.Problem)
		} else {
			a.prompt.Say("- student %s, course %s: %s", d.StudentID, d.CourseID, d.Problem)
		}
	}
}
