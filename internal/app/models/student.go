package models

// SemesterRecord holds the grades and CGPA reported for one semester.
type SemesterRecord struct {
	CoursesGrades map[string]string `json:"courses_grades"`
	CGPA          float64           `json:"cgpa"`
	DateAdded     string            `json:"date_added"`
}

// CGPAEntry is one point in a student's CGPA history.
type CGPAEntry struct {
	Semester string  `json:"semester"`
	CGPA     float64 `json:"cgpa"`
	Date     string  `json:"date"`
}

// Student is the learner account. EnrolledCourses records base course IDs
// only; the section a student actually sits in lives in the course roster.
type Student struct {
	User
	StudentID       string                    `json:"student_id"`
	EnrolledCourses []string                  `json:"enrolled_courses"`
	AcademicRecords map[string]SemesterRecord `json:"academic_records,omitempty"`
	CGPAHistory     []CGPAEntry               `json:"cgpa_history,omitempty"`
}

// RoleType implements Account.
func (s *Student) RoleType() RoleType { return RoleStudent }

// IsEnrolledIn reports whether courseID is in the student's enrollment set.
func (s *Student) IsEnrolledIn(courseID string) bool {
	for _, id := range s.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// AddEnrollment appends courseID to the enrollment set if absent and
// reports whether the set changed.
func (s *Student) AddEnrollment(courseID string) bool {
	if s.IsEnrolledIn(courseID) {
		return false
	}
	s.EnrolledCourses = append(s.EnrolledCourses, courseID)
	return true
}

// RemoveEnrollment removes courseID from the enrollment set and reports
// whether it was present.
func (s *Student) RemoveEnrollment(courseID string) bool {
	for i, id := range s.EnrolledCourses {
		if id == courseID {
			s.EnrolledCourses = append(s.EnrolledCourses[:i], s.EnrolledCourses[i+1:]...)
			return true
		}
	}
	return false
}

// CurrentCGPA returns the most recent CGPA, or 0 when no history exists.
func (s *Student) CurrentCGPA() float64 {
	if len(s.CGPAHistory) == 0 {
		return 0
	}
	return s.CGPAHistory[len(s.CGPAHistory)-1].CGPA
}
