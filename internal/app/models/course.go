package models

import (
	"fmt"
	"time"
)

// Course is one offering of a course: a (course_id, section) pair with its
// own capacity and roster. The roster keeps enrollment order.
type Course struct {
	CourseID    string    `json:"course_id"`
	CourseName  string    `json:"course_name"`
	Instructor  string    `json:"instructor"`
	Capacity    int       `json:"capacity"`
	Section     string    `json:"section"`
	Roster      []string  `json:"enrolled_students"`
	CreatedDate time.Time `json:"created_date"`
}

// NewCourse creates a course section. Zero capacity falls back to
// DefaultCapacity and an empty section to DefaultSection.
func NewCourse(courseID, courseName, instructor string, capacity int, section string) *Course {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if section == "" {
		section = DefaultSection
	}
	return &Course{
		CourseID:    courseID,
		CourseName:  courseName,
		Instructor:  instructor,
		Capacity:    capacity,
		Section:     section,
		Roster:      []string{},
		CreatedDate: time.Now(),
	}
}

// Key returns the composite identity key, unique within the system.
func (c *Course) Key() string {
	return c.CourseID + "-" + c.Section
}

// AddStudent appends studentID to the roster. It reports false without
// mutating when the section is full or the student is already present,
// keeping the capacity and duplicate checks at the single mutation point.
func (c *Course) AddStudent(studentID string) bool {
	if c.IsFull() {
		return false
	}
	if c.IsStudentEnrolled(studentID) {
		return false
	}
	c.Roster = append(c.Roster, studentID)
	return true
}

// RemoveStudent removes studentID from the roster and reports whether it
// was present.
func (c *Course) RemoveStudent(studentID string) bool {
	for i, id := range c.Roster {
		if id == studentID {
			c.Roster = append(c.Roster[:i], c.Roster[i+1:]...)
			return true
		}
	}
	return false
}

// IsFull reports whether the roster has reached capacity.
func (c *Course) IsFull() bool {
	return len(c.Roster) >= c.Capacity
}

// AvailableSpots returns the number of open seats.
func (c *Course) AvailableSpots() int {
	return c.Capacity - len(c.Roster)
}

// EnrollmentCount returns the roster size.
func (c *Course) EnrollmentCount() int {
	return len(c.Roster)
}

// IsStudentEnrolled reports whether studentID is on the roster.
func (c *Course) IsStudentEnrolled(studentID string) bool {
	for _, id := range c.Roster {
		if id == studentID {
			return true
		}
	}
	return false
}

// EnrolledStudents returns a copy of the roster in enrollment order.
func (c *Course) EnrolledStudents() []string {
	out := make([]string, len(c.Roster))
	copy(out, c.Roster)
	return out
}

func (c *Course) String() string {
	return fmt.Sprintf("%s (%s) - Section %s", c.CourseName, c.CourseID, c.Section)
}
