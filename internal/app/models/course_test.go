package models

import (
	"testing"
)

func TestCourseAddStudent(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		roster   []string
		student  string
		want     bool
		wantLen  int
	}{
		{name: "empty section", capacity: 2, student: "STU001", want: true, wantLen: 1},
		{name: "one seat left", capacity: 2, roster: []string{"STU001"}, student: "STU002", want: true, wantLen: 2},
		{name: "full section", capacity: 1, roster: []string{"STU001"}, student: "STU002", want: false, wantLen: 1},
		{name: "duplicate student", capacity: 5, roster: []string{"STU001"}, student: "STU001", want: false, wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := NewCourse("CS101", "Intro to Programming", "teacher1", tt.capacity, "A")
			course.Roster = append(course.Roster, tt.roster...)

			if got := course.AddStudent(tt.student); got != tt.want {
				t.Errorf("AddStudent() = %v, want %v", got, tt.want)
			}
			if len(course.Roster) != tt.wantLen {
				t.Errorf("roster size = %d, want %d", len(course.Roster), tt.wantLen)
			}
			if len(course.Roster) > course.Capacity {
				t.Errorf("roster size %d exceeds capacity %d", len(course.Roster), course.Capacity)
			}
		})
	}
}

func TestCourseRemoveStudent(t *testing.T) {
	course := NewCourse("CS101", "Intro to Programming", "teacher1", 3, "A")
	course.AddStudent("STU001")
	course.AddStudent("STU002")

	if !course.RemoveStudent("STU001") {
		t.Fatal("RemoveStudent() = false for enrolled student")
	}
	if course.RemoveStudent("STU001") {
		t.Error("RemoveStudent() = true for already-removed student")
	}
	if course.IsStudentEnrolled("STU001") {
		t.Error("student still on roster after removal")
	}
	if got := course.EnrollmentCount(); got != 1 {
		t.Errorf("EnrollmentCount() = %d, want 1", got)
	}
}

func TestCourseRosterKeepsEnrollmentOrder(t *testing.T) {
	course := NewCourse("CS101", "Intro to Programming", "teacher1", 5, "A")
	for _, id := range []string{"STU003", "STU001", "STU002"} {
		course.AddStudent(id)
	}
	got := course.EnrolledStudents()
	want := []string{"STU003", "STU001", "STU002"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roster order = %v, want %v", got, want)
		}
	}
}

func TestCourseDerivedQueries(t *testing.T) {
	course := NewCourse("CS101", "Intro to Programming", "teacher1", 2, "B")
	if course.IsFull() {
		t.Error("new section reported full")
	}
	if got := course.AvailableSpots(); got != 2 {
		t.Errorf("AvailableSpots() = %d, want 2", got)
	}
	course.AddStudent("STU001")
	course.AddStudent("STU002")
	if !course.IsFull() {
		t.Error("section at capacity not reported full")
	}
	if got := course.AvailableSpots(); got != 0 {
		t.Errorf("AvailableSpots() = %d, want 0", got)
	}
	if got := course.Key(); got != "CS101-B" {
		t.Errorf("Key() = %q, want CS101-B", got)
	}
}

func TestCourseDefaults(t *testing.T) {
	course := NewCourse("CS101", "Intro to Programming", "teacher1", 0, "")
	if course.Capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want default %d", course.Capacity, DefaultCapacity)
	}
	if course.Section != DefaultSection {
		t.Errorf("section = %q, want default %q", course.Section, DefaultSection)
	}
}
