package services

import (
	"fmt"
	"time"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// RecordsService manages per-semester academic records and the CGPA
// history derived from them.
type RecordsService struct {
	repos *repositories.Repositories
}

// NewRecordsService creates the records service.
func NewRecordsService(repos *repositories.Repositories) *RecordsService {
	return &RecordsService{repos: repos}
}

// AddSemesterRecord stores the grade map and CGPA for one semester and
// appends the CGPA history point.
func (s *RecordsService) AddSemesterRecord(studentID, semester string, grades map[string]string, cgpa float64) error {
	student, err := s.repos.Users.FindStudentByID(studentID)
	if err != nil {
		return err
	}
	if semester == "" {
		return fmt.Errorf("%w: semester cannot be empty", apperrors.ErrValidationFailed)
	}
	if cgpa < 0 || cgpa > 4.0 {
		return fmt.Errorf("%w: cgpa must be between 0 and 4.0", apperrors.ErrValidationFailed)
	}

	now := time.Now().Format(time.RFC3339)
	if student.AcademicRecords == nil {
		student.AcademicRecords = make(map[string]models.SemesterRecord)
	}
	student.AcademicRecords[semester] = models.SemesterRecord{
		CoursesGrades: grades,
		CGPA:          cgpa,
		DateAdded:     now,
	}
	student.CGPAHistory = append(student.CGPAHistory, models.CGPAEntry{
		Semester: semester,
		CGPA:     cgpa,
		Date:     now,
	})

	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().
		Str("student_id", studentID).
		Str("semester", semester).
		Float64("cgpa", cgpa).
		Msg("Semester record added")
	return nil
}

// History returns a student's CGPA history in insertion order.
func (s *RecordsService) History(studentID string) ([]models.CGPAEntry, error) {
	student, err := s.repos.Users.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	out := make([]models.CGPAEntry, len(student.CGPAHistory))
	copy(out, student.CGPAHistory)
	return out, nil
}
