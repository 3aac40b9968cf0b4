package services

import (
	"fmt"
	"strings"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/auth"
	"github.com/oguzk/eduportal/internal/pkg/logger"
	"github.com/oguzk/eduportal/internal/pkg/validation"
)

// NewAccountInput carries the fields shared by every account creation.
type NewAccountInput struct {
	Username string
	Password string
	Name     string
	Email    string
	UserID   string
}

// UserService handles account management for all three roles.
type UserService struct {
	repos *repositories.Repositories
}

// NewUserService creates the user service.
func NewUserService(repos *repositories.Repositories) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) validateInput(in NewAccountInput) error {
	if strings.TrimSpace(in.Username) == "" {
		return fmt.Errorf("%w: username cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidName(in.Name) {
		return fmt.Errorf("%w: invalid name", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(in.Email) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidEmail, in.Email)
	}
	if !validation.IsValidUserID(in.UserID) {
		return fmt.Errorf("%w: invalid identifier %s", apperrors.ErrValidationFailed, in.UserID)
	}
	if !validation.IsValidPassword(in.Password) {
		return fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	if _, err := s.repos.Users.GetByUserID(in.UserID); err == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrIdentifierTaken, in.UserID)
	}
	return nil
}

func (s *UserService) baseUser(in NewAccountInput, role models.RoleType) (models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		UserID:       in.UserID,
		Role:         role,
		FirstLogin:   true,
	}, nil
}

func (s *UserService) register(account models.Account) error {
	if err := s.repos.Users.Add(account); err != nil {
		return err
	}
	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().
		Str("username", account.Base().Username).
		Str("role", string(account.RoleType())).
		Msg("Account created")
	return nil
}

// CreateStudent creates a learner account with an empty enrollment set.
func (s *UserService) CreateStudent(in NewAccountInput) (*models.Student, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	base, err := s.baseUser(in, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	student := &models.Student{
		User:            base,
		StudentID:       in.UserID,
		EnrolledCourses: []string{},
	}
	if err := s.register(student); err != nil {
		return nil, err
	}
	return student, nil
}

// TeacherInput extends NewAccountInput with teacher-only fields.
type TeacherInput struct {
	NewAccountInput
	Department    string
	Qualification string
	Salary        float64
	ContactInfo   map[string]string
}

// CreateTeacher creates an instructor account.
func (s *UserService) CreateTeacher(in TeacherInput) (*models.Teacher, error) {
	if err := s.validateInput(in.NewAccountInput); err != nil {
		return nil, err
	}
	if in.Salary < 0 {
		return nil, fmt.Errorf("%w: salary cannot be negative", apperrors.ErrValidationFailed)
	}
	base, err := s.baseUser(in.NewAccountInput, models.RoleTeacher)
	if err != nil {
		return nil, err
	}
	teacher := &models.Teacher{
		User:          base,
		TeacherID:     in.UserID,
		Department:    in.Department,
		Qualification: in.Qualification,
		Salary:        in.Salary,
		ContactInfo:   in.ContactInfo,
	}
	if err := s.register(teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// CreateAdmin creates an administrator account with full access.
func (s *UserService) CreateAdmin(in NewAccountInput) (*models.Admin, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}
	base, err := s.baseUser(in, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{
		User:        base,
		AdminID:     in.UserID,
		AccessLevel: "full",
	}
	if err := s.register(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteUser removes an account by role identifier. Deleting a student
// also removes them from every course roster so no roster entry dangles.
func (s *UserService) DeleteUser(userID string) error {
	account, err := s.repos.Users.GetByUserID(userID)
	if err != nil {
		return err
	}

	if student, ok := account.(*models.Student); ok {
		for _, course := range s.repos.Courses.All() {
			if course.RemoveStudent(student.StudentID) {
				logger.Debug().
					Str("student_id", student.StudentID).
					Str("course", course.Key()).
					Msg("Removed deleted student from roster")
			}
		}
	}

	if !s.repos.Users.Delete(account.Base().Username) {
		return fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
	}
	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	logger.Info().Str("user_id", userID).Msg("Account deleted")
	return nil
}

// FindStudent resolves a student by student ID.
func (s *UserService) FindStudent(studentID string) (*models.Student, error) {
	return s.repos.Users.FindStudentByID(studentID)
}

// FindTeacher resolves a teacher by teacher ID.
func (s *UserService) FindTeacher(teacherID string) (*models.Teacher, error) {
	return s.repos.Users.FindTeacherByID(teacherID)
}

// UpdateProfile applies name/email changes to an account.
func (s *UserService) UpdateProfile(account models.Account, name, email string) error {
	if name != "" {
		if !validation.IsValidName(name) {
			return fmt.Errorf("%w: invalid name", apperrors.ErrValidationFailed)
		}
		account.Base().Name = strings.TrimSpace(name)
	}
	if email != "" {
		if !validation.IsValidEmail(email) {
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidEmail, email)
		}
		account.Base().Email = email
	}
	if err := s.repos.Persist(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceFailure, err)
	}
	return nil
}
