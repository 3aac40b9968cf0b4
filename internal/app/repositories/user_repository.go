package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/logger"
)

// UserRepository holds every account, keyed by username, preserving load
// order for deterministic iteration.
type UserRepository struct {
	accounts   []models.Account
	byUsername map[string]models.Account
}

// NewUserRepository creates an empty user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byUsername: make(map[string]models.Account),
	}
}

// load reads the users collection, decoding each record by its user_type
// discriminant. Undecodable records are skipped with a warning rather than
// failing the whole load.
func (r *UserRepository) load(store Store) error {
	var raw []json.RawMessage
	if err := store.Load(UsersCollection, &raw); err != nil {
		return err
	}

	r.accounts = r.accounts[:0]
	r.byUsername = make(map[string]models.Account, len(raw))
	for i, record := range raw {
		account, err := models.DecodeAccount(record)
		if err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping undecodable user record")
			continue
		}
		if err := r.Add(account); err != nil {
			logger.Warn().Err(err).Str("username", account.Base().Username).Msg("Skipping duplicate user record")
		}
	}
	return nil
}

// Add inserts an account, enforcing username uniqueness.
func (r *UserRepository) Add(account models.Account) error {
	username := account.Base().Username
	if _, exists := r.byUsername[username]; exists {
		return fmt.Errorf("%w: %s", apperrors.ErrUsernameTaken, username)
	}
	r.accounts = append(r.accounts, account)
	r.byUsername[username] = account
	return nil
}

// Delete removes the account with the given username and reports whether
// it existed.
func (r *UserRepository) Delete(username string) bool {
	if _, exists := r.byUsername[username]; !exists {
		return false
	}
	delete(r.byUsername, username)
	for i, account := range r.accounts {
		if account.Base().Username == username {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			break
		}
	}
	return true
}

// GetByUsername resolves an account by username.
func (r *UserRepository) GetByUsername(username string) (models.Account, error) {
	account, exists := r.byUsername[username]
	if !exists {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, username)
	}
	return account, nil
}

// GetByUserID resolves an account by its role identifier (student, teacher
// or admin ID) via linear scan.
func (r *UserRepository) GetByUserID(userID string) (models.Account, error) {
	for _, account := range r.accounts {
		switch acct := account.(type) {
		case *models.Student:
			if acct.StudentID == userID {
				return acct, nil
			}
		case *models.Teacher:
			if acct.TeacherID == userID {
				return acct, nil
			}
		case *models.Admin:
			if acct.AdminID == userID {
				return acct, nil
			}
		}
		if account.Base().UserID == userID {
			return account, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrUserNotFound, userID)
}

// FindStudentByID scans all users filtered to the student role and returns
// the unique match.
func (r *UserRepository) FindStudentByID(studentID string) (*models.Student, error) {
	for _, account := range r.accounts {
		student, ok := account.(*models.Student)
		if ok && student.StudentID == studentID {
			return student, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, studentID)
}

// FindTeacherByID scans all users filtered to the teacher role.
func (r *UserRepository) FindTeacherByID(teacherID string) (*models.Teacher, error) {
	for _, account := range r.accounts {
		teacher, ok := account.(*models.Teacher)
		if ok && teacher.TeacherID == teacherID {
			return teacher, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", apperrors.ErrTeacherNotFound, teacherID)
}

// Students returns every student account in load order.
func (r *UserRepository) Students() []*models.Student {
	var students []*models.Student
	for _, account := range r.accounts {
		if student, ok := account.(*models.Student); ok {
			students = append(students, student)
		}
	}
	return students
}

// Teachers returns every teacher account in load order.
func (r *UserRepository) Teachers() []*models.Teacher {
	var teachers []*models.Teacher
	for _, account := range r.accounts {
		if teacher, ok := account.(*models.Teacher); ok {
			teachers = append(teachers, teacher)
		}
	}
	return teachers
}

// Admins returns every admin account in load order.
func (r *UserRepository) Admins() []*models.Admin {
	var admins []*models.Admin
	for _, account := range r.accounts {
		if admin, ok := account.(*models.Admin); ok {
			admins = append(admins, admin)
		}
	}
	return admins
}

// All returns every account in load order.
func (r *UserRepository) All() []models.Account {
	out := make([]models.Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Count returns the number of accounts.
func (r *UserRepository) Count() int {
	return len(r.accounts)
}
