package repositories

import (
	"fmt"
)

// Collection names in the persistence store.
const (
	UsersCollection   = "users"
	CoursesCollection = "courses"
)

// Store is the persistence collaborator contract the repositories consume.
type Store interface {
	Save(name string, v interface{}) error
	Load(name string, v interface{}) error
}

// Repositories owns the in-memory collections loaded at startup. All
// mutations happen in place through the repository methods; Persist writes
// every collection back in one pass ("last full save wins").
type Repositories struct {
	Users   *UserRepository
	Courses *CourseRepository

	store Store
}

// New creates the repository container over a store.
func New(store Store) *Repositories {
	return &Repositories{
		Users:   NewUserRepository(),
		Courses: NewCourseRepository(),
		store:   store,
	}
}

// Load hydrates all collections from the store.
func (r *Repositories) Load() error {
	if err := r.Users.load(r.store); err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	if err := r.Courses.load(r.store); err != nil {
		return fmt.Errorf("loading courses: %w", err)
	}
	return nil
}

// Persist saves every collection. Callers decide how to batch logical
// operations between calls.
func (r *Repositories) Persist() error {
	if err := r.store.Save(UsersCollection, r.Users.accounts); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	if err := r.store.Save(CoursesCollection, r.Courses.sections); err != nil {
		return fmt.Errorf("saving courses: %w", err)
	}
	return nil
}
