package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// User holds the identity and credential fields shared by every role.
// The Role field is the serialized discriminant ("user_type") used to pick
// the concrete account type at load time.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"password"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	UserID       string     `json:"user_id"`
	Role         RoleType   `json:"user_type"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	FirstLogin   bool       `json:"first_login"`
}

// Base returns the shared user fields.
func (u *User) Base() *User { return u }

// Touch records a successful login.
func (u *User) Touch(at time.Time) {
	u.LastLogin = &at
}

// Account is the tagged union over the three role types. Every concrete
// account embeds User and reports its own RoleType.
type Account interface {
	Base() *User
	RoleType() RoleType
}

// DecodeAccount unmarshals a raw user record into the concrete account type
// named by its user_type discriminant.
func DecodeAccount(raw json.RawMessage) (Account, error) {
	var probe struct {
		Role string `json:"user_type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to read user_type: %w", err)
	}

	switch RoleType(strings.ToLower(probe.Role)) {
	case RoleStudent:
		var s Student
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode student record: %w", err)
		}
		s.Role = RoleStudent
		return &s, nil
	case RoleTeacher:
		var t Teacher
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("failed to decode teacher record: %w", err)
		}
		t.Role = RoleTeacher
		return &t, nil
	case RoleAdmin:
		var a Admin
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode admin record: %w", err)
		}
		a.Role = RoleAdmin
		return &a, nil
	default:
		return nil, fmt.Errorf("unknown user_type %q", probe.Role)
	}
}
