package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/eduportal/internal/app/repositories"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*repositories.Repositories, *Services) {
	t.Helper()
	store := newMemStore()
	repos := repositories.New(store)
	sessions := auth.NewSessionService(auth.SessionConfig{
		SecretKey: "test-secret",
		Lifetime:  time.Hour,
		Issuer:    "eduportal.test",
	})
	return repos, New(repos, sessions, store)
}

func TestLogin(t *testing.T) {
	repos, svcs := newAuthFixture(t)
	_, err := svcs.Users.CreateStudent(NewAccountInput{
		Username: "student16",
		Password: "pass123",
		Name:     "Student Sixteen",
		Email:    "student16@portal.edu",
		UserID:   "STU016",
	})
	require.NoError(t, err)

	_, err = svcs.Auth.Login("student16", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svcs.Auth.Login("ghost", "pass123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	account, err := svcs.Auth.Login("student16", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "STU016", account.Base().UserID)
	assert.NotNil(t, account.Base().LastLogin)

	// Password hashes never round-trip as plain text.
	stored, err := repos.Users.GetByUsername("student16")
	require.NoError(t, err)
	assert.NotEqual(t, "pass123", stored.Base().PasswordHash)
}

func TestChangePassword(t *testing.T) {
	_, svcs := newAuthFixture(t)
	student, err := svcs.Users.CreateStudent(NewAccountInput{
		Username: "student16",
		Password: "pass123",
		Name:     "Student Sixteen",
		Email:    "student16@portal.edu",
		UserID:   "STU016",
	})
	require.NoError(t, err)

	err = svcs.Auth.ChangePassword(student, "nope", "newpass1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svcs.Auth.ChangePassword(student, "pass123", "short")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	require.NoError(t, svcs.Auth.ChangePassword(student, "pass123", "newpass1"))
	_, err = svcs.Auth.Login("student16", "newpass1")
	assert.NoError(t, err)
}

func TestSetCredentialsOnFirstLogin(t *testing.T) {
	repos, svcs := newAuthFixture(t)
	student, err := svcs.Users.CreateStudent(NewAccountInput{
		Username: "student16",
		Password: "pass123",
		Name:     "Student Sixteen",
		Email:    "student16@portal.edu",
		UserID:   "STU016",
	})
	require.NoError(t, err)
	require.True(t, student.FirstLogin)

	require.NoError(t, svcs.Auth.SetCredentials(student, "sixteen", "better-pass"))
	assert.False(t, student.FirstLogin)

	_, err = repos.Users.GetByUsername("student16")
	assert.Error(t, err)
	resolved, err := repos.Users.GetByUsername("sixteen")
	require.NoError(t, err)
	assert.Equal(t, "STU016", resolved.Base().UserID)

	_, err = svcs.Auth.Login("sixteen", "better-pass")
	assert.NoError(t, err)
}

func TestSessionRoundTrip(t *testing.T) {
	_, svcs := newAuthFixture(t)
	student, err := svcs.Users.CreateStudent(NewAccountInput{
		Username: "student16",
		Password: "pass123",
		Name:     "Student Sixteen",
		Email:    "student16@portal.edu",
		UserID:   "STU016",
	})
	require.NoError(t, err)

	// No saved session yet.
	_, err = svcs.Auth.Resume()
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	require.NoError(t, svcs.Auth.SaveSession(student))
	account, err := svcs.Auth.Resume()
	require.NoError(t, err)
	assert.Equal(t, "student16", account.Base().Username)

	svcs.Auth.ClearSession()
	_, err = svcs.Auth.Resume()
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}
