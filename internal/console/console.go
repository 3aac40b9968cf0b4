package console

import (
	"errors"
	"io"
	"sort"
	"time"

	"github.com/oguzk/eduportal/internal/app/models"
	"github.com/oguzk/eduportal/internal/app/services"
	"github.com/oguzk/eduportal/internal/pkg/apperrors"
	"github.com/oguzk/eduportal/internal/storage/jsonstore"
)

// App is the interactive menu loop. Each menu action runs to completion
// before the next input is read; all state changes go through the services.
type App struct {
	svcs   *services.Services
	store  *jsonstore.Store
	prompt *Prompter
}

// New creates the console app.
func New(svcs *services.Services, store *jsonstore.Store, prompt *Prompter) *App {
	return &App{svcs: svcs, store: store, prompt: prompt}
}

// Run drives the outer login loop until the user exits or input ends.
func (a *App) Run() error {
	a.prompt.Say("=== Educational Records Portal ===")

	if account, err := a.svcs.Auth.Resume(); err == nil {
		resume, err := a.prompt.YesNo("Resume session as " + account.Base().Name + "?")
		if err != nil {
			return nil
		}
		if resume {
			if err := a.dispatch(account); err != nil {
				return err
			}
		} else {
			a.svcs.Auth.ClearSession()
		}
	}

	for {
		a.prompt.Say("\n1. Login")
		a.prompt.Say("2. Exit")
		choice, err := a.prompt.Line("Choice")
		if err != nil {
			return nil // input exhausted, unwind quietly
		}
		switch choice {
		case "1":
			if err := a.login(); err != nil {
				return err
			}
		case "2":
			a.prompt.Say("Goodbye!")
			return nil
		default:
			a.prompt.Say("Unknown option.")
		}
	}
}

func (a *App) login() error {
	username, err := a.prompt.Line("Username")
	if err != nil {
		return nil
	}
	password, err := a.prompt.Line("Password")
	if err != nil {
		return nil
	}

	account, err := a.svcs.Auth.Login(username, password)
	if err != nil {
		a.prompt.Say("Invalid credentials. Please try again.")
		return nil
	}
	a.prompt.Say("Welcome, %s!", account.Base().Name)

	if account.Base().FirstLogin {
		if err := a.firstLoginReset(account); err != nil {
			return err
		}
	}

	if err := a.svcs.Auth.SaveSession(account); err != nil {
		a.prompt.Say("Warning: could not save session (%v)", err)
	}
	return a.dispatch(account)
}

func (a *App) firstLoginReset(account models.Account) error {
	a.prompt.Say("First login: please choose new credentials.")
	for {
		username, err := a.prompt.Line("New username")
		if err != nil {
			return nil
		}
		password, err := a.prompt.Line("New password")
		if err != nil {
			return nil
		}
		err = a.svcs.Auth.SetCredentials(account, username, password)
		if err == nil {
			a.prompt.Say("Credentials updated.")
			return nil
		}
		if errors.Is(err, apperrors.ErrPersistenceFailure) {
			return err
		}
		a.prompt.Say("Could not update credentials: %v", err)
	}
}

// dispatch runs the role-specific menu until logout.
func (a *App) dispatch(account models.Account) error {
	var err error
	switch acct := account.(type) {
	case *models.Student:
		err = a.studentMenu(acct)
	case *models.Teacher:
		err = a.teacherMenu(acct)
	case *models.Admin:
		err = a.adminMenu(acct)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if logoutErr := a.svcs.Auth.Logout(account); logoutErr != nil {
		a.prompt.Say("Warning: logout save failed (%v)", logoutErr)
	}
	a.prompt.Say("Goodbye, %s!", account.Base().Name)
	return nil
}

// report prints a service error in user terms.
func (a *App) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrPersistenceFailure):
		a.prompt.Say("WARNING: the change was applied but could not be saved to disk: %v", err)
	case services.IsEnrollmentError(err):
		a.prompt.Say("Cannot complete the request: %v", err)
		a.sayDetails(err)
	default:
		a.prompt.Say("Error: %v", err)
	}
}

// sayDetails prints the structured context attached to an error, if any.
func (a *App) sayDetails(err error) {
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || len(custom.Details) == 0 {
		return
	}
	keys := make([]string, 0, len(custom.Details))
	for key := range custom.Details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		a.prompt.Say("  %s: %v", key, custom.Details[key])
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
