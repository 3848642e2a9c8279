package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password, creates the account and
// signs in as it.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.auth.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: string(password)})
	if err != nil {
		a.log.Warn(ctx, "registration failed", "error", err)
		fmt.Fprintln(a.out, "Registration failed")
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return a.List(ctx)
}

// Login prompts for credentials, offering the last used email, and signs in.
// On failure the current session, if any, is kept.
func (a *App) Login(ctx context.Context) error {
	last, err := a.store.LastEmail(ctx)
	if err != nil {
		a.log.Debug(ctx, "no last email", "error", err)
	}

	email, err := GetTextWithDefault(a.reader, "Enter email", last, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, models.LoginRequest{Email: email, Password: string(password)}); err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Login failed")
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return a.List(ctx)
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed to clear stored session", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.state.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	return nil
}
