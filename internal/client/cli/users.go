package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userdir/internal/client/directory"
)

const loginFirst = "Please login to view and manage users."

// List (re)loads the directory and prints it.
func (a *App) List(ctx context.Context) error {
	err := a.users.Load(ctx)
	switch {
	case errors.Is(err, directory.ErrAnonymous):
		fmt.Fprintln(a.out, loginFirst)
		return err
	case errors.Is(err, directory.ErrSuperseded):
		return nil
	case err != nil:
		fmt.Fprintln(a.out, a.users.Err())
		fmt.Fprintln(a.out, "Type 'retry' to try again.")
		return err
	}
	renderUserList(a.out, a.users.Users())
	return nil
}

// Retry is the "Try Again" action after a failed load.
func (a *App) Retry(ctx context.Context) error {
	return a.List(ctx)
}

// Show opens the detail view for an entry of the loaded list.
func (a *App) Show(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, loginFirst)
		return directory.ErrAnonymous
	}
	if !a.users.Select(id) {
		fmt.Fprintf(a.out, "No user %q in the list. Run 'list' to refresh.\n", id)
		return nil
	}
	u, _ := a.users.Selected()
	renderUserDetail(a.out, u)
	return nil
}

func (a *App) CloseDetail(ctx context.Context) error {
	a.users.CloseDetail()
	return nil
}

// Delete asks for confirmation and removes the entry from the service.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, loginFirst)
		return directory.ErrAnonymous
	}
	u, ok := a.users.Find(id)
	if !ok {
		fmt.Fprintf(a.out, "No user %q in the list. Run 'list' to refresh.\n", id)
		return nil
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Are you sure you want to delete %s?", u.Name), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.users.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.out, a.users.Err())
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", u.Name)
	return nil
}
