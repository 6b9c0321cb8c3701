package cli

import (
	"context"
	"os"

	"github.com/akarpov/blogbox/internal/client/route"
	"github.com/akarpov/blogbox/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login renders the /login view: prompts for credentials, exchanges them
// for a {token, user} pair, and installs the pair through the session
// controller. An already-authenticated visitor is redirected to /blogs
// instead of seeing the form.
func (a *App) Login(ctx context.Context) error {
	if d := route.RedirectAuthed(a.controller.Current()); !d.Allow {
		printlnFn("Already logged in, redirecting to", string(d.RedirectTo))
		return a.Blogs(ctx)
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	token, user, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "error", err)
		printlnFn("Login failed:", err.Error())
		return nil
	}

	if err := a.controller.Login(ctx, token, user); err != nil {
		return err
	}

	printlnFn("Logged in successfully!")
	return nil
}

// Signup renders the /signup view. On success the backend returns a
// fresh pair which is installed exactly like a login.
func (a *App) Signup(ctx context.Context) error {
	if d := route.RedirectAuthed(a.controller.Current()); !d.Allow {
		printlnFn("Already logged in, redirecting to", string(d.RedirectTo))
		return a.Blogs(ctx)
	}

	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	token, user, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		a.logger.Warn(ctx, "signup failed", "error", err)
		printlnFn("Signup failed:", err.Error())
		return nil
	}

	if err := a.controller.Login(ctx, token, user); err != nil {
		return err
	}

	printlnFn("Account created!")
	return nil
}

// Logout clears the session. Logging out while already logged out is a
// no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.controller.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
