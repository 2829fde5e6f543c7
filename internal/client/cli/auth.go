package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/client/client"
	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/client/services"
	"github.com/dmitrijs2005/memberclient/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const msgSessionExpired = "Session expired. Please login again."

// report prints err the way the shell presents failures and returns it.
func (a *App) report(err error) error {
	var ve services.ValidationErrors
	var ce *client.Error

	switch {
	case client.IsAuthExpired(err):
		fmt.Fprintln(a.out, msgSessionExpired)
	case errors.As(err, &ve):
		fmt.Fprintln(a.out, ve.First())
	case errors.As(err, &ce):
		fmt.Fprintln(a.out, ce.Message)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

// Register prompts for the sign-up fields, creates the account and offers
// OTP verification for the new user id. Validation failures are shown one
// at a time.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter full name", &r.FullName},
		{"Enter phone (10 digits)", &r.Phone},
		{"Enter email", &r.Email},
		{"Enter referrer ID", &r.Referrer},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	r.Password, r.ConfirmPassword = string(password), string(confirm)

	res, err := a.authService.Register(ctx, r)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, res.Message)
	if res.UserID == "" {
		return nil
	}
	fmt.Fprintf(a.out, "Your user ID is %s\n", res.UserID)

	otp, err := getSimpleText(a.reader, "Enter the OTP you received (empty to skip)", a.out)
	if err != nil || otp == "" {
		return nil
	}

	msg, err := a.authService.VerifyOTP(ctx, res.UserID, otp)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Login prompts for credentials and authenticates through the session
// controller, which persists the session on success.
func (a *App) Login(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Enter user ID", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.controller.Login(ctx, userID, string(password))
	if err != nil {
		a.logger.Info(ctx, "Login unsuccessful", "error", err)
		return a.report(err)
	}

	name := sess.FullName
	if name == "" {
		name = sess.UserID
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Logout forgets the session. The shell is anonymous afterwards even when
// the local store could not be cleared.
func (a *App) Logout(ctx context.Context) error {
	if err := a.controller.Logout(ctx); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Status prints the session state without contacting the backend.
func (a *App) Status(ctx context.Context) error {
	sess := a.controller.Current()
	if !a.isLoggedIn() || sess == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "Logged in as %s", sess.UserID)
	if sess.FullName != "" {
		fmt.Fprintf(a.out, " (%s)", sess.FullName)
	}
	fmt.Fprintln(a.out)

	if exp, ok := sess.ExpiresAt(); ok {
		verb := "expires"
		if exp.Before(time.Now()) {
			verb = "expired"
		}
		fmt.Fprintf(a.out, "Token %s at %s\n", verb, exp.Local().Format(time.DateTime))
	}
	return nil
}

// requireLogin reports whether the shell holds a session and tells the user
// to log in otherwise.
func (a *App) requireLogin() bool {
	if a.isLoggedIn() {
		return true
	}
	fmt.Fprintln(a.out, "Not logged in. Use 'login' first.")
	return false
}
